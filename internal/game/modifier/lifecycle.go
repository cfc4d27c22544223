package modifier

// Target is a unit that modifier instances can attach to.
type Target interface {
	ActionCount() int
	AddActionValue(delta int)
	Modifiers() *ActiveSet
}

// Lookup resolves a unit id to a Target. Unknown ids return (nil, false).
type Lookup func(id string) (Target, bool)

// Application records one instance attached to one target.
type Application struct {
	TemplateID string
	TargetID   string
	Kind       Kind
	Magnitude  int
	Polarity   Polarity
}

type pendingTemplate struct {
	tmpl     Template
	consumed bool
}

// Lifecycle owns a private copy of the templates for one simulation run and
// expands each into instances exactly once.
// It is not safe for concurrent use.
type Lifecycle struct {
	templates []*pendingTemplate
}

// NewLifecycle deep-copies templates into a fresh, unconsumed Lifecycle.
//
// Precondition: templates must be normalized and valid.
// Postcondition: Later mutation of templates does not affect the Lifecycle.
func NewLifecycle(templates []Template) *Lifecycle {
	l := &Lifecycle{templates: make([]*pendingTemplate, 0, len(templates))}
	for _, t := range templates {
		l.templates = append(l.templates, &pendingTemplate{tmpl: t.Clone()})
	}
	return l
}

// ExpandDue expands every unconsumed template triggered at step that is not
// source-gated. Action value deltas change the target's action value
// immediately and attach as already-consumed instances.
//
// Postcondition: Every matching template is consumed, even when none of its targets resolve.
func (l *Lifecycle) ExpandDue(step int, lookup Lookup) []Application {
	var apps []Application
	for _, p := range l.templates {
		if p.consumed || p.tmpl.TriggerStep != step || p.tmpl.SourceGated() {
			continue
		}
		apps = append(apps, l.expand(p, lookup)...)
	}
	return apps
}

// ExpandOnAction expands every unconsumed source-gated template whose source
// is sourceID and whose trigger step is step. The engine calls it right after
// the source acts.
func (l *Lifecycle) ExpandOnAction(step int, sourceID string, lookup Lookup) []Application {
	var apps []Application
	for _, p := range l.templates {
		if p.consumed || p.tmpl.TriggerStep != step || !p.tmpl.SourceGated() || p.tmpl.SourceID != sourceID {
			continue
		}
		apps = append(apps, l.expand(p, lookup)...)
	}
	return apps
}

func (l *Lifecycle) expand(p *pendingTemplate, lookup Lookup) []Application {
	t := p.tmpl
	apps := make([]Application, 0, len(t.TargetIDs))
	for _, id := range t.TargetIDs {
		target, ok := lookup(id)
		if !ok {
			continue
		}
		inst := &Instance{
			TemplateID:           t.ID,
			Kind:                 t.Kind,
			Magnitude:            t.Magnitude,
			DurationUnit:         t.DurationUnit,
			SourceID:             t.SourceID,
			TriggerStep:          t.TriggerStep,
			Remaining:            t.Duration,
			AppliedAtActionCount: target.ActionCount(),
		}
		if t.Kind == KindActionValueDelta {
			target.AddActionValue(t.Magnitude)
			inst.Remaining = 0
		}
		target.Modifiers().Attach(inst)
		apps = append(apps, Application{
			TemplateID: t.ID,
			TargetID:   id,
			Kind:       t.Kind,
			Magnitude:  t.Magnitude,
			Polarity:   PolarityOf(t.Kind, t.Magnitude),
		})
	}
	p.consumed = true
	return apps
}

// Pending returns copies of the templates that have not expanded yet.
func (l *Lifecycle) Pending() []Template {
	var out []Template
	for _, p := range l.templates {
		if !p.consumed {
			out = append(out, p.tmpl.Clone())
		}
	}
	return out
}

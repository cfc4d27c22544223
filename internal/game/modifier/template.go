// Package modifier manages buff and debuff templates and the per-unit
// instances they expand into during a simulation run.
package modifier

import (
	"fmt"
	"strings"
)

// Template is a user-declared modifier request, independent of any run.
type Template struct {
	ID           string       `yaml:"id,omitempty"`
	Kind         Kind         `yaml:"kind"`
	Magnitude    int          `yaml:"magnitude"`
	Duration     int          `yaml:"duration,omitempty"`
	DurationUnit DurationUnit `yaml:"duration_unit,omitempty"`
	TriggerStep  int          `yaml:"trigger_step"`
	TargetIDs    []string     `yaml:"targets"`
	SourceID     string       `yaml:"source,omitempty"`
}

// Normalize returns a copy of t with kind-implied fields resolved.
// Action value deltas are always one-shot per-calculation modifiers with a
// budget of 1; agility kinds default to per-action duration.
//
// Postcondition: The receiver is not modified.
func (t Template) Normalize() Template {
	out := t.Clone()
	switch {
	case out.Kind == KindActionValueDelta:
		out.DurationUnit = PerCalculation
		out.Duration = 1
	case out.Kind.IsAgility() && out.DurationUnit == DurationUnspecified:
		out.DurationUnit = PerAction
	}
	return out
}

// Validate checks the template invariants that the engine relies on.
//
// Precondition: t should already be normalized.
// Postcondition: Returns nil if t is valid, or an error describing all violations.
func (t Template) Validate() error {
	var errs []string
	if t.Kind == KindUnknown {
		errs = append(errs, "kind must be one of [agility_buff_skill, agility_buff_bb, agility_debuff_heavy_pressure, action_value_delta]")
	}
	if t.Kind.IsAgility() && t.DurationUnit != PerAction {
		errs = append(errs, fmt.Sprintf("%s requires duration_unit per_action, got %s", t.Kind, t.DurationUnit))
	}
	if t.Duration < 1 {
		errs = append(errs, fmt.Sprintf("duration must be >= 1, got %d", t.Duration))
	}
	if t.TriggerStep < 1 {
		errs = append(errs, fmt.Sprintf("trigger_step must be >= 1, got %d", t.TriggerStep))
	}
	if len(t.TargetIDs) == 0 {
		errs = append(errs, "targets must not be empty")
	}
	seen := make(map[string]bool, len(t.TargetIDs))
	for _, id := range t.TargetIDs {
		if id == "" {
			errs = append(errs, "target ids must not be empty")
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Sprintf("duplicate target %q", id))
		}
		seen[id] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// SourceGated reports whether t expands when its source acts rather than at
// the start of its trigger step.
func (t Template) SourceGated() bool {
	return t.DurationUnit == PerAction && t.SourceID != ""
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	out := t
	if t.TargetIDs != nil {
		out.TargetIDs = append([]string(nil), t.TargetIDs...)
	}
	return out
}

// Describe renders t as a one-line summary using names to resolve unit ids.
// Ids missing from names are shown as "unknown unit".
func (t Template) Describe(names map[string]string) string {
	nameOf := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return "unknown unit"
	}
	targets := make([]string, 0, len(t.TargetIDs))
	for _, id := range t.TargetIDs {
		targets = append(targets, nameOf(id))
	}

	var b strings.Builder
	switch t.Kind {
	case KindSkillAgility:
		fmt.Fprintf(&b, "skill agility %+d%%", t.Magnitude)
	case KindBBAgility:
		fmt.Fprintf(&b, "bb agility %+d%%", t.Magnitude)
	case KindHeavyPressure:
		fmt.Fprintf(&b, "heavy pressure agility %+d%%", HeavyPressurePercent)
	case KindActionValueDelta:
		fmt.Fprintf(&b, "action value %+d", t.Magnitude)
	default:
		b.WriteString("unknown modifier")
	}
	fmt.Fprintf(&b, " on %s", strings.Join(targets, ", "))
	if t.SourceID != "" {
		fmt.Fprintf(&b, " (source: %s)", nameOf(t.SourceID))
	}
	if t.DurationUnit == PerAction {
		fmt.Fprintf(&b, " [step %d, %d actions]", t.TriggerStep, t.Duration)
	} else {
		fmt.Fprintf(&b, " [step %d]", t.TriggerStep)
	}
	return b.String()
}

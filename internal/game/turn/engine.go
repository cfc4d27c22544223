package turn

import (
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/turnsim/internal/game/modifier"
)

// Engine runs turn-order simulations with fixed bounds.
// An Engine holds no per-run state and is safe for concurrent use; every Run
// owns its own units and template copies.
type Engine struct {
	steps     int
	threshold int
	logger    *zap.Logger
}

// NewEngine creates an Engine that runs steps calculation steps and lets a
// unit act once its action value reaches threshold.
//
// Precondition: steps >= 1; threshold >= 1.
// Postcondition: Returns a non-nil Engine. A nil logger is replaced by a no-op logger.
func NewEngine(steps, threshold int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{steps: steps, threshold: threshold, logger: logger}
}

// Steps returns the number of steps each run performs.
func (e *Engine) Steps() int { return e.steps }

// Threshold returns the action value at which units act.
func (e *Engine) Threshold() int { return e.threshold }

// simulation is the private state of one Run.
type simulation struct {
	units     []*Unit
	byID      map[string]*Unit
	lifecycle *modifier.Lifecycle
	threshold int
}

func newSimulation(specs []UnitSpec, templates []modifier.Template, threshold int) *simulation {
	s := &simulation{
		units:     make([]*Unit, 0, len(specs)),
		byID:      make(map[string]*Unit, len(specs)),
		lifecycle: modifier.NewLifecycle(templates),
		threshold: threshold,
	}
	for i, spec := range specs {
		u := newUnit(spec, i)
		s.units = append(s.units, u)
		s.byID[u.ID] = u
	}
	return s
}

func (s *simulation) lookup(id string) (modifier.Target, bool) {
	u, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return u, true
}

// actors returns the units at or above the threshold in firing order:
// highest action value first, ties broken by lower roster position.
func (s *simulation) actors() []*Unit {
	var ready []*Unit
	for _, u := range s.units {
		if u.ActionValue >= s.threshold {
			ready = append(ready, u)
		}
	}
	sort.Slice(ready, func(i, j int) bool {
		if ready[i].ActionValue != ready[j].ActionValue {
			return ready[i].ActionValue > ready[j].ActionValue
		}
		return ready[i].Position < ready[j].Position
	})
	return ready
}

// Run simulates the roster for the engine's step count and returns one
// snapshot per step. Identical input always yields identical output.
//
// Precondition: specs is non-empty with unique ids and positive agility;
// templates are normalized and valid. Unknown target or source ids are ignored.
// Postcondition: len(result) == e.Steps(); templates is not modified.
func (e *Engine) Run(specs []UnitSpec, templates []modifier.Template) []StepSnapshot {
	sim := newSimulation(specs, templates, e.threshold)
	snaps := make([]StepSnapshot, 0, e.steps)
	actions := 0
	for step := 1; step <= e.steps; step++ {
		snap := e.runStep(sim, step)
		actions += len(snap.Fired)
		snaps = append(snaps, snap)
	}

	for _, t := range sim.lifecycle.Pending() {
		e.logger.Warn("modifier never applied",
			zap.String("modifier", t.ID),
			zap.Stringer("kind", t.Kind),
			zap.Int("trigger_step", t.TriggerStep),
			zap.String("source", t.SourceID),
		)
	}
	e.logger.Info("simulation complete",
		zap.Int("steps", e.steps),
		zap.Int("units", len(specs)),
		zap.Int("modifiers", len(templates)),
		zap.Int("actions", actions),
	)
	return snaps
}

// runStep advances sim by one step and returns the settled snapshot.
func (e *Engine) runStep(sim *simulation, step int) StepSnapshot {
	applied := make(map[string]modifier.Polarity)
	record := func(apps []modifier.Application) {
		for _, a := range apps {
			applied[a.TargetID] = applied[a.TargetID].Merge(a.Polarity)
			e.logger.Debug("modifier applied",
				zap.Int("step", step),
				zap.String("modifier", a.TemplateID),
				zap.Stringer("kind", a.Kind),
				zap.String("target", a.TargetID),
				zap.Int("magnitude", a.Magnitude),
			)
		}
	}

	record(sim.lifecycle.ExpandDue(step, sim.lookup))

	// Units already over the threshold before accrual form the provisional
	// order used for causality suppression.
	provisional := sim.actors()
	ids := make([]string, len(provisional))
	for i, u := range provisional {
		ids[i] = u.ID
	}
	order := modifier.NewOrder(ids)

	for _, u := range sim.units {
		u.AddActionValue(u.mods.EffectiveAgility(u.BaseAgility, step, order))
	}

	actors := sim.actors()
	fired := make([]string, 0, len(actors))
	for _, u := range actors {
		u.act()
		fired = append(fired, u.ID)
		e.logger.Debug("unit acted",
			zap.Int("step", step),
			zap.String("unit", u.ID),
			zap.Int("action_value", u.ActionValueAtAct),
			zap.Int("action_count", u.actionCount),
		)
		record(sim.lifecycle.ExpandOnAction(step, u.ID, sim.lookup))
	}

	for _, u := range sim.units {
		for _, inst := range u.mods.Prune() {
			e.logger.Debug("modifier expired",
				zap.Int("step", step),
				zap.String("unit", u.ID),
				zap.String("modifier", inst.TemplateID),
			)
		}
	}

	actedNow := make(map[string]bool, len(fired))
	for _, id := range fired {
		actedNow[id] = true
	}
	cells := make([]Cell, 0, len(sim.units))
	for _, u := range sim.units {
		c := Cell{
			UnitID:      u.ID,
			Acted:       actedNow[u.ID],
			Value:       u.ActionValue,
			ActionCount: u.actionCount,
			Applied:     applied[u.ID],
		}
		if c.Acted {
			c.Value = u.ActionValueAtAct
		}
		cells = append(cells, c)
	}
	return StepSnapshot{Step: step, Fired: fired, Cells: cells}
}

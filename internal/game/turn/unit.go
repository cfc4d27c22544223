// Package turn implements the tick-based turn-order engine.
package turn

import "github.com/cory-johannsen/turnsim/internal/game/modifier"

// UnitSpec is one roster entry supplied by the caller. Roster order defines
// the tie-break position.
type UnitSpec struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Agility int    `yaml:"agility"`
}

// Unit is the per-run state of one participant. Units are created fresh for
// every run and never shared between runs.
type Unit struct {
	ID          string
	Name        string
	Position    int
	BaseAgility int
	// ActionValue is the accumulator; crossing the threshold makes the unit act.
	ActionValue int
	// ActionValueAtAct is the accumulator value at the unit's most recent action.
	ActionValueAtAct int
	actionCount      int
	mods             *modifier.ActiveSet
}

func newUnit(spec UnitSpec, position int) *Unit {
	return &Unit{
		ID:          spec.ID,
		Name:        spec.Name,
		Position:    position,
		BaseAgility: spec.Agility,
		mods:        modifier.NewActiveSet(spec.ID),
	}
}

// ActionCount returns how many times the unit has acted.
func (u *Unit) ActionCount() int { return u.actionCount }

// AddActionValue adds delta to the accumulator.
func (u *Unit) AddActionValue(delta int) { u.ActionValue += delta }

// Modifiers returns the unit's live modifier instances.
func (u *Unit) Modifiers() *modifier.ActiveSet { return u.mods }

// act resets the accumulator, bumps the action count and ticks per-action
// modifiers.
//
// Postcondition: ActionValue == 0; ActionValueAtAct holds the pre-reset value.
func (u *Unit) act() {
	u.ActionValueAtAct = u.ActionValue
	u.ActionValue = 0
	u.actionCount++
	u.mods.DecrementOnAction(u.actionCount)
}

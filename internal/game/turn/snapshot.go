package turn

import "github.com/cory-johannsen/turnsim/internal/game/modifier"

// Cell is one unit's state at the end of one step.
type Cell struct {
	UnitID string `yaml:"unit"`
	Acted  bool   `yaml:"acted"`
	// Value is the action value at the moment of acting when Acted is true,
	// otherwise the current accumulator.
	Value       int               `yaml:"value"`
	ActionCount int               `yaml:"action_count"`
	Applied     modifier.Polarity `yaml:"applied"`
}

// StepSnapshot is the settled state of every unit after one step.
type StepSnapshot struct {
	Step int `yaml:"step"`
	// Fired lists the ids of the units that acted, in firing order.
	Fired []string `yaml:"fired,flow"`
	// Cells holds one entry per unit in roster order.
	Cells []Cell `yaml:"cells"`
}

// Cell returns the cell for unitID, or (Cell{}, false) if it is not in the roster.
func (s StepSnapshot) Cell(unitID string) (Cell, bool) {
	for _, c := range s.Cells {
		if c.UnitID == unitID {
			return c, true
		}
	}
	return Cell{}, false
}

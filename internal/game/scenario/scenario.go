// Package scenario loads and validates simulation input: the unit roster and
// the modifier requests applied to it.
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/turnsim/internal/game/modifier"
	"github.com/cory-johannsen/turnsim/internal/game/turn"
)

// Scenario is one simulation input as read from YAML.
type Scenario struct {
	Units     []turn.UnitSpec     `yaml:"units"`
	Modifiers []modifier.Template `yaml:"modifiers"`
}

// LoadFile reads and parses the scenario at path. Unknown fields are rejected.
// The result is normalized but not validated.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a normalized Scenario or a non-nil error.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %q: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario %q: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a YAML scenario document and normalizes it.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, err
	}
	return sc.Normalize(), nil
}

// Normalize fills default unit ids ("unit-<n>") and names ("Unit <n>") and
// normalizes every modifier template.
//
// Postcondition: The receiver is not modified.
func (s Scenario) Normalize() Scenario {
	out := Scenario{
		Units:     make([]turn.UnitSpec, len(s.Units)),
		Modifiers: make([]modifier.Template, len(s.Modifiers)),
	}
	for i, u := range s.Units {
		if u.ID == "" {
			u.ID = fmt.Sprintf("unit-%d", i+1)
		}
		if u.Name == "" {
			u.Name = fmt.Sprintf("Unit %d", i+1)
		}
		out.Units[i] = u
	}
	for i, m := range s.Modifiers {
		out.Modifiers[i] = m.Normalize()
	}
	return out
}

// Validate checks the roster and every modifier request.
//
// Precondition: maxUnits >= 1.
// Postcondition: Returns nil if the scenario can be run, or an error describing all violations.
func (s Scenario) Validate(maxUnits int) error {
	var errs []string

	if len(s.Units) == 0 {
		errs = append(errs, "at least one unit is required")
	}
	if len(s.Units) > maxUnits {
		errs = append(errs, fmt.Sprintf("at most %d units are allowed, got %d", maxUnits, len(s.Units)))
	}
	seen := make(map[string]bool, len(s.Units))
	for i, u := range s.Units {
		if u.ID == "" {
			errs = append(errs, fmt.Sprintf("units[%d].id must not be empty", i))
		}
		if seen[u.ID] {
			errs = append(errs, fmt.Sprintf("units[%d].id %q is duplicated", i, u.ID))
		}
		seen[u.ID] = true
		if u.Agility < 1 {
			errs = append(errs, fmt.Sprintf("units[%d].agility must be >= 1, got %d", i, u.Agility))
		}
	}

	for i, m := range s.Modifiers {
		if err := m.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("modifiers[%d]: %v", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Catalog loads the scenario's modifiers into a fresh Catalog.
//
// Postcondition: On error no catalog is returned.
func (s Scenario) Catalog() (*modifier.Catalog, error) {
	c := modifier.NewCatalog()
	for i, m := range s.Modifiers {
		if _, err := c.Add(m); err != nil {
			return nil, fmt.Errorf("modifiers[%d]: %w", i, err)
		}
	}
	return c, nil
}

// Names maps each unit id to its display name.
func (s Scenario) Names() map[string]string {
	names := make(map[string]string, len(s.Units))
	for _, u := range s.Units {
		names[u.ID] = u.Name
	}
	return names
}

// Package report renders simulation snapshots for terminal or file output.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/turnsim/internal/game/modifier"
	"github.com/cory-johannsen/turnsim/internal/game/turn"
)

// Column is one unit column of the result table.
type Column struct {
	UnitID string
	Header string
}

// FormatCell renders one cell: "ACT (v)" when the unit acted, the current
// action value otherwise, suffixed with "+" or "-" when a buff or debuff was
// applied to the unit that step.
func FormatCell(c turn.Cell) string {
	var s string
	if c.Acted {
		s = fmt.Sprintf("ACT (%d)", c.Value)
	} else {
		s = fmt.Sprintf("%d", c.Value)
	}
	switch c.Applied {
	case modifier.PolarityBuff:
		s += " +"
	case modifier.PolarityDebuff:
		s += " -"
	}
	return s
}

// WriteTable writes an aligned table with one row per step and one column per unit.
//
// Postcondition: Returns the first write error, if any.
func WriteTable(w io.Writer, cols []Column, snaps []turn.StepSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := make([]string, 0, len(cols)+1)
	header = append(header, "STEP")
	for _, c := range cols {
		header = append(header, c.Header)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, snap := range snaps {
		row := make([]string, 0, len(cols)+1)
		row = append(row, fmt.Sprintf("%d", snap.Step))
		for _, c := range cols {
			cell, ok := snap.Cell(c.UnitID)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, FormatCell(cell))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteModifiers writes one described line per template.
func WriteModifiers(w io.Writer, templates []modifier.Template, names map[string]string) error {
	for i, t := range templates {
		if _, err := fmt.Fprintf(w, "%2d. %s\n", i+1, t.Describe(names)); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML encodes snaps as a YAML document.
func WriteYAML(w io.Writer, snaps []turn.StepSnapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]turn.StepSnapshot{"steps": snaps}); err != nil {
		return fmt.Errorf("encoding snapshots: %w", err)
	}
	return enc.Close()
}

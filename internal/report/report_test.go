package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/turnsim/internal/game/modifier"
	"github.com/cory-johannsen/turnsim/internal/game/turn"
	"github.com/cory-johannsen/turnsim/internal/report"
)

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "400", report.FormatCell(turn.Cell{Value: 400}))
	assert.Equal(t, "ACT (1000)", report.FormatCell(turn.Cell{Acted: true, Value: 1000}))
	assert.Equal(t, "ACT (2100) +", report.FormatCell(turn.Cell{Acted: true, Value: 2100, Applied: modifier.PolarityBuff}))
	assert.Equal(t, "170 -", report.FormatCell(turn.Cell{Value: 170, Applied: modifier.PolarityDebuff}))
}

func TestWriteTable(t *testing.T) {
	snaps := turn.NewEngine(5, 1000, nil).Run([]turn.UnitSpec{{ID: "a", Agility: 100}, {ID: "b", Agility: 150}}, nil)
	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, []report.Column{{UnitID: "a", Header: "Alice"}, {UnitID: "b", Header: "Bob"}}, snaps))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"STEP", "Alice", "Bob"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "200", "250"}, strings.Fields(lines[1]))
	assert.Contains(t, lines[4], "ACT (1000)", "Bob acts at step 4")
	assert.Contains(t, lines[5], "ACT (1000)", "Alice acts at step 5")
}

func TestWriteModifiers(t *testing.T) {
	tmpls := []modifier.Template{
		{Kind: modifier.KindActionValueDelta, Magnitude: 300, TriggerStep: 2, TargetIDs: []string{"a"}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteModifiers(&buf, tmpls, map[string]string{"a": "Alice"}))
	assert.Equal(t, " 1. action value +300 on Alice [step 2]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	snaps := turn.NewEngine(2, 1000, nil).Run([]turn.UnitSpec{{ID: "a", Agility: 900}}, nil)
	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf, snaps))

	var doc struct {
		Steps []struct {
			Step  int      `yaml:"step"`
			Fired []string `yaml:"fired"`
			Cells []struct {
				Unit    string `yaml:"unit"`
				Acted   bool   `yaml:"acted"`
				Value   int    `yaml:"value"`
				Applied string `yaml:"applied"`
			} `yaml:"cells"`
		} `yaml:"steps"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, []string{"a"}, doc.Steps[1].Fired)
	assert.True(t, doc.Steps[1].Cells[0].Acted)
	assert.Equal(t, 1000, doc.Steps[1].Cells[0].Value)
	assert.Equal(t, "none", doc.Steps[1].Cells[0].Applied)
}

package modifier_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/turnsim/internal/game/modifier"
)

func TestCatalog_AddAssignsID(t *testing.T) {
	c := modifier.NewCatalog()
	stored, err := c.Add(skillBuff())
	require.NoError(t, err)
	_, err = uuid.Parse(stored.ID)
	assert.NoError(t, err)
	assert.Equal(t, modifier.PerAction, stored.DurationUnit, "stored templates are normalized")
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_AddKeepsExplicitID(t *testing.T) {
	c := modifier.NewCatalog()
	tmpl := skillBuff()
	tmpl.ID = "haste"
	stored, err := c.Add(tmpl)
	require.NoError(t, err)
	assert.Equal(t, "haste", stored.ID)

	_, err = c.Add(tmpl)
	assert.Error(t, err, "duplicate ids are rejected")
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_InvalidAddLeavesCatalogUnchanged(t *testing.T) {
	c := modifier.NewCatalog()
	_, err := c.Add(skillBuff())
	require.NoError(t, err)
	before := c.Templates()

	bad := skillBuff()
	bad.TargetIDs = nil
	_, err = c.Add(bad)
	require.Error(t, err)
	assert.Equal(t, before, c.Templates())
}

func TestCatalog_Remove(t *testing.T) {
	c := modifier.NewCatalog()
	a, err := c.Add(skillBuff())
	require.NoError(t, err)
	b, err := c.Add(skillBuff())
	require.NoError(t, err)

	assert.True(t, c.Remove(a.ID))
	assert.False(t, c.Remove(a.ID))
	_, ok := c.Get(a.ID)
	assert.False(t, ok)
	got, ok := c.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, b, got)
}

func TestCatalog_TemplatesAreCopies(t *testing.T) {
	c := modifier.NewCatalog()
	stored, err := c.Add(skillBuff())
	require.NoError(t, err)

	tmpls := c.Templates()
	tmpls[0].TargetIDs[0] = "mutated"
	tmpls[0].Duration = 99

	got, _ := c.Get(stored.ID)
	assert.Equal(t, "unit-1", got.TargetIDs[0])
	assert.Equal(t, 2, got.Duration)
}

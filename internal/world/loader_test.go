package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShips(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	v, ok := c.Get("vanguard")
	require.True(t, ok)
	assert.Equal(t, "U.N.S. Vanguard", v.Name)
	assert.Equal(t, Loadout{Hull: 100, Energy: 100, Crew: 50, Credits: 1000}, v.InitialResources)

	iron, ok := c.Get("ironclad")
	require.True(t, ok)
	assert.Equal(t, "+20% Max Hull Integrity.", iron.Bonus)
	assert.Equal(t, Loadout{Hull: 120, Energy: 80, Crew: 30, Credits: 1500}, iron.InitialResources)

	s := c.At(2)
	require.NotNil(t, s)
	assert.Equal(t, "stealth", s.ID)
	assert.Equal(t, Loadout{Hull: 70, Energy: 120, Crew: 15, Credits: 800}, s.InitialResources)

	assert.Nil(t, c.At(3))
	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestLoadCatalogRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"empty":     "ships: []",
		"no id":     "ships:\n  - name: x\n    initial_resources: {hull: 1, energy: 1, crew: 1, credits: 0}",
		"duplicate": "ships:\n  - id: a\n    initial_resources: {hull: 1, energy: 1, crew: 1}\n  - id: a\n    initial_resources: {hull: 1, energy: 1, crew: 1}",
		"dead ship": "ships:\n  - id: a\n    initial_resources: {hull: 0, energy: 1, crew: 1}",
		"not yaml":  "ships: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

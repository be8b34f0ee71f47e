package world

import (
	"fmt"

	"github.com/spacehole-rogue/nebula_nexus/assets"
	"gopkg.in/yaml.v3"
)

// Loadout is the starting state of a ship's pools.
type Loadout struct {
	Hull    int `yaml:"hull"`
	Energy  int `yaml:"energy"`
	Crew    int `yaml:"crew"`
	Credits int `yaml:"credits"`
}

// ShipClass is one selectable ship. Records are read-only once loaded.
type ShipClass struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Description      string  `yaml:"description"`
	Bonus            string  `yaml:"bonus"`
	InitialResources Loadout `yaml:"initial_resources"`
}

// Catalog is the ordered list of ship classes.
type Catalog struct {
	Ships []ShipClass `yaml:"ships"`
}

// LoadCatalog parses a ship catalog from YAML bytes.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse ship catalog: %w", err)
	}
	if len(c.Ships) == 0 {
		return nil, fmt.Errorf("ship catalog is empty")
	}
	seen := make(map[string]bool, len(c.Ships))
	for i, s := range c.Ships {
		if s.ID == "" {
			return nil, fmt.Errorf("ship %d has no id", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate ship id %q", s.ID)
		}
		seen[s.ID] = true
		l := s.InitialResources
		if l.Hull <= 0 || l.Energy <= 0 || l.Crew <= 0 || l.Credits < 0 {
			return nil, fmt.Errorf("ship %q: starting resources must be positive", s.ID)
		}
	}
	return &c, nil
}

// DefaultCatalog loads the embedded ship catalog.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(assets.Ships)
}

// MustDefaultCatalog is DefaultCatalog for callers that cannot recover from
// a broken build.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the ship with the given id.
func (c *Catalog) Get(id string) (*ShipClass, bool) {
	for i := range c.Ships {
		if c.Ships[i].ID == id {
			return &c.Ships[i], true
		}
	}
	return nil, false
}

// At returns the i-th ship, or nil if out of range.
func (c *Catalog) At(i int) *ShipClass {
	if i < 0 || i >= len(c.Ships) {
		return nil
	}
	return &c.Ships[i]
}

// Len returns the number of ship classes.
func (c *Catalog) Len() int { return len(c.Ships) }

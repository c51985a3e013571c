// Package tile implements the tile store: per-hex records of base kind,
// trait flags, and a decaying sequence of timed tile effects. The store
// mirrors a carving.TileMap in spirit (a grid-keyed map of mutable
// per-cell records) but is keyed by hex point rather than row-major index,
// and a cell's payload is traits+effects instead of a render layer.
package tile

import (
	"encoding/json"

	"github.com/dshills/tacsim/pkg/hexgrid"
)

// Trait is an atomic tile flag.
type Trait string

const (
	TraitWalkable      Trait = "WALKABLE"
	TraitBlocksMove    Trait = "BLOCKS_MOVEMENT"
	TraitBlocksLOS     Trait = "BLOCKS_LOS"
	TraitHazardous     Trait = "HAZARDOUS"
	TraitLiquid        Trait = "LIQUID"
	TraitSlippery      Trait = "SLIPPERY"
	TraitAnchor        Trait = "ANCHOR"
	TraitCorpse        Trait = "CORPSE"
)

// TraitSet is an ordered-insertion-agnostic set of traits; since traits are
// booleans with no meaningful order, a map is appropriate here (unlike the
// ordered effect sequences below, where order matters).
type TraitSet map[Trait]struct{}

// NewTraitSet builds a TraitSet from a list of traits.
func NewTraitSet(traits ...Trait) TraitSet {
	s := make(TraitSet, len(traits))
	for _, t := range traits {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the set contains t.
func (s TraitSet) Has(t Trait) bool {
	_, ok := s[t]
	return ok
}

// Add inserts t into the set.
func (s TraitSet) Add(t Trait) {
	s[t] = struct{}{}
}

// Remove deletes t from the set.
func (s TraitSet) Remove(t Trait) {
	delete(s, t)
}

// Clone returns an independent copy.
func (s TraitSet) Clone() TraitSet {
	out := make(TraitSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// SortedStrings returns the traits as a sorted []string, for canonical
// serialization (snapshot format: "trait sets serialize as sorted arrays").
func (s TraitSet) SortedStrings() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	// Simple insertion sort: trait sets are tiny (<=8 members) so this is
	// both fast and avoids pulling in sort for a handful of comparisons.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array of trait names.
func (s TraitSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.SortedStrings())
}

// UnmarshalJSON rebuilds the set from an array of trait names.
func (s *TraitSet) UnmarshalJSON(data []byte) error {
	var names []Trait
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewTraitSet(names...)
	return nil
}

// Effect is a timed tile modifier (e.g. FIRE). Duration -1 means permanent.
type Effect struct {
	ID       string `json:"id"`
	Duration int    `json:"duration"`
	Potency  int    `json:"potency"`
	SourceID string `json:"sourceId,omitempty"`
}

// Tile is one cell's record.
type Tile struct {
	BaseID   string         `json:"baseId"`
	Position hexgrid.Point  `json:"position"`
	Traits   TraitSet       `json:"traits"`
	Effects  []Effect       `json:"effects"`
}

// Clone returns a deep-enough copy for copy-on-write handoff.
func (t *Tile) Clone() *Tile {
	return &Tile{
		BaseID:   t.BaseID,
		Position: t.Position,
		Traits:   t.Traits.Clone(),
		Effects:  append([]Effect{}, t.Effects...),
	}
}

// Store maps hex positions to tile records.
type Store map[hexgrid.Point]*Tile

// NewStore returns an empty store.
func NewStore() Store {
	return make(Store)
}

// Clone returns a store with independent Tile pointers (copy-on-write).
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for p, t := range s {
		out[p] = t.Clone()
	}
	return out
}

// Get returns the tile at p, or nil if none exists.
func (s Store) Get(p hexgrid.Point) *Tile {
	return s[p]
}

// EnsureDefault returns the tile at p, creating one from baseDefaults if
// absent (used by PlaceFire et al.: "creating a default
// tile if none exists").
func (s Store) EnsureDefault(p hexgrid.Point, baseID string, defaultTraits []Trait) *Tile {
	if t, ok := s[p]; ok {
		return t
	}
	t := &Tile{
		BaseID:   baseID,
		Position: p,
		Traits:   NewTraitSet(defaultTraits...),
		Effects:  []Effect{},
	}
	s[p] = t
	return t
}

// ApplyEffect installs a timed tile effect at a tile. Duration -1 is
// permanent. It is idempotent on (id, sourceId): a repeat installation from
// the same source refreshes duration/potency in place rather than stacking.
func ApplyEffect(t *Tile, effectID string, duration, potency int, sourceID string) {
	for i := range t.Effects {
		if t.Effects[i].ID == effectID && t.Effects[i].SourceID == sourceID {
			t.Effects[i].Duration = duration
			t.Effects[i].Potency = potency
			return
		}
	}
	t.Effects = append(t.Effects, Effect{ID: effectID, Duration: duration, Potency: potency, SourceID: sourceID})
}

// DecayEffects decrements every non-permanent effect's duration by one and
// removes those that reach zero, returning the ids that expired (for
// expiration messages). Called once per full round.
func DecayEffects(t *Tile) []string {
	var expired []string
	kept := t.Effects[:0]
	for _, e := range t.Effects {
		if e.Duration < 0 {
			kept = append(kept, e)
			continue
		}
		e.Duration--
		if e.Duration <= 0 {
			expired = append(expired, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	t.Effects = kept
	return expired
}

// HasEffect reports whether the tile currently carries a live effect with
// the given id.
func (t *Tile) HasEffect(effectID string) bool {
	for _, e := range t.Effects {
		if e.ID == effectID {
			return true
		}
	}
	return false
}

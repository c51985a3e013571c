// Package content provides the reference/demo implementations of the
// facades declared in pkg/facade: tile kinds, combat profile
// multipliers, skills, AI, upgrades, and status hooks. It follows a
// YAML-backed table-data style (a package-level registry populated once
// and treated as read-only); no table lookup in it draws from the RNG.
package content

import "github.com/dshills/tacsim/pkg/tile"

// TileKindEntry is one BASE_TILES row.
type TileKindEntry struct {
	ID             string      `yaml:"id" json:"id"`
	DefaultTraits  []tile.Trait `yaml:"defaultTraits" json:"defaultTraits"`
}

// TileKindRegistry implements facade.TileKindFacade over a fixed table: a
// lazily-initialized, read-only content registry.
type TileKindRegistry struct {
	entries map[string][]tile.Trait
}

// NewTileKindRegistry builds a registry from BASE_TILES plus any extra
// entries supplied by a loaded content pack.
func NewTileKindRegistry(extra ...TileKindEntry) *TileKindRegistry {
	r := &TileKindRegistry{entries: make(map[string][]tile.Trait, len(BaseTiles)+len(extra))}
	for _, e := range BaseTiles {
		r.entries[e.ID] = e.DefaultTraits
	}
	for _, e := range extra {
		r.entries[e.ID] = e.DefaultTraits
	}
	return r
}

// DefaultTraits satisfies facade.TileKindFacade.
func (r *TileKindRegistry) DefaultTraits(baseID string) []tile.Trait {
	return r.entries[baseID]
}

// BaseTiles is the reference tile-kind table, driving the trait flags and
// hazard/slippery behavior each kind exposes.
var BaseTiles = []TileKindEntry{
	{ID: "FLOOR", DefaultTraits: []tile.Trait{tile.TraitWalkable}},
	{ID: "WALL", DefaultTraits: []tile.Trait{tile.TraitBlocksMove, tile.TraitBlocksLOS}},
	{ID: "STONE", DefaultTraits: []tile.Trait{tile.TraitWalkable}},
	{ID: "SLIPPERY", DefaultTraits: []tile.Trait{tile.TraitWalkable, tile.TraitSlippery}},
	{ID: "LAVA", DefaultTraits: []tile.Trait{tile.TraitWalkable, tile.TraitHazardous, tile.TraitLiquid}},
	{ID: "VOID", DefaultTraits: []tile.Trait{tile.TraitWalkable, tile.TraitHazardous}},
	{ID: "WATER", DefaultTraits: []tile.Trait{tile.TraitWalkable, tile.TraitLiquid}},
}

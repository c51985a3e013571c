// Package snapshot serializes and restores GameState: plain
// MarshalIndent/Marshal over the aggregate, plus file helpers. It also
// migrates legacy save fields (a flat per-kind hazard-position list) into
// the current tiles map, since LOAD_STATE must accept both shapes.
package snapshot

import (
	"encoding/json"
	"os"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/tile"
)

// Export serializes state to indented JSON ( LOAD_STATE/save
// round trip).
func Export(state *actorstate.GameState) ([]byte, error) {
	return json.MarshalIndent(state, "", "  ")
}

// ExportCompact serializes state without indentation.
func ExportCompact(state *actorstate.GameState) ([]byte, error) {
	return json.Marshal(state)
}

// SaveToFile writes state as indented JSON to filepath.
func SaveToFile(state *actorstate.GameState, filepath string) error {
	data, err := Export(state)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// legacyEnvelope captures the superset of fields a pre-tiles-map save might
// carry: the current GameState shape plus the five flat hazard-position
// lists notes as a migration the loader must still honor.
type legacyEnvelope struct {
	actorstate.GameState
	LavaPositions      []hexgrid.Point `json:"lavaPositions,omitempty"`
	WallPositions      []hexgrid.Point `json:"wallPositions,omitempty"`
	SlipperyPositions  []hexgrid.Point `json:"slipperyPositions,omitempty"`
	VoidPositions      []hexgrid.Point `json:"voidPositions,omitempty"`
	FirePositions      []hexgrid.Point `json:"firePositions,omitempty"`
}

// legacyKind maps each flat legacy list to the tile base id + traits it
// migrates into.
var legacyKinds = []struct {
	field  func(*legacyEnvelope) []hexgrid.Point
	baseID string
	traits []tile.Trait
}{
	{func(e *legacyEnvelope) []hexgrid.Point { return e.LavaPositions }, "LAVA", []tile.Trait{tile.TraitHazardous, tile.TraitWalkable}},
	{func(e *legacyEnvelope) []hexgrid.Point { return e.WallPositions }, "WALL", []tile.Trait{tile.TraitBlocksMove, tile.TraitBlocksLOS}},
	{func(e *legacyEnvelope) []hexgrid.Point { return e.SlipperyPositions }, "SLIPPERY", []tile.Trait{tile.TraitSlippery, tile.TraitWalkable}},
	{func(e *legacyEnvelope) []hexgrid.Point { return e.VoidPositions }, "VOID", []tile.Trait{tile.TraitBlocksMove}},
	{func(e *legacyEnvelope) []hexgrid.Point { return e.FirePositions }, "FLOOR", []tile.Trait{tile.TraitWalkable}},
}

// Load reads and migrates a saved GameState. Legacy flat hazard-position
// lists are folded into Tiles (idempotent: if the corresponding hex already
// has a tile, the legacy entry is skipped rather than overwriting it).
func Load(data []byte) (*actorstate.GameState, error) {
	var env legacyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	state := env.GameState
	if state.Tiles == nil {
		state.Tiles = tile.NewStore()
	}
	for _, k := range legacyKinds {
		for _, p := range k.field(&env) {
			if _, exists := state.Tiles[p]; exists {
				continue
			}
			state.Tiles.EnsureDefault(p, k.baseID, k.traits)
		}
	}
	// FLOOR fire-positions need the FIRE effect applied, not just a base id.
	for _, p := range env.FirePositions {
		t := state.Tiles.EnsureDefault(p, "FLOOR", []tile.Trait{tile.TraitWalkable})
		tile.ApplyEffect(t, "FIRE", -1, 1, "")
	}
	return &state, nil
}

// LoadFromFile reads and migrates a save file.
func LoadFromFile(filepath string) (*actorstate.GameState, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

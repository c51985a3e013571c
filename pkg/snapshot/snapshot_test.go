package snapshot

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/tile"
)

func sampleState() *actorstate.GameState {
	state := &actorstate.GameState{
		Floor:      2,
		TurnNumber: 5,
		RNGSeed:    "snapshot-seed",
		Player:     &actorstate.Actor{ID: "player", HP: 7, MaxHP: 10, Position: hexgrid.New(1, 1)},
		Tiles:      tile.NewStore(),
	}
	state.Tiles.EnsureDefault(hexgrid.New(1, 1), "FLOOR", []tile.Trait{tile.TraitWalkable})
	return state
}

// Invariant 8 — idempotent load: load(save(state)) reproduces the same data.
func TestExportLoadRoundTrip(t *testing.T) {
	state := sampleState()
	data, err := Export(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Floor != state.Floor || loaded.TurnNumber != state.TurnNumber {
		t.Errorf("expected floor/turn to round-trip, got floor=%d turn=%d", loaded.Floor, loaded.TurnNumber)
	}
	if loaded.Player.HP != state.Player.HP || loaded.Player.Position != state.Player.Position {
		t.Errorf("expected player to round-trip, got %+v", loaded.Player)
	}
}

func TestLoadMigratesLegacyHazardLists(t *testing.T) {
	legacy := struct {
		actorstate.GameState
		LavaPositions []hexgrid.Point `json:"lavaPositions"`
		WallPositions []hexgrid.Point `json:"wallPositions"`
	}{
		GameState: actorstate.GameState{
			Floor:  1,
			Player: &actorstate.Actor{ID: "player", HP: 10, MaxHP: 10, Position: hexgrid.New(0, 0)},
		},
		LavaPositions: []hexgrid.Point{hexgrid.New(3, 0)},
		WallPositions: []hexgrid.Point{hexgrid.New(0, 3)},
	}
	data, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lava := state.Tiles.Get(hexgrid.New(3, 0))
	if lava == nil || lava.BaseID != "LAVA" || !lava.Traits.Has(tile.TraitHazardous) {
		t.Fatalf("expected a migrated LAVA tile with HAZARDOUS, got %+v", lava)
	}
	wall := state.Tiles.Get(hexgrid.New(0, 3))
	if wall == nil || wall.BaseID != "WALL" || !wall.Traits.Has(tile.TraitBlocksMove) {
		t.Fatalf("expected a migrated WALL tile with BLOCKS_MOVEMENT, got %+v", wall)
	}
}

func TestLoadMigrationIsIdempotentWhenTileAlreadyExists(t *testing.T) {
	legacy := struct {
		actorstate.GameState
		LavaPositions []hexgrid.Point `json:"lavaPositions"`
	}{
		GameState: actorstate.GameState{
			Floor:  1,
			Player: &actorstate.Actor{ID: "player", HP: 10, MaxHP: 10},
		},
		LavaPositions: []hexgrid.Point{hexgrid.New(1, 1)},
	}
	// Pre-existing tiles map already has a FLOOR tile at the "lava" hex —
	// migration must not clobber it.
	legacy.GameState.Tiles = tile.NewStore()
	legacy.GameState.Tiles.EnsureDefault(hexgrid.New(1, 1), "FLOOR", []tile.Trait{tile.TraitWalkable})

	data, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tl := state.Tiles.Get(hexgrid.New(1, 1))
	if tl == nil || tl.BaseID != "FLOOR" {
		t.Errorf("expected the pre-existing FLOOR tile to survive migration, got %+v", tl)
	}
}

func TestExportSVGProducesWellFormedOutput(t *testing.T) {
	state := sampleState()
	data, err := ExportSVG(state, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty SVG output")
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("expected output to contain an <svg> root element")
	}
	if !bytes.Contains(data, []byte("</svg>")) {
		t.Error("expected output to be a closed SVG document")
	}
}

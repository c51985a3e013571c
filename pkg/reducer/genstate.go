// Package reducer implements the Action Reducer: the narrow
// external command surface that drives the kernel/initiative cycle, plus
// generate_initial_state. It follows a single-entry-point construction
// shape: one function that threads config and a seed through a fixed
// construction sequence.
package reducer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/content"
	"github.com/dshills/tacsim/pkg/events"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/initiative"
	"github.com/dshills/tacsim/pkg/tile"
)

// Loadout is the external, content-defined starting kit applied on
// APPLY_LOADOUT/START_RUN, YAML-backed following pkg/dungeon.Config's
// struct-tag convention.
type Loadout struct {
	ArchetypeID  string   `yaml:"archetypeId" json:"archetypeId"`
	ActiveSkills []string `yaml:"activeSkills" json:"activeSkills"`
	MaxHP        int      `yaml:"maxHp" json:"maxHp"`
}

// DefaultLoadout is the reference archetype used when no loadout is supplied.
var DefaultLoadout = Loadout{
	ArchetypeID:  "wanderer",
	ActiveSkills: []string{"BASIC_MOVE", "WAIT", "THROW_SPEAR"},
	MaxHP:        10,
}

// RunConfig is the top-level YAML document cmd/tacsim's -config flag loads,
// mirroring pkg/dungeon.Config's seed+parameters shape.
type RunConfig struct {
	Seed    string  `yaml:"seed" json:"seed"`
	Mode    string  `yaml:"mode,omitempty" json:"mode,omitempty"`
	Loadout Loadout `yaml:"loadout" json:"loadout"`
}

// LoadRunConfig reads and parses a YAML RunConfig, defaulting Loadout to
// DefaultLoadout when the document omits it (configuration via
// gopkg.in/yaml.v3).
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reducer: reading run config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("reducer: parsing run config YAML: %w", err)
	}
	if cfg.Loadout.ArchetypeID == "" {
		cfg.Loadout = DefaultLoadout
	}
	if cfg.Seed == "" {
		return nil, fmt.Errorf("reducer: run config missing seed")
	}
	return &cfg, nil
}

// GenerateInitialState builds a fresh GameState for floor, given a seed, an
// optional initial seed, an optional carried-over player, and a loadout.
// preservePlayer, if non-nil, is cloned and clamped/repositioned rather than
// replaced, carrying HP/upgrades/active skills across floors (the
// RESOLVE_PENDING action's STAIRS_TRANSITION branch).
func GenerateInitialState(floor int, seed, initialSeed string, preservePlayer *actorstate.Actor, loadout Loadout, reg *content.Registry) *actorstate.GameState {
	if initialSeed == "" {
		initialSeed = seed
	}

	state := &actorstate.GameState{
		Floor:       floor,
		RNGSeed:     seed,
		InitialSeed: initialSeed,
		Tiles:       tile.NewStore(),
		GridWidth:   12,
		GridHeight:  12,
		FloorTheme:  "crypt",
		GameStatus:  actorstate.StatusPlaying,
		Events:      events.NewLog(),
	}

	var player *actorstate.Actor
	if preservePlayer != nil {
		player = preservePlayer.Clone()
		if player.HP > player.MaxHP {
			player.HP = player.MaxHP
		}
	} else {
		player = newPlayer(loadout)
	}
	player.Position = hexgrid.New(0, 0)
	player.PreviousPosition = player.Position
	state.Player = player

	stairs := hexgrid.New(4, 0)
	state.StairsPosition = &stairs
	shrine := hexgrid.New(-4, 0)
	state.ShrinePosition = &shrine

	layFloorTiles(state)

	initiative.BuildQueue(state, reg.Combat)
	return state
}

func newPlayer(loadout Loadout) *actorstate.Actor {
	maxHP := loadout.MaxHP
	if maxHP <= 0 {
		maxHP = DefaultLoadout.MaxHP
	}
	skills := loadout.ActiveSkills
	if len(skills) == 0 {
		skills = DefaultLoadout.ActiveSkills
	}
	active := make([]actorstate.ActiveSkill, 0, len(skills))
	for _, id := range skills {
		active = append(active, actorstate.ActiveSkill{ID: id})
	}
	return &actorstate.Actor{
		ID:        "player",
		FactionID: "player",
		Type:      actorstate.ActorPlayer,
		Subtype:   loadout.ArchetypeID,
		HP:        maxHP,
		MaxHP:     maxHP,
		Speed:     5,
		Components: map[string]interface{}{
			"trinity": map[string]interface{}{"might": 0, "mind": 0, "instinct": 0},
		},
		ActiveSkills: active,
	}
}

// layFloorTiles marks a minimal walkable plain with the stairs/shrine hexes
// as FLOOR so process_path always has somewhere to resolve against; content
// packs producing real dungeons would populate Tiles far more richly.
func layFloorTiles(state *actorstate.GameState) {
	if state.StairsPosition != nil {
		state.Tiles.EnsureDefault(*state.StairsPosition, "FLOOR", []tile.Trait{tile.TraitWalkable})
	}
	if state.ShrinePosition != nil {
		state.Tiles.EnsureDefault(*state.ShrinePosition, "FLOOR", []tile.Trait{tile.TraitWalkable})
	}
	state.Tiles.EnsureDefault(state.Player.Position, "FLOOR", []tile.Trait{tile.TraitWalkable})
}

// Package fingerprint implements the canonical state projection used to
// detect divergence between replayed runs: a plain struct marshaled with
// encoding/json, relying on Go's guarantee that struct fields marshal in
// declaration order, rather than hand-rolling key ordering.
package fingerprint

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/hexgrid"
)

// playerProjection is the player slice of the fingerprint.
type playerProjection struct {
	HP       int             `json:"hp"`
	MaxHP    int             `json:"max_hp"`
	Position hexgrid.Point   `json:"position"`
	Upgrades []string        `json:"upgrades"`
}

// enemyProjection is one entry of the fingerprint's enemies array, sorted by
// id so the projection never depends on roster iteration order.
type enemyProjection struct {
	ID       string        `json:"id"`
	Subtype  string        `json:"subtype,omitempty"`
	HP       int           `json:"hp"`
	Position hexgrid.Point `json:"position"`
}

// projection is the full canonical shape. Field order here IS the emitted
// key order; do not reorder without treating it as a breaking change to
// every stored golden fingerprint.
type projection struct {
	Player     playerProjection  `json:"player"`
	Enemies    []enemyProjection `json:"enemies"`
	Floor      int               `json:"floor"`
	TurnNumber int               `json:"turn_number"`
	Kills      int               `json:"kills"`
	RNGCounter uint64            `json:"rng_counter"`
}

// FromState projects state into its canonical JSON fingerprint string.
// Per, this intentionally omits pending_status/pending_frames:
// two states differing only by a pending frame fingerprint identically.
// This is a preserved source quirk, not an oversight.
func FromState(state *actorstate.GameState) (string, error) {
	p := projection{
		Floor:      state.Floor,
		TurnNumber: state.TurnNumber,
		Kills:      state.Kills,
		RNGCounter: state.RNGCounter,
	}
	if state.Player != nil {
		upgrades := make([]string, 0, len(state.Upgrades))
		for _, u := range state.Upgrades {
			upgrades = append(upgrades, u.ID)
		}
		p.Player = playerProjection{
			HP:       state.Player.HP,
			MaxHP:    state.Player.MaxHP,
			Position: state.Player.Position,
			Upgrades: upgrades,
		}
	}

	enemies := make([]enemyProjection, 0, len(state.Enemies))
	for _, e := range state.Enemies {
		enemies = append(enemies, enemyProjection{ID: e.ID, Subtype: e.Subtype, HP: e.HP, Position: e.Position})
	}
	sort.Slice(enemies, func(i, j int) bool { return enemies[i].ID < enemies[j].ID })
	p.Enemies = enemies

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("fingerprint: marshal projection: %w", err)
	}
	return string(data), nil
}

package content

import (
	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/hexgrid"
)

// ToyAI implements facade.AIFacade with a minimal deterministic policy: step
// one hex toward the player along the shortest axial direction, or attack if
// already adjacent. Full AI policy implementations are out of scope for the
// core engine, but a reference implementation is needed to drive
// process_next_turn in tests/examples.
type ToyAI struct{}

// PlanEffects satisfies facade.AIFacade.
func (ToyAI) PlanEffects(state *actorstate.GameState, enemy *actorstate.Actor, turnStartPosition hexgrid.Point) ([]effect.Effect, []string, error) {
	if state.Player == nil || state.Player.IsDead() {
		return nil, nil, nil
	}
	dist := hexgrid.Distance(enemy.Position, state.Player.Position)
	if dist <= 1 {
		return []effect.Effect{effect.Damage{
			Target:      state.Player.ID,
			Amount:      2,
			Source:      enemy.ID,
			DamageClass: effect.DamagePhysical,
			ScoreEvent:  "enemy_melee",
		}}, []string{enemy.ID + " attacks"}, nil
	}

	dir := bestDirectionToward(enemy.Position, state.Player.Position)
	if dir < 0 {
		return nil, nil, nil
	}
	dest := hexgrid.Add(enemy.Position, hexgrid.DirectionVector(dir))
	return []effect.Effect{effect.Displacement{
		Target:       enemy.ID,
		Source:       enemy.ID,
		Destination:  dest,
		SimulatePath: true,
	}}, nil, nil
}

// bestDirectionToward picks the direction index whose step minimizes
// distance to target, breaking ties by the lowest index for determinism.
func bestDirectionToward(from, target hexgrid.Point) int {
	best := -1
	bestDist := -1
	for i := 0; i < 6; i++ {
		step := hexgrid.Add(from, hexgrid.DirectionVector(i))
		d := hexgrid.Distance(step, target)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

package kernel

import (
	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/events"
)

// checkVitals scans all actors and, for each with hp<=0, removes it from
// its live roster, appends it to Dying, installs a CORPSE trait at its
// tile, and emits the death timeline/simulation events. The
// sweep itself runs back through applyOne so the stack trace keeps
// counting, and it repeats until a pass finds nothing new to kill (a single
// death can itself, via follow-up effects already applied earlier in the
// same resolver pass, never resurrect another actor — but staying
// iteration-safe here costs nothing and matches "this sweep itself runs
// through the stack resolver").
func (r *Resolver) checkVitals(state *actorstate.GameState, ctx Context) {
	for {
		killedAny := false
		for _, a := range append(append([]*actorstate.Actor{}, state.Enemies...), state.Companions...) {
			if !a.IsDead() {
				continue
			}
			if isDying(state, a.ID) {
				continue
			}
			r.killActor(state, a, ctx)
			killedAny = true
		}
		if state.Player != nil && state.Player.IsDead() {
			if !isDying(state, state.Player.ID) {
				r.killActor(state, state.Player, ctx)
				state.GameStatus = actorstate.StatusLost
				killedAny = true
			}
		}
		if !killedAny {
			return
		}
	}
}

func isDying(state *actorstate.GameState, id string) bool {
	for _, d := range state.Dying {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (r *Resolver) killActor(state *actorstate.GameState, a *actorstate.Actor, ctx Context) {
	state.Dying = append(state.Dying, a)
	removeFromRoster(state, a.ID)

	r.applyOne(state, effect.SpawnCorpse{Position: a.Position}, ctx)

	state.Events.Emit(ctx.StepID, events.PhaseDeathResolve, a.ID, map[string]interface{}{"actorId": a.ID})
	state.Events.EmitSim("DeathResolved", map[string]interface{}{"actorId": a.ID})

	if a.Type == actorstate.ActorEnemy {
		state.Kills++
	}
}

func removeFromRoster(state *actorstate.GameState, id string) {
	filtered := state.Enemies[:0]
	for _, e := range state.Enemies {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	state.Enemies = filtered

	filteredC := state.Companions[:0]
	for _, c := range state.Companions {
		if c.ID != id {
			filteredC = append(filteredC, c)
		}
	}
	state.Companions = filteredC
}


package kernel

import (
	"fmt"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/events"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/tile"
)

func init() {
	register(effect.KindDisplacement, handleDisplacement)
}

func handleDisplacement(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	d := e.(effect.Displacement)
	targetID := resolveID(ctx, d.Target)
	actor := state.FindActor(targetID)
	if actor == nil {
		state.Events.Warn(ctx.StepID, fmt.Sprintf("Displacement: unknown target %q", targetID))
		return nil
	}

	state.Events.Emit(ctx.StepID, events.PhaseMoveStart, actor.ID, map[string]interface{}{"from": actor.Position})

	var follow []effect.Effect
	var passEffects []effect.Effect
	var entryEffects []effect.Effect
	hadPass := false
	hadEntry := false
	origin := actor.Position

	simulate := d.SimulatePath || len(d.Path) > 0 || d.IsFling
	if !simulate {
		// Teleport: previous_position is NOT updated.
		actor.Position = d.Destination
	} else {
		path := d.Path
		if len(path) == 0 {
			path = hexgrid.Line(origin, d.Destination)
			if len(path) > 0 && path[0].Equals(origin) {
				path = path[1:]
			}
		}
		// Rebuild occupancy immediately before walking the path so it
		// reflects any displacement already committed earlier in this
		// effect-resolution pass.
		r.Tiles.Occupancy = r.BuildOccupancyMask(state)
		opts := PathOpts{IgnoreActors: d.IgnoreCollision, IgnoreGroundHazards: d.IgnoreGroundHazards}
		pr := r.Tiles.ProcessPath(actor, path, state, len(path), opts)
		passEffects = pr.Effects
		hadPass = pr.HadPassEffects

		moved := !pr.LastValidPos.Equals(origin)
		actor.PreviousPosition = origin
		actor.Position = pr.LastValidPos

		if moved && !pr.Interrupt {
			finalTile := state.Tiles.Get(pr.LastValidPos)
			entryEffects, _ = r.Tiles.ProcessEntry(actor, finalTile, d.IgnoreGroundHazards)
			hadEntry = len(entryEffects) > 0

			if finalTile != nil && finalTile.Traits.Has(tile.TraitSlippery) && pr.NewMomentum > 0 {
				prev := origin
				if len(path) >= 2 {
					prev = path[len(path)-2]
				}
				newPos, slideEffects, _ := r.Tiles.SlideExtension(actor, state, prev, pr.LastValidPos, pr.NewMomentum)
				if !newPos.Equals(pr.LastValidPos) {
					actor.Position = newPos
				}
				entryEffects = append(entryEffects, slideEffects...)
			}
		}
	}

	// Timeline phases are emitted in their required non-decreasing order:
	// MOVE_END before ON_PASS before ON_ENTER, even though the underlying
	// path/entry effects were computed earlier. HAZARD_CHECK is left to the
	// hazard-reason Damage handler, the sole emitter for that phase, so it
	// never fires twice for one hazardous entry.
	state.Events.Emit(ctx.StepID, events.PhaseMoveEnd, actor.ID, map[string]interface{}{"to": actor.Position})
	state.Events.EmitSim("UnitMoved", map[string]interface{}{"actorId": actor.ID, "to": actor.Position})

	if hadPass {
		state.Events.Emit(ctx.StepID, events.PhaseOnPass, actor.ID, nil)
	}
	follow = append(follow, passEffects...)

	if hadEntry {
		state.Events.Emit(ctx.StepID, events.PhaseOnEnter, actor.ID, nil)
	}
	follow = append(follow, entryEffects...)

	return follow
}

package content

import (
	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
)

// StatusHooks implements facade.StatusHookFacade for the reference status
// kinds the engine ships with: a fire damage-over-time tick and a bomb that
// detonates when its countdown reaches the tick it's removed on. "stunned"
// and "marked_predator" are pure flags read elsewhere (damage scaling,
// turn-skip resolution) and have no on_tick behavior of their own.
type StatusHooks struct{}

// OnTick satisfies facade.StatusHookFacade.
func (StatusHooks) OnTick(state *actorstate.GameState, actor *actorstate.Actor, statusKind string, window actorstate.TickWindow) []effect.Effect {
	switch statusKind {
	case "burning":
		if window != actorstate.TickEndOfTurn {
			return nil
		}
		return []effect.Effect{effect.Damage{Target: actor.ID, Amount: 1, Reason: "hazard_fire_tick"}}
	case "time_bomb":
		if window != actorstate.TickEndOfTurn {
			return nil
		}
		if s, ok := actor.Status("time_bomb"); ok && s.Duration <= 1 {
			return []effect.Effect{
				effect.Damage{Target: actor.ID, Amount: actor.MaxHP, Reason: "hazard_generic"},
				effect.Impact{Target: actor.ID, Damage: 3},
			}
		}
		return nil
	default:
		return nil
	}
}

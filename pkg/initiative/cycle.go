package initiative

import (
	"fmt"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/facade"
	"github.com/dshills/tacsim/pkg/kernel"
	"github.com/dshills/tacsim/pkg/tacrng"
	"github.com/dshills/tacsim/pkg/tile"
)

// Cycle bundles the resolver and the facades the turn cycle drives through:
// AI for enemy planning, status hooks for tick dispatch, upgrades for the
// shrine offer/apply step.
type Cycle struct {
	Resolver    *kernel.Resolver
	AI          facade.AIFacade
	StatusHooks facade.StatusHookFacade
	Upgrades    facade.UpgradeFacade
	// MaxFloor is the floor at which reaching the stairs wins the run.
	MaxFloor int
}

// NewCycle builds a Cycle with MaxFloor defaulted to 10.
func NewCycle(r *kernel.Resolver, ai facade.AIFacade, hooks facade.StatusHookFacade, upgrades facade.UpgradeFacade) *Cycle {
	return &Cycle{Resolver: r, AI: ai, StatusHooks: hooks, Upgrades: upgrades, MaxFloor: 10}
}

// Blocked reports the pending-frame/pending-status turn-stack guard.
func Blocked(state *actorstate.GameState) bool {
	return len(state.PendingFrames) > 0 || state.PendingStatus != nil
}

// ProcessNextTurn advances the queue once, yields to the external driver
// at the player's window, and otherwise fully resolves one enemy turn
// before returning.
func (c *Cycle) ProcessNextTurn(state *actorstate.GameState) (*actorstate.GameState, []string) {
	if Blocked(state) {
		return state, nil
	}

	actorID, ok := Advance(state.InitiativeQueue)
	if !ok {
		return state, nil
	}

	actor := state.FindActor(actorID)
	if actor == nil {
		// Orphaned initiative entry: log and skip past it.
		state.Events.Warn("", fmt.Sprintf("initiative entry %q has no matching actor, skipping", actorID))
		EndActorTurn(state, actorID)
		return c.ProcessNextTurn(state)
	}

	if actor.Type == actorstate.ActorPlayer {
		StartActorTurn(state, actorID)
		return state, nil
	}

	return c.resolveEnemyTurn(state, actor)
}

func (c *Cycle) resolveEnemyTurn(state *actorstate.GameState, enemy *actorstate.Actor) (*actorstate.GameState, []string) {
	var messages []string
	StartActorTurn(state, enemy.ID)
	turnStart := enemy.Position
	ctx := kernel.Context{SourceID: enemy.ID, StepID: enemy.ID + "-turn"}

	state = c.dispatchStatusWindow(state, enemy.ID, actorstate.TickStartOfTurn, ctx)
	enemy = state.FindActor(enemy.ID)
	if enemy == nil || enemy.IsDead() {
		EndActorTurn(state, ctx.SourceID)
		return state, messages
	}

	if t := state.Tiles.Get(enemy.Position); t != nil {
		fireEffects, fireMessages := c.Resolver.Tiles.ProcessStay(enemy, t)
		messages = append(messages, fireMessages...)
		if len(fireEffects) > 0 {
			state = c.Resolver.ApplyEffects(state, fireEffects, ctx)
		}
	}
	enemy = state.FindActor(enemy.ID)
	if enemy == nil || enemy.IsDead() {
		EndActorTurn(state, ctx.SourceID)
		return state, messages
	}

	if _, stunned := enemy.Status("stunned"); stunned {
		messages = append(messages, fmt.Sprintf("%s is stunned and skips its turn", enemy.ID))
		state.Messages = append(state.Messages, actorstate.Message{Tag: "INFO|AI", Text: messages[len(messages)-1]})
	} else if c.AI != nil {
		effects, aiMessages, err := c.AI.PlanEffects(state, enemy, turnStart)
		messages = append(messages, aiMessages...)
		if err != nil {
			state.Events.Warn(ctx.StepID, fmt.Sprintf("AI planning failed for %s: %v", enemy.ID, err))
		} else if len(effects) > 0 {
			state = c.Resolver.ApplyEffects(state, effects, ctx)
		}
	}

	enemy = state.FindActor(enemy.ID)
	if enemy == nil {
		EndActorTurn(state, ctx.SourceID)
		return state, messages
	}

	state = c.dispatchStatusWindow(state, enemy.ID, actorstate.TickEndOfTurn, ctx)
	state = decrementStatuses(state, enemy.ID, actorstate.TickEndOfTurn)
	EndActorTurn(state, enemy.ID)
	return state, messages
}

// dispatchStatusWindow aggregates every status hook matching window into a
// single resolver call with the actor as source.
func (c *Cycle) dispatchStatusWindow(state *actorstate.GameState, actorID string, window actorstate.TickWindow, ctx kernel.Context) *actorstate.GameState {
	if c.StatusHooks == nil {
		return state
	}
	actor := state.FindActor(actorID)
	if actor == nil {
		return state
	}
	var effects []effect.Effect
	for _, s := range actor.StatusEffects {
		if s.TickWindow != window {
			continue
		}
		effects = append(effects, c.StatusHooks.OnTick(state, actor, s.Kind, window)...)
	}
	if len(effects) == 0 {
		return state
	}
	return c.Resolver.ApplyEffects(state, effects, ctx)
}

// decrementStatuses reduces duration by 1 for every status on actorID whose
// tick_window matches, removing those that reach 0.
func decrementStatuses(state *actorstate.GameState, actorID string, window actorstate.TickWindow) *actorstate.GameState {
	actor := state.FindActor(actorID)
	if actor == nil {
		return state
	}
	kept := actor.StatusEffects[:0]
	for _, s := range actor.StatusEffects {
		if s.TickWindow == window {
			s.Duration--
			if s.Duration <= 0 {
				continue
			}
		}
		kept = append(kept, s)
	}
	actor.StatusEffects = kept
	return state
}

// ApplyPlayerEndOfTurnRules implements's
// apply_player_end_of_turn_rules: pickups, tile tick, turn/turns_spent
// increment, trap cooldown decay, shrine/stairs pending-frame installation.
func (c *Cycle) ApplyPlayerEndOfTurnRules(state *actorstate.GameState) *actorstate.GameState {
	player := state.Player
	if player == nil {
		return state
	}
	ctx := kernel.Context{SourceID: player.ID, StepID: "end-of-turn-" + player.ID}

	var pickups []effect.Effect
	if state.SpearPosition != nil && player.Position.Equals(*state.SpearPosition) {
		pickups = append(pickups, effect.PickupSpear{Position: player.Position})
	}
	if state.ShieldPosition != nil && player.Position.Equals(*state.ShieldPosition) {
		pickups = append(pickups, effect.PickupShield{Position: player.Position})
	}
	if len(pickups) > 0 {
		state = c.Resolver.ApplyEffects(state, pickups, ctx)
		player = state.Player
	}

	if t := state.Tiles.Get(player.Position); t != nil {
		stayEffects, _ := c.Resolver.Tiles.ProcessStay(player, t)
		if len(stayEffects) > 0 {
			state = c.Resolver.ApplyEffects(state, stayEffects, ctx)
			player = state.Player
		}
	}
	decayTileEffects(state)

	state.TurnNumber++
	state.TurnsSpent++
	for i := range state.Traps {
		if state.Traps[i].Cooldown > 0 {
			state.Traps[i].Cooldown--
		}
	}

	if player == nil || player.IsDead() {
		return state
	}

	if state.ShrinePosition != nil && player.Position.Equals(*state.ShrinePosition) {
		return c.openShrine(state)
	}
	if state.StairsPosition != nil && player.Position.Equals(*state.StairsPosition) {
		return c.openStairs(state)
	}
	return state
}

// decayTileEffects runs the once-per-full-round tile effect decay across
// every tile.
func decayTileEffects(state *actorstate.GameState) {
	for _, t := range state.Tiles {
		expired := tile.DecayEffects(t)
		for _, id := range expired {
			state.Messages = append(state.Messages, actorstate.Message{
				Tag:  "INFO|SYSTEM",
				Text: fmt.Sprintf("%s expires at %s", id, t.Position),
			})
		}
	}
}

func (c *Cycle) openShrine(state *actorstate.GameState) *actorstate.GameState {
	if c.Upgrades == nil {
		return state
	}
	eligible := c.Upgrades.EligibleUpgrades(state)
	picked := pickDistinct(state, eligible, 3)
	state.PendingStatus = &actorstate.PendingFrame{
		ID:       "shrine-" + state.Player.ID,
		Type:     actorstate.FrameShrineChoice,
		Status:   actorstate.StatusChoosingUpgrade,
		Blocking: true,
		Payload:  map[string]interface{}{"shrineOptions": picked},
	}
	state.GameStatus = actorstate.StatusChoosingUpgrade
	return state
}

// pickDistinct draws up to n distinct values from pool via consume_random,
// advancing state.RNGCounter by exactly the number of picks made.
func pickDistinct(state *actorstate.GameState, pool []string, n int) []string {
	remaining := append([]string{}, pool...)
	var picked []string
	for len(picked) < n && len(remaining) > 0 {
		v, next := tacrng.ConsumeRandom(state.RNGSeed, state.RNGCounter)
		state.RNGCounter = next
		idx := int(v * float64(len(remaining)))
		if idx >= len(remaining) {
			idx = len(remaining) - 1
		}
		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return picked
}

func (c *Cycle) openStairs(state *actorstate.GameState) *actorstate.GameState {
	if state.Floor >= c.MaxFloor {
		state.CompletedRun = &actorstate.RunSummary{Floor: state.Floor, Kills: state.Kills, TurnsSpent: state.TurnsSpent}
		state.PendingFrames = append(state.PendingFrames, actorstate.PendingFrame{
			ID:       "run-won",
			Type:     actorstate.FrameRunWon,
			Status:   actorstate.StatusWon,
			Blocking: true,
		})
		state.GameStatus = actorstate.StatusWon
		return state
	}
	state.PendingFrames = append(state.PendingFrames, actorstate.PendingFrame{
		ID:       "stairs-transition",
		Type:     actorstate.FrameStairsTransition,
		Status:   actorstate.StatusPlaying,
		Blocking: true,
	})
	return state
}

// ResolveEnemyActions repeatedly calls ProcessNextTurn until the player's
// window opens or a pending frame blocks further advancement.
func (c *Cycle) ResolveEnemyActions(state *actorstate.GameState) (*actorstate.GameState, []string) {
	var messages []string
	for {
		if Blocked(state) {
			return state, messages
		}
		q := state.InitiativeQueue
		if q == nil || len(q.Entries) == 0 {
			return state, messages
		}
		var turnMessages []string
		state, turnMessages = c.ProcessNextTurn(state)
		messages = append(messages, turnMessages...)

		q = state.InitiativeQueue
		if q != nil && len(q.Entries) > 0 {
			if cur := state.FindActor(q.Entries[q.CurrentIndex].ActorID); cur != nil && cur.Type == actorstate.ActorPlayer {
				return state, messages
			}
		}
	}
}

package kernel

import (
	"sort"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/tile"
)

func init() {
	register(effect.KindSpawnActor, handleSpawnActor)
	register(effect.KindSpawnItem, handleSpawnItem)
	register(effect.KindPickupSpear, handlePickupSpear)
	register(effect.KindPickupShield, handlePickupShield)
	register(effect.KindPlaceFire, handlePlaceFire)
	register(effect.KindPlaceTrap, handlePlaceTrap)
	register(effect.KindRemoveTrap, handleRemoveTrap)
	register(effect.KindSetTrapCooldown, handleSetTrapCooldown)
}

func handleSpawnActor(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	sp := e.(effect.SpawnActor)
	spawnActorFromPayload(r, state, sp.Actor)
	return nil
}

// spawnActorFromPayload builds, rosters, and queues a new actor from a
// SpawnActor payload, returning the committed actor so callers (e.g. the
// bomb branch of SpawnItem) can address it in a same-pass follow-up effect.
func spawnActorFromPayload(r *Resolver, state *actorstate.GameState, p effect.SpawnActorPayload) *actorstate.Actor {
	a := &actorstate.Actor{
		ID:               p.ID,
		FactionID:        p.FactionID,
		Type:             actorstate.ActorEnemy,
		Subtype:          p.Subtype,
		Position:         p.Position,
		PreviousPosition: p.Position,
		HP:               p.HP,
		MaxHP:            p.MaxHP,
		Speed:            p.Speed,
		CompanionOf:      p.CompanionOf,
		Components:       map[string]interface{}{},
	}
	if a.ID == "" {
		a.ID = tacrngStableID(state)
	}
	ensureTrinityComponent(a)

	if a.CompanionOf != "" {
		state.Companions = append(state.Companions, a)
	} else {
		state.Enemies = append(state.Enemies, a)
	}

	insertIntoQueue(state, a, r)
	return a
}

// ensureTrinityComponent installs the default trinity stat block if the
// spawning content didn't set one ( SpawnActor).
func ensureTrinityComponent(a *actorstate.Actor) {
	if _, ok := a.Components["trinity"]; ok {
		return
	}
	a.Components["trinity"] = map[string]interface{}{"might": 0, "mind": 0, "instinct": 0}
}

// tacrngStableID is a fallback id generator for actors spawned without an
// explicit id; handlers never draw RNG themselves ( keeps the
// counter advance under the reducer's control), so this derives a name from
// already-committed state rather than consuming a random draw.
func tacrngStableID(state *actorstate.GameState) string {
	n := len(state.Enemies) + len(state.Companions) + 1
	return "spawned-" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// insertIntoQueue adds a into the initiative queue preserving the descending
// initiative / ascending actor_id sort order without requiring
// a full rebuild.
func insertIntoQueue(state *actorstate.GameState, a *actorstate.Actor, r *Resolver) {
	if state.InitiativeQueue == nil {
		return
	}
	initiative := a.Speed
	if r.Combat != nil {
		initiative += r.Combat.InstinctBonus(a)
	}
	entry := actorstate.InitiativeEntry{ActorID: a.ID, Initiative: initiative, TurnStartPosition: a.Position}
	q := state.InitiativeQueue
	idx := sort.Search(len(q.Entries), func(i int) bool {
		if q.Entries[i].Initiative != initiative {
			return q.Entries[i].Initiative < initiative
		}
		return q.Entries[i].ActorID > a.ID
	})
	q.Entries = append(q.Entries, actorstate.InitiativeEntry{})
	copy(q.Entries[idx+1:], q.Entries[idx:])
	q.Entries[idx] = entry
	if idx <= q.CurrentIndex {
		q.CurrentIndex++
	}
}

func handleSpawnItem(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	si := e.(effect.SpawnItem)
	switch si.ItemType {
	case effect.ItemSpear:
		p := si.Position
		state.SpearPosition = &p
	case effect.ItemShield:
		p := si.Position
		state.ShieldPosition = &p
	case effect.ItemBomb:
		bomb := spawnActorFromPayload(r, state, effect.SpawnActorPayload{
			Subtype:  "time_bomb",
			Position: si.Position,
			HP:       1,
			MaxHP:    1,
			Speed:    10,
		})
		bomb.ActiveSkills = append(bomb.ActiveSkills, actorstate.ActiveSkill{ID: "TIME_BOMB"})
		return []effect.Effect{effect.ApplyStatus{Target: bomb.ID, StatusKind: "time_bomb", Duration: 2}}
	}
	return nil
}

func handlePickupSpear(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	p := e.(effect.PickupSpear)
	if state.HasSpear || state.SpearPosition == nil {
		return nil
	}
	if state.Player == nil || !state.Player.Position.Equals(p.Position) {
		return nil
	}
	state.HasSpear = true
	state.SpearPosition = nil
	return nil
}

func handlePickupShield(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	p := e.(effect.PickupShield)
	if state.HasShield || state.ShieldPosition == nil {
		return nil
	}
	if state.Player == nil || !state.Player.Position.Equals(p.Position) {
		return nil
	}
	state.HasShield = true
	state.ShieldPosition = nil
	return nil
}

func handlePlaceFire(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	pf := e.(effect.PlaceFire)
	t := state.Tiles.EnsureDefault(pf.Position, "FLOOR", append([]tile.Trait{tile.TraitWalkable}, r.Tiles.defaultTraitsFor("FLOOR")...))
	tile.ApplyEffect(t, "FIRE", pf.Duration, hazardPotency(t), ctx.SourceID)
	return nil
}

func handlePlaceTrap(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	pt := e.(effect.PlaceTrap)
	state.Traps = append(state.Traps, actorstate.Trap{
		Position:      pt.Position,
		OwnerID:       pt.OwnerID,
		Cooldown:      pt.ResetCooldown,
		VolatileCore:  pt.VolatileCore,
		ChainReaction: pt.ChainReaction,
	})
	return nil
}

func handleRemoveTrap(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	rt := e.(effect.RemoveTrap)
	filtered := state.Traps[:0]
	for _, t := range state.Traps {
		matchesPos := rt.Position != nil && t.Position.Equals(*rt.Position)
		matchesOwner := rt.OwnerID != "" && t.OwnerID == rt.OwnerID
		if matchesPos || matchesOwner {
			continue
		}
		filtered = append(filtered, t)
	}
	state.Traps = filtered
	return nil
}

func handleSetTrapCooldown(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	sc := e.(effect.SetTrapCooldown)
	for i, t := range state.Traps {
		if !t.Position.Equals(sc.Position) {
			continue
		}
		if sc.OwnerID != "" && t.OwnerID != sc.OwnerID {
			continue
		}
		state.Traps[i].Cooldown = sc.Cooldown
	}
	return nil
}

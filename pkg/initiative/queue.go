// Package initiative implements the turn cycle:
// queue build/advance, actor turn windows, status tick dispatch, and the
// pending-frame gate. It drives pkg/kernel's resolver but never duplicates
// its effect-application logic, following the same orchestration/data split
// as pkg/dungeon (orchestration) and pkg/graph (data) — this package
// orchestrates, pkg/actorstate holds the data, pkg/kernel applies it.
package initiative

import (
	"sort"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/facade"
	"github.com/dshills/tacsim/pkg/hexgrid"
)

// BuildQueue (re)constructs the initiative queue from every live actor in
// state, sorted descending by initiative with ties broken by ascending
// actor_id.
func BuildQueue(state *actorstate.GameState, combat facade.CombatProfileFacade) {
	actors := state.AllActors()
	entries := make([]actorstate.InitiativeEntry, 0, len(actors))
	for _, a := range actors {
		initiative := a.Speed
		if combat != nil {
			initiative += combat.InstinctBonus(a)
		}
		entries = append(entries, actorstate.InitiativeEntry{
			ActorID:           a.ID,
			Initiative:        initiative,
			TurnStartPosition: a.Position,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Initiative != entries[j].Initiative {
			return entries[i].Initiative > entries[j].Initiative
		}
		return entries[i].ActorID < entries[j].ActorID
	})
	state.InitiativeQueue = &actorstate.InitiativeQueue{Entries: entries, CurrentIndex: -1, Round: 1}
}

// Advance moves current_index to the next not-yet-acted entry, rebuilding
// the round (clearing has_acted, incrementing round) when every entry has
// acted. Returns ok=false only for an empty queue.
func Advance(q *actorstate.InitiativeQueue) (actorID string, ok bool) {
	if q == nil || len(q.Entries) == 0 {
		return "", false
	}
	n := len(q.Entries)
	for i := 1; i <= n; i++ {
		idx := (q.CurrentIndex + i) % n
		if !q.Entries[idx].HasActed {
			q.CurrentIndex = idx
			return q.Entries[idx].ActorID, true
		}
	}
	q.Round++
	for i := range q.Entries {
		q.Entries[i].HasActed = false
	}
	q.CurrentIndex = 0
	return q.Entries[0].ActorID, true
}

// StartActorTurn captures turn_start_position and turn_start_neighbor_ids
// for the entry matching actorID.
func StartActorTurn(state *actorstate.GameState, actorID string) {
	entry := findEntry(state.InitiativeQueue, actorID)
	actor := state.FindActor(actorID)
	if entry == nil || actor == nil {
		return
	}
	entry.TurnStartPosition = actor.Position
	entry.TurnStartNeighborIDs = neighborActorIDs(state, actor.Position, actorID)
}

// EndActorTurn marks the entry's has_acted flag and does nothing else.
// End-of-turn status duration decay runs in Cycle.resolveEnemyTurn
// (decrementStatuses); skill cooldowns are not ticked by the turn cycle.
func EndActorTurn(state *actorstate.GameState, actorID string) {
	entry := findEntry(state.InitiativeQueue, actorID)
	if entry != nil {
		entry.HasActed = true
	}
}

func findEntry(q *actorstate.InitiativeQueue, actorID string) *actorstate.InitiativeEntry {
	if q == nil {
		return nil
	}
	for i := range q.Entries {
		if q.Entries[i].ActorID == actorID {
			return &q.Entries[i]
		}
	}
	return nil
}

func neighborActorIDs(state *actorstate.GameState, origin hexgrid.Point, selfID string) []string {
	neighbors := hexgrid.Neighbors(origin)
	var ids []string
	for _, a := range state.AllActors() {
		if a.ID == selfID {
			continue
		}
		for _, n := range neighbors {
			if a.Position.Equals(n) {
				ids = append(ids, a.ID)
				break
			}
		}
	}
	return ids
}

// HasActedAll reports whether every entry in the queue has acted (used by
// tests asserting initiative fairness invariant 7).
func HasActedAll(q *actorstate.InitiativeQueue) bool {
	if q == nil {
		return true
	}
	for _, e := range q.Entries {
		if !e.HasActed {
			return false
		}
	}
	return true
}

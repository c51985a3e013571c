package initiative

import (
	"testing"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/content"
	"github.com/dshills/tacsim/pkg/events"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/kernel"
	"github.com/dshills/tacsim/pkg/tile"
)

func newTestCycle() *Cycle {
	reg := content.Bootstrap()
	r := kernel.NewResolver(reg.Combat, reg.Tiles, 0, 0, 12, 12)
	return NewCycle(r, reg.AI, reg.Status, reg.Upgrades)
}

func newTestGameState() *actorstate.GameState {
	state := &actorstate.GameState{
		Player: &actorstate.Actor{ID: "player", Type: actorstate.ActorPlayer, Position: hexgrid.New(0, 0), HP: 10, MaxHP: 10, Speed: 5},
		Tiles:  tile.NewStore(),
		Events: events.NewLog(),
	}
	state.Tiles.EnsureDefault(hexgrid.New(0, 0), "FLOOR", []tile.Trait{tile.TraitWalkable})
	return state
}

// S6 — Enemy turn skip while stunned: no movement effects emitted, an
// INFO|AI message records the skip, status decrements to 0 and is removed.
func TestScenarioS6StunnedEnemySkipsTurn(t *testing.T) {
	c := newTestCycle()
	state := newTestGameState()
	enemy := &actorstate.Actor{
		ID: "goblin", Type: actorstate.ActorEnemy, Position: hexgrid.New(1, 0), HP: 5, MaxHP: 5, Speed: 3,
		StatusEffects: []actorstate.StatusEffect{{ID: "goblin-stunned", Kind: "stunned", Duration: 1, TickWindow: actorstate.TickEndOfTurn}},
	}
	state.Enemies = append(state.Enemies, enemy)
	state.Tiles.EnsureDefault(enemy.Position, "FLOOR", []tile.Trait{tile.TraitWalkable})
	BuildQueue(state, nil)

	out, _ := c.resolveEnemyTurn(state, enemy)

	moved := out.FindActor("goblin").Position
	if !moved.Equals(enemy.Position) {
		t.Errorf("expected stunned enemy not to move, went from %s to %s", enemy.Position, moved)
	}

	foundSkipMessage := false
	for _, m := range out.Messages {
		if m.Tag == "INFO|AI" {
			foundSkipMessage = true
		}
	}
	if !foundSkipMessage {
		t.Error("expected an INFO|AI message recording the stun skip")
	}

	if _, stillStunned := out.FindActor("goblin").Status("stunned"); stillStunned {
		t.Error("expected the stunned status to be removed once its duration reaches 0")
	}
}

// Initiative ordering: BuildQueue sorts entries by descending initiative,
// breaking ties by ascending actor_id.
func TestBuildQueueOrdersByInitiativeThenActorID(t *testing.T) {
	state := newTestGameState()
	state.Player.Speed = 5
	state.Enemies = append(state.Enemies,
		&actorstate.Actor{ID: "z-slow", Type: actorstate.ActorEnemy, Speed: 2, HP: 1, MaxHP: 1},
		&actorstate.Actor{ID: "a-tied", Type: actorstate.ActorEnemy, Speed: 5, HP: 1, MaxHP: 1},
		&actorstate.Actor{ID: "b-tied", Type: actorstate.ActorEnemy, Speed: 5, HP: 1, MaxHP: 1},
	)
	BuildQueue(state, nil)

	q := state.InitiativeQueue
	if len(q.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(q.Entries))
	}
	// player (speed 5) and a-tied/b-tied (speed 5) are tied; ties break by
	// ascending actor_id, so among the speed-5 trio the order is
	// "a-tied" < "b-tied" < "player".
	order := make([]string, len(q.Entries))
	for i, e := range q.Entries {
		order[i] = e.ActorID
	}
	want := []string{"a-tied", "b-tied", "player", "z-slow"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("entry %d: got %q want %q (full order %v)", i, order[i], w, order)
		}
	}
}

func TestAdvanceMarksHasActedAcrossFullRound(t *testing.T) {
	state := newTestGameState()
	state.Enemies = append(state.Enemies, &actorstate.Actor{ID: "goblin", Type: actorstate.ActorEnemy, Speed: 1, HP: 1, MaxHP: 1})
	BuildQueue(state, nil)
	q := state.InitiativeQueue

	for i := 0; i < len(q.Entries); i++ {
		actorID, ok := Advance(q)
		if !ok {
			t.Fatalf("advance %d: expected ok", i)
		}
		EndActorTurn(state, actorID)
	}

	if !HasActedAll(q) {
		t.Fatal("expected every entry to have acted exactly once after one full round")
	}
	roundBefore := q.Round
	if _, ok := Advance(q); !ok {
		t.Fatal("expected advance to succeed into the next round")
	}
	if q.Round != roundBefore+1 {
		t.Errorf("expected round to increment from %d, got %d", roundBefore, q.Round)
	}
	for _, e := range q.Entries {
		if e.ActorID != state.InitiativeQueue.Entries[q.CurrentIndex].ActorID && e.HasActed {
			t.Errorf("expected has_acted reset at round start, entry %q still marked acted", e.ActorID)
		}
	}
}

// Turn-stack safety: Blocked reports true whenever pending_frames is
// non-empty or pending_status is set.
func TestBlockedReflectsPendingFramesAndStatus(t *testing.T) {
	state := newTestGameState()
	if Blocked(state) {
		t.Fatal("expected a fresh state to be unblocked")
	}
	state.PendingFrames = append(state.PendingFrames, actorstate.PendingFrame{ID: "x"})
	if !Blocked(state) {
		t.Error("expected a non-empty pending_frames to block")
	}
	state.PendingFrames = nil
	state.PendingStatus = &actorstate.PendingFrame{ID: "y"}
	if !Blocked(state) {
		t.Error("expected a set pending_status to block")
	}
}

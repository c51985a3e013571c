package fingerprint

import (
	"testing"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/hexgrid"
)

func baseState() *actorstate.GameState {
	return &actorstate.GameState{
		Floor:      1,
		TurnNumber: 3,
		Kills:      2,
		RNGCounter: 7,
		Player:     &actorstate.Actor{ID: "player", HP: 8, MaxHP: 10, Position: hexgrid.New(1, 1)},
		Enemies: []*actorstate.Actor{
			{ID: "b-goblin", HP: 3, Position: hexgrid.New(2, 0)},
			{ID: "a-goblin", HP: 5, Position: hexgrid.New(0, 2)},
		},
	}
}

// S3 — Fingerprint stability: two independently built states with the same
// data fingerprint identically.
func TestFromStateIsStableAcrossEquivalentStates(t *testing.T) {
	a, err := FromState(baseState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FromState(baseState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical fingerprints for equivalent states, got %q vs %q", a, b)
	}
}

func TestFromStateSortsEnemiesByID(t *testing.T) {
	s := baseState()
	fp, err := FromState(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idxA := indexOf(fp, `"id":"a-goblin"`)
	idxB := indexOf(fp, `"id":"b-goblin"`)
	if idxA == -1 || idxB == -1 {
		t.Fatalf("expected both enemy ids present in %q", fp)
	}
	if idxA > idxB {
		t.Errorf("expected a-goblin to sort before b-goblin in %q", fp)
	}
}

func TestFromStateOmitsPendingFrameFields(t *testing.T) {
	withFrame := baseState()
	withFrame.PendingStatus = &actorstate.PendingFrame{ID: "shrine-player", Type: actorstate.FrameShrineChoice}
	withFrame.PendingFrames = append(withFrame.PendingFrames, actorstate.PendingFrame{ID: "stairs"})

	withoutFrame := baseState()

	fpWith, err := FromState(withFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fpWithout, err := FromState(withoutFrame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fpWith != fpWithout {
		t.Errorf("expected pending_status/pending_frames to be excluded from the projection, got %q vs %q", fpWith, fpWithout)
	}
}

func TestFromStateChangesWhenRNGCounterDiffers(t *testing.T) {
	a := baseState()
	b := baseState()
	b.RNGCounter = a.RNGCounter + 1

	fpA, _ := FromState(a)
	fpB, _ := FromState(b)
	if fpA == fpB {
		t.Error("expected different rng_counter values to change the fingerprint")
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

package tacrng

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRandomFromSeedIsPure(t *testing.T) {
	a := RandomFromSeed("seed-a", 5)
	b := RandomFromSeed("seed-a", 5)
	if a != b {
		t.Errorf("expected identical draws for identical (seed, counter), got %v vs %v", a, b)
	}
}

func TestRandomFromSeedInRange(t *testing.T) {
	for c := uint64(0); c < 200; c++ {
		v := RandomFromSeed("range-check", c)
		if v < 0 || v >= 1 {
			t.Fatalf("counter %d: value %v out of [0,1)", c, v)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := RandomFromSeed("seed-a", 0)
	b := RandomFromSeed("seed-b", 0)
	if a == b {
		t.Error("expected distinct seeds to (almost certainly) diverge at counter 0")
	}
}

func TestConsumeRandomAdvancesByOne(t *testing.T) {
	_, next := ConsumeRandom("timeline-seed", 10)
	if next != 11 {
		t.Errorf("expected counter to advance by exactly 1, got %d -> %d", 10, next)
	}
}

func TestConsumeRandomMatchesRandomFromSeed(t *testing.T) {
	v, _ := ConsumeRandom("timeline-seed", 3)
	want := RandomFromSeed("timeline-seed", 3)
	if v != want {
		t.Errorf("ConsumeRandom value mismatch: got %v want %v", v, want)
	}
}

func TestStableIDFromSeedDeterministic(t *testing.T) {
	a := StableIDFromSeed("seed", 0, 8, "actor_")
	b := StableIDFromSeed("seed", 0, 8, "actor_")
	if a != b {
		t.Errorf("expected deterministic ids, got %q vs %q", a, b)
	}
	if len(a) != len("actor_")+8 {
		t.Errorf("unexpected id length: %q", a)
	}
}

func TestStableIDDrawsMatchesLength(t *testing.T) {
	if got := StableIDDraws(12); got != 12 {
		t.Errorf("expected 12 draws, got %d", got)
	}
	if got := StableIDDraws(0); got != 0 {
		t.Errorf("expected 0 draws for zero length, got %d", got)
	}
}

// TestPropertyRandomFromSeedDeterministic checks the core determinism
// building block: the RNG mix is pure across repeated calls.
func TestPropertyRandomFromSeedDeterministic(t *testing.T) {
	rapid.Check(t, func(tt *rapid.T) {
		seed := rapid.StringOf(rapid.Rune()).Filter(func(s string) bool {
			return len(s) > 0 && len(s) <= 20
		}).Draw(tt, "seed")
		counter := rapid.Uint64Range(0, 1_000_000).Draw(tt, "counter")
		a := RandomFromSeed(seed, counter)
		b := RandomFromSeed(seed, counter)
		if a != b {
			tt.Fatalf("non-deterministic draw for seed=%q counter=%d", seed, counter)
		}
		if a < 0 || a >= 1 {
			tt.Fatalf("draw out of range: %v", a)
		}
	})
}

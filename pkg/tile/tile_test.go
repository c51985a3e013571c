package tile

import (
	"testing"

	"github.com/dshills/tacsim/pkg/hexgrid"
)

func TestTraitSetHasAddRemove(t *testing.T) {
	s := NewTraitSet(TraitWalkable)
	if !s.Has(TraitWalkable) {
		t.Fatal("expected WALKABLE present")
	}
	s.Add(TraitHazardous)
	if !s.Has(TraitHazardous) {
		t.Fatal("expected HAZARDOUS present after Add")
	}
	s.Remove(TraitWalkable)
	if s.Has(TraitWalkable) {
		t.Fatal("expected WALKABLE removed")
	}
}

func TestTraitSetSortedStrings(t *testing.T) {
	s := NewTraitSet(TraitSlippery, TraitAnchor, TraitHazardous)
	got := s.SortedStrings()
	want := []string{"ANCHOR", "HAZARDOUS", "SLIPPERY"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestEnsureDefaultCreatesOnce(t *testing.T) {
	store := NewStore()
	p := hexgrid.New(1, 1)
	a := store.EnsureDefault(p, "FLOOR", []Trait{TraitWalkable})
	b := store.EnsureDefault(p, "LAVA", []Trait{TraitHazardous})
	if a != b {
		t.Error("EnsureDefault should return the existing tile, not overwrite it")
	}
	if b.BaseID != "FLOOR" {
		t.Errorf("expected original base id FLOOR, got %s", b.BaseID)
	}
}

func TestApplyEffectPermanentDuration(t *testing.T) {
	tl := &Tile{Position: hexgrid.New(0, 0), Traits: NewTraitSet()}
	ApplyEffect(tl, "FIRE", -1, 3, "")
	if len(tl.Effects) != 1 || tl.Effects[0].Duration != -1 {
		t.Fatalf("expected one permanent FIRE effect, got %+v", tl.Effects)
	}
}

func TestApplyEffectIsIdempotentPerSource(t *testing.T) {
	tl := &Tile{Position: hexgrid.New(0, 0), Traits: NewTraitSet()}
	ApplyEffect(tl, "FIRE", 3, 1, "caster-1")
	ApplyEffect(tl, "FIRE", 5, 2, "caster-1")
	if len(tl.Effects) != 1 {
		t.Fatalf("expected refresh in place, got %d effects", len(tl.Effects))
	}
	if tl.Effects[0].Duration != 5 || tl.Effects[0].Potency != 2 {
		t.Errorf("expected refreshed duration/potency, got %+v", tl.Effects[0])
	}
}

func TestDecayEffectsRemovesAtZero(t *testing.T) {
	tl := &Tile{Effects: []Effect{{ID: "FIRE", Duration: 1}, {ID: "FROST", Duration: -1}}}
	expired := DecayEffects(tl)
	if len(expired) != 1 || expired[0] != "FIRE" {
		t.Fatalf("expected FIRE to expire, got %v", expired)
	}
	if len(tl.Effects) != 1 || tl.Effects[0].ID != "FROST" {
		t.Fatalf("expected only permanent FROST to remain, got %+v", tl.Effects)
	}
}

func TestStoreCloneIsIndependent(t *testing.T) {
	store := NewStore()
	p := hexgrid.New(2, 2)
	store.EnsureDefault(p, "FLOOR", []Trait{TraitWalkable})

	clone := store.Clone()
	clone[p].Traits.Add(TraitHazardous)

	if store[p].Traits.Has(TraitHazardous) {
		t.Error("mutating the clone's tile traits should not affect the original store")
	}
}

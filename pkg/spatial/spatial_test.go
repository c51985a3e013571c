package spatial

import (
	"testing"

	"github.com/dshills/tacsim/pkg/hexgrid"
)

type fakeOccupant struct{ p hexgrid.Point }

func (f fakeOccupant) Position() hexgrid.Point { return f.p }

func TestSetAndIsOccupied(t *testing.T) {
	m := Create(10, 10, 5, 5)
	p := hexgrid.New(2, 3)
	if m.IsOccupied(p) {
		t.Fatal("expected unoccupied before Set")
	}
	m.Set(p, true)
	if !m.IsOccupied(p) {
		t.Fatal("expected occupied after Set")
	}
	m.Set(p, false)
	if m.IsOccupied(p) {
		t.Fatal("expected unoccupied after clearing")
	}
}

func TestOutOfBoundsIsOccupied(t *testing.T) {
	m := Create(5, 5, 0, 0)
	if !m.IsOccupied(hexgrid.New(100, 100)) {
		t.Error("out-of-bounds cell must read as occupied")
	}
	if !m.IsOccupied(hexgrid.New(-100, -100)) {
		t.Error("out-of-bounds cell must read as occupied")
	}
}

func TestRefreshRecomputesFromScratch(t *testing.T) {
	m := Create(10, 10, 5, 5)
	stale := hexgrid.New(1, 1)
	m.Set(stale, true)

	walls := []hexgrid.Point{hexgrid.New(2, 2)}
	occupants := []Occupant{fakeOccupant{p: hexgrid.New(3, 3)}}
	Refresh(m, walls, occupants)

	if m.IsOccupied(stale) {
		t.Error("refresh should have cleared stale occupancy")
	}
	if !m.IsOccupied(walls[0]) {
		t.Error("refresh should mark wall cells occupied")
	}
	if !m.IsOccupied(hexgrid.New(3, 3)) {
		t.Error("refresh should mark occupant cells occupied")
	}
}

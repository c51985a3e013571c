// Package spatial implements the occupancy index: a row-indexed bitmask over
// the hex grid that answers "is this cell occupied" without a linear scan of
// the actor roster. The layout (one bitmask per row, bit per column) follows
// the row-indexed layer storage used by pkg/carving.Layer.Data (a flat
// row-major array), adapted to a bitset.
package spatial

import "github.com/dshills/tacsim/pkg/hexgrid"

// Mask is a per-row occupancy bitset. Row keys are the hex R coordinate
// shifted to a non-negative index; columns are the hex Q coordinate shifted
// similarly. Both offsets are carried so callers never need to reason about
// negative coordinates directly.
type Mask struct {
	Width   int
	Height  int
	QOffset int
	ROffset int
	rows    []uint64 // rows[r] has bit q set iff (q,r) is occupied; width <= 64
}

// Create allocates an empty mask covering width columns by height rows, with
// the grid's hex-space origin mapped to (qOffset, rOffset).
func Create(width, height, qOffset, rOffset int) *Mask {
	return &Mask{
		Width:   width,
		Height:  height,
		QOffset: qOffset,
		ROffset: rOffset,
		rows:    make([]uint64, height),
	}
}

func (m *Mask) cell(p hexgrid.Point) (row, col int, inBounds bool) {
	row = p.R + m.ROffset
	col = p.Q + m.QOffset
	if row < 0 || row >= m.Height || col < 0 || col >= m.Width || col >= 64 {
		return row, col, false
	}
	return row, col, true
}

// Set marks or clears occupancy at p. Out-of-bounds points are silently
// ignored: callers that need bounds enforcement should check separately.
func (m *Mask) Set(p hexgrid.Point, occupied bool) {
	row, col, ok := m.cell(p)
	if !ok {
		return
	}
	if occupied {
		m.rows[row] |= 1 << uint(col)
	} else {
		m.rows[row] &^= 1 << uint(col)
	}
}

// IsOccupied reports whether p is occupied. Out-of-bounds points are always
// reported occupied, matching so path-walking code treats the
// grid edge as an implicit wall without a separate bounds check.
func (m *Mask) IsOccupied(p hexgrid.Point) bool {
	row, col, ok := m.cell(p)
	if !ok {
		return true
	}
	return m.rows[row]&(1<<uint(col)) != 0
}

// Occupant is anything that holds a fixed hex position and should block
// movement through the tile it stands on.
type Occupant interface {
	Position() hexgrid.Point
}

// Refresh recomputes the mask from scratch given the current wall cells and
// living occupants. It must be called after any committed displacement
// within an effect-resolution pass so subsequent effects in the same pass
// observe current occupancy.
func Refresh(m *Mask, walls []hexgrid.Point, occupants []Occupant) {
	for i := range m.rows {
		m.rows[i] = 0
	}
	for _, w := range walls {
		m.Set(w, true)
	}
	for _, o := range occupants {
		m.Set(o.Position(), true)
	}
}

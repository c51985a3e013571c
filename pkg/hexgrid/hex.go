// Package hexgrid implements cube/axial hex-coordinate primitives: points,
// neighbors, lines, distance and direction lookups. It has no dependencies
// on any other package in this module and is safe to import everywhere.
package hexgrid

import "fmt"

// Point is a cube hex coordinate. The invariant Q+R+S==0 must hold for any
// point that is committed into game state; use Validate to check it.
type Point struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

// New builds a Point from axial coordinates, deriving S = -Q-R.
func New(q, r int) Point {
	return Point{Q: q, R: r, S: -q - r}
}

// String returns a human-readable representation of a Point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.Q, p.R, p.S)
}

// Validate checks the cube-coordinate invariant.
func (p Point) Validate() error {
	if p.Q+p.R+p.S != 0 {
		return fmt.Errorf("hex point %s violates q+r+s=0 invariant", p)
	}
	return nil
}

// Equals reports componentwise equality.
func (p Point) Equals(o Point) bool {
	return p.Q == o.Q && p.R == o.R && p.S == o.S
}

// MarshalText renders p in its String form so it can serve as a JSON map
// key (tile.Store is keyed by Point; encoding/json requires TextMarshaler
// map keys for any non-string/integer key type).
func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the "(q,r,s)" form MarshalText produces.
func (p *Point) UnmarshalText(text []byte) error {
	var q, r, s int
	if _, err := fmt.Sscanf(string(text), "(%d,%d,%d)", &q, &r, &s); err != nil {
		return fmt.Errorf("hexgrid: invalid point text %q: %w", text, err)
	}
	p.Q, p.R, p.S = q, r, s
	return nil
}

// Add returns the componentwise sum of two points.
func Add(a, b Point) Point {
	return Point{Q: a.Q + b.Q, R: a.R + b.R, S: a.S + b.S}
}

// Sub returns the componentwise difference a-b.
func Sub(a, b Point) Point {
	return Point{Q: a.Q - b.Q, R: a.R - b.R, S: a.S - b.S}
}

// Distance returns the hex distance between two points.
func Distance(a, b Point) int {
	d := Sub(a, b)
	return (abs(d.Q) + abs(d.R) + abs(d.S)) / 2
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// directionVectors is the fixed direction order used throughout the kernel:
// 0=E, 1=NE, 2=NW, 3=W, 4=SW, 5=SE in axial terms, expressed as cube deltas.
var directionVectors = [6]Point{
	{Q: 1, R: 0, S: -1},
	{Q: 1, R: -1, S: 0},
	{Q: 0, R: -1, S: 1},
	{Q: -1, R: 0, S: 1},
	{Q: -1, R: 1, S: 0},
	{Q: 0, R: 1, S: -1},
}

// DirectionVector returns the cube delta for a direction index in [0,6).
// It panics for an out-of-range index; callers must only pass indices
// returned by DirectionFromTo or a literal 0..5.
func DirectionVector(idx int) Point {
	if idx < 0 || idx >= len(directionVectors) {
		panic(fmt.Sprintf("hexgrid: direction index %d out of range", idx))
	}
	return directionVectors[idx]
}

// Neighbors returns the six points adjacent to p, in the fixed direction order.
func Neighbors(p Point) [6]Point {
	var out [6]Point
	for i, d := range directionVectors {
		out[i] = Add(p, d)
	}
	return out
}

// DirectionFromTo returns the direction index 0..5 such that a, stepped one
// unit along that direction, lands on b. Returns -1 if a and b are not
// exactly one unit apart along any axial direction (including a==b).
func DirectionFromTo(a, b Point) int {
	delta := Sub(b, a)
	for i, d := range directionVectors {
		if delta.Equals(d) {
			return i
		}
	}
	return -1
}

// Line rasterizes the straight hex line from a to b inclusive using cube
// linear interpolation followed by cube rounding; no epsilon nudge is
// applied, so exact half-integer cases follow the rounding rule.
func Line(a, b Point) []Point {
	n := Distance(a, b)
	if n == 0 {
		return []Point{a}
	}
	out := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, cubeRound(lerp(a, b, t)))
	}
	return out
}

type cubeF struct{ q, r, s float64 }

func lerp(a, b Point, t float64) cubeF {
	return cubeF{
		q: float64(a.Q) + float64(b.Q-a.Q)*t,
		r: float64(a.R) + float64(b.R-a.R)*t,
		s: float64(a.S) + float64(b.S-a.S)*t,
	}
}

func cubeRound(c cubeF) Point {
	rq := roundF(c.q)
	rr := roundF(c.r)
	rs := roundF(c.s)

	qDiff := absF(rq - c.q)
	rDiff := absF(rr - c.r)
	sDiff := absF(rs - c.s)

	switch {
	case qDiff > rDiff && qDiff > sDiff:
		rq = -rr - rs
	case rDiff > sDiff:
		rr = -rq - rs
	default:
		rs = -rq - rr
	}
	return Point{Q: int(rq), R: int(rr), S: int(rs)}
}

func roundF(f float64) float64 {
	if f >= 0 {
		return float64(int(f + 0.5))
	}
	return float64(int(f - 0.5))
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

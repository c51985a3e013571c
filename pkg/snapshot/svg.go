package snapshot

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/tile"
)

// SVGOptions configures the debug visualization export, generalizing a
// room-graph SVGOptions shape to hex cells and actor glyphs.
type SVGOptions struct {
	HexSize    float64
	Margin     int
	ShowLabels bool
	Title      string
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{HexSize: 28, Margin: 60, ShowLabels: true, Title: "tacsim"}
}

// tileColor maps a base tile id to a fill color.
func tileColor(t *tile.Tile) string {
	if t == nil {
		return "#1a1a2e"
	}
	switch t.BaseID {
	case "LAVA":
		return "#c0392b"
	case "WALL":
		return "#34495e"
	case "VOID":
		return "#000000"
	case "SLIPPERY":
		return "#5dade2"
	default:
		if t.HasEffect("FIRE") {
			return "#e67e22"
		}
		return "#2c3e50"
	}
}

// hexToPixel converts axial/cube hex coordinates to a flat-top pixel center.
func hexToPixel(p hexgrid.Point, size float64, cx, cy int) (float64, float64) {
	x := size * 1.5 * float64(p.Q)
	y := size * math.Sqrt(3) * (float64(p.R) + float64(p.Q)/2.0)
	return float64(cx) + x, float64(cy) + y
}

func hexCorners(cx, cy, size float64) ([]int, []int) {
	xs := make([]int, 6)
	ys := make([]int, 6)
	for i := 0; i < 6; i++ {
		angle := math.Pi / 180 * float64(60*i)
		xs[i] = int(cx + size*math.Cos(angle))
		ys[i] = int(cy + size*math.Sin(angle))
	}
	return xs, ys
}

// ExportSVG renders a top-down debug view of state: every known tile, the
// player, enemies, companions, traps, and shrine/stairs markers. It renders
// a room/connector-style SVG graph adapted to hex cells and actor glyphs.
func ExportSVG(state *actorstate.GameState, opts SVGOptions) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("snapshot: state cannot be nil")
	}
	if opts.HexSize <= 0 {
		opts.HexSize = 28
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}

	width := 900
	height := 700
	cx, cy := width/2, height/2

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#0d0d17")

	for _, t := range state.Tiles {
		px, py := hexToPixel(t.Position, opts.HexSize, cx, cy)
		xs, ys := hexCorners(px, py, opts.HexSize*0.95)
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;stroke:#111;stroke-width:1", tileColor(t)))
	}

	if state.ShrinePosition != nil {
		drawMarker(canvas, *state.ShrinePosition, opts, cx, cy, "#f1c40f", "S")
	}
	if state.StairsPosition != nil {
		drawMarker(canvas, *state.StairsPosition, opts, cx, cy, "#9b59b6", ">")
	}

	for _, trap := range state.Traps {
		drawMarker(canvas, trap.Position, opts, cx, cy, "#7f8c8d", "T")
	}

	for _, a := range state.Enemies {
		if !a.IsDead() {
			drawActor(canvas, a, opts, cx, cy, "#e74c3c")
		}
	}
	for _, a := range state.Companions {
		if !a.IsDead() {
			drawActor(canvas, a, opts, cx, cy, "#2ecc71")
		}
	}
	if state.Player != nil && !state.Player.IsDead() {
		drawActor(canvas, state.Player, opts, cx, cy, "#3498db")
	}

	if opts.Title != "" {
		canvas.Text(20, 30, fmt.Sprintf("%s — floor %d, turn %d, seed %s", opts.Title, state.Floor, state.TurnNumber, state.RNGSeed),
			"font-family:monospace;font-size:16px;fill:#ecf0f1")
	}

	canvas.End()
	return buf.Bytes(), nil
}

func drawMarker(canvas *svg.SVG, p hexgrid.Point, opts SVGOptions, cx, cy int, color, label string) {
	px, py := hexToPixel(p, opts.HexSize, cx, cy)
	canvas.Circle(int(px), int(py), int(opts.HexSize*0.3), fmt.Sprintf("fill:%s", color))
	if opts.ShowLabels {
		canvas.Text(int(px)-4, int(py)+4, label, "font-family:monospace;font-size:12px;fill:#111")
	}
}

func drawActor(canvas *svg.SVG, a *actorstate.Actor, opts SVGOptions, cx, cy int, color string) {
	px, py := hexToPixel(a.Position, opts.HexSize, cx, cy)
	canvas.Circle(int(px), int(py), int(opts.HexSize*0.45), fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", color))
	if opts.ShowLabels {
		canvas.Text(int(px)-int(opts.HexSize*0.4), int(py)+int(opts.HexSize*0.7), a.ID, "font-family:monospace;font-size:10px;fill:#ecf0f1")
	}
}

// SaveSVGToFile renders state with default options and writes it to filepath.
func SaveSVGToFile(state *actorstate.GameState, filepath string) error {
	data, err := ExportSVG(state, DefaultSVGOptions())
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

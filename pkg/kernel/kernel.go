// Package kernel implements the Effect Stack Resolver and the Tile/Hazard
// Path Kernel: the only place committed state
// mutation happens. It consumes the external facades declared in
// pkg/facade and never interprets their internals.
//
// The orchestration shape — a small set of stage interfaces driven by one
// entry point that threads a shared RNG/context through each stage — follows
// a DefaultGenerator-style pipeline; here the "stages" are atomic-effect
// handlers dispatched through a kind->handler registry instead of a fixed
// five-step pipeline.
package kernel

import (
	"fmt"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/facade"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/spatial"
	"github.com/dshills/tacsim/pkg/tile"
)

// Context carries the acting/target ids and step id that the "self" /
// "targetActor" sentinels and timeline step grouping resolve against.
type Context struct {
	SourceID string
	TargetID string
	StepID   string
}

// resolveID turns the self/targetActor sentinels into concrete actor ids.
func resolveID(ctx Context, id string) string {
	switch id {
	case effect.TargetSelf:
		return ctx.SourceID
	case effect.TargetActive:
		return ctx.TargetID
	default:
		return id
	}
}

// Resolver applies atomic effects against a GameState. It holds the
// external facades the handlers consult (combat multipliers, tile-kind
// defaults) and the spatial mask dimensions needed to refresh occupancy.
type Resolver struct {
	Combat   facade.CombatProfileFacade
	TileKind facade.TileKindFacade
	Tiles    *TileResolver
	// SpatialQOffset/SpatialROffset/Width/Height size the occupancy mask
	// rebuilt by Displacement; they must match generate_initial_state's grid.
	SpatialQOffset, SpatialROffset, Width, Height int
}

// NewResolver builds a Resolver wired to the given facades.
func NewResolver(combat facade.CombatProfileFacade, tileKind facade.TileKindFacade, qOffset, rOffset, width, height int) *Resolver {
	return &Resolver{
		Combat:         combat,
		TileKind:       tileKind,
		Tiles:          NewTileResolver(),
		SpatialQOffset: qOffset,
		SpatialROffset: rOffset,
		Width:          width,
		Height:         height,
	}
}

// handlerFunc is one atomic-effect handler: it mutates state in place
// (state is always already a private, resolver-owned copy by the time
// handlers run) and may return follow-up effects to resolve before the
// next sibling in the original input list.
type handlerFunc func(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect

var handlers = map[effect.Kind]handlerFunc{}

func register(kind effect.Kind, fn handlerFunc) {
	handlers[kind] = fn
}

// ApplyEffects is the Effect Stack Resolver entry point. It
// clones state once, applies the input effects in order (each one's
// follow-up effects resolving fully, depth-first, before the next sibling —
// equivalent to an explicit LIFO stack seeded by pushing the input list in
// reverse), then runs the post-resolution vitals sweep, and returns the new
// state.
func (r *Resolver) ApplyEffects(state *actorstate.GameState, effects []effect.Effect, ctx Context) *actorstate.GameState {
	next := state.Clone()
	r.applyList(next, effects, ctx)
	r.checkVitals(next, ctx)
	r.refreshOccupancy(next)
	return next
}

// applyList resolves effects in order, recursing fully into each one's
// follow-ups before moving to the next: a recursive-stack model equivalent
// to a single explicit LIFO stack.
func (r *Resolver) applyList(state *actorstate.GameState, effects []effect.Effect, ctx Context) {
	for _, e := range effects {
		r.applyOne(state, e, ctx)
	}
}

func (r *Resolver) applyOne(state *actorstate.GameState, e effect.Effect, ctx Context) {
	state.Events.Tick(describeEffect(e))
	fn, ok := handlers[e.Kind()]
	if !ok {
		state.Events.Warn(ctx.StepID, fmt.Sprintf("unknown effect kind %q dropped", e.Kind()))
		return
	}
	follow := fn(r, state, e, ctx)
	if len(follow) > 0 {
		r.applyList(state, follow, ctx)
	}
}

func describeEffect(e effect.Effect) string {
	return string(e.Kind())
}

// refreshOccupancy rebuilds the spatial mask from the current roster and
// wall tiles so any effect applied within this pass observes up-to-date
// occupancy on its next lookup. Walls are tiles carrying
// BLOCKS_MOVEMENT; the mask itself is not persisted on GameState in this
// slim core (callers that need repeated point-in-time occupancy queries
// build one via BuildOccupancyMask).
func (r *Resolver) refreshOccupancy(state *actorstate.GameState) {
	// Intentionally a no-op placeholder hook: occupancy is computed on
	// demand via BuildOccupancyMask so the resolver never owns a stale
	// mask across reducer calls. Kept as an explicit call site (rather
	// than inlined) so future stages that DO cache a mask on GameState
	// have one obvious place to refresh it.
	_ = state
}

// BuildOccupancyMask constructs a fresh spatial.Mask from state, rebuilding
// it from the current wall cells and live roster so it reflects any
// committed displacement that happened earlier in the current pass.
func (r *Resolver) BuildOccupancyMask(state *actorstate.GameState) *spatial.Mask {
	mask := spatial.Create(r.Width, r.Height, r.SpatialQOffset, r.SpatialROffset)

	var walls []hexgrid.Point
	for p, t := range state.Tiles {
		if t.Traits.Has(tile.TraitBlocksMove) {
			walls = append(walls, p)
		}
	}

	occupants := make([]spatial.Occupant, 0, len(state.AllActors()))
	for _, a := range state.AllActors() {
		if a.IsDead() {
			continue
		}
		occupants = append(occupants, actorOccupant{a})
	}

	spatial.Refresh(mask, walls, occupants)
	return mask
}

// actorOccupant adapts *actorstate.Actor to spatial.Occupant.
type actorOccupant struct{ a *actorstate.Actor }

func (o actorOccupant) Position() hexgrid.Point { return o.a.Position }

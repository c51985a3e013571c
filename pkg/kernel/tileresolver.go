package kernel

import (
	"fmt"
	"strings"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/spatial"
	"github.com/dshills/tacsim/pkg/tile"
)

// HazardReasons is the fixed set of Damage.Reason values that identify
// hazard-sourced damage; hazard damage never receives combat-profile
// multipliers.
var HazardReasons = map[string]struct{}{
	"hazard_lava":        {},
	"hazard_void":        {},
	"hazard_fire_tick":   {},
	"hazard_generic":     {},
}

// IsHazardReason reports whether reason names a hazard-sourced Damage.
func IsHazardReason(reason string) bool {
	_, ok := HazardReasons[reason]
	return ok
}

// FireReasons is the set of Damage.Reason values the ABSORB_FIRE
// interception in the Damage handler checks against.
var FireReasons = map[string]struct{}{
	"hazard_fire_tick": {},
	"fire_bolt":        {},
	"fire_nova":        {},
}

// IsFireReason reports whether reason is fire-sourced damage.
func IsFireReason(reason string) bool {
	_, ok := FireReasons[reason]
	return ok
}

// PathOpts are the flags ProcessPath accepts.
type PathOpts struct {
	IgnoreActors        bool
	IgnoreGroundHazards bool
}

// PathResult is ProcessPath's return value.
type PathResult struct {
	LastValidPos hexgrid.Point
	Effects      []effect.Effect
	Messages     []string
	NewMomentum  int
	Interrupt    bool
	HadPassEffects bool
}

// TransitionResult is process_transition's return value.
type TransitionResult struct {
	Effects   []effect.Effect
	Messages  []string
	Interrupt bool
}

// TileResolver implements the Tile/Hazard Path Kernel.
type TileResolver struct {
	// DefaultTraits looks up a tile kind's default traits ( tile
	// kind registry); nil means "no registry wired", and tiles created on
	// demand then carry only the WALKABLE trait their callers always add.
	DefaultTraits func(baseID string) []tile.Trait

	// Occupancy is the spatial index path-blocking consults. The Resolver
	// rebuilds it from the live state immediately before each Displacement
	// it resolves, so it always reflects any committed move earlier in the
	// same effect-resolution pass. A nil Occupancy means nothing is
	// considered actor-blocked.
	Occupancy *spatial.Mask
}

// NewTileResolver returns a TileResolver with no tile-kind registry wired;
// callers typically set DefaultTraits right after construction.
func NewTileResolver() *TileResolver {
	return &TileResolver{}
}

func (tr *TileResolver) defaultTraitsFor(baseID string) []tile.Trait {
	if tr.DefaultTraits == nil {
		return nil
	}
	return tr.DefaultTraits(baseID)
}

// momentumCost reports how much of the dash/fling momentum budget entering
// t consumes: 0 for SLIPPERY tiles (momentum is preserved), 1 otherwise.
func momentumCost(t *tile.Tile) int {
	if t != nil && t.Traits.Has(tile.TraitSlippery) {
		return 0
	}
	return 1
}

func walkableAndUnblocked(t *tile.Tile) bool {
	if t == nil {
		return true
	}
	if t.Traits.Has(tile.TraitBlocksMove) {
		return false
	}
	return t.Traits.Has(tile.TraitWalkable)
}

// blockedByActor consults the occupancy mask rather than scanning the
// roster; p is always a candidate step ahead of the mover, never the
// mover's own cell, so the mask needs no self-exclusion.
func (tr *TileResolver) blockedByActor(p hexgrid.Point) bool {
	if tr.Occupancy == nil {
		return false
	}
	return tr.Occupancy.IsOccupied(p)
}

// ProcessPath walks path one step at a time from the actor's current
// position, honoring walkability, occupancy, hazards, and momentum.
func (tr *TileResolver) ProcessPath(actor *actorstate.Actor, path []hexgrid.Point, state *actorstate.GameState, momentum int, opts PathOpts) PathResult {
	lastValid := actor.Position
	res := PathResult{LastValidPos: lastValid, NewMomentum: momentum}

	for i, step := range path {
		isFinal := i == len(path)-1
		t := state.Tiles.Get(step)

		if !walkableAndUnblocked(t) {
			res.Interrupt = true
			break
		}
		if !opts.IgnoreActors && tr.blockedByActor(step) {
			res.Interrupt = true
			break
		}

		lastValid = step
		momentum -= momentumCost(t)

		if !isFinal {
			tres := tr.processTransition(actor, t, opts)
			if len(tres.Effects) > 0 {
				res.HadPassEffects = true
			}
			res.Effects = append(res.Effects, tres.Effects...)
			res.Messages = append(res.Messages, tres.Messages...)
			if tres.Interrupt {
				res.Interrupt = true
				break
			}
		}

		if momentum <= 0 {
			break
		}
	}

	res.LastValidPos = lastValid
	res.NewMomentum = momentum
	return res
}

// processTransition applies the on-pass hazard interaction for an
// intermediate step of a path walk. The final rested hex's
// on-enter semantics are handled separately by ProcessEntry, so this never
// fires for the path's last step (callers only invoke it for non-final
// steps) to avoid double-charging a hazard crossed in one motion.
func (tr *TileResolver) processTransition(actor *actorstate.Actor, t *tile.Tile, opts PathOpts) TransitionResult {
	var res TransitionResult
	if t == nil || opts.IgnoreGroundHazards {
		return res
	}
	if !t.Traits.Has(tile.TraitHazardous) {
		return res
	}
	amount := hazardPotency(t)
	res.Effects = append(res.Effects, effect.Damage{Target: actor.ID, Amount: amount, Reason: "hazard_generic"})
	res.Messages = append(res.Messages, fmt.Sprintf("%s is grazed crossing %s", actor.ID, t.BaseID))
	return res
}

// ProcessEntry fires once at the final rested hex for an actor that did not
// interrupt.
func (tr *TileResolver) ProcessEntry(actor *actorstate.Actor, t *tile.Tile, ignoreGroundHazards bool) ([]effect.Effect, []string) {
	if t == nil || ignoreGroundHazards {
		return nil, nil
	}
	switch t.BaseID {
	case "LAVA":
		return []effect.Effect{effect.LavaSink{Target: actor.ID}}, []string{fmt.Sprintf("%s sinks into the lava", actor.ID)}
	case "VOID":
		return []effect.Effect{effect.LavaSink{Target: actor.ID}}, []string{fmt.Sprintf("%s falls into the void", actor.ID)}
	}
	if t.Traits.Has(tile.TraitSlippery) {
		return nil, nil
	}
	if t.Traits.Has(tile.TraitHazardous) {
		amount := hazardPotency(t)
		return []effect.Effect{effect.Damage{Target: actor.ID, Amount: amount, Reason: "hazard_generic"}},
			[]string{fmt.Sprintf("%s is seared entering %s", actor.ID, strings.ToLower(t.BaseID))}
	}
	return nil, nil
}

// ProcessStay fires at end-of-round tile tick for actors standing on t.
func (tr *TileResolver) ProcessStay(actor *actorstate.Actor, t *tile.Tile) ([]effect.Effect, []string) {
	if t == nil {
		return nil, nil
	}
	if t.HasEffect("FIRE") {
		amount := hazardPotency(t)
		return []effect.Effect{effect.Damage{Target: actor.ID, Amount: amount, Reason: "hazard_fire_tick"}},
			[]string{fmt.Sprintf("%s burns standing in fire", actor.ID)}
	}
	return nil, nil
}

// ApplyEffect installs a timed tile effect, creating a default tile at
// position if none exists yet ( PlaceFire).
func (tr *TileResolver) ApplyEffect(store tile.Store, position hexgrid.Point, effectID string, duration, potency int, sourceID string) {
	t := store.EnsureDefault(position, "FLOOR", append([]tile.Trait{tile.TraitWalkable}, tr.defaultTraitsFor("FLOOR")...))
	tile.ApplyEffect(t, effectID, duration, potency, sourceID)
}

// hazardPotency derives a hazard's per-tick/per-entry damage from any FIRE
// tile effect's potency, defaulting to a flat 2 for hazardous ground with
// no explicit effect record (e.g. a HAZARDOUS-tagged base tile kind).
func hazardPotency(t *tile.Tile) int {
	for _, e := range t.Effects {
		if e.ID == "FIRE" && e.Potency > 0 {
			return e.Potency
		}
	}
	return 2
}

// SlideExtension continues stepping in the direction implied by from->to
// after ProcessPath returns with positive momentum, for as long as the
// SLIPPERY extension conditions hold: next hex walkable,
// unoccupied, momentum remaining, no interrupt, and at most 5 extension
// steps.
func (tr *TileResolver) SlideExtension(actor *actorstate.Actor, state *actorstate.GameState, from, to hexgrid.Point, momentum int) (final hexgrid.Point, effects []effect.Effect, messages []string) {
	dir := hexgrid.DirectionFromTo(from, to)
	if dir < 0 {
		return to, nil, nil
	}
	cur := to
	for step := 0; step < 5 && momentum > 0; step++ {
		next := hexgrid.Add(cur, hexgrid.DirectionVector(dir))
		t := state.Tiles.Get(next)
		if !walkableAndUnblocked(t) {
			break
		}
		if tr.blockedByActor(next) {
			break
		}
		momentum -= momentumCost(t)
		tres := tr.processTransition(actor, t, PathOpts{})
		effects = append(effects, tres.Effects...)
		messages = append(messages, tres.Messages...)
		cur = next
		if tres.Interrupt {
			break
		}
	}
	return cur, effects, messages
}

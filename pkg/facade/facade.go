// Package facade declares the narrow external-collaborator interfaces the
// kernel, initiative cycle, and reducer consume and never interpret the
// internals of: the skill registry, the combat-profile calculator, the tile
// kind registry, and the AI/strategy facade. Concrete
// implementations live in pkg/content; this package exists purely so that
// both the consumer (pkg/kernel, pkg/initiative) and the provider
// (pkg/content) can depend on the same interface and payload types without
// either depending on the other.
package facade

import (
	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/tile"
)

// CombatMultiplier is the outgoing/incoming scaling factor for one damage
// computation.
type CombatMultiplier struct {
	Outgoing float64
	Incoming float64
}

// CombatProfileFacade computes combat-profile multipliers and the instinct
// bonus term used by initiative ordering.
type CombatProfileFacade interface {
	CombatMultipliers(actor *actorstate.Actor, class effect.DamageClass) CombatMultiplier
	InstinctBonus(actor *actorstate.Actor) int
	// StatusDuration applies a trinity-derived bonus to a base status
	// duration: compute_status_duration(base, trinity) = base +
	// floor(max(0, mind)/15) ApplyStatus.
	StatusDuration(actor *actorstate.Actor, base int) int
}

// TileKindFacade exposes the read-only tile-kind registry:
// the kernel only ever reads default_traits to instantiate new tiles.
type TileKindFacade interface {
	DefaultTraits(baseID string) []tile.Trait
}

// ExecContext is passed to a skill's Execute call; it names the acting
// actor and (if any) the explicit target the reducer resolved.
type ExecContext struct {
	ActorID        string
	TargetID       string
	ActiveUpgrades []string
	// Destination carries the target hex for movement/point-targeted skills
	// ( MOVE{point}); nil for actor-targeted skills.
	Destination *hexgrid.Point
}

// ExecResult is a skill's output: atomic effects to push onto the resolver,
// plain messages, and whether using it consumes the actor's turn.
type ExecResult struct {
	Effects      []effect.Effect
	Messages     []string
	ConsumesTurn bool
}

// IntentProfile is read-only metadata describing what a skill does, for AI
// planning and UI hinting; the kernel never branches on it.
type IntentProfile struct {
	Tags      []string
	RiskFlags []string
	Estimate  float64
}

// SkillDefinition is the opaque per-skill behavior the content package
// registers.
type SkillDefinition interface {
	Execute(state *actorstate.GameState, actor *actorstate.Actor, target *actorstate.Actor, ctx ExecContext) (ExecResult, error)
	ValidTargets(state *actorstate.GameState, origin hexgrid.Point) []hexgrid.Point
	IntentProfile() IntentProfile
}

// SkillRegistry resolves a skill id to its definition. Get is the single
// unified accessor calls for (replacing the source's mixed
// bracket-access/.get() paths): a miss returns ok=false and callers warn +
// skip rather than panicking.
type SkillRegistry interface {
	Get(skillID string) (SkillDefinition, bool)
}

// AIResult is what resolve_single_enemy_turn returns.
type AIResult struct {
	Messages []string
	IsDead   bool
}

// AIFacade encapsulates enemy planning + dispatch; its internals are out of
// scope for this module. The caller applies the returned effects through the
// kernel resolver, so the facade only needs to decide what effects to push.
type AIFacade interface {
	// PlanEffects returns the effects an enemy's single turn should apply,
	// given the state as of the start of that enemy's turn.
	PlanEffects(state *actorstate.GameState, enemy *actorstate.Actor, turnStartPosition hexgrid.Point) ([]effect.Effect, []string, error)
}

// UpgradeFacade resolves shrine upgrade offerings and their application.
type UpgradeFacade interface {
	EligibleUpgrades(state *actorstate.GameState) []string
	ApplyUpgrade(state *actorstate.GameState, upgradeID string) ([]effect.Effect, error)
}

// StatusHookFacade resolves the optional on_tick behavior named by a status
// kind: "for any status whose tick_window matches, invoke its
// optional on_tick(actor, state) -> effects[]". Content owns what each
// status kind actually does; the kernel/initiative cycle only dispatches by
// name and window.
type StatusHookFacade interface {
	OnTick(state *actorstate.GameState, actor *actorstate.Actor, statusKind string, window actorstate.TickWindow) []effect.Effect
}

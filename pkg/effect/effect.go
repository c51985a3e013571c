// Package effect declares the atomic-effect sum type consumed by the
// resolver in pkg/kernel. It is kept separate from pkg/kernel
// so that content facades (pkg/content) can construct effects from a skill's
// Execute method without importing the resolver itself, and the resolver can
// expose facade interfaces content implements without a dependency cycle.
//
// Each concrete effect type is a plain struct implementing the one-method
// Effect interface: dynamic dispatch over a tagged union. A registry in
// pkg/kernel maps Kind() to a handler function instead of a type switch, so
// unknown/forward-compat effect kinds are simply dropped with a warning.
package effect

// Kind tags a concrete effect type for the resolver's handler registry.
type Kind string

const (
	KindDisplacement         Kind = "Displacement"
	KindDamage               Kind = "Damage"
	KindHeal                 Kind = "Heal"
	KindApplyStatus          Kind = "ApplyStatus"
	KindSpawnActor           Kind = "SpawnActor"
	KindSpawnItem            Kind = "SpawnItem"
	KindPickupSpear          Kind = "PickupSpear"
	KindPickupShield         Kind = "PickupShield"
	KindLavaSink             Kind = "LavaSink"
	KindImpact               Kind = "Impact"
	KindPlaceFire            Kind = "PlaceFire"
	KindPlaceTrap            Kind = "PlaceTrap"
	KindRemoveTrap           Kind = "RemoveTrap"
	KindSetTrapCooldown      Kind = "SetTrapCooldown"
	KindSetStealth           Kind = "SetStealth"
	KindUpdateCompanionState Kind = "UpdateCompanionState"
	KindUpdateComponent      Kind = "UpdateComponent"
	KindModifyCooldown       Kind = "ModifyCooldown"
	KindSpawnCorpse          Kind = "SpawnCorpse"
	KindRemoveCorpse         Kind = "RemoveCorpse"
	KindMessage              Kind = "Message"
	KindJuice                Kind = "Juice"
	KindGameOver             Kind = "GameOver"
)

// Effect is implemented by every atomic effect variant.
type Effect interface {
	Kind() Kind
}

// Sentinel target ids, resolved against the resolve Context.
const (
	TargetSelf   = "self"
	TargetActive = "targetActor"
)


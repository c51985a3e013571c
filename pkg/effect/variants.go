package effect

import "github.com/dshills/tacsim/pkg/hexgrid"

// DamageClass distinguishes physical from magical combat profiles.
type DamageClass string

const (
	DamagePhysical DamageClass = "physical"
	DamageMagical  DamageClass = "magical"
)

// Displacement moves target along path (or teleports if no path is given).
type Displacement struct {
	Target              string
	Source              string
	Destination         hexgrid.Point
	Path                []hexgrid.Point
	SimulatePath        bool
	IsFling             bool
	IgnoreCollision     bool
	IgnoreGroundHazards bool
	AnimationDuration   float64
}

func (Displacement) Kind() Kind { return KindDisplacement }

// Damage deals amount hp of damage to target, subject to combat-profile
// scaling and the fire-reason ABSORB_FIRE interception.
type Damage struct {
	Target      string
	Amount      int
	Reason      string
	ScoreEvent  string
	Source      string
	DamageClass DamageClass
}

func (Damage) Kind() Kind { return KindDamage }

// Heal restores amount hp to target, clamped to max_hp.
type Heal struct {
	Target string
	Amount int
}

func (Heal) Kind() Kind { return KindHeal }

// ApplyStatus appends a status record to target.
type ApplyStatus struct {
	Target     string
	StatusKind string
	Duration   int
	TickWindow string
}

func (ApplyStatus) Kind() Kind { return KindApplyStatus }

// SpawnActorPayload is the serializable shape of a to-be-spawned actor; it
// mirrors actorstate.Actor's public fields the content facade is allowed to
// set without importing the resolver's actor construction helpers.
type SpawnActorPayload struct {
	ID          string
	FactionID   string
	Subtype     string
	Position    hexgrid.Point
	HP          int
	MaxHP       int
	Speed       int
	CompanionOf string
}

// SpawnActor appends a new actor to the roster.
type SpawnActor struct {
	Actor SpawnActorPayload
}

func (SpawnActor) Kind() Kind { return KindSpawnActor }

// ItemType enumerates the SpawnItem variants.
type ItemType string

const (
	ItemSpear  ItemType = "spear"
	ItemShield ItemType = "shield"
	ItemBomb   ItemType = "bomb"
)

// SpawnItem installs a pickup, or for bombs spawns a timed-bomb actor.
type SpawnItem struct {
	ItemType ItemType
	Position hexgrid.Point
}

func (SpawnItem) Kind() Kind { return KindSpawnItem }

// PickupSpear marks the spear as collected if the player stands on it.
type PickupSpear struct {
	Position hexgrid.Point
}

func (PickupSpear) Kind() Kind { return KindPickupSpear }

// PickupShield marks the shield as collected if the player stands on it.
type PickupShield struct {
	Position hexgrid.Point
}

func (PickupShield) Kind() Kind { return KindPickupShield }

// LavaSink is the hazard-death shortcut for lava/void tiles.
type LavaSink struct {
	Target string
}

func (LavaSink) Kind() Kind { return KindLavaSink }

// Impact applies damage plus a directional shake/impact juice signature.
// The Direction field is interpreted as a contact-hex offset rather than
// normalized, preserving an observable quirk from the original output
// fidelity; see DESIGN.md.
type Impact struct {
	Target    string
	Damage    int
	Direction *hexgrid.Point
}

func (Impact) Kind() Kind { return KindImpact }

// PlaceFire installs a FIRE tile effect, creating a default tile if needed.
type PlaceFire struct {
	Position hexgrid.Point
	Duration int
}

func (PlaceFire) Kind() Kind { return KindPlaceFire }

// PlaceTrap appends a trap record.
type PlaceTrap struct {
	Position      hexgrid.Point
	OwnerID       string
	VolatileCore  bool
	ChainReaction bool
	ResetCooldown int
}

func (PlaceTrap) Kind() Kind { return KindPlaceTrap }

// RemoveTrap removes every trap at Position or owned by OwnerID (a trap
// matching either field is removed; a zero-valued field matches nothing).
type RemoveTrap struct {
	Position      *hexgrid.Point
	OwnerID       string
}

func (RemoveTrap) Kind() Kind { return KindRemoveTrap }

// SetTrapCooldown sets the cooldown of traps matching Position (and
// optionally OwnerID).
type SetTrapCooldown struct {
	Position hexgrid.Point
	OwnerID  string
	Cooldown int
}

func (SetTrapCooldown) Kind() Kind { return KindSetTrapCooldown }

// SetStealth sets a stealth-amount component field on target.
type SetStealth struct {
	Target string
	Amount int
}

func (SetStealth) Kind() Kind { return KindSetStealth }

// UpdateCompanionState edits companion-only bookkeeping fields.
type UpdateCompanionState struct {
	Target              string
	Mode                *string
	MarkTarget          *string
	ApexStrikeCooldown  *int
	HealCooldown        *int
}

func (UpdateCompanionState) Kind() Kind { return KindUpdateCompanionState }

// UpdateComponent sets an opaque component field by key.
type UpdateComponent struct {
	Target string
	Key    string
	Value  interface{}
}

func (UpdateComponent) Kind() Kind { return KindUpdateComponent }

// ModifyCooldown adjusts (or sets) a skill's current cooldown.
type ModifyCooldown struct {
	Target   string
	SkillID  string
	Amount   int
	SetExact bool
}

func (ModifyCooldown) Kind() Kind { return KindModifyCooldown }

// SpawnCorpse toggles the CORPSE trait on at a position.
type SpawnCorpse struct {
	Position hexgrid.Point
}

func (SpawnCorpse) Kind() Kind { return KindSpawnCorpse }

// RemoveCorpse toggles the CORPSE trait off and drops the dying record there.
type RemoveCorpse struct {
	Position hexgrid.Point
}

func (RemoveCorpse) Kind() Kind { return KindRemoveCorpse }

// Message appends a tagged message line.
type Message struct {
	Tag  string
	Text string
}

func (Message) Kind() Kind { return KindMessage }

// Juice appends a presentation-only visual hint; it never affects state.
type Juice struct {
	EffectName string
	Params     map[string]interface{}
}

func (Juice) Kind() Kind { return KindJuice }

// GameOver sets game_status to lost.
type GameOver struct{}

func (GameOver) Kind() Kind { return KindGameOver }

// Package actorstate defines the Actor record and the types that compose
// around it (status effects, active skills, pending frames). It follows a
// graph.Room/Connector-style idiom: plain exported-field structs, a
// Validate() method, ids as plain strings resolved by lookup rather than
// pointers, so cyclic links (companion_of, traps<->owners) never need cycle
// management.
package actorstate

import (
	"fmt"

	"github.com/dshills/tacsim/pkg/hexgrid"
)

// ActorType distinguishes player from enemy rosters; Subtype carries
// content-defined flavor (e.g. "goblin", "time_bomb") opaque to the kernel.
type ActorType string

const (
	ActorPlayer ActorType = "player"
	ActorEnemy  ActorType = "enemy"
)

// TickWindow names the turn phase a status effect's hook fires on.
type TickWindow string

const (
	TickStartOfTurn TickWindow = "START_OF_TURN"
	TickEndOfTurn   TickWindow = "END_OF_TURN"
)

// StatusEffect is one entry in an actor's ordered status sequence.
type StatusEffect struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Duration   int        `json:"duration"`
	TickWindow TickWindow `json:"tickWindow"`
}

// ActiveSkill is one entry in an actor's ordered skill loadout.
type ActiveSkill struct {
	ID              string   `json:"id"`
	CurrentCooldown int      `json:"currentCooldown"`
	ActiveUpgrades  []string `json:"activeUpgrades,omitempty"`
}

// Actor is the uniform record for player, enemies, companions, and inert
// objects (bombs, corpses-in-waiting)
type Actor struct {
	ID               string                 `json:"id"`
	FactionID        string                 `json:"factionId"`
	Type             ActorType              `json:"type"`
	Subtype          string                 `json:"subtype,omitempty"`
	Position         hexgrid.Point          `json:"position"`
	PreviousPosition hexgrid.Point          `json:"previousPosition"`
	HP               int                    `json:"hp"`
	MaxHP            int                    `json:"maxHp"`
	Speed            int                    `json:"speed"`
	StatusEffects    []StatusEffect         `json:"statusEffects,omitempty"`
	ActiveSkills     []ActiveSkill          `json:"activeSkills,omitempty"`
	Components       map[string]interface{} `json:"components,omitempty"`
	CompanionOf      string                 `json:"companionOf,omitempty"`
	CompanionState   map[string]interface{} `json:"companionState,omitempty"`
}

// PositionPoint returns the actor's current position.
func (a *Actor) PositionPoint() hexgrid.Point { return a.Position }

// Validate enforces the actor invariants: 0 <= hp <= max_hp.
func (a *Actor) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("actor ID cannot be empty")
	}
	if a.HP < 0 {
		return fmt.Errorf("actor %s: hp cannot be negative, got %d", a.ID, a.HP)
	}
	if a.HP > a.MaxHP {
		return fmt.Errorf("actor %s: hp (%d) cannot exceed max_hp (%d)", a.ID, a.HP, a.MaxHP)
	}
	return nil
}

// IsDead reports whether the actor's hp has reached the death threshold.
func (a *Actor) IsDead() bool { return a.HP <= 0 }

// Clone returns a deep-enough copy for copy-on-write state handoff: new
// slices/maps, shared leaf component values (components are opaque to the
// kernel, so a shallow copy of the map values is acceptable).
func (a *Actor) Clone() *Actor {
	clone := *a
	clone.StatusEffects = append([]StatusEffect{}, a.StatusEffects...)
	clone.ActiveSkills = make([]ActiveSkill, len(a.ActiveSkills))
	for i, s := range a.ActiveSkills {
		clone.ActiveSkills[i] = s
		clone.ActiveSkills[i].ActiveUpgrades = append([]string{}, s.ActiveUpgrades...)
	}
	if a.Components != nil {
		clone.Components = make(map[string]interface{}, len(a.Components))
		for k, v := range a.Components {
			clone.Components[k] = v
		}
	}
	if a.CompanionState != nil {
		clone.CompanionState = make(map[string]interface{}, len(a.CompanionState))
		for k, v := range a.CompanionState {
			clone.CompanionState[k] = v
		}
	}
	return &clone
}

// HasSkill reports whether the actor owns a skill with the given id.
func (a *Actor) HasSkill(skillID string) bool {
	for _, s := range a.ActiveSkills {
		if s.ID == skillID {
			return true
		}
	}
	return false
}

// Status reports whether the actor currently carries a status with the
// given kind, and the effect itself if so.
func (a *Actor) Status(kind string) (StatusEffect, bool) {
	for _, s := range a.StatusEffects {
		if s.Kind == kind {
			return s, true
		}
	}
	return StatusEffect{}, false
}

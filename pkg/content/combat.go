package content

import (
	"math"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/facade"
)

// CombatProfile implements facade.CombatProfileFacade over an actor's
// opaque "trinity" component (might/mind/instinct), following's
// preserved floor/round-to-milli rounding discipline.
type CombatProfile struct{}

func trinityStat(a *actorstate.Actor, key string) int {
	if a == nil || a.Components == nil {
		return 0
	}
	t, ok := a.Components["trinity"].(map[string]interface{})
	if !ok {
		return 0
	}
	switch v := t[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// CombatMultipliers derives outgoing (from might or mind) and incoming (from
// instinct, in the same trinity block) scaling for actor,
// for the given damage class. Physical scales off might, magical off mind;
// both are rounded to the nearest thousandth, matching the source's
// documented float discipline.
func (CombatProfile) CombatMultipliers(actor *actorstate.Actor, class effect.DamageClass) facade.CombatMultiplier {
	if actor == nil {
		return facade.CombatMultiplier{Outgoing: 1, Incoming: 1}
	}
	var offense int
	switch class {
	case effect.DamageMagical:
		offense = trinityStat(actor, "mind")
	default:
		offense = trinityStat(actor, "might")
	}
	outgoing := 1 + float64(offense)*0.01
	incoming := 1 - float64(trinityStat(actor, "instinct"))*0.005
	if incoming < 0.1 {
		incoming = 0.1
	}
	return facade.CombatMultiplier{
		Outgoing: math.Round(outgoing*1000) / 1000,
		Incoming: math.Round(incoming*1000) / 1000,
	}
}

// InstinctBonus feeds initiative ordering.
func (CombatProfile) InstinctBonus(actor *actorstate.Actor) int {
	return trinityStat(actor, "instinct")
}

// StatusDuration implements compute_status_duration(base, trinity) = base +
// floor(max(0, mind)/15) verbatim ( ApplyStatus).
func (CombatProfile) StatusDuration(actor *actorstate.Actor, base int) int {
	mind := trinityStat(actor, "mind")
	if mind < 0 {
		mind = 0
	}
	return base + mind/15
}

package kernel

import (
	"fmt"
	"math"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/events"
)

func init() {
	register(effect.KindDamage, handleDamage)
	register(effect.KindHeal, handleHeal)
	register(effect.KindApplyStatus, handleApplyStatus)
	register(effect.KindImpact, handleImpact)
	register(effect.KindLavaSink, handleLavaSink)
}

// roundToMilli matches the source's documented float discipline for combat
// multipliers: round to the nearest thousandth.
func roundToMilli(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func handleDamage(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	d := e.(effect.Damage)
	targetID := resolveID(ctx, d.Target)
	target := state.FindActor(targetID)
	if target == nil {
		state.Events.Warn(ctx.StepID, fmt.Sprintf("Damage: unknown target %q", targetID))
		return nil
	}

	if IsFireReason(d.Reason) && target.HasSkill("ABSORB_FIRE") {
		return []effect.Effect{effect.Heal{Target: target.ID, Amount: d.Amount}}
	}

	final := d.Amount
	if !IsHazardReason(d.Reason) {
		sourceID := resolveID(ctx, d.Source)
		source := state.FindActor(sourceID)
		outgoing, incoming := 1.0, 1.0
		if r.Combat != nil {
			var mult = r.Combat.CombatMultipliers(source, d.DamageClass)
			outgoing = roundToMilli(mult.Outgoing)
			var incomingMult = r.Combat.CombatMultipliers(target, d.DamageClass)
			incoming = roundToMilli(incomingMult.Incoming)
		}
		scaled := float64(final) * outgoing * incoming
		final = int(math.Floor(scaled))
		if _, marked := target.Status("marked_predator"); marked {
			final++
		}
	}

	if final < 0 {
		final = 0
	}
	target.HP -= final
	if target.HP < 0 {
		target.HP = 0
	}

	if IsHazardReason(d.Reason) {
		state.Events.Emit(ctx.StepID, events.PhaseHazardCheck, target.ID, nil)
	}
	state.Events.Emit(ctx.StepID, events.PhaseDamageApply, target.ID, map[string]interface{}{"amount": final, "reason": d.Reason})
	if final > 0 {
		state.Events.EmitSim("DamageTaken", map[string]interface{}{"actorId": target.ID, "amount": final, "reason": d.Reason})
	}
	if d.ScoreEvent != "" {
		state.Events.EmitSim("CombatScoreEvent", map[string]interface{}{"name": d.ScoreEvent, "final": final})
	}

	return nil
}

func handleHeal(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	h := e.(effect.Heal)
	targetID := resolveID(ctx, h.Target)
	target := state.FindActor(targetID)
	if target == nil {
		state.Events.Warn(ctx.StepID, fmt.Sprintf("Heal: unknown target %q", targetID))
		return nil
	}
	target.HP += h.Amount
	if target.HP > target.MaxHP {
		target.HP = target.MaxHP
	}
	state.Events.EmitSim("Healed", map[string]interface{}{"actorId": target.ID, "amount": h.Amount})
	return nil
}

func handleApplyStatus(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	a := e.(effect.ApplyStatus)
	targetID := resolveID(ctx, a.Target)
	target := state.FindActor(targetID)
	if target == nil {
		state.Events.Warn(ctx.StepID, fmt.Sprintf("ApplyStatus: unknown target %q", targetID))
		return nil
	}

	duration := a.Duration
	if r.Combat != nil {
		sourceID := resolveID(ctx, ctx.SourceID)
		if source := state.FindActor(sourceID); source != nil {
			duration = r.Combat.StatusDuration(source, a.Duration)
		}
	}

	window := actorstate.TickWindow(a.TickWindow)
	if window == "" {
		window = actorstate.TickEndOfTurn
	}
	target.StatusEffects = append(target.StatusEffects, actorstate.StatusEffect{
		ID:         fmt.Sprintf("%s-%s", target.ID, a.StatusKind),
		Kind:       a.StatusKind,
		Duration:   duration,
		TickWindow: window,
	})

	state.Events.Emit(ctx.StepID, events.PhaseStatusApply, target.ID, map[string]interface{}{"kind": a.StatusKind, "duration": duration})
	state.Events.EmitSim("StatusApplied", map[string]interface{}{"actorId": target.ID, "kind": a.StatusKind, "duration": duration})
	return nil
}

func handleImpact(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	im := e.(effect.Impact)
	targetID := resolveID(ctx, im.Target)

	follow := []effect.Effect{effect.Damage{Target: targetID, Amount: im.Damage, Source: ctx.SourceID}}

	// A direction vector is passed where a contact hex is expected for the
	// juice signature, a likely off-by-origin quirk in the visual-only
	// output. We reproduce the observable behavior rather than "fix" it:
	// the juice params carry im.Direction verbatim as if it were a contact
	// point.
	params := map[string]interface{}{"directionAsContact": im.Direction}
	follow = append(follow, effect.Juice{EffectName: "impact_shake", Params: params})
	return follow
}

func handleLavaSink(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	ls := e.(effect.LavaSink)
	targetID := resolveID(ctx, ls.Target)
	target := state.FindActor(targetID)
	if target == nil {
		return nil
	}
	if target.Type == actorstate.ActorPlayer {
		return []effect.Effect{
			effect.Damage{Target: targetID, Amount: 99, Reason: "hazard_lava"},
			effect.Juice{EffectName: "vaporize"},
		}
	}
	target.HP = 0
	return []effect.Effect{
		effect.SpawnCorpse{Position: target.Position},
		effect.Juice{EffectName: "vaporize"},
	}
}

package kernel

import (
	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/tile"
)

func init() {
	register(effect.KindSetStealth, handleSetStealth)
	register(effect.KindUpdateCompanionState, handleUpdateCompanionState)
	register(effect.KindUpdateComponent, handleUpdateComponent)
	register(effect.KindModifyCooldown, handleModifyCooldown)
	register(effect.KindSpawnCorpse, handleSpawnCorpse)
	register(effect.KindRemoveCorpse, handleRemoveCorpse)
	register(effect.KindMessage, handleMessage)
	register(effect.KindJuice, handleJuice)
	register(effect.KindGameOver, handleGameOver)
}

func handleSetStealth(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	s := e.(effect.SetStealth)
	target := state.FindActor(resolveID(ctx, s.Target))
	if target == nil {
		return nil
	}
	if target.Components == nil {
		target.Components = map[string]interface{}{}
	}
	target.Components["stealth"] = s.Amount
	return nil
}

func handleUpdateCompanionState(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	u := e.(effect.UpdateCompanionState)
	target := state.FindActor(resolveID(ctx, u.Target))
	if target == nil {
		return nil
	}
	if target.CompanionState == nil {
		target.CompanionState = map[string]interface{}{}
	}
	if u.Mode != nil {
		target.CompanionState["mode"] = *u.Mode
	}
	if u.MarkTarget != nil {
		target.CompanionState["markTarget"] = *u.MarkTarget
	}
	if u.ApexStrikeCooldown != nil {
		target.CompanionState["apexStrikeCooldown"] = *u.ApexStrikeCooldown
	}
	if u.HealCooldown != nil {
		target.CompanionState["healCooldown"] = *u.HealCooldown
	}
	return nil
}

func handleUpdateComponent(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	u := e.(effect.UpdateComponent)
	target := state.FindActor(resolveID(ctx, u.Target))
	if target == nil {
		return nil
	}
	if target.Components == nil {
		target.Components = map[string]interface{}{}
	}
	target.Components[u.Key] = u.Value
	return nil
}

func handleModifyCooldown(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	m := e.(effect.ModifyCooldown)
	target := state.FindActor(resolveID(ctx, m.Target))
	if target == nil {
		return nil
	}
	for i := range target.ActiveSkills {
		if target.ActiveSkills[i].ID != m.SkillID {
			continue
		}
		if m.SetExact {
			target.ActiveSkills[i].CurrentCooldown = m.Amount
		} else {
			target.ActiveSkills[i].CurrentCooldown += m.Amount
			if target.ActiveSkills[i].CurrentCooldown < 0 {
				target.ActiveSkills[i].CurrentCooldown = 0
			}
		}
		break
	}
	return nil
}

func handleSpawnCorpse(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	sc := e.(effect.SpawnCorpse)
	t := state.Tiles.EnsureDefault(sc.Position, "FLOOR", append([]tile.Trait{tile.TraitWalkable}, r.Tiles.defaultTraitsFor("FLOOR")...))
	t.Traits.Add(tile.TraitCorpse)
	return nil
}

func handleRemoveCorpse(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	rc := e.(effect.RemoveCorpse)
	if t := state.Tiles.Get(rc.Position); t != nil {
		t.Traits.Remove(tile.TraitCorpse)
	}
	filtered := state.Dying[:0]
	for _, d := range state.Dying {
		if d.Position.Equals(rc.Position) {
			continue
		}
		filtered = append(filtered, d)
	}
	state.Dying = filtered
	return nil
}

func handleMessage(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	m := e.(effect.Message)
	state.Messages = append(state.Messages, actorstate.Message{Tag: m.Tag, Text: m.Text})
	state.Events.EmitSim("MessageLogged", map[string]interface{}{"tag": m.Tag, "text": m.Text})
	return nil
}

func handleJuice(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	j := e.(effect.Juice)
	state.Events.EmitSim("Juice", map[string]interface{}{"effect": j.EffectName, "params": j.Params})
	return nil
}

func handleGameOver(r *Resolver, state *actorstate.GameState, e effect.Effect, ctx Context) []effect.Effect {
	state.GameStatus = actorstate.StatusLost
	return nil
}

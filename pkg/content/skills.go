package content

import (
	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/facade"
	"github.com/dshills/tacsim/pkg/hexgrid"
)

// SkillRegistry implements facade.SkillRegistry over a fixed map, unifying
// the source's mixed bracket-access/.get() paths into the single Get
// accessor calls for: a miss returns ok=false, never panics.
type SkillRegistry struct {
	skills map[string]facade.SkillDefinition
}

// NewSkillRegistry returns a registry preloaded with the reference skill
// set ('s MOVE/THROW_SPEAR/WAIT wrappers all resolve through
// it).
func NewSkillRegistry() *SkillRegistry {
	r := &SkillRegistry{skills: map[string]facade.SkillDefinition{}}
	r.skills["BASIC_MOVE"] = basicMoveSkill{}
	r.skills["THROW_SPEAR"] = throwSpearSkill{}
	r.skills["WAIT"] = waitSkill{}
	return r
}

// Get satisfies facade.SkillRegistry.
func (r *SkillRegistry) Get(skillID string) (facade.SkillDefinition, bool) {
	s, ok := r.skills[skillID]
	return s, ok
}

// basicMoveSkill dashes the actor toward ctx.Destination, simulating the
// path so tile/hazard interactions and slippery extensions apply.
type basicMoveSkill struct{}

func (basicMoveSkill) Execute(state *actorstate.GameState, actor *actorstate.Actor, target *actorstate.Actor, ctx facade.ExecContext) (facade.ExecResult, error) {
	if ctx.Destination == nil {
		return facade.ExecResult{}, nil
	}
	return facade.ExecResult{
		Effects: []effect.Effect{effect.Displacement{
			Target:       actor.ID,
			Source:       actor.ID,
			Destination:  *ctx.Destination,
			SimulatePath: true,
		}},
		ConsumesTurn: true,
	}, nil
}

func (basicMoveSkill) ValidTargets(state *actorstate.GameState, origin hexgrid.Point) []hexgrid.Point {
	n := hexgrid.Neighbors(origin)
	return n[:]
}

func (basicMoveSkill) IntentProfile() facade.IntentProfile {
	return facade.IntentProfile{Tags: []string{"move"}, Estimate: 0}
}

// throwSpearSkill requires has_spear and a target point; it deals fixed
// damage to any actor occupying the target hex and is a concrete wrapper
// over a skill invocation, the same way MOVE and WAIT are.
type throwSpearSkill struct{}

func (throwSpearSkill) Execute(state *actorstate.GameState, actor *actorstate.Actor, target *actorstate.Actor, ctx facade.ExecContext) (facade.ExecResult, error) {
	if !state.HasSpear || target == nil {
		return facade.ExecResult{Messages: []string{"no spear to throw"}}, nil
	}
	return facade.ExecResult{
		Effects: []effect.Effect{
			effect.Damage{Target: target.ID, Amount: 4, Source: actor.ID, DamageClass: effect.DamagePhysical, ScoreEvent: "spear_throw"},
		},
		ConsumesTurn: true,
	}, nil
}

func (throwSpearSkill) ValidTargets(state *actorstate.GameState, origin hexgrid.Point) []hexgrid.Point {
	return nil
}

func (throwSpearSkill) IntentProfile() facade.IntentProfile {
	return facade.IntentProfile{Tags: []string{"damage"}, Estimate: 4}
}

// waitSkill consumes the turn without effect ( WAIT).
type waitSkill struct{}

func (waitSkill) Execute(state *actorstate.GameState, actor *actorstate.Actor, target *actorstate.Actor, ctx facade.ExecContext) (facade.ExecResult, error) {
	return facade.ExecResult{ConsumesTurn: true}, nil
}

func (waitSkill) ValidTargets(state *actorstate.GameState, origin hexgrid.Point) []hexgrid.Point {
	return nil
}

func (waitSkill) IntentProfile() facade.IntentProfile {
	return facade.IntentProfile{Tags: []string{"control"}, Estimate: 0}
}

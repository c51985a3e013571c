package content

import (
	"testing"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/effect"
	"github.com/dshills/tacsim/pkg/hexgrid"
)

func actorWithTrinity(id string, might, mind, instinct int) *actorstate.Actor {
	return &actorstate.Actor{
		ID: id, HP: 10, MaxHP: 10,
		Components: map[string]interface{}{
			"trinity": map[string]interface{}{"might": might, "mind": mind, "instinct": instinct},
		},
	}
}

func TestCombatMultipliersScalesByDamageClass(t *testing.T) {
	cp := CombatProfile{}
	actor := actorWithTrinity("brute", 20, 10, 0)

	phys := cp.CombatMultipliers(actor, effect.DamagePhysical)
	if phys.Outgoing != 1.2 {
		t.Errorf("expected physical outgoing 1.2 from might=20, got %v", phys.Outgoing)
	}
	mag := cp.CombatMultipliers(actor, effect.DamageMagical)
	if mag.Outgoing != 1.1 {
		t.Errorf("expected magical outgoing 1.1 from mind=10, got %v", mag.Outgoing)
	}
}

func TestCombatMultipliersIncomingFloorsAtOneTenth(t *testing.T) {
	cp := CombatProfile{}
	tank := actorWithTrinity("tank", 0, 0, 1000)
	mult := cp.CombatMultipliers(tank, effect.DamagePhysical)
	if mult.Incoming != 0.1 {
		t.Errorf("expected incoming multiplier floored at 0.1, got %v", mult.Incoming)
	}
}

func TestStatusDurationAddsFloorOfMindOverFifteen(t *testing.T) {
	cp := CombatProfile{}
	actor := actorWithTrinity("caster", 0, 32, 0)
	if got := cp.StatusDuration(actor, 3); got != 5 {
		t.Errorf("expected base 3 + floor(32/15)=2 = 5, got %d", got)
	}
}

func TestStatusDurationClampsNegativeMindToZero(t *testing.T) {
	cp := CombatProfile{}
	actor := actorWithTrinity("cursed", 0, -40, 0)
	if got := cp.StatusDuration(actor, 3); got != 3 {
		t.Errorf("expected negative mind treated as 0, got %d", got)
	}
}

func TestToyAIAttacksWhenAdjacent(t *testing.T) {
	ai := ToyAI{}
	state := &actorstate.GameState{
		Player: &actorstate.Actor{ID: "player", Type: actorstate.ActorPlayer, Position: hexgrid.New(0, 0), HP: 10, MaxHP: 10},
	}
	enemy := &actorstate.Actor{ID: "goblin", Position: hexgrid.New(1, 0), HP: 5, MaxHP: 5}

	effects, messages, err := ai.PlanEffects(state, enemy, enemy.Position)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(effects) != 1 {
		t.Fatalf("expected exactly one effect, got %d", len(effects))
	}
	dmg, ok := effects[0].(effect.Damage)
	if !ok {
		t.Fatalf("expected a Damage effect, got %T", effects[0])
	}
	if dmg.Target != "player" {
		t.Errorf("expected attack targeting player, got %q", dmg.Target)
	}
	if len(messages) != 1 {
		t.Errorf("expected one descriptive message, got %v", messages)
	}
}

func TestToyAIApproachesWhenNotAdjacent(t *testing.T) {
	ai := ToyAI{}
	state := &actorstate.GameState{
		Player: &actorstate.Actor{ID: "player", Type: actorstate.ActorPlayer, Position: hexgrid.New(5, 0), HP: 10, MaxHP: 10},
	}
	enemy := &actorstate.Actor{ID: "goblin", Position: hexgrid.New(0, 0), HP: 5, MaxHP: 5}

	effects, _, err := ai.PlanEffects(state, enemy, enemy.Position)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(effects) != 1 {
		t.Fatalf("expected exactly one effect, got %d", len(effects))
	}
	disp, ok := effects[0].(effect.Displacement)
	if !ok {
		t.Fatalf("expected a Displacement effect, got %T", effects[0])
	}
	if hexgrid.Distance(disp.Destination, state.Player.Position) >= hexgrid.Distance(enemy.Position, state.Player.Position) {
		t.Errorf("expected the chosen step to reduce distance to the player, from %s to %s", enemy.Position, disp.Destination)
	}
}

func TestToyAIDoesNothingWithNoPlayer(t *testing.T) {
	ai := ToyAI{}
	state := &actorstate.GameState{}
	enemy := &actorstate.Actor{ID: "goblin", Position: hexgrid.New(0, 0), HP: 5, MaxHP: 5}
	effects, messages, err := ai.PlanEffects(state, enemy, enemy.Position)
	if err != nil || effects != nil || messages != nil {
		t.Errorf("expected a no-op plan with a nil player, got effects=%v messages=%v err=%v", effects, messages, err)
	}
}

func TestUpgradeCatalogEligibleUpgradesIsFixed(t *testing.T) {
	cat := UpgradeCatalog{}
	state := &actorstate.GameState{}
	got := cat.EligibleUpgrades(state)
	want := []string{"EXTRA_HP", "SHARP_SPEAR", "QUICK_FEET"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestApplyUpgradeExtraHPIncreasesMaxAndHeals(t *testing.T) {
	cat := UpgradeCatalog{}
	state := &actorstate.GameState{Player: &actorstate.Actor{ID: "player", HP: 5, MaxHP: 10}}
	effects, err := cat.ApplyUpgrade(state, "EXTRA_HP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Player.MaxHP != 11 {
		t.Errorf("expected max_hp incremented to 11, got %d", state.Player.MaxHP)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one Heal effect, got %v", effects)
	}
	if _, ok := effects[0].(effect.Heal); !ok {
		t.Errorf("expected a Heal effect, got %T", effects[0])
	}
}

func TestApplyUpgradeUnknownIDReturnsError(t *testing.T) {
	cat := UpgradeCatalog{}
	state := &actorstate.GameState{Player: &actorstate.Actor{ID: "player", HP: 5, MaxHP: 10}}
	if _, err := cat.ApplyUpgrade(state, "NOT_REAL"); err == nil {
		t.Error("expected an error for an unknown upgrade id")
	}
}

func TestSkillRegistryPreloadsCoreSkills(t *testing.T) {
	reg := NewSkillRegistry()
	for _, id := range []string{"BASIC_MOVE", "THROW_SPEAR", "WAIT"} {
		if _, ok := reg.Get(id); !ok {
			t.Errorf("expected skill registry to preload %q", id)
		}
	}
	if _, ok := reg.Get("NOT_A_SKILL"); ok {
		t.Error("expected a miss for an unknown skill id")
	}
}

func TestBootstrapWiresAllFacades(t *testing.T) {
	reg := Bootstrap()
	if reg.Skills == nil || reg.Tiles == nil || reg.Combat == nil || reg.AI == nil || reg.Upgrades == nil || reg.Status == nil {
		t.Fatalf("expected every facade wired, got %+v", reg)
	}
}

package reducer

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/tacsim/pkg/actorstate"
	"github.com/dshills/tacsim/pkg/content"
	"github.com/dshills/tacsim/pkg/facade"
	"github.com/dshills/tacsim/pkg/fingerprint"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/initiative"
	"github.com/dshills/tacsim/pkg/kernel"
)

// Action is one external command the Action Reducer accepts.
// Payload is carried as a typed value (MovePayload, UseSkillPayload, ...) and
// converted to a plain map only when appended to ActionLog, favoring a
// plain-struct-to-JSON approach over threading a map through the whole
// dispatch path.
type Action struct {
	Type    string
	Payload interface{}
}

// Payload shapes for each action type.
type (
	ResetPayload         struct {
		Seed string `json:"seed,omitempty"`
	}
	ApplyLoadoutPayload struct {
		Loadout Loadout `json:"loadout"`
	}
	StartRunPayload struct {
		LoadoutID string `json:"loadoutId"`
		Seed      string `json:"seed"`
		Mode      string `json:"mode,omitempty"`
		Loadout   Loadout `json:"loadout"`
	}
	LoadStatePayload struct {
		State *actorstate.GameState `json:"-"`
	}
	MovePayload struct {
		Point hexgrid.Point `json:"point"`
	}
	UseSkillPayload struct {
		SkillID string `json:"skillId"`
		Target  string `json:"target,omitempty"`
	}
	ThrowSpearPayload struct {
		Point hexgrid.Point `json:"point"`
	}
	SelectUpgradePayload struct {
		UpgradeID string `json:"upgradeId"`
	}
)

// Reducer wires a kernel.Resolver + initiative.Cycle to a content registry
// and exposes the single Dispatch entry point.
type Reducer struct {
	Content  *content.Registry
	Resolver *kernel.Resolver
	Cycle    *initiative.Cycle
}

// New builds a Reducer. qOffset/rOffset/width/height size the occupancy mask
// the resolver rebuilds before every Displacement path walk and must match the grid
// generate_initial_state lays out.
func New(reg *content.Registry, qOffset, rOffset, width, height int) *Reducer {
	resolver := kernel.NewResolver(reg.Combat, reg.Tiles, qOffset, rOffset, width, height)
	cycle := initiative.NewCycle(resolver, reg.AI, reg.Status, reg.Upgrades)
	return &Reducer{Content: reg, Resolver: resolver, Cycle: cycle}
}

// allowedWhileGated lists the action types permits even when
// game_status != "playing".
var allowedWhileGated = map[string]bool{
	"SELECT_UPGRADE": true,
	"RESOLVE_PENDING": true,
	"APPLY_LOADOUT":  true,
	"START_RUN":      true,
	"LOAD_STATE":     true,
	"RESET":          true,
	"EXIT_TO_HUB":    true,
}

func toPayloadMap(v interface{}) map[string]interface{} {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// Dispatch is the Action Reducer's single entry point: append the action
// verbatim to action_log (append-only, recorded regardless of acceptance),
// reject it if the pending-frame gate applies, otherwise run its handler
// and record a command_log delta.
func (rd *Reducer) Dispatch(state *actorstate.GameState, action Action) *actorstate.GameState {
	before, _ := fingerprint.FromState(state)

	next := state.Clone()
	next.ActionLog = append(next.ActionLog, actorstate.ActionLogEntry{
		Type:    action.Type,
		Payload: toPayloadMap(action.Payload),
	})

	if next.GameStatus != actorstate.StatusPlaying && !allowedWhileGated[action.Type] {
		next.Messages = append(next.Messages, actorstate.Message{
			Tag:  "INFO|SYSTEM",
			Text: fmt.Sprintf("action %s rejected: game_status is %s", action.Type, next.GameStatus),
		})
		rd.logCommand(next, action, before)
		return next
	}

	switch action.Type {
	case "RESET":
		next = rd.handleReset(next, action.Payload)
	case "LOAD_STATE":
		next = rd.handleLoadState(next, action.Payload)
	case "APPLY_LOADOUT":
		next = rd.handleApplyLoadout(next, action.Payload)
	case "START_RUN":
		next = rd.handleStartRun(next, action.Payload)
	case "MOVE":
		next = rd.handleMove(next, action.Payload)
	case "USE_SKILL":
		next = rd.handleUseSkill(next, action.Payload)
	case "THROW_SPEAR":
		next = rd.handleThrowSpear(next, action.Payload)
	case "WAIT":
		next = rd.handleUseSkill(next, UseSkillPayload{SkillID: "WAIT"})
	case "ADVANCE_TURN":
		next = rd.handleAdvanceTurn(next)
	case "RESOLVE_PENDING":
		next = rd.handleResolvePending(next)
	case "SELECT_UPGRADE":
		next = rd.handleSelectUpgrade(next, action.Payload)
	case "EXIT_TO_HUB":
		next.GameStatus = actorstate.StatusHub
	default:
		next.Messages = append(next.Messages, actorstate.Message{
			Tag: "INFO|SYSTEM", Text: fmt.Sprintf("unknown action %q", action.Type),
		})
	}

	rd.logCommand(next, action, before)
	return next
}

func (rd *Reducer) logCommand(state *actorstate.GameState, action Action, before string) {
	after, _ := fingerprint.FromState(state)
	state.CommandLog = append(state.CommandLog, actorstate.CommandLogEntry{
		Action: actorstate.ActionLogEntry{Type: action.Type, Payload: toPayloadMap(action.Payload)},
		Delta:  map[string]interface{}{"before": before, "after": after},
	})
}

func (rd *Reducer) handleReset(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, _ := payload.(ResetPayload)
	seed := p.Seed
	if seed == "" {
		seed = state.RNGSeed
	}
	return GenerateInitialState(1, seed, seed, nil, DefaultLoadout, rd.Content)
}

func (rd *Reducer) handleLoadState(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, ok := payload.(LoadStatePayload)
	if !ok || p.State == nil {
		state.Messages = append(state.Messages, actorstate.Message{Tag: "CRITICAL|SYSTEM", Text: "load_state: missing snapshot"})
		return state
	}
	return p.State.Clone()
}

func (rd *Reducer) handleApplyLoadout(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, _ := payload.(ApplyLoadoutPayload)
	loadout := p.Loadout
	if loadout.ArchetypeID == "" {
		loadout = DefaultLoadout
	}
	return GenerateInitialState(state.Floor, state.RNGSeed, state.InitialSeed, nil, loadout, rd.Content)
}

func (rd *Reducer) handleStartRun(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, _ := payload.(StartRunPayload)
	loadout := p.Loadout
	if loadout.ArchetypeID == "" {
		loadout = DefaultLoadout
	}
	seed := p.Seed
	if seed == "" {
		seed = state.RNGSeed
	}
	return GenerateInitialState(1, seed, seed, nil, loadout, rd.Content)
}

func (rd *Reducer) handleMove(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, ok := payload.(MovePayload)
	if !ok {
		return state
	}
	if target := actorAt(state, p.Point); target != nil && target != state.Player {
		return rd.handleUseSkill(state, UseSkillPayload{SkillID: offensiveSkillID(state), Target: target.ID})
	}
	return rd.handleUseSkill(state, UseSkillPayload{SkillID: "BASIC_MOVE", Target: ""}, &p.Point)
}

func (rd *Reducer) handleThrowSpear(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, ok := payload.(ThrowSpearPayload)
	if !ok {
		return state
	}
	target := actorAt(state, p.Point)
	targetID := ""
	if target != nil {
		targetID = target.ID
	}
	return rd.handleUseSkill(state, UseSkillPayload{SkillID: "THROW_SPEAR", Target: targetID})
}

// offensiveSkillID picks the first non-move skill the player has equipped,
// falling back to THROW_SPEAR, for MOVE{point}'s occupied-hex redirect.
func offensiveSkillID(state *actorstate.GameState) string {
	for _, s := range state.Player.ActiveSkills {
		if s.ID != "BASIC_MOVE" && s.ID != "WAIT" {
			return s.ID
		}
	}
	return "THROW_SPEAR"
}

func actorAt(state *actorstate.GameState, p hexgrid.Point) *actorstate.Actor {
	for _, a := range state.AllActors() {
		if !a.IsDead() && a.Position.Equals(p) {
			return a
		}
	}
	return nil
}

// handleUseSkill is the common path for USE_SKILL, WAIT, THROW_SPEAR, and
// MOVE once they've resolved to a concrete skill id + optional target/dest.
func (rd *Reducer) handleUseSkill(state *actorstate.GameState, payload interface{}, destination ...*hexgrid.Point) *actorstate.GameState {
	p, ok := payload.(UseSkillPayload)
	if !ok {
		return state
	}
	if state.Player == nil || state.Player.IsDead() {
		return state
	}
	skill, found := rd.Content.Skills.Get(p.SkillID)
	if !found {
		state.Messages = append(state.Messages, actorstate.Message{Tag: "INFO|SYSTEM", Text: fmt.Sprintf("unknown skill %q", p.SkillID)})
		return state
	}

	var target *actorstate.Actor
	if p.Target != "" {
		target = state.FindActor(p.Target)
	}
	ctx := facade.ExecContext{ActorID: state.Player.ID, TargetID: p.Target}
	if len(destination) > 0 {
		ctx.Destination = destination[0]
	}

	result, err := skill.Execute(state, state.Player, target, ctx)
	if err != nil {
		state.Messages = append(state.Messages, actorstate.Message{Tag: "CRITICAL|SYSTEM", Text: err.Error()})
		return state
	}
	for _, m := range result.Messages {
		state.Messages = append(state.Messages, actorstate.Message{Tag: "INFO|SYSTEM", Text: m})
	}

	next := state
	if len(result.Effects) > 0 {
		next = rd.Resolver.ApplyEffects(state, result.Effects, kernel.Context{
			SourceID: state.Player.ID,
			TargetID: p.Target,
			StepID:   fmt.Sprintf("turn-%d-%s", state.TurnNumber, p.SkillID),
		})
	}

	if !result.ConsumesTurn {
		return next
	}

	next = rd.Cycle.ApplyPlayerEndOfTurnRules(next)
	if initiative.Blocked(next) || next.GameStatus != actorstate.StatusPlaying {
		return next
	}
	next, _ = rd.Cycle.ResolveEnemyActions(next)
	return next
}

func (rd *Reducer) handleAdvanceTurn(state *actorstate.GameState) *actorstate.GameState {
	if initiative.Blocked(state) {
		return state
	}
	next, _ := rd.Cycle.ProcessNextTurn(state)
	return next
}

// handleResolvePending drains the first queued non-shrine pending frame
// ( RESOLVE_PENDING). SHRINE_CHOICE is resolved via
// SELECT_UPGRADE against pending_status instead,
func (rd *Reducer) handleResolvePending(state *actorstate.GameState) *actorstate.GameState {
	if len(state.PendingFrames) == 0 {
		return state
	}
	frame := state.PendingFrames[0]
	state.PendingFrames = state.PendingFrames[1:]

	switch frame.Type {
	case actorstate.FrameStairsTransition:
		next := GenerateInitialState(state.Floor+1, state.RNGSeed, state.InitialSeed, state.Player, DefaultLoadout, rd.Content)
		next.Kills = state.Kills
		next.TurnsSpent = state.TurnsSpent
		next.Upgrades = append([]actorstate.Upgrade{}, state.Upgrades...)
		next.ActionLog = state.ActionLog
		next.CommandLog = state.CommandLog
		return next
	case actorstate.FrameRunWon:
		state.GameStatus = actorstate.StatusWon
		return state
	case actorstate.FrameRunLost:
		state.GameStatus = actorstate.StatusLost
		return state
	default:
		return state
	}
}

// handleSelectUpgrade validates the chosen id against pending_status's
// offered options, applies it, and clears the blocking frame.
func (rd *Reducer) handleSelectUpgrade(state *actorstate.GameState, payload interface{}) *actorstate.GameState {
	p, ok := payload.(SelectUpgradePayload)
	if !ok || state.PendingStatus == nil {
		return state
	}
	options, _ := state.PendingStatus.Payload["shrineOptions"].([]string)
	valid := false
	for _, o := range options {
		if o == p.UpgradeID {
			valid = true
			break
		}
	}
	if !valid {
		state.Messages = append(state.Messages, actorstate.Message{Tag: "INFO|SYSTEM", Text: fmt.Sprintf("upgrade %q not offered", p.UpgradeID)})
		return state
	}

	effects, err := rd.Content.Upgrades.ApplyUpgrade(state, p.UpgradeID)
	if err != nil {
		state.Messages = append(state.Messages, actorstate.Message{Tag: "CRITICAL|SYSTEM", Text: err.Error()})
		return state
	}
	state.Upgrades = append(state.Upgrades, actorstate.Upgrade{ID: p.UpgradeID})
	state.PendingStatus = nil
	state.GameStatus = actorstate.StatusPlaying

	next := state
	if len(effects) > 0 {
		next = rd.Resolver.ApplyEffects(state, effects, kernel.Context{
			SourceID: state.Player.ID,
			StepID:   fmt.Sprintf("turn-%d-upgrade-%s", state.TurnNumber, p.UpgradeID),
		})
	}
	return next
}

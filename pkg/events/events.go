// Package events implements the two append-only logs handlers write to: the
// cinematic timeline (blocking beats with a strict phase order, meant for UI
// playback) and the semantic simulation stream (order-agnostic facts for
// analytics/mirror validation). Both are plain ordered slices — a flat,
// directly-marshalable record list rather than a hash-keyed structure —
// since they are part of the byte-stable, order-sensitive replay contract.
package events

import "fmt"

// Phase enumerates the cinematic timeline phases in their required
// non-decreasing order within a single step_id.
type Phase int

const (
	PhaseIntentStart Phase = iota
	PhaseMoveStart
	PhaseMoveEnd
	PhaseOnPass
	PhaseOnEnter
	PhaseHazardCheck
	PhaseStatusApply
	PhaseDamageApply
	PhaseDeathResolve
	PhaseIntentEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseIntentStart:
		return "INTENT_START"
	case PhaseMoveStart:
		return "MOVE_START"
	case PhaseMoveEnd:
		return "MOVE_END"
	case PhaseOnPass:
		return "ON_PASS"
	case PhaseOnEnter:
		return "ON_ENTER"
	case PhaseHazardCheck:
		return "HAZARD_CHECK"
	case PhaseStatusApply:
		return "STATUS_APPLY"
	case PhaseDamageApply:
		return "DAMAGE_APPLY"
	case PhaseDeathResolve:
		return "DEATH_RESOLVE"
	case PhaseIntentEnd:
		return "INTENT_END"
	default:
		return fmt.Sprintf("PHASE(%d)", int(p))
	}
}

// TimelineEvent is one cinematic beat.
type TimelineEvent struct {
	StepID  string                 `json:"stepId"`
	Phase   Phase                  `json:"phase"`
	Actor   string                 `json:"actor,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SimulationEvent is one order-agnostic semantic fact.
type SimulationEvent struct {
	Kind    string                 `json:"kind"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// StackResolutionTick records a single pop-and-apply step of the effect
// stack resolver. TickIndex is 1-indexed over the whole Log: it continues
// from the previous tick and does not restart at each apply_effects call.
type StackResolutionTick struct {
	TickIndex         int    `json:"tickIndex"`
	EffectDescription string `json:"effectDescription"`
}

// Log bundles the three append-only streams, which carry over with the
// state and accumulate across reducer calls, plus a bookkeeping field for
// the out-of-band, off-by-default engine-warning channel.
type Log struct {
	Timeline   []TimelineEvent   `json:"timeline"`
	Simulation []SimulationEvent `json:"simulation"`
	StackTrace []StackResolutionTick
	Warnings   []EngineWarning `json:"-"`
}

// EngineWarning is a logged invariant violation that does not affect state
// or the fingerprint.
type EngineWarning struct {
	StepID  string `json:"stepId,omitempty"`
	Message string `json:"message"`
}

// NewLog returns an empty, ready-to-append Log.
func NewLog() *Log {
	return &Log{
		Timeline:   []TimelineEvent{},
		Simulation: []SimulationEvent{},
		StackTrace: []StackResolutionTick{},
		Warnings:   []EngineWarning{},
	}
}

// Clone returns a deep-enough copy for copy-on-write state handoff between
// reducer calls: new backing arrays, shared leaf values.
func (l *Log) Clone() *Log {
	out := &Log{
		Timeline:   append([]TimelineEvent{}, l.Timeline...),
		Simulation: append([]SimulationEvent{}, l.Simulation...),
		StackTrace: append([]StackResolutionTick{}, l.StackTrace...),
		Warnings:   append([]EngineWarning{}, l.Warnings...),
	}
	return out
}

// Emit appends a timeline event, warning (not failing) if its phase would
// regress the non-decreasing order within the same step id.
func (l *Log) Emit(stepID string, phase Phase, actor string, payload map[string]interface{}) {
	for i := len(l.Timeline) - 1; i >= 0; i-- {
		if l.Timeline[i].StepID != stepID {
			break
		}
		if l.Timeline[i].Phase > phase {
			l.Warnings = append(l.Warnings, EngineWarning{
				StepID:  stepID,
				Message: fmt.Sprintf("timeline phase regression: %s after %s", phase, l.Timeline[i].Phase),
			})
		}
		break
	}
	l.Timeline = append(l.Timeline, TimelineEvent{StepID: stepID, Phase: phase, Actor: actor, Payload: payload})
}

// EmitSim appends a semantic simulation event.
func (l *Log) EmitSim(kind string, payload map[string]interface{}) {
	l.Simulation = append(l.Simulation, SimulationEvent{Kind: kind, Payload: payload})
}

// Tick appends the next stack-resolution tick, 1-indexed, and returns its index.
func (l *Log) Tick(description string) int {
	idx := len(l.StackTrace) + 1
	l.StackTrace = append(l.StackTrace, StackResolutionTick{TickIndex: idx, EffectDescription: description})
	return idx
}

// Warn appends an engine warning without otherwise affecting state.
func (l *Log) Warn(stepID, message string) {
	l.Warnings = append(l.Warnings, EngineWarning{StepID: stepID, Message: message})
}

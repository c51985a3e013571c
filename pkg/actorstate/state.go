package actorstate

import (
	"github.com/dshills/tacsim/pkg/events"
	"github.com/dshills/tacsim/pkg/hexgrid"
	"github.com/dshills/tacsim/pkg/tile"
)

// GameStatus mirrors's game_status enum.
type GameStatus string

const (
	StatusPlaying         GameStatus = "playing"
	StatusHub             GameStatus = "hub"
	StatusChoosingUpgrade GameStatus = "choosing_upgrade"
	StatusWon             GameStatus = "won"
	StatusLost            GameStatus = "lost"
)

// PendingFrameType enumerates the blocking-frame kinds of
type PendingFrameType string

const (
	FrameShrineChoice      PendingFrameType = "SHRINE_CHOICE"
	FrameStairsTransition  PendingFrameType = "STAIRS_TRANSITION"
	FrameRunWon            PendingFrameType = "RUN_WON"
	FrameRunLost           PendingFrameType = "RUN_LOST"
)

// PendingFrame gates turn advancement until the driver resolves it.
type PendingFrame struct {
	ID      string                 `json:"id"`
	Type    PendingFrameType       `json:"type"`
	Status  GameStatus             `json:"status"`
	Blocking bool                  `json:"blocking"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// InitiativeEntry is one slot in the turn-order queue.
type InitiativeEntry struct {
	ActorID             string   `json:"actorId"`
	Initiative          int      `json:"initiative"`
	HasActed            bool     `json:"hasActed"`
	TurnStartPosition    hexgrid.Point `json:"turnStartPosition"`
	TurnStartNeighborIDs []string `json:"turnStartNeighborIds,omitempty"`
}

// InitiativeQueue is the per-round actor ordering.
type InitiativeQueue struct {
	Entries      []InitiativeEntry `json:"entries"`
	CurrentIndex int               `json:"currentIndex"`
	Round        int               `json:"round"`
}

// Clone returns an independent copy.
func (q *InitiativeQueue) Clone() *InitiativeQueue {
	out := &InitiativeQueue{
		Entries:      make([]InitiativeEntry, len(q.Entries)),
		CurrentIndex: q.CurrentIndex,
		Round:        q.Round,
	}
	for i, e := range q.Entries {
		e.TurnStartNeighborIDs = append([]string{}, e.TurnStartNeighborIDs...)
		out.Entries[i] = e
	}
	return out
}

// Trap is a placed hazard object tracked outside the tile store (it has
// owner/cooldown bookkeeping the plain tile-effect model doesn't carry).
type Trap struct {
	Position       hexgrid.Point `json:"position"`
	OwnerID        string        `json:"ownerId"`
	Cooldown       int           `json:"cooldown"`
	VolatileCore   bool          `json:"volatileCore,omitempty"`
	ChainReaction  bool          `json:"chainReaction,omitempty"`
}

// Message is a tagged, user-visible log line: tags look like
// "CRITICAL|SYSTEM", "INFO|SYSTEM", "INFO|AI", and so on.
type Message struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Upgrade is a chosen shrine upgrade id plus any numeric payload the content
// facade attached when it was applied.
type Upgrade struct {
	ID string `json:"id"`
}

// GameState is the full aggregate described in Between reducer
// calls it is treated as immutable; Clone gives every package a cheap,
// explicit copy-on-write handoff instead of relying on accidental aliasing.
type GameState struct {
	TurnNumber  int    `json:"turnNumber"`
	Floor       int    `json:"floor"`
	RNGSeed     string `json:"rngSeed"`
	InitialSeed string `json:"initialSeed"`
	RNGCounter  uint64 `json:"rngCounter"`

	Player     *Actor   `json:"player"`
	Enemies    []*Actor `json:"enemies"`
	Companions []*Actor `json:"companions"`
	Dying      []*Actor `json:"dying"`

	Tiles         tile.Store        `json:"tiles"`
	GridWidth     int               `json:"gridWidth"`
	GridHeight    int               `json:"gridHeight"`

	InitiativeQueue *InitiativeQueue `json:"initiativeQueue"`

	PendingFrames []PendingFrame `json:"pendingFrames,omitempty"`
	PendingStatus *PendingFrame  `json:"pendingStatus,omitempty"`

	Upgrades      []Upgrade `json:"upgrades,omitempty"`
	Kills         int       `json:"kills"`
	TurnsSpent    int       `json:"turnsSpent"`
	HazardBreaches int      `json:"hazardBreaches"`

	Traps []Trap `json:"traps,omitempty"`

	HasSpear  bool `json:"hasSpear"`
	HasShield bool `json:"hasShield"`

	ShrinePosition *hexgrid.Point `json:"shrinePosition,omitempty"`
	StairsPosition *hexgrid.Point `json:"stairsPosition,omitempty"`
	SpearPosition  *hexgrid.Point `json:"spearPosition,omitempty"`
	ShieldPosition *hexgrid.Point `json:"shieldPosition,omitempty"`

	FloorTheme string `json:"floorTheme"`

	GameStatus GameStatus `json:"gameStatus"`

	Messages []Message `json:"messages,omitempty"`

	ActionLog  []ActionLogEntry  `json:"actionLog,omitempty"`
	CommandLog []CommandLogEntry `json:"commandLog,omitempty"`

	Events *events.Log `json:"events"`

	CompletedRun *RunSummary `json:"completedRun,omitempty"`
}

// ActionLogEntry is one verbatim external action, appended regardless of
// whether it was accepted.
type ActionLogEntry struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// CommandLogEntry is the reducer's derived command/delta record for one
// action.
type CommandLogEntry struct {
	Action ActionLogEntry         `json:"action"`
	Delta  map[string]interface{} `json:"delta,omitempty"`
}

// RunSummary is produced when the player reaches the final floor's stairs
// ( process_player_end_of_turn_rules, RUN_WON branch).
type RunSummary struct {
	Floor      int `json:"floor"`
	Kills      int `json:"kills"`
	TurnsSpent int `json:"turnsSpent"`
}

// AllActors returns player, enemies, and companions as one slice, in that
// order, for rosters that must be scanned uniformly (e.g. check_vitals).
func (s *GameState) AllActors() []*Actor {
	out := make([]*Actor, 0, 1+len(s.Enemies)+len(s.Companions))
	if s.Player != nil {
		out = append(out, s.Player)
	}
	out = append(out, s.Enemies...)
	out = append(out, s.Companions...)
	return out
}

// FindActor looks up an actor by id across player/enemies/companions.
func (s *GameState) FindActor(id string) *Actor {
	if s.Player != nil && s.Player.ID == id {
		return s.Player
	}
	for _, e := range s.Enemies {
		if e.ID == id {
			return e
		}
	}
	for _, c := range s.Companions {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Clone performs a structural, copy-on-write clone of the aggregate: new
// top-level slices/maps pointing at cloned sub-records, so any reducer call
// can mutate the returned state freely without touching the caller's
// retained handle to the previous state.
func (s *GameState) Clone() *GameState {
	out := *s
	if s.Player != nil {
		out.Player = s.Player.Clone()
	}
	out.Enemies = cloneActors(s.Enemies)
	out.Companions = cloneActors(s.Companions)
	out.Dying = cloneActors(s.Dying)
	out.Tiles = s.Tiles.Clone()
	if s.InitiativeQueue != nil {
		out.InitiativeQueue = s.InitiativeQueue.Clone()
	}
	out.PendingFrames = append([]PendingFrame{}, s.PendingFrames...)
	if s.PendingStatus != nil {
		ps := *s.PendingStatus
		out.PendingStatus = &ps
	}
	out.Upgrades = append([]Upgrade{}, s.Upgrades...)
	out.Traps = append([]Trap{}, s.Traps...)
	out.Messages = append([]Message{}, s.Messages...)
	out.ActionLog = append([]ActionLogEntry{}, s.ActionLog...)
	out.CommandLog = append([]CommandLogEntry{}, s.CommandLog...)
	if s.Events != nil {
		out.Events = s.Events.Clone()
	}
	return &out
}

func cloneActors(in []*Actor) []*Actor {
	out := make([]*Actor, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

package game

import (
	"fmt"
	"time"
)

// TurnPhase is the per-turn state machine. Complete is terminal for a turn
// instance; the next turn is a fresh object.
type TurnPhase int

const (
	WaitingForPlayer TurnPhase = iota
	Active
	Complete
)

func (p TurnPhase) String() string {
	switch p {
	case WaitingForPlayer:
		return "waiting for player"
	case Active:
		return "in progress"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// ActionRecord is one line of a turn's ledger.
type ActionRecord struct {
	ActionType string    `json:"action_type"`
	Details    string    `json:"details"`
	APCost     int       `json:"ap_cost"`
	Timestamp  time.Time `json:"timestamp"`
}

// Turn is one player's bounded opportunity to spend AP.
type Turn struct {
	Number       int            `json:"number"`
	ActivePlayer PlayerID       `json:"active_player"`
	Phase        TurnPhase      `json:"phase"`
	StartedAt    time.Time      `json:"started_at"`
	ActionsTaken []ActionRecord `json:"actions_taken"`
}

func NewTurn(number int, active PlayerID) *Turn {
	return &Turn{
		Number:       number,
		ActivePlayer: active,
		Phase:        WaitingForPlayer,
		StartedAt:    time.Now().UTC(),
	}
}

// Start enters the Active phase and restamps the start time.
func (t *Turn) Start() {
	t.Phase = Active
	t.StartedAt = time.Now().UTC()
}

func (t *Turn) CompleteNow() { t.Phase = Complete }

func (t *Turn) IsActive() bool { return t.Phase == Active }

// RecordAction appends one entry to the turn's ledger.
func (t *Turn) RecordAction(actionType, details string, apCost int) {
	t.ActionsTaken = append(t.ActionsTaken, ActionRecord{
		ActionType: actionType,
		Details:    details,
		APCost:     apCost,
		Timestamp:  time.Now().UTC(),
	})
}

// TurnManager sequences whose turn is live and archives finished ones.
type TurnManager struct {
	Current           *Turn  `json:"current_turn"`
	History           []Turn `json:"turn_history"`
	LastCompletedTurn int    `json:"last_completed_turn"`
}

func NewTurnManager() *TurnManager {
	return &TurnManager{Current: NewTurn(1, 0)}
}

// CanPlayerAct is true only for the active player of a non-complete turn.
func (tm *TurnManager) CanPlayerAct(p PlayerID) bool {
	return tm.Current.ActivePlayer == p && tm.Current.Phase != Complete
}

// AdvanceTurn archives the current turn (forcing Complete), flips the active
// player, and opens the next numbered turn in WaitingForPlayer.
func (tm *TurnManager) AdvanceTurn() {
	tm.Current.CompleteNow()
	tm.History = append(tm.History, *tm.Current)
	tm.LastCompletedTurn = tm.Current.Number

	next := tm.Current.ActivePlayer.Opponent()
	tm.Current = NewTurn(tm.Current.Number+1, next)
}

// CloseOut archives the current turn as Complete without opening a
// successor. Used when the campaign ends mid-turn.
func (tm *TurnManager) CloseOut() {
	tm.Current.CompleteNow()
	tm.History = append(tm.History, *tm.Current)
	tm.LastCompletedTurn = tm.Current.Number
}

// Summary is a one-line state description for logs and status output.
func (tm *TurnManager) Summary() string {
	t := tm.Current
	return fmt.Sprintf("Turn %d: %s (Player %d)", t.Number, t.Phase, t.ActivePlayer+1)
}

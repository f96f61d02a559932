package game

import "testing"

// TestAdvanceTurnFlipsPlayerAndIncrements verifies the two invariants of
// turn advancement: active player alternates and the number grows by one.
func TestAdvanceTurnFlipsPlayerAndIncrements(t *testing.T) {
	tm := NewTurnManager()

	if tm.Current.Number != 1 || tm.Current.ActivePlayer != 0 {
		t.Fatalf("fresh manager: turn %d player %d, want turn 1 player 0",
			tm.Current.Number, tm.Current.ActivePlayer)
	}

	for i := 0; i < 6; i++ {
		prevNumber := tm.Current.Number
		prevPlayer := tm.Current.ActivePlayer
		tm.AdvanceTurn()

		if tm.Current.Number != prevNumber+1 {
			t.Errorf("turn number = %d, want %d", tm.Current.Number, prevNumber+1)
		}
		if tm.Current.ActivePlayer != prevPlayer.Opponent() {
			t.Errorf("active player = %d, want %d", tm.Current.ActivePlayer, prevPlayer.Opponent())
		}
		if tm.Current.Phase != WaitingForPlayer {
			t.Errorf("new turn phase = %v, want WaitingForPlayer", tm.Current.Phase)
		}
	}

	if len(tm.History) != 6 {
		t.Errorf("history length = %d, want 6", len(tm.History))
	}
	for _, archived := range tm.History {
		if archived.Phase != Complete {
			t.Errorf("archived turn %d phase = %v, want Complete", archived.Number, archived.Phase)
		}
	}
	if tm.LastCompletedTurn != 6 {
		t.Errorf("last completed = %d, want 6", tm.LastCompletedTurn)
	}
}

// TestCanPlayerActOnlyForActivePlayer verifies the gate in every phase.
func TestCanPlayerActOnlyForActivePlayer(t *testing.T) {
	tm := NewTurnManager()

	if !tm.CanPlayerAct(0) {
		t.Error("active player denied in WaitingForPlayer phase")
	}
	if tm.CanPlayerAct(1) {
		t.Error("non-active player allowed in WaitingForPlayer phase")
	}

	tm.Current.Start()
	if !tm.CanPlayerAct(0) {
		t.Error("active player denied in Active phase")
	}
	if tm.CanPlayerAct(1) {
		t.Error("non-active player allowed in Active phase")
	}

	tm.Current.CompleteNow()
	if tm.CanPlayerAct(0) {
		t.Error("no one may act on a completed turn")
	}
	if tm.CanPlayerAct(1) {
		t.Error("non-active player allowed on a completed turn")
	}
}

// TestRecordAction keeps the per-turn ledger ordered.
func TestRecordAction(t *testing.T) {
	turn := NewTurn(1, 0)
	turn.RecordAction("Move", "Fleet moved to Sirius", MoveCost)
	turn.RecordAction("Scan", "Scanned Vega", ScanCost)

	if len(turn.ActionsTaken) != 2 {
		t.Fatalf("actions recorded = %d, want 2", len(turn.ActionsTaken))
	}
	if turn.ActionsTaken[0].ActionType != "Move" || turn.ActionsTaken[0].APCost != MoveCost {
		t.Errorf("first record = %+v, want Move at %d AP", turn.ActionsTaken[0], MoveCost)
	}
	if turn.ActionsTaken[1].ActionType != "Scan" {
		t.Errorf("second record = %+v, want Scan", turn.ActionsTaken[1])
	}
}

package game

import (
	"fmt"
	"testing"
)

// TestNewGameSetup: a fresh campaign reveals the starting sectors without
// granting ownership (capturing takes a command ship), and the first turn
// belongs to player 0.
func TestNewGameSetup(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")

	if g.Sectors[0].OwnedBy(0) || g.Sectors[7].OwnedBy(1) {
		t.Error("starting sectors should begin unowned")
	}
	if !g.Sectors[0].IsVisibleTo(0) || !g.Sectors[7].IsVisibleTo(1) {
		t.Error("starting sectors not revealed to their players")
	}
	if g.CurrentPlayer != 0 || g.TurnNumber != 1 {
		t.Errorf("turn %d / player %d, want turn 1 / player 0", g.TurnNumber, g.CurrentPlayer)
	}
	if g.Players[0].CurrentSector != 0 || g.Players[1].CurrentSector != 7 {
		t.Error("players not placed on their starting sectors")
	}
}

// TestOutOfTurnCommandRejected: player 1 cannot act during player 0's turn.
func TestOutOfTurnCommandRejected(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	wantRejection(t, g.ExecuteCommand(1, "move 5"), PermissionDenied)
}

// TestUnknownPlayerRejected.
func TestUnknownPlayerRejected(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	wantRejection(t, g.ExecuteCommand(7, "move 1"), NotFound)
}

// TestFirstCommandStartsTurnAndRefillsAP: the implicit turn start resets the
// active player's AP before the command spends from it.
func TestFirstCommandStartsTurnAndRefillsAP(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	g.Players[0].APRemaining = 3 // stale balance from a loaded save

	mustSucceed(t, g.ExecuteCommand(0, "move 1"))

	if got := g.Players[0].APRemaining; got != StartingAPCap-MoveCost {
		t.Errorf("ap remaining = %d, want %d", got, StartingAPCap-MoveCost)
	}
	if g.Turns.Current.Phase != Active {
		t.Errorf("turn phase = %v, want Active", g.Turns.Current.Phase)
	}
}

// TestEndTurnForfeitsAP: ending the turn zeroes the remaining balance and
// hands play to the opponent. Unspent AP does not carry over.
func TestEndTurnForfeitsAP(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	mustSucceed(t, g.ExecuteCommand(0, "move 1")) // 20 AP left

	if err := g.EndTurn(0); err != nil {
		t.Fatalf("end turn: %v", err)
	}
	if g.Players[0].APRemaining != 0 {
		t.Errorf("ap remaining = %d, want 0", g.Players[0].APRemaining)
	}
	if g.CurrentPlayer != 1 {
		t.Errorf("current player = %d, want 1", g.CurrentPlayer)
	}
	if g.TurnNumber != 2 {
		t.Errorf("turn number = %d, want 2", g.TurnNumber)
	}
}

// TestEndTurnOutOfTurnRejected.
func TestEndTurnOutOfTurnRejected(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	if err := g.EndTurn(1); err == nil || err.Kind != PermissionDenied {
		t.Fatalf("end turn by inactive player: err = %v", err)
	}
}

// TestExhaustingAPEndsTurn: the command that spends the last point advances
// the turn automatically.
func TestExhaustingAPEndsTurn(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	mustSucceed(t, g.ExecuteCommand(0, "scan 0"))
	g.Players[0].APRemaining = MoveCost

	res := mustSucceed(t, g.ExecuteCommand(0, "move 1"))
	if !res.TurnEnded {
		t.Error("result does not report the turn ending")
	}
	if g.CurrentPlayer != 1 {
		t.Errorf("current player = %d, want 1", g.CurrentPlayer)
	}
}

// TestForfeitIsTerminal: conceding ends the game for good.
func TestForfeitIsTerminal(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	if err := g.Forfeit(0); err != nil {
		t.Fatalf("forfeit: %v", err)
	}
	if !g.GameOver {
		t.Fatal("game not over after forfeit")
	}
	if err := g.Forfeit(1); err == nil {
		t.Error("second forfeit accepted after game over")
	}
	wantRejection(t, g.ExecuteCommand(0, "scan 0"), PermissionDenied)

	// Both players still alive, so there is no combat winner.
	if g.Winner() != nil {
		t.Error("forfeit with both players alive should leave no winner")
	}

	// The conceded turn is archived like any other finished turn.
	if tm := g.Turns; len(tm.History) != 1 || tm.History[0].Phase != Complete {
		t.Error("forfeited turn missing from history")
	}
}

// TestProcessCycleRegeneratesAPUpToCap.
func TestProcessCycleRegeneratesAPUpToCap(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	g.Players[0].APRemaining = 2
	g.Players[1].APRemaining = StartingAPCap - 1

	g.ProcessCycle()

	if got := g.Players[0].APRemaining; got != 2+CycleAPRegen {
		t.Errorf("player 0 ap = %d, want %d", got, 2+CycleAPRegen)
	}
	if got := g.Players[1].APRemaining; got != StartingAPCap {
		t.Errorf("player 1 ap = %d, want cap %d", got, StartingAPCap)
	}
	if g.CycleNumber != 1 {
		t.Errorf("cycle number = %d, want 1", g.CycleNumber)
	}
}

// TestSectorDistance walks the tactical map: self, neighbor, the long
// diagonal between the two command bases.
func TestSectorDistance(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")

	cases := []struct {
		from, to SectorID
		want     int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 4, 2},
		{0, 7, 4},
	}
	for _, c := range cases {
		if got := g.SectorDistance(c.from, c.to); got != c.want {
			t.Errorf("distance %d->%d = %d, want %d", c.from, c.to, got, c.want)
		}
	}
}

// TestSectorDistanceUnreachable: an island sector yields the sentinel, and a
// move toward it is rejected rather than crashing or looping.
func TestSectorDistanceUnreachable(t *testing.T) {
	m := GalaxyMap{
		Name: "Split",
		Sectors: []Sector{
			NewSector(0, "West", []SectorID{1}),
			NewSector(1, "East", []SectorID{0}),
			NewSector(2, "Island", nil),
		},
		Starts: [2]SectorID{0, 1},
	}
	g := NewGame(m, "Cassia", "Darrow")

	if got := g.SectorDistance(0, 2); got != Unreachable {
		t.Errorf("distance to island = %d, want Unreachable", got)
	}
	wantRejection(t, g.ExecuteCommand(0, "move 2"), InvalidTarget)
	wantRejection(t, g.ExecuteCommand(0, "scan 2"), InvalidTarget)
}

// TestControlledSectors counts only the asked-for player's holdings. Nothing
// is owned at the start, so captures are the whole tally.
func TestControlledSectors(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	if got := len(g.ControlledSectors(0)); got != 0 {
		t.Errorf("player 0 controls %d sectors at start, want 0", got)
	}

	g.Sectors[3].Capture(0)
	g.Sectors[1].Capture(0)
	g.Sectors[5].Capture(1)

	if got := len(g.ControlledSectors(0)); got != 2 {
		t.Errorf("player 0 controls %d sectors, want 2", got)
	}
	if got := len(g.ControlledSectors(1)); got != 1 {
		t.Errorf("player 1 controls %d sectors, want 1", got)
	}
}

// TestTurnAlternationAcrossGame drives several full turns and checks the
// mirrors kept for serialization stay in sync with the turn manager.
func TestTurnAlternationAcrossGame(t *testing.T) {
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	for i := 0; i < 5; i++ {
		active := g.CurrentPlayer
		here := g.Players[active].CurrentSector
		mustSucceed(t, g.ExecuteCommand(active, fmt.Sprintf("scan %d", here)))
		if err := g.EndTurn(active); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
	if g.TurnNumber != 6 {
		t.Errorf("turn number = %d, want 6", g.TurnNumber)
	}
	if g.TurnNumber != g.Turns.Current.Number || g.CurrentPlayer != g.Turns.Current.ActivePlayer {
		t.Error("serialized mirrors out of sync with turn manager")
	}
}

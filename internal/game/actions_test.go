package game

import (
	"strings"
	"testing"
)

// newTestGame starts both players on the tactical map and opens player 0's
// turn so commands run without the implicit turn-start bookkeeping.
func newTestGame(t *testing.T) *GameState {
	t.Helper()
	g := NewGame(TacticalMap(), "Cassia", "Darrow")
	return g
}

func mustSucceed(t *testing.T, res CommandResult) CommandResult {
	t.Helper()
	if !res.Success {
		t.Fatalf("command failed: %s", res.Message)
	}
	return res
}

func wantRejection(t *testing.T, res CommandResult, kind ErrorKind) {
	t.Helper()
	if res.Success {
		t.Fatalf("command unexpectedly succeeded: %s", res.Message)
	}
	if res.Err == nil {
		t.Fatal("rejected result carries no error")
	}
	if res.Err.Kind != kind {
		t.Fatalf("error kind = %v, want %v (%s)", res.Err.Kind, kind, res.Err.Reason)
	}
	if res.APSpent != 0 {
		t.Fatalf("rejected command spent %d AP, want 0", res.APSpent)
	}
}

// TestMoveToAdjacentSector covers the §8 scenario: move A→B costs 5 AP,
// grants 10 XP, relocates the fleet, reveals the destination, and logs
// exactly one event.
func TestMoveToAdjacentSector(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]
	eventsBefore := len(g.EventLog)

	res := mustSucceed(t, g.ExecuteCommand(0, "move 1"))

	if res.APSpent != MoveCost {
		t.Errorf("ap spent = %d, want %d", res.APSpent, MoveCost)
	}
	if p.APRemaining != p.APCap-MoveCost {
		t.Errorf("ap remaining = %d, want %d", p.APRemaining, p.APCap-MoveCost)
	}
	if p.CurrentSector != 1 {
		t.Errorf("current sector = %d, want 1", p.CurrentSector)
	}
	if !g.Sectors[1].IsVisibleTo(0) {
		t.Error("destination not revealed to mover")
	}
	if p.Experience != XPMove {
		t.Errorf("experience = %d, want %d", p.Experience, XPMove)
	}
	if got := len(g.EventLog) - eventsBefore; got != 1 {
		t.Errorf("event log grew by %d entries, want 1", got)
	}
}

// TestMoveNonAdjacentRejected: a non-adjacent move is InvalidTarget no matter
// how much AP the player has.
func TestMoveNonAdjacentRejected(t *testing.T) {
	g := newTestGame(t)
	// Sector 7 is the far corner of the tactical map.
	res := g.ExecuteCommand(0, "move 7")
	wantRejection(t, res, InvalidTarget)

	if g.Players[0].CurrentSector != 0 {
		t.Error("failed move relocated the player")
	}
	if g.Players[0].APRemaining != g.Players[0].APCap {
		t.Error("failed move spent AP")
	}
}

// TestMoveUnknownSectorRejected: ids past the map edge are NotFound.
func TestMoveUnknownSectorRejected(t *testing.T) {
	g := newTestGame(t)
	wantRejection(t, g.ExecuteCommand(0, "move 99"), NotFound)
}

// TestMoveWithoutCommandShipDoesNotCapture covers the §8 scenario: entering
// an unowned sector without a command-capable ship leaves it unowned.
func TestMoveWithoutCommandShipDoesNotCapture(t *testing.T) {
	g := newTestGame(t)
	mustSucceed(t, g.ExecuteCommand(0, "move 1"))

	if g.Sectors[1].Owner != nil {
		t.Errorf("sector 1 owner = %v, want none", *g.Sectors[1].Owner)
	}
}

// TestMoveWithCommandShipAutoCaptures: with a command ship aboard, entering
// an unowned sector captures it and pays the capture XP.
func TestMoveWithCommandShipAutoCaptures(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Fleet.Add(CommandShip, 1)

	mustSucceed(t, g.ExecuteCommand(0, "move 1"))

	if !g.Sectors[1].OwnedBy(0) {
		t.Fatal("sector 1 not captured")
	}
	if want := XPMove + XPCapture; g.Players[0].Experience != want {
		t.Errorf("experience = %d, want %d", g.Players[0].Experience, want)
	}
}

// TestAttackRequiresSharedSector: the players begin at opposite corners, so
// an immediate attack finds no target.
func TestAttackRequiresSharedSector(t *testing.T) {
	g := newTestGame(t)
	wantRejection(t, g.ExecuteCommand(0, "attack"), InvalidTarget)
}

// TestAttackDealsBaseDamage covers the §8 scenario: a level-1 attack deals
// exactly the base 10 damage and does not end the game.
func TestAttackDealsBaseDamage(t *testing.T) {
	g := newTestGame(t)
	g.Players[1].CurrentSector = g.Players[0].CurrentSector

	mustSucceed(t, g.ExecuteCommand(0, "attack"))

	if g.Players[1].Health != StartingHealth-BaseDamage {
		t.Errorf("defender health = %d, want %d", g.Players[1].Health, StartingHealth-BaseDamage)
	}
	if g.GameOver {
		t.Error("game over after a non-lethal attack")
	}
}

// TestLethalAttackEndsGame: reducing the defender to 0 HP sets the terminal
// game-over flag and awards the kill bonus.
func TestLethalAttackEndsGame(t *testing.T) {
	g := newTestGame(t)
	g.Players[1].CurrentSector = g.Players[0].CurrentSector
	g.Players[1].Health = BaseDamage // exactly lethal at level 1

	res := mustSucceed(t, g.ExecuteCommand(0, "attack"))

	if !g.GameOver {
		t.Fatal("game over flag not set")
	}
	if g.Players[1].IsAlive() {
		t.Error("defender still alive at 0 HP")
	}
	if !strings.Contains(res.Message, "defeated") {
		t.Errorf("message %q does not announce the defeat", res.Message)
	}
	// 225 XP at level 1 consumes the 100-XP threshold on promotion.
	if p := g.Players[0]; p.Level != 2 || p.Experience != XPAttack+XPKillBonus-XPThreshold(1) {
		t.Errorf("attacker at level %d with %d XP, want level 2 with %d XP",
			p.Level, p.Experience, XPAttack+XPKillBonus-XPThreshold(1))
	}

	// Terminal: every later command is rejected and the flag stays set.
	after := g.ExecuteCommand(1, "scan 7")
	wantRejection(t, after, PermissionDenied)
	if !g.GameOver {
		t.Error("game over flag cleared by a later command")
	}
	if winner := g.Winner(); winner == nil || winner.ID != 0 {
		t.Error("winner should be player 0")
	}

	// The killing turn joins the history so it can be archived.
	tm := g.Turns
	if len(tm.History) == 0 || tm.History[len(tm.History)-1].Phase != Complete {
		t.Fatal("final turn missing from history")
	}
	if last := tm.History[len(tm.History)-1]; len(last.ActionsTaken) != 1 || last.ActionsTaken[0].ActionType != "attack" {
		t.Errorf("final turn ledger = %+v, want the lethal attack", last.ActionsTaken)
	}
}

// TestScanWithinRange reveals the sector and reports without mutating
// ownership.
func TestScanWithinRange(t *testing.T) {
	g := newTestGame(t)

	res := mustSucceed(t, g.ExecuteCommand(0, "scan 2"))

	if !g.Sectors[2].IsVisibleTo(0) {
		t.Error("scanned sector not revealed")
	}
	if g.Sectors[2].Owner != nil {
		t.Error("scan changed ownership")
	}
	if res.APSpent != ScanCost {
		t.Errorf("ap spent = %d, want %d", res.APSpent, ScanCost)
	}
}

// TestScanOutOfRange: two hops away needs the level-5 bonus.
func TestScanOutOfRange(t *testing.T) {
	g := newTestGame(t)
	// Sector 4 is two hops from sector 0 on the tactical map.
	wantRejection(t, g.ExecuteCommand(0, "scan 4"), InvalidTarget)

	g.Players[0].Level = 5
	mustSucceed(t, g.ExecuteCommand(0, "scan 4"))
}

// TestScanCurrentSector: distance zero is always in range.
func TestScanCurrentSector(t *testing.T) {
	g := newTestGame(t)
	mustSucceed(t, g.ExecuteCommand(0, "scan 0"))
}

// TestBuildRequiresOwnership walks Build through its three rejections and
// then its success path.
func TestBuildRequiresOwnership(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]

	// Not owned yet.
	wantRejection(t, g.ExecuteCommand(0, "build"), PermissionDenied)

	g.Sectors[p.CurrentSector].Capture(0)
	mustSucceed(t, g.ExecuteCommand(0, "build"))
	if !g.Sectors[p.CurrentSector].Outpost {
		t.Fatal("outpost not built")
	}

	// Second build on the same sector.
	wantRejection(t, g.ExecuteCommand(0, "build"), AlreadyInState)
}

// TestReinforceLevelGate: below level 3 the action is PermissionDenied before
// its own validation runs.
func TestReinforceLevelGate(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Health = 50

	wantRejection(t, g.ExecuteCommand(0, "reinforce"), PermissionDenied)

	g.Players[0].Level = 3
	mustSucceed(t, g.ExecuteCommand(0, "reinforce"))
	if g.Players[0].Health != 50+ReinforceHeal {
		t.Errorf("health = %d, want %d", g.Players[0].Health, 50+ReinforceHeal)
	}
}

// TestReinforceAtFullHealth is AlreadyInState.
func TestReinforceAtFullHealth(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Level = 3
	g.Players[0].Health = g.Players[0].MaxHealth()
	wantRejection(t, g.ExecuteCommand(0, "reinforce"), AlreadyInState)
}

// TestSabotageClearsEnemyOutpost: standing in an enemy-owned sector with an
// outpost, a level-5 player can clear it.
func TestSabotageClearsEnemyOutpost(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]
	p.Level = 5
	g.Sectors[p.CurrentSector].Capture(1)
	g.Sectors[p.CurrentSector].Outpost = true

	mustSucceed(t, g.ExecuteCommand(0, "sabotage"))
	if g.Sectors[p.CurrentSector].Outpost {
		t.Error("outpost survived sabotage")
	}
}

// TestSabotageNeedsEnemyOutpost rejects when the sector has no outpost or the
// outpost is the player's own.
func TestSabotageNeedsEnemyOutpost(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]
	p.Level = 5

	wantRejection(t, g.ExecuteCommand(0, "sabotage"), InvalidTarget)

	g.Sectors[p.CurrentSector].Capture(0)
	g.Sectors[p.CurrentSector].Outpost = true
	wantRejection(t, g.ExecuteCommand(0, "sabotage"), InvalidTarget)
}

// TestOrbitalStrikeNeedsVisibility: striking an unscanned sector is rejected;
// after a scan it goes through, with XP granted even on a miss.
func TestOrbitalStrikeNeedsVisibility(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]
	p.Level = 7

	wantRejection(t, g.ExecuteCommand(0, "strike 2"), InvalidTarget)

	mustSucceed(t, g.ExecuteCommand(0, "scan 2"))
	xpBefore := p.Experience
	res := mustSucceed(t, g.ExecuteCommand(0, "strike 2"))

	if !strings.Contains(res.Message, "empty space") {
		t.Errorf("message %q should report a miss", res.Message)
	}
	if p.Experience != xpBefore+XPOrbitalStrike {
		t.Errorf("experience = %d, want %d (granted for the attempt)", p.Experience, xpBefore+XPOrbitalStrike)
	}
	if g.Players[1].Health != StartingHealth {
		t.Error("miss damaged the defender")
	}
}

// TestOrbitalStrikeHitsOccupiedSector applies the fixed ranged damage and can
// end the game.
func TestOrbitalStrikeHitsOccupiedSector(t *testing.T) {
	g := newTestGame(t)
	p := g.Players[0]
	p.Level = 7
	p.APCap = 100 // room for two strikes in one turn
	g.Players[1].CurrentSector = 2
	mustSucceed(t, g.ExecuteCommand(0, "scan 2"))

	mustSucceed(t, g.ExecuteCommand(0, "strike 2"))
	if g.Players[1].Health != StartingHealth-StrikeDamage {
		t.Errorf("defender health = %d, want %d", g.Players[1].Health, StartingHealth-StrikeDamage)
	}

	g.Players[1].Health = StrikeDamage
	mustSucceed(t, g.ExecuteCommand(0, "strike 2"))
	if !g.GameOver {
		t.Error("lethal strike did not end the game")
	}
}

// TestInsufficientAPRejected: cost gating happens before validation and
// deducts nothing.
func TestInsufficientAPRejected(t *testing.T) {
	g := newTestGame(t)
	g.ExecuteCommand(0, "scan 0") // start the turn
	g.Players[0].APRemaining = MoveCost - 1

	res := g.ExecuteCommand(0, "move 1")
	wantRejection(t, res, InsufficientResource)
	if g.Players[0].APRemaining != MoveCost-1 {
		t.Error("rejected command changed AP")
	}
}

// TestParseRejections: unknown verbs and malformed arguments are refused
// before validation.
func TestParseRejections(t *testing.T) {
	g := newTestGame(t)

	cases := []struct {
		input string
		kind  ErrorKind
	}{
		{"", NotFound},
		{"warpjump 3", NotFound},
		{"move", InvalidTarget},
		{"move one", InvalidTarget},
		{"move 1 2", InvalidTarget},
		{"scan", InvalidTarget},
		{"scan -4", InvalidTarget},
		{"attack 1", InvalidTarget},
		{"strike", InvalidTarget},
	}
	for _, c := range cases {
		res := g.ExecuteCommand(0, c.input)
		if res.Success {
			t.Errorf("input %q unexpectedly succeeded", c.input)
			continue
		}
		if res.Err.Kind != c.kind {
			t.Errorf("input %q: kind = %v, want %v", c.input, res.Err.Kind, c.kind)
		}
	}
}

// TestVerbsAreCaseInsensitive follows the input surface contract.
func TestVerbsAreCaseInsensitive(t *testing.T) {
	g := newTestGame(t)
	mustSucceed(t, g.ExecuteCommand(0, "MOVE 1"))
}

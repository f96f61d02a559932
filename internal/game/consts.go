package game

// Action point costs.
const (
	MoveCost          = 5
	AttackCost        = 8
	ScanCost          = 3
	BuildCost         = 10
	ReinforceCost     = 15 // level 3+
	SabotageCost      = 12 // level 5+
	OrbitalStrikeCost = 20 // level 7+
)

// Experience rewards.
const (
	XPMove          = 10
	XPAttack        = 25
	XPScan          = 5
	XPBuild         = 30
	XPCapture       = 50
	XPReinforce     = 15
	XPSabotage      = 40
	XPOrbitalStrike = 50
	XPKillBonus     = 200
)

const (
	StartingHealth = 100
	StartingAPCap  = 25
	BaseDamage     = 10
	StrikeDamage   = 30
	ReinforceHeal  = 20

	MaxLevel = 10

	// AP regained on each wall-clock regeneration cycle, clamped to the
	// player's cap. Cycles are independent of turns.
	CycleAPRegen = 5
)

// XPThreshold returns the experience required to advance past level.
func XPThreshold(level int) int { return level * 100 }

package game

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// PlayerID is 0 or 1.
type PlayerID int

// Opponent returns the other seat.
func (p PlayerID) Opponent() PlayerID { return 1 - p }

// Hasher turns a secret into its stored form. Swappable so the credential
// scheme is not welded to one algorithm.
type Hasher func(secret string) string

// SHA256Hex is the default credential hasher.
func SHA256Hex(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Player is one commander's mutable state.
type Player struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	Health        int      `json:"health"`
	APCap         int      `json:"ap_cap"`
	APRemaining   int      `json:"ap_remaining"`
	CurrentSector SectorID `json:"current_sector"`
	Level         int      `json:"level"`
	Experience    int      `json:"experience"`
	Rank          string   `json:"rank"`
	Fleet         Fleet    `json:"fleet"`
	PasswordHash  string   `json:"password_hash,omitempty"`

	hash Hasher
}

func NewPlayer(id PlayerID, name string, start SectorID) *Player {
	return &Player{
		ID:            id,
		Name:          name,
		Health:        StartingHealth,
		APCap:         StartingAPCap,
		APRemaining:   StartingAPCap,
		CurrentSector: start,
		Level:         1,
		Rank:          rankFor(1),
		Fleet:         NewStarterFleet(),
	}
}

func (p *Player) hasher() Hasher {
	if p.hash != nil {
		return p.hash
	}
	return SHA256Hex
}

// SetHasher overrides the credential hasher. Zero value uses SHA-256.
func (p *Player) SetHasher(h Hasher) { p.hash = h }

func (p *Player) SetPassword(secret string) {
	p.PasswordHash = p.hasher()(secret)
}

// VerifyPassword compares a candidate secret against the stored hash.
// No stored hash means open access; that is the documented policy, not
// an oversight.
func (p *Player) VerifyPassword(secret string) bool {
	if p.PasswordHash == "" {
		return true
	}
	candidate := p.hasher()(secret)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(p.PasswordHash)) == 1
}

// HasPassword reports whether turn access is gated at all.
func (p *Player) HasPassword() bool { return p.PasswordHash != "" }

// ResetAP refills action points to the cap. Called once per turn start.
func (p *Player) ResetAP() { p.APRemaining = p.APCap }

// CanPerform reports whether the player has AP for an action of the given cost.
func (p *Player) CanPerform(cost int) bool { return p.APRemaining >= cost }

func (p *Player) spendAP(cost int) { p.APRemaining -= cost }

// TakeDamage reduces health, flooring at zero.
func (p *Player) TakeDamage(amount int) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

func (p *Player) IsAlive() bool { return p.Health > 0 }

// MaxHealth is the level-scaled health ceiling used by Reinforce.
func (p *Player) MaxHealth() int { return StartingHealth + (p.Level-1)*20 }

// Heal restores health up to MaxHealth and returns the amount actually healed.
func (p *Player) Heal(amount int) int {
	before := p.Health
	p.Health += amount
	if cap := p.MaxHealth(); p.Health > cap {
		p.Health = cap
	}
	return p.Health - before
}

// GainExperience adds XP and resolves any level-ups immediately. A single
// large grant behaves the same as the equivalent series of smaller grants.
func (p *Player) GainExperience(amount int) {
	p.Experience += amount
	p.checkLevelUp()
}

// checkLevelUp consumes thresholds while they are met, one level at a time.
// At MaxLevel the loop stops: excess experience is retained but inert, which
// is deliberate upstream behavior.
func (p *Player) checkLevelUp() {
	for p.Level < MaxLevel && p.Experience >= XPThreshold(p.Level) {
		p.Experience -= XPThreshold(p.Level)
		p.Level++
		p.Rank = rankFor(p.Level)
		p.applyLevelBonus()
	}
}

var ranks = [MaxLevel + 1]string{
	"", // levels start at 1
	"Legionnaire",
	"Centurion",
	"Tribune",
	"Prefect",
	"Legate",
	"Praetor",
	"Consul",
	"Imperator",
	"Sovereign",
	"Archsovereign",
}

func rankFor(level int) string {
	if level < 1 || level > MaxLevel {
		return "Unknown"
	}
	return ranks[level]
}

// applyLevelBonus grants the one-time reward for reaching the current level.
func (p *Player) applyLevelBonus() {
	switch p.Level {
	case 2:
		p.APCap += 3
		p.Fleet.Add(Scout, 1)
	case 3:
		p.Health += 20
		p.Fleet.Add(Frigate, 1)
	case 4:
		p.APCap += 3
		p.Fleet.Add(CommandShip, 1) // first command ship
	case 5:
		p.Health += 20
		p.Fleet.Add(Destroyer, 1)
		p.Fleet.Add(Scout, 1)
	case 6:
		p.APCap += 4
		p.Fleet.Add(Frigate, 2)
	case 7:
		p.Health += 30
		p.Fleet.Add(CommandShip, 1)
		p.Fleet.Add(Destroyer, 1)
	case 8:
		p.APCap += 4
		p.Fleet.Add(Frigate, 2)
		p.Fleet.Add(Destroyer, 1)
	case 9:
		p.Health += 30
		p.Fleet.Add(CommandShip, 1)
		p.Fleet.Add(Destroyer, 2)
	case 10:
		p.APCap += 5
		p.Health += 50
		p.Fleet.Add(Scout, 2)
		p.Fleet.Add(Frigate, 3)
		p.Fleet.Add(Destroyer, 2)
		p.Fleet.Add(CommandShip, 1)
	}
}

// DamageBonus is the level-based bonus added to base attack damage.
func (p *Player) DamageBonus() int {
	switch {
	case p.Level <= 2:
		return 0
	case p.Level <= 4:
		return 2
	case p.Level <= 6:
		return 5
	case p.Level <= 8:
		return 8
	default:
		return 12
	}
}

// ScanRangeBonus extends scan reach by one hop at level 5+.
func (p *Player) ScanRangeBonus() int {
	if p.Level >= 5 {
		return 1
	}
	return 0
}

// CanCaptureSector reports whether the player's fleet can take ownership
// of a sector.
func (p *Player) CanCaptureSector() bool { return p.Fleet.CanCaptureSectors() }

// Title is the rank-qualified display name.
func (p *Player) Title() string { return p.Rank + " " + p.Name }

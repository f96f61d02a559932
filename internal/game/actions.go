package game

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind tags the seven player actions.
type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdAttack
	CmdScan
	CmdBuild
	CmdReinforce
	CmdSabotage
	CmdOrbitalStrike
)

// Command is a parsed, tagged action. Only the fields its kind uses are set.
type Command struct {
	Kind   CommandKind
	From   SectorID // Move
	To     SectorID // Move
	Sector SectorID // Scan, Build, Sabotage, OrbitalStrike
	Target PlayerID // Attack, OrbitalStrike
}

// actionSpec binds one command kind to its cost, gate, validation predicate,
// and effect. Execute runs only after validate passes; it must not fail.
type actionSpec struct {
	name          string
	cost          int
	requiredLevel int
	validate      func(g *GameState, p *Player, c Command) *CommandError
	execute       func(g *GameState, p *Player, c Command) string
}

var actionTable = map[CommandKind]actionSpec{
	CmdMove: {
		name: "Move", cost: MoveCost, requiredLevel: 1,
		validate: validateMove, execute: executeMove,
	},
	CmdAttack: {
		name: "Attack", cost: AttackCost, requiredLevel: 1,
		validate: validateAttack, execute: executeAttack,
	},
	CmdScan: {
		name: "Scan", cost: ScanCost, requiredLevel: 1,
		validate: validateScan, execute: executeScan,
	},
	CmdBuild: {
		name: "Build", cost: BuildCost, requiredLevel: 1,
		validate: validateBuild, execute: executeBuild,
	},
	CmdReinforce: {
		name: "Reinforce", cost: ReinforceCost, requiredLevel: 3,
		validate: validateReinforce, execute: executeReinforce,
	},
	CmdSabotage: {
		name: "Sabotage", cost: SabotageCost, requiredLevel: 5,
		validate: validateSabotage, execute: executeSabotage,
	},
	CmdOrbitalStrike: {
		name: "Orbital Strike", cost: OrbitalStrikeCost, requiredLevel: 7,
		validate: validateOrbitalStrike, execute: executeOrbitalStrike,
	},
}

// ActionCost exposes the declared AP cost of a command kind.
func ActionCost(k CommandKind) int { return actionTable[k].cost }

// RequiredLevel exposes the level gate of a command kind.
func RequiredLevel(k CommandKind) int { return actionTable[k].requiredLevel }

// ParseCommand turns a `<verb> [args...]` line into a tagged Command.
// Unknown verbs and malformed arguments are rejected here, before any
// validation or mutation.
func ParseCommand(input string, g *GameState, pid PlayerID) (Command, *CommandError) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{}, errNotFound("no action specified")
	}
	player, cerr := g.Player(pid)
	if cerr != nil {
		return Command{}, cerr
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]
	switch verb {
	case "move":
		if len(args) != 1 {
			return Command{}, errInvalidTarget("usage: move <sector-id>")
		}
		to, err := parseSectorID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdMove, From: player.CurrentSector, To: to}, nil
	case "attack":
		if len(args) != 0 {
			return Command{}, errInvalidTarget("usage: attack")
		}
		return Command{Kind: CmdAttack, Target: pid.Opponent()}, nil
	case "scan":
		if len(args) != 1 {
			return Command{}, errInvalidTarget("usage: scan <sector-id>")
		}
		sector, err := parseSectorID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdScan, Sector: sector}, nil
	case "build":
		if len(args) != 0 {
			return Command{}, errInvalidTarget("usage: build")
		}
		return Command{Kind: CmdBuild, Sector: player.CurrentSector}, nil
	case "reinforce":
		if len(args) != 0 {
			return Command{}, errInvalidTarget("usage: reinforce")
		}
		return Command{Kind: CmdReinforce}, nil
	case "sabotage":
		if len(args) != 0 {
			return Command{}, errInvalidTarget("usage: sabotage")
		}
		return Command{Kind: CmdSabotage, Sector: player.CurrentSector}, nil
	case "strike":
		if len(args) != 1 {
			return Command{}, errInvalidTarget("usage: strike <sector-id>")
		}
		sector, err := parseSectorID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdOrbitalStrike, Sector: sector, Target: pid.Opponent()}, nil
	}
	return Command{}, errNotFound("unknown action: %s", verb)
}

func parseSectorID(raw string) (SectorID, *CommandError) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errInvalidTarget("invalid sector id: %q", raw)
	}
	return SectorID(n), nil
}

/* -------------------------------- Move -------------------------------- */

func validateMove(g *GameState, p *Player, c Command) *CommandError {
	if _, cerr := g.Sector(c.To); cerr != nil {
		return cerr
	}
	if p.CurrentSector != c.From {
		return errInvalidTarget("you are not in sector %d", c.From)
	}
	if !g.Sectors[c.From].IsAdjacent(c.To) {
		return errInvalidTarget("sector %d is not adjacent to your current location", c.To)
	}
	return nil
}

func executeMove(g *GameState, p *Player, c Command) string {
	dest := &g.Sectors[c.To]
	p.CurrentSector = c.To
	dest.Reveal(p.ID)
	p.GainExperience(XPMove)

	msg := fmt.Sprintf("Fleet moved to %s (+%d XP)", dest.Name, XPMove)
	g.LogEvent("%s moved fleet to %s", p.Title(), dest.Name)

	if dest.Owner == nil && p.CanCaptureSector() {
		dest.Capture(p.ID)
		p.GainExperience(XPCapture)
		msg += fmt.Sprintf("\nSector captured! (+%d XP)", XPCapture)
		g.LogEvent("%s captured %s", p.Title(), dest.Name)
	}
	return msg
}

/* ------------------------------- Attack ------------------------------- */

func validateAttack(g *GameState, p *Player, c Command) *CommandError {
	if c.Target == p.ID {
		return errInvalidTarget("cannot attack yourself")
	}
	defender, cerr := g.Player(c.Target)
	if cerr != nil {
		return cerr
	}
	if defender.CurrentSector != p.CurrentSector {
		return errInvalidTarget("no enemy fleet in this sector")
	}
	if !defender.IsAlive() {
		return errInvalidTarget("target is already defeated")
	}
	return nil
}

func executeAttack(g *GameState, p *Player, c Command) string {
	defender := g.Players[c.Target]
	damage := BaseDamage + p.DamageBonus()
	defender.TakeDamage(damage)
	p.GainExperience(XPAttack)

	msg := fmt.Sprintf("Attacked %s for %d damage! (+%d XP)", defender.Name, damage, XPAttack)
	if !defender.IsAlive() {
		p.GainExperience(XPKillBonus)
		g.GameOver = true
		msg += fmt.Sprintf("\n%s has been defeated! (+%d XP)", defender.Name, XPKillBonus)
		g.LogEvent("%s destroyed %s's fleet. Victory!", p.Title(), defender.Name)
	} else {
		msg += fmt.Sprintf("\n%s health: %d HP", defender.Name, defender.Health)
		g.LogEvent("%s attacked %s for %d damage", p.Title(), defender.Name, damage)
	}
	return msg
}

/* -------------------------------- Scan -------------------------------- */

func validateScan(g *GameState, p *Player, c Command) *CommandError {
	if _, cerr := g.Sector(c.Sector); cerr != nil {
		return cerr
	}
	maxRange := 1 + p.ScanRangeBonus()
	if dist := g.SectorDistance(p.CurrentSector, c.Sector); dist > maxRange {
		return errInvalidTarget("sector %d is out of scan range (max range: %d)", c.Sector, maxRange)
	}
	return nil
}

func executeScan(g *GameState, p *Player, c Command) string {
	sector := &g.Sectors[c.Sector]
	sector.Reveal(p.ID)
	p.GainExperience(XPScan)

	var b strings.Builder
	fmt.Fprintf(&b, "Scanned %s (+%d XP)\n", sector.Name, XPScan)
	switch {
	case sector.OwnedBy(p.ID):
		b.WriteString("Status: under your control\n")
		if sector.Outpost {
			b.WriteString("Outpost: present\n")
		}
	case sector.Owner != nil:
		fmt.Fprintf(&b, "Controlled by: %s\n", g.Players[*sector.Owner].Name)
		if sector.Outpost {
			b.WriteString("Enemy outpost: detected\n")
		}
	default:
		b.WriteString("Uncontrolled sector\n")
	}
	for i := range g.Players {
		enemy := g.Players[i]
		if enemy.ID != p.ID && enemy.CurrentSector == c.Sector {
			fmt.Fprintf(&b, "Enemy fleet detected: %s\n", enemy.Name)
		}
	}
	g.LogEvent("%s scanned %s", p.Title(), sector.Name)
	return strings.TrimRight(b.String(), "\n")
}

/* -------------------------------- Build ------------------------------- */

func validateBuild(g *GameState, p *Player, c Command) *CommandError {
	if p.CurrentSector != c.Sector {
		return errInvalidTarget("you must be in a sector to build an outpost there")
	}
	sector := &g.Sectors[c.Sector]
	if !sector.OwnedBy(p.ID) {
		return errPermission("you must control the sector to build an outpost")
	}
	if sector.Outpost {
		return errAlready("this sector already has an outpost")
	}
	return nil
}

func executeBuild(g *GameState, p *Player, c Command) string {
	sector := &g.Sectors[c.Sector]
	sector.Outpost = true
	p.GainExperience(XPBuild)
	g.LogEvent("%s built an outpost at %s", p.Title(), sector.Name)
	return fmt.Sprintf("Outpost constructed at %s (+%d XP)", sector.Name, XPBuild)
}

/* ----------------------------- Reinforce ------------------------------ */

func validateReinforce(g *GameState, p *Player, c Command) *CommandError {
	if p.Health >= p.MaxHealth() {
		return errAlready("already at full health")
	}
	return nil
}

func executeReinforce(g *GameState, p *Player, c Command) string {
	healed := p.Heal(ReinforceHeal)
	p.GainExperience(XPReinforce)
	g.LogEvent("%s reinforced their fleet", p.Title())
	return fmt.Sprintf("Fleet reinforced! Healed %d HP (now at %d HP) (+%d XP)",
		healed, p.Health, XPReinforce)
}

/* ------------------------------ Sabotage ------------------------------ */

func validateSabotage(g *GameState, p *Player, c Command) *CommandError {
	sector := &g.Sectors[c.Sector]
	enemy := p.ID.Opponent()
	if !sector.OwnedBy(enemy) || !sector.Outpost {
		return errInvalidTarget("no enemy outpost in this sector to sabotage")
	}
	return nil
}

func executeSabotage(g *GameState, p *Player, c Command) string {
	sector := &g.Sectors[c.Sector]
	sector.Outpost = false
	p.GainExperience(XPSabotage)
	g.LogEvent("%s sabotaged the outpost at %s", p.Title(), sector.Name)
	return fmt.Sprintf("Enemy outpost at %s destroyed! (+%d XP)", sector.Name, XPSabotage)
}

/* --------------------------- Orbital Strike --------------------------- */

func validateOrbitalStrike(g *GameState, p *Player, c Command) *CommandError {
	sector, cerr := g.Sector(c.Sector)
	if cerr != nil {
		return cerr
	}
	if !sector.IsVisibleTo(p.ID) {
		return errInvalidTarget("invalid target - must be a scanned sector")
	}
	return nil
}

// executeOrbitalStrike grants XP even when the strike hits empty space: the
// expenditure is for the attempt, not the result.
func executeOrbitalStrike(g *GameState, p *Player, c Command) string {
	sector := &g.Sectors[c.Sector]
	defender := g.Players[c.Target]
	p.GainExperience(XPOrbitalStrike)
	g.LogEvent("%s launched an orbital strike on %s", p.Title(), sector.Name)

	if defender.CurrentSector != c.Sector || !defender.IsAlive() {
		return fmt.Sprintf("Orbital strike hit empty space! No damage dealt. (+%d XP)", XPOrbitalStrike)
	}
	defender.TakeDamage(StrikeDamage)
	msg := fmt.Sprintf("Orbital strike hit enemy fleet for %d damage! (+%d XP)", StrikeDamage, XPOrbitalStrike)
	if !defender.IsAlive() {
		p.GainExperience(XPKillBonus)
		g.GameOver = true
		msg += fmt.Sprintf("\n%s eliminated by orbital strike! (+%d XP)", defender.Name, XPKillBonus)
		g.LogEvent("%s destroyed %s's fleet from orbit. Victory!", p.Title(), defender.Name)
	} else {
		msg += fmt.Sprintf("\n%s health: %d HP", defender.Name, defender.Health)
	}
	return msg
}

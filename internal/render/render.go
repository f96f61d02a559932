// Package render draws the terminal views: the sector map, each player's
// command dashboard, and the side-by-side comparison chart.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	playerOneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	playerTwoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	neutralStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	noteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

func ownerStyle(pid game.PlayerID) lipgloss.Style {
	if pid == 0 {
		return playerOneStyle
	}
	return playerTwoStyle
}

// ownerTag is the two-character control badge used on the map.
func ownerTag(s game.Sector) string {
	switch {
	case s.Owner == nil:
		return neutralStyle.Render("--")
	case *s.Owner == 0:
		return playerOneStyle.Render("P1")
	default:
		return playerTwoStyle.Render("P2")
	}
}

// Map renders the sector map: every sector with its badge, adjacency, and
// outpost marker, followed by fleet positions and a legend.
func Map(g *game.GameState) string {
	var rows []string
	rows = append(rows, titleStyle.Render(g.MapName+" Sector Map"))
	rows = append(rows, "")

	for _, s := range g.Sectors {
		outpost := " "
		if s.Outpost {
			outpost = "*"
		}
		links := make([]string, 0, len(s.Adjacent))
		for _, a := range s.Adjacent {
			links = append(links, fmt.Sprintf("%d", a))
		}
		rows = append(rows, fmt.Sprintf("[%2d] %s%s %-22s links: %s",
			s.ID, ownerTag(s), outpost, s.Name, strings.Join(links, " ")))
	}

	rows = append(rows, "")
	rows = append(rows, sectionStyle.Render("FLEET POSITIONS"))
	for i := range g.Players {
		p := g.Players[i]
		rows = append(rows, ownerStyle(p.ID).Render(fmt.Sprintf("%s at [%d] %s, %d ships",
			p.Title(), p.CurrentSector, g.Sectors[p.CurrentSector].Name, p.Fleet.TotalShips())))
	}

	rows = append(rows, "")
	rows = append(rows, noteStyle.Render("P1/P2 = owner, * = outpost, -- = neutral"))

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Dashboard renders one player's private command view: stats, fleet
// composition, holdings, and the abilities unlocked at their level.
func Dashboard(g *game.GameState, pid game.PlayerID) string {
	p := g.Players[pid]
	var rows []string

	rows = append(rows, titleStyle.Render(p.Title()+"'s Command Dashboard"))
	rows = append(rows, "")

	rows = append(rows, sectionStyle.Render("STATISTICS"))
	rows = append(rows, fmt.Sprintf("Level %d %s    Health %d/%d", p.Level, p.Rank, p.Health, p.MaxHealth()))
	rows = append(rows, fmt.Sprintf("XP %d/%d    AP %d/%d", p.Experience, game.XPThreshold(p.Level), p.APRemaining, p.APCap))
	scan := "Normal"
	if p.ScanRangeBonus() > 0 {
		scan = "Extended"
	}
	rows = append(rows, fmt.Sprintf("Damage Bonus +%d    Scan Range %s", p.DamageBonus(), scan))
	rows = append(rows, "")

	rows = append(rows, sectionStyle.Render("FLEET COMPOSITION"))
	rows = append(rows, fmt.Sprintf("Scouts %d    Frigates %d    Destroyers %d    Command Ships %d",
		p.Fleet.Scouts, p.Fleet.Frigates, p.Fleet.Destroyers, p.Fleet.CommandShips))
	rows = append(rows, fmt.Sprintf("Total Ships %d    Combat Strength %d", p.Fleet.TotalShips(), p.Fleet.CombatStrength()))
	if !p.CanCaptureSector() {
		rows = append(rows, noteStyle.Render("A command ship is required to capture sectors (level 4+)"))
	}
	rows = append(rows, "")

	rows = append(rows, sectionStyle.Render("CONTROLLED SECTORS"))
	held := g.ControlledSectors(pid)
	if len(held) == 0 {
		rows = append(rows, noteStyle.Render("No sectors under control"))
	}
	for _, s := range held {
		line := "* " + s.Name
		if s.Outpost {
			line += " [OUTPOST]"
		}
		rows = append(rows, line)
	}
	rows = append(rows, "")

	rows = append(rows, sectionStyle.Render("ABILITIES"))
	rows = append(rows, fmt.Sprintf("move <sector>   %2d AP", game.ActionCost(game.CmdMove)))
	rows = append(rows, fmt.Sprintf("attack          %2d AP  (%d damage)", game.ActionCost(game.CmdAttack), game.BaseDamage+p.DamageBonus()))
	rows = append(rows, fmt.Sprintf("scan <sector>   %2d AP", game.ActionCost(game.CmdScan)))
	rows = append(rows, fmt.Sprintf("build           %2d AP", game.ActionCost(game.CmdBuild)))
	if p.Level >= game.RequiredLevel(game.CmdReinforce) {
		rows = append(rows, fmt.Sprintf("reinforce       %2d AP  (heal %d HP)", game.ActionCost(game.CmdReinforce), game.ReinforceHeal))
	}
	if p.Level >= game.RequiredLevel(game.CmdSabotage) {
		rows = append(rows, fmt.Sprintf("sabotage        %2d AP  (destroy enemy outpost)", game.ActionCost(game.CmdSabotage)))
	}
	if p.Level >= game.RequiredLevel(game.CmdOrbitalStrike) {
		rows = append(rows, fmt.Sprintf("strike <sector> %2d AP  (%d damage anywhere scanned)", game.ActionCost(game.CmdOrbitalStrike), game.StrikeDamage))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Comparison renders the side-by-side chart of both commanders.
func Comparison(g *game.GameState) string {
	p1, p2 := g.Players[0], g.Players[1]
	var rows []string

	rows = append(rows, titleStyle.Render("Commander Comparison"))
	rows = append(rows, "")

	row := func(label string, a, b any) string {
		return fmt.Sprintf("%-9s %18v  vs  %-18v", label, a, b)
	}
	rows = append(rows, row("Name", p1.Name, p2.Name))
	rows = append(rows, row("Rank", p1.Rank, p2.Rank))
	rows = append(rows, row("Level", p1.Level, p2.Level))
	rows = append(rows, row("Health", p1.Health, p2.Health))
	rows = append(rows, row("AP Cap", p1.APCap, p2.APCap))
	rows = append(rows, row("Damage", fmt.Sprintf("+%d", p1.DamageBonus()), fmt.Sprintf("+%d", p2.DamageBonus())))
	rows = append(rows, row("Sectors", len(g.ControlledSectors(0)), len(g.ControlledSectors(1))))
	rows = append(rows, "")

	rows = append(rows, playerOneStyle.Render(fmt.Sprintf("%-14s %s", p1.Name, HealthBar(p1))))
	rows = append(rows, playerTwoStyle.Render(fmt.Sprintf("%-14s %s", p2.Name, HealthBar(p2))))

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

const healthBarWidth = 20

// HealthBar renders a fixed-width bar with the percentage of the level-scaled
// health ceiling.
func HealthBar(p *game.Player) string {
	maxHealth := p.MaxHealth()
	filled := p.Health * healthBarWidth / maxHealth
	if filled > healthBarWidth {
		filled = healthBarWidth
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < healthBarWidth; i++ {
		if i < filled {
			b.WriteByte('#')
		} else {
			b.WriteByte('-')
		}
	}
	fmt.Fprintf(&b, "] %d%%", p.Health*100/maxHealth)
	return b.String()
}

// EventLog renders the most recent event lines, newest last.
func EventLog(g *game.GameState, limit int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Campaign Log"))
	rows = append(rows, "")

	events := g.EventLog
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	if len(events) == 0 {
		rows = append(rows, noteStyle.Render("Nothing has happened yet."))
	}
	for _, e := range events {
		rows = append(rows, "* "+e)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

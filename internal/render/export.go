package render

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

// PlayerReport builds the plain-text status report persisted per player at
// the end of a turn. Unlike the live dashboard it carries no terminal
// styling, so it reads the same from a file.
func PlayerReport(g *game.GameState, pid game.PlayerID) string {
	p := g.Players[pid]
	var b strings.Builder

	divider := strings.Repeat("=", 40)
	fmt.Fprintf(&b, "%s\nINTERSTELLAR COMMAND - TURN %d\n%s's Status Report\n%s\n\n",
		divider, g.TurnNumber, p.Title(), divider)

	fmt.Fprintf(&b, "STATISTICS\n----------\n")
	fmt.Fprintf(&b, "Level: %d - %s\n", p.Level, p.Rank)
	fmt.Fprintf(&b, "Health: %d / %d\n", p.Health, p.MaxHealth())
	fmt.Fprintf(&b, "Experience: %d / %d\n", p.Experience, game.XPThreshold(p.Level))
	fmt.Fprintf(&b, "Action Points: %d\n", p.APCap)
	fmt.Fprintf(&b, "Damage Bonus: +%d\n\n", p.DamageBonus())

	fmt.Fprintf(&b, "FLEET COMPOSITION\n-----------------\n")
	fmt.Fprintf(&b, "Scouts: %d\nFrigates: %d\nDestroyers: %d\nCommand Ships: %d\n",
		p.Fleet.Scouts, p.Fleet.Frigates, p.Fleet.Destroyers, p.Fleet.CommandShips)
	fmt.Fprintf(&b, "Total Ships: %d\nCombat Strength: %d\n\n", p.Fleet.TotalShips(), p.Fleet.CombatStrength())

	fmt.Fprintf(&b, "CONTROLLED SECTORS\n------------------\n")
	held := g.ControlledSectors(pid)
	if len(held) == 0 {
		b.WriteString("No sectors under control\n")
	}
	for _, s := range held {
		if s.Outpost {
			fmt.Fprintf(&b, "* %s [OUTPOST]\n", s.Name)
		} else {
			fmt.Fprintf(&b, "* %s\n", s.Name)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "RECENT EVENTS\n-------------\n")
	events := g.EventLog
	if len(events) > 10 {
		events = events[len(events)-10:]
	}
	for i := len(events) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "* %s\n", events[i])
	}
	return b.String()
}

const reportHTMLShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s's Command Report</title>
    <style>
        body {
            font-family: monospace;
            background: #000;
            color: #0f0;
            padding: 20px;
            white-space: pre-wrap;
        }
    </style>
</head>
<body>%s</body>
</html>`

// ExportPlayerReport writes a player's status report to dir as both plain
// text and a styled HTML page, returning the text file path.
func ExportPlayerReport(dir string, g *game.GameState, pid game.PlayerID) (string, error) {
	p := g.Players[pid]
	report := PlayerReport(g, pid)
	base := "player_" + strings.ToLower(p.Name) + "_view"

	txtPath := filepath.Join(dir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	page := fmt.Sprintf(reportHTMLShell, html.EscapeString(p.Title()), html.EscapeString(report))
	htmlPath := filepath.Join(dir, base+".html")
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write html report: %w", err)
	}
	return txtPath, nil
}

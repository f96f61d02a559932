// Package cli runs the local hotseat game loop: two commanders sharing one
// terminal, authenticating at each turn changeover.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/FilmonaM/interstellar-command/internal/game"
	"github.com/FilmonaM/interstellar-command/internal/narrative"
	"github.com/FilmonaM/interstellar-command/internal/render"
	"github.com/FilmonaM/interstellar-command/internal/storage"
)

const passwordAttempts = 2

// Loop drives one campaign from the terminal.
type Loop struct {
	game       *game.GameState
	store      storage.Store
	chronicle  *storage.Chronicle
	campaignID string
	events     *narrative.Generator

	in  *bufio.Reader
	out io.Writer

	// readSecret is swappable in tests. The default reads without echo
	// when stdin is a terminal.
	readSecret func() (string, error)

	exportDir      string
	archivedEvents int
}

func New(g *game.GameState, store storage.Store, chron *storage.Chronicle, campaignID string, events *narrative.Generator) *Loop {
	l := &Loop{
		game:       g,
		store:      store,
		chronicle:  chron,
		campaignID: campaignID,
		events:     events,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		exportDir:  ".",
	}
	l.readSecret = l.readSecretDefault
	return l
}

// SetIO redirects input and output, mainly for tests.
func (l *Loop) SetIO(in io.Reader, out io.Writer) {
	l.in = bufio.NewReader(in)
	l.out = out
}

// SetSecretReader overrides password input.
func (l *Loop) SetSecretReader(f func() (string, error)) { l.readSecret = f }

// SetExportDir changes where final reports are written.
func (l *Loop) SetExportDir(dir string) { l.exportDir = dir }

func (l *Loop) readSecretDefault() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(l.out)
		return string(secret), err
	}
	return l.readLine()
}

func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (l *Loop) printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// Run plays turns until the campaign ends or input runs out.
func (l *Loop) Run(ctx context.Context) error {
	l.printf("\n=== INTERSTELLAR COMMAND ===\n")
	l.printf("Campaign on the %s map: %s vs %s\n",
		l.game.MapName, l.game.Players[0].Name, l.game.Players[1].Name)

	for !l.game.GameOver {
		pid := l.game.CurrentPlayer
		player := l.game.Players[pid]

		l.printf("\n--- Turn %d: %s ---\n", l.game.TurnNumber, player.Title())
		ok, err := l.authenticate(player)
		if err != nil {
			return err
		}
		if !ok {
			l.printf("Access denied. %s forfeits the turn.\n", player.Name)
			if cerr := l.game.EndTurn(pid); cerr != nil {
				return fmt.Errorf("forfeit turn: %s", cerr.Reason)
			}
			// A forfeited turn still gets persisted and chronicled.
			if err := l.store.SaveGame(l.game); err != nil {
				l.printf("Warning: save failed: %v\n", err)
			}
			l.archive(ctx)
			continue
		}

		if err := l.runTurn(ctx, pid); err != nil {
			return err
		}
	}

	l.finale(ctx)
	return nil
}

// authenticate gives the active player two password attempts. Players
// without a stored hash pass straight through.
func (l *Loop) authenticate(p *game.Player) (bool, error) {
	if !p.HasPassword() {
		return true, nil
	}
	for attempt := 1; attempt <= passwordAttempts; attempt++ {
		l.printf("Password for %s: ", p.Name)
		secret, err := l.readSecret()
		if err != nil {
			return false, err
		}
		if p.VerifyPassword(secret) {
			return true, nil
		}
		l.printf("Wrong password.\n")
	}
	return false, nil
}

// runTurn is the per-turn command loop. Free commands cost nothing; anything
// else goes to the engine.
func (l *Loop) runTurn(ctx context.Context, pid game.PlayerID) error {
	player := l.game.Players[pid]
	levelBefore := player.Level

	l.printf("%s\n", render.Map(l.game))

	for {
		l.printf("\n[%s] AP %d/%d > ", player.Name, player.APRemaining, player.APCap)
		line, err := l.readLine()
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "help":
			l.printHelp(player)
			continue
		case "map":
			l.printf("%s\n", render.Map(l.game))
			continue
		case "status":
			l.printf("%s\n", render.Dashboard(l.game, pid))
			continue
		case "log":
			l.printf("%s\n", render.EventLog(l.game, 10))
			continue
		case "compare":
			l.printf("%s\n", render.Comparison(l.game))
			continue
		case "end", "done":
			if cerr := l.game.EndTurn(pid); cerr != nil {
				l.printf("Cannot end turn: %s\n", cerr.Reason)
				continue
			}
			l.printf("Turn ended. Remaining AP forfeited.\n")
			l.endOfTurn(ctx, pid, levelBefore)
			return nil
		case "quit":
			confirmed, err := l.confirmQuit()
			if err != nil {
				return err
			}
			if !confirmed {
				continue
			}
			if cerr := l.game.Forfeit(pid); cerr != nil {
				l.printf("Cannot forfeit: %s\n", cerr.Reason)
				continue
			}
			l.endOfTurn(ctx, pid, levelBefore)
			return nil
		}

		res := l.game.ExecuteCommand(pid, line)
		if !res.Success {
			l.printf("[X] %s\n", res.Message)
			continue
		}
		l.printf("[OK] %s\n", res.Message)
		if err := l.store.SaveGame(l.game); err != nil {
			l.printf("Warning: save failed: %v\n", err)
		}

		if l.game.GameOver {
			l.endOfTurn(ctx, pid, levelBefore)
			return nil
		}
		if res.TurnEnded {
			l.printf("\nAction points depleted. Turn ending.\n")
			l.endOfTurn(ctx, pid, levelBefore)
			return nil
		}
	}
}

func (l *Loop) confirmQuit() (bool, error) {
	l.printf("Forfeit the campaign? (y/n): ")
	line, err := l.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "y"), nil
}

// endOfTurn runs the changeover bookkeeping: promotion notice, narrative
// event, persistence, chronicle, and the private view export.
func (l *Loop) endOfTurn(ctx context.Context, pid game.PlayerID, levelBefore int) {
	player := l.game.Players[pid]
	if player.Level > levelBefore {
		l.printf("\nPROMOTION! %s has reached level %d: %s\n", player.Name, player.Level, player.Rank)
	}

	if line := l.events.Generate(ctx, l.game); line != "" {
		l.game.LogEvent("%s", line)
		l.printf("\n>> %s\n", line)
	}

	if err := l.store.SaveGame(l.game); err != nil {
		l.printf("Warning: save failed: %v\n", err)
	}
	if view := render.PlayerReport(l.game, pid); view != "" {
		if err := l.store.SavePlayerView(pid, view); err != nil {
			log.Printf("player view: %v", err)
		}
	}
	l.archive(ctx)

	if !l.game.GameOver {
		next := l.game.Players[l.game.CurrentPlayer]
		l.printf("\n%s can now take their turn.\n", next.Name)
	}
}

func (l *Loop) archive(ctx context.Context) {
	if l.chronicle == nil {
		return
	}
	if n := len(l.game.Turns.History); n > 0 {
		last := l.game.Turns.History[n-1]
		if err := l.chronicle.ArchiveTurn(ctx, l.campaignID, last); err != nil {
			log.Printf("chronicle: %v", err)
		}
		fresh := l.game.EventLog[l.archivedEvents:]
		l.archivedEvents = len(l.game.EventLog)
		if err := l.chronicle.AppendEvents(ctx, l.campaignID, last.Number, fresh); err != nil {
			log.Printf("chronicle: %v", err)
		}
	}
}

// finale prints the outcome, closes the chronicle record, and exports both
// status reports.
func (l *Loop) finale(ctx context.Context) {
	l.printf("\n=== CAMPAIGN CONCLUDED ===\n")
	winner := l.game.Winner()
	if winner != nil {
		l.printf("%s is victorious!\n", winner.Title())
	} else {
		l.printf("The campaign ends without a victor.\n")
	}
	l.printf("%s\n", render.Comparison(l.game))

	if l.chronicle != nil {
		name := ""
		if winner != nil {
			name = winner.Name
		}
		if err := l.chronicle.FinishCampaign(ctx, l.campaignID, name); err != nil {
			log.Printf("chronicle: %v", err)
		}
	}
	for pid := game.PlayerID(0); pid < 2; pid++ {
		if path, err := render.ExportPlayerReport(l.exportDir, l.game, pid); err == nil {
			l.printf("Final report for %s: %s\n", l.game.Players[pid].Name, path)
		} else {
			log.Printf("export: %v", err)
		}
	}
}

func (l *Loop) printHelp(p *game.Player) {
	l.printf("\nActions cost AP; your turn ends when you run out.\n")
	l.printf("  move <sector>    %2d AP  move to an adjacent sector\n", game.ActionCost(game.CmdMove))
	l.printf("  attack           %2d AP  attack the enemy in your sector\n", game.ActionCost(game.CmdAttack))
	l.printf("  scan <sector>    %2d AP  reveal a nearby sector\n", game.ActionCost(game.CmdScan))
	l.printf("  build            %2d AP  build an outpost in a controlled sector\n", game.ActionCost(game.CmdBuild))
	if p.Level >= game.RequiredLevel(game.CmdReinforce) {
		l.printf("  reinforce        %2d AP  heal %d HP\n", game.ActionCost(game.CmdReinforce), game.ReinforceHeal)
	}
	if p.Level >= game.RequiredLevel(game.CmdSabotage) {
		l.printf("  sabotage         %2d AP  destroy an enemy outpost here\n", game.ActionCost(game.CmdSabotage))
	}
	if p.Level >= game.RequiredLevel(game.CmdOrbitalStrike) {
		l.printf("  strike <sector>  %2d AP  bombard any scanned sector\n", game.ActionCost(game.CmdOrbitalStrike))
	}
	l.printf("Free: map, status, log, compare, help, end, quit\n")
}

package game

import (
	"fmt"
	"time"
)

// Unreachable is the sentinel distance between disconnected sectors. The
// shipped maps are connected, so this only surfaces with custom map files.
const Unreachable = int(^uint(0) >> 1)

// GameState is the aggregate root. All mutation flows through ExecuteCommand,
// EndTurn, Forfeit, and ProcessCycle; everything else reads.
type GameState struct {
	Players       [2]*Player   `json:"players"`
	Sectors       []Sector     `json:"sectors"`
	TurnNumber    int          `json:"turn_number"`
	CurrentPlayer PlayerID     `json:"current_player"`
	GameOver      bool         `json:"game_over"`
	EventLog      []string     `json:"event_log"`
	Turns         *TurnManager `json:"turn_manager"`
	MapName       string       `json:"map_name"`
	CycleNumber   int          `json:"cycle_number"`
	LastCycle     time.Time    `json:"last_cycle"`
}

// CommandResult is the structured outcome of one command attempt.
type CommandResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	APSpent   int    `json:"ap_spent"`
	TurnEnded bool   `json:"turn_ended"`

	// Err is set on rejection; the message mirrors its reason.
	Err *CommandError `json:"-"`
}

func rejected(err *CommandError) CommandResult {
	return CommandResult{Message: err.Reason, Err: err}
}

// NewGame builds a fresh campaign on the given map.
func NewGame(m GalaxyMap, name1, name2 string) *GameState {
	g := &GameState{
		Sectors:       m.Sectors,
		TurnNumber:    1,
		CurrentPlayer: 0,
		EventLog:      []string{"The solar empire awaits conquest..."},
		Turns:         NewTurnManager(),
		MapName:       m.Name,
		LastCycle:     time.Now().UTC(),
	}
	g.Players[0] = NewPlayer(0, name1, m.Starts[0])
	g.Players[1] = NewPlayer(1, name2, m.Starts[1])
	for i := range g.Players {
		g.Sectors[g.Players[i].CurrentSector].Reveal(g.Players[i].ID)
	}
	return g
}

// Player resolves a player id.
func (g *GameState) Player(id PlayerID) (*Player, *CommandError) {
	if id < 0 || int(id) >= len(g.Players) {
		return nil, errNotFound("no such player: %d", id)
	}
	return g.Players[id], nil
}

// Sector resolves a sector id.
func (g *GameState) Sector(id SectorID) (*Sector, *CommandError) {
	if id < 0 || int(id) >= len(g.Sectors) {
		return nil, errNotFound("no such sector: %d", id)
	}
	return &g.Sectors[id], nil
}

// SectorDistance is the minimum hop count between two sectors, found by
// breadth-first search, or Unreachable when no path exists.
func (g *GameState) SectorDistance(from, to SectorID) int {
	if from == to {
		return 0
	}
	if int(from) >= len(g.Sectors) || int(to) >= len(g.Sectors) || from < 0 || to < 0 {
		return Unreachable
	}
	type hop struct {
		id   SectorID
		dist int
	}
	visited := make(map[SectorID]bool, len(g.Sectors))
	visited[from] = true
	queue := []hop{{from, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, adj := range g.Sectors[cur.id].Adjacent {
			if visited[adj] {
				continue
			}
			if adj == to {
				return cur.dist + 1
			}
			visited[adj] = true
			queue = append(queue, hop{adj, cur.dist + 1})
		}
	}
	return Unreachable
}

// LogEvent appends one chronological line to the campaign chronicle.
func (g *GameState) LogEvent(format string, args ...any) {
	g.EventLog = append(g.EventLog, fmt.Sprintf(format, args...))
}

// ExecuteCommand is the single authoritative mutation entry point. It gates
// on turn ownership, parses the verb, applies level and AP requirements, then
// validates and executes atomically. A failed command never mutates state and
// never costs AP.
func (g *GameState) ExecuteCommand(pid PlayerID, input string) CommandResult {
	player, cerr := g.Player(pid)
	if cerr != nil {
		return rejected(cerr)
	}
	if g.GameOver {
		return rejected(errPermission("the campaign is over"))
	}
	if !g.Turns.CanPlayerAct(pid) {
		return rejected(errPermission("it's not your turn, %s", player.Name))
	}
	if g.Turns.Current.Phase == WaitingForPlayer {
		g.Turns.Current.Start()
		player.ResetAP()
	}

	cmd, cerr := ParseCommand(input, g, pid)
	if cerr != nil {
		return rejected(cerr)
	}
	spec := actionTable[cmd.Kind]
	if player.Level < spec.requiredLevel {
		return rejected(errPermission("%s requires level %d (current: %d)",
			spec.name, spec.requiredLevel, player.Level))
	}
	if !player.CanPerform(spec.cost) {
		return rejected(errInsufficientAP("not enough AP for %s (need %d, have %d)",
			spec.name, spec.cost, player.APRemaining))
	}
	if cerr := spec.validate(g, player, cmd); cerr != nil {
		return rejected(cerr)
	}

	message := spec.execute(g, player, cmd)
	player.spendAP(spec.cost)
	g.Turns.Current.RecordAction(spec.name, firstLine(message), spec.cost)

	result := CommandResult{Success: true, Message: message, APSpent: spec.cost}
	if g.GameOver {
		g.Turns.CloseOut()
		return result
	}
	if player.APRemaining == 0 {
		g.advanceTurn()
		result.TurnEnded = true
	}
	return result
}

// EndTurn ends the player's turn early. Unspent AP is forfeited, never
// banked for later turns.
func (g *GameState) EndTurn(pid PlayerID) *CommandError {
	player, cerr := g.Player(pid)
	if cerr != nil {
		return cerr
	}
	if g.GameOver {
		return errPermission("the campaign is over")
	}
	if !g.Turns.CanPlayerAct(pid) {
		return errPermission("it's not your turn, %s", player.Name)
	}
	player.APRemaining = 0
	g.advanceTurn()
	return nil
}

// Forfeit concedes the campaign. Terminal: GameOver is never cleared.
func (g *GameState) Forfeit(pid PlayerID) *CommandError {
	player, cerr := g.Player(pid)
	if cerr != nil {
		return cerr
	}
	if g.GameOver {
		return errPermission("the campaign is over")
	}
	g.GameOver = true
	g.Turns.CloseOut()
	g.LogEvent("%s abandoned the campaign.", player.Title())
	return nil
}

// Winner returns the surviving player once the game is over, or nil when the
// game is still running or ended by forfeit with both players alive.
func (g *GameState) Winner() *Player {
	if !g.GameOver {
		return nil
	}
	alive := make([]*Player, 0, 2)
	for i := range g.Players {
		if g.Players[i].IsAlive() {
			alive = append(alive, g.Players[i])
		}
	}
	if len(alive) == 1 {
		return alive[0]
	}
	return nil
}

func (g *GameState) advanceTurn() {
	g.Turns.AdvanceTurn()
	g.TurnNumber = g.Turns.Current.Number
	g.CurrentPlayer = g.Turns.Current.ActivePlayer
}

// ProcessCycle applies the periodic wall-clock AP regeneration tick. It is
// independent of turns: both players regain a fixed amount, clamped to their
// caps.
func (g *GameState) ProcessCycle() {
	g.CycleNumber++
	g.LastCycle = time.Now().UTC()
	for i := range g.Players {
		p := g.Players[i]
		p.APRemaining += CycleAPRegen
		if p.APRemaining > p.APCap {
			p.APRemaining = p.APCap
		}
	}
}

// ControlledSectors lists the sectors owned by a player, in id order.
func (g *GameState) ControlledSectors(pid PlayerID) []*Sector {
	var out []*Sector
	for i := range g.Sectors {
		if g.Sectors[i].OwnedBy(pid) {
			out = append(out, &g.Sectors[i])
		}
	}
	return out
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

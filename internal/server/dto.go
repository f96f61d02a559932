package server

import (
	"github.com/FilmonaM/interstellar-command/internal/game"
)

// clientMessage is one inbound JSON frame.
type clientMessage struct {
	Type    string `json:"type"`
	Player  int    `json:"player"`
	Content string `json:"content"`
}

// serverMessage is one outbound JSON frame. Snapshot rides along on every
// state-bearing message so clients never need a second round trip.
type serverMessage struct {
	Type     string        `json:"type"`
	Message  string        `json:"message,omitempty"`
	Success  bool          `json:"success,omitempty"`
	APSpent  int           `json:"ap_spent,omitempty"`
	Snapshot *gameSnapshot `json:"snapshot,omitempty"`
}

type gameSnapshot struct {
	TurnNumber    int            `json:"turn_number"`
	CurrentPlayer int            `json:"current_player"`
	CycleNumber   int            `json:"cycle_number"`
	GameOver      bool           `json:"game_over"`
	Winner        string         `json:"winner,omitempty"`
	MapName       string         `json:"map_name"`
	Players       []playerUpdate `json:"players"`
	Sectors       []sectorUpdate `json:"sectors"`
	RecentEvents  []string       `json:"recent_events"`
}

type playerUpdate struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	Level         int    `json:"level"`
	Experience    int    `json:"experience"`
	Health        int    `json:"health"`
	MaxHealth     int    `json:"max_health"`
	APRemaining   int    `json:"ap_remaining"`
	APCap         int    `json:"ap_cap"`
	CurrentSector int    `json:"current_sector"`
	TotalShips    int    `json:"total_ships"`
	Alive         bool   `json:"alive"`
}

type sectorUpdate struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Owner   *int   `json:"owner,omitempty"`
	Outpost bool   `json:"outpost"`
}

// snapshot builds the full-state DTO. Caller must hold at least a read lock
// on the hub.
func snapshot(g *game.GameState) *gameSnapshot {
	s := &gameSnapshot{
		TurnNumber:    g.TurnNumber,
		CurrentPlayer: int(g.CurrentPlayer),
		CycleNumber:   g.CycleNumber,
		GameOver:      g.GameOver,
		MapName:       g.MapName,
	}
	if w := g.Winner(); w != nil {
		s.Winner = w.Name
	}
	for i := range g.Players {
		p := g.Players[i]
		s.Players = append(s.Players, playerUpdate{
			ID:            int(p.ID),
			Name:          p.Name,
			Rank:          p.Rank,
			Level:         p.Level,
			Experience:    p.Experience,
			Health:        p.Health,
			MaxHealth:     p.MaxHealth(),
			APRemaining:   p.APRemaining,
			APCap:         p.APCap,
			CurrentSector: int(p.CurrentSector),
			TotalShips:    p.Fleet.TotalShips(),
			Alive:         p.IsAlive(),
		})
	}
	for i := range g.Sectors {
		sec := g.Sectors[i]
		upd := sectorUpdate{
			ID:      int(sec.ID),
			Name:    sec.Name,
			Outpost: sec.Outpost,
		}
		if sec.Owner != nil {
			owner := int(*sec.Owner)
			upd.Owner = &owner
		}
		s.Sectors = append(s.Sectors, upd)
	}
	events := g.EventLog
	if len(events) > 10 {
		events = events[len(events)-10:]
	}
	s.RecentEvents = append(s.RecentEvents, events...)
	return s
}

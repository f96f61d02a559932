package server

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/FilmonaM/interstellar-command/internal/game"
	"github.com/FilmonaM/interstellar-command/internal/narrative"
	"github.com/FilmonaM/interstellar-command/internal/storage"
)

// client is one live websocket session. Writes to the connection are
// serialized through mu so the broadcast path and the per-request path
// never interleave frames.
type client struct {
	id   string
	seat game.PlayerID
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg serverMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Hub owns the single shared campaign. All game access goes through mu:
// command handling takes the write lock, snapshot fan-out the read lock.
type Hub struct {
	mu      sync.RWMutex
	game    *game.GameState
	clients map[string]*client

	store      storage.Store
	chronicle  *storage.Chronicle
	campaignID string
	events     *narrative.Generator

	// archivedEvents is how many event-log lines have already been
	// written to the chronicle. Guarded by mu.
	archivedEvents int
}

func NewHub(g *game.GameState, store storage.Store, chron *storage.Chronicle, campaignID string, events *narrative.Generator) *Hub {
	return &Hub{
		game:       g,
		clients:    make(map[string]*client),
		store:      store,
		chronicle:  chron,
		campaignID: campaignID,
		events:     events,
	}
}

func (h *Hub) register(conn *websocket.Conn, seat game.PlayerID) *client {
	c := &client{id: uuid.NewString(), seat: seat, conn: conn}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
}

// broadcast sends one message to every connected client. Slow or dead
// connections only lose their own frame.
func (h *Hub) broadcast(msg serverMessage) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(msg); err != nil {
			log.Printf("send to %s: %v", c.id, err)
		}
	}
}

// HandleCommand runs one action for a seat and fans the new state out.
func (h *Hub) HandleCommand(seat game.PlayerID, input string) serverMessage {
	h.mu.Lock()
	res := h.game.ExecuteCommand(seat, input)
	turnEnded := res.TurnEnded
	gameOver := h.game.GameOver
	h.mu.Unlock()

	if turnEnded || gameOver {
		h.finishTurn()
	}

	reply := serverMessage{
		Type:     "command_result",
		Success:  res.Success,
		Message:  res.Message,
		APSpent:  res.APSpent,
		Snapshot: h.Snapshot(),
	}
	if res.Success {
		h.broadcast(serverMessage{Type: "game_update", Snapshot: reply.Snapshot})
	}
	return reply
}

// HandleEndTurn ends a seat's turn voluntarily, forfeiting unspent AP.
func (h *Hub) HandleEndTurn(seat game.PlayerID) serverMessage {
	h.mu.Lock()
	cerr := h.game.EndTurn(seat)
	h.mu.Unlock()

	if cerr != nil {
		return serverMessage{Type: "error", Message: cerr.Reason}
	}
	h.finishTurn()
	snap := h.Snapshot()
	h.broadcast(serverMessage{Type: "game_update", Snapshot: snap})
	return serverMessage{Type: "command_result", Success: true, Message: "Turn ended.", Snapshot: snap}
}

// HandleForfeit concedes the campaign for a seat.
func (h *Hub) HandleForfeit(seat game.PlayerID) serverMessage {
	h.mu.Lock()
	cerr := h.game.Forfeit(seat)
	h.mu.Unlock()

	if cerr != nil {
		return serverMessage{Type: "error", Message: cerr.Reason}
	}
	h.finishTurn()
	snap := h.Snapshot()
	h.broadcast(serverMessage{Type: "game_update", Snapshot: snap})
	return serverMessage{Type: "command_result", Success: true, Message: "Campaign forfeited.", Snapshot: snap}
}

// finishTurn persists state and runs the between-turn bookkeeping: archive,
// save, and a narrative event if one comes back. Failures are logged, never
// fatal; the game in memory is authoritative.
func (h *Hub) finishTurn() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h.mu.RLock()
	g := h.game
	var lastTurn game.Turn
	hasTurn := false
	if n := len(g.Turns.History); n > 0 {
		lastTurn = g.Turns.History[n-1]
		hasTurn = true
	}
	eventLine := h.events.Generate(ctx, g)
	h.mu.RUnlock()

	h.mu.Lock()
	if eventLine != "" {
		g.LogEvent("%s", eventLine)
	}
	if err := h.store.SaveGame(g); err != nil {
		log.Printf("save failed: %v", err)
	}
	newEvents := append([]string(nil), g.EventLog[h.archivedEvents:]...)
	h.archivedEvents = len(g.EventLog)
	gameOver := g.GameOver
	winner := ""
	if w := g.Winner(); w != nil {
		winner = w.Name
	}
	h.mu.Unlock()

	if h.chronicle != nil && hasTurn {
		if err := h.chronicle.ArchiveTurn(ctx, h.campaignID, lastTurn); err != nil {
			log.Printf("chronicle: %v", err)
		}
		if err := h.chronicle.AppendEvents(ctx, h.campaignID, lastTurn.Number, newEvents); err != nil {
			log.Printf("chronicle: %v", err)
		}
	}
	if h.chronicle != nil && gameOver {
		if err := h.chronicle.FinishCampaign(ctx, h.campaignID, winner); err != nil {
			log.Printf("chronicle: %v", err)
		}
	}
	if eventLine != "" {
		h.broadcast(serverMessage{Type: "event", Message: eventLine})
	}
}

// Snapshot builds the current full-state DTO under the read lock.
func (h *Hub) Snapshot() *gameSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return snapshot(h.game)
}

// VerifySeat checks the password for a seat against the live game state.
func (h *Hub) VerifySeat(seat game.PlayerID, password string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if int(seat) < 0 || int(seat) >= len(h.game.Players) {
		return false
	}
	return h.game.Players[seat].VerifyPassword(password)
}

// RunCycles regenerates AP on a fixed interval until ctx is done, pushing a
// cycle_update to everyone after each tick.
func (h *Hub) RunCycles(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.mu.Lock()
			if h.game.GameOver {
				h.mu.Unlock()
				return
			}
			h.game.ProcessCycle()
			h.mu.Unlock()
			h.broadcast(serverMessage{Type: "cycle_update", Snapshot: h.Snapshot()})
		}
	}
}

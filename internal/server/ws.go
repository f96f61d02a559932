package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveWS upgrades one connection and runs its read loop. The seat comes
// from the ?seat= query parameter; joining requires the seat's password
// before any command is accepted.
func serveWS(h *Hub, w http.ResponseWriter, r *http.Request) {
	seatRaw := r.URL.Query().Get("seat")
	seatNum, err := strconv.Atoi(seatRaw)
	if err != nil || seatNum < 0 || seatNum > 1 {
		http.Error(w, "seat must be 0 or 1", http.StatusBadRequest)
		return
	}
	seat := game.PlayerID(seatNum)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	c := h.register(conn, seat)
	defer func() {
		h.unregister(c)
		conn.Close()
	}()

	joined := false
	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "join":
			if !h.VerifySeat(seat, msg.Content) {
				_ = c.send(serverMessage{Type: "error", Message: "password verification failed"})
				continue
			}
			joined = true
			_ = c.send(serverMessage{Type: "joined", Snapshot: h.Snapshot()})
		case "ping":
			_ = c.send(serverMessage{Type: "pong"})
		case "command":
			if !joined {
				_ = c.send(serverMessage{Type: "error", Message: "join first"})
				continue
			}
			_ = c.send(h.HandleCommand(seat, msg.Content))
		case "end_turn":
			if !joined {
				_ = c.send(serverMessage{Type: "error", Message: "join first"})
				continue
			}
			_ = c.send(h.HandleEndTurn(seat))
		case "forfeit":
			if !joined {
				_ = c.send(serverMessage{Type: "error", Message: "join first"})
				continue
			}
			_ = c.send(h.HandleForfeit(seat))
		default:
			_ = c.send(serverMessage{Type: "error", Message: "unknown message type: " + msg.Type})
		}
	}
}

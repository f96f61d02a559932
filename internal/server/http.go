package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/FilmonaM/interstellar-command/internal/game"
	"github.com/FilmonaM/interstellar-command/internal/render"
)

func startServer(h *Hub, addr string) {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	})
	http.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(h.Snapshot()); err != nil {
			log.Printf("encode state: %v", err)
		}
	})
	http.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		serveReport(h, w, r)
	})
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(h, w, r)
	})
	log.Fatal(http.ListenAndServe(addr, nil))
}

// serveReport renders one player's HTML status report. The player's password
// travels as a query parameter; an empty stored hash means open access.
func serveReport(h *Hub, w http.ResponseWriter, r *http.Request) {
	seatNum, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if err != nil || seatNum < 0 || seatNum > 1 {
		http.Error(w, "seat must be 0 or 1", http.StatusBadRequest)
		return
	}
	seat := game.PlayerID(seatNum)
	if !h.VerifySeat(seat, r.URL.Query().Get("password")) {
		http.Error(w, "password verification failed", http.StatusForbidden)
		return
	}

	h.mu.RLock()
	report := render.PlayerReport(h.game, seat)
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(report))
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Interstellar Command</title></head>
<body style="font-family: monospace; background: #000; color: #0f0; padding: 20px;">
<h1>Interstellar Command</h1>
<p>Connect a client to <code>/ws?seat=0</code> or <code>/ws?seat=1</code>.</p>
<p>Current state: <a href="/state" style="color: #0ff">/state</a></p>
</body>
</html>`

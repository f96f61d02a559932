// Package narrative produces the atmospheric flavor line shown between
// turns. A local Ollama instance is tried first; when it is unreachable a
// static rotation carries the opening turns.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

// Generator asks a local model for one event line per turn. The zero value
// is not usable; call New.
type Generator struct {
	client   *http.Client
	url      string
	model    string
	disabled bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithEndpoint overrides the Ollama base URL (default http://localhost:11434).
func WithEndpoint(url string) Option {
	return func(g *Generator) { g.url = strings.TrimRight(url, "/") }
}

// WithModel overrides the model name (default llama2).
func WithModel(model string) Option {
	return func(g *Generator) { g.model = model }
}

// Disabled turns all event generation off. Generate returns "" immediately.
func Disabled(off bool) Option {
	return func(g *Generator) { g.disabled = off }
}

// WithHTTPClient swaps the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Generator) { g.client = c }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		// Short timeout: a missing Ollama must not stall the turn.
		client: &http.Client{Timeout: 2 * time.Second},
		url:    "http://localhost:11434",
		model:  "llama2",
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate returns one flavor line for the current turn, or "" when disabled
// or when both the model and the static rotation have nothing to say.
func (n *Generator) Generate(ctx context.Context, g *game.GameState) string {
	if n.disabled {
		return ""
	}
	if line, err := n.tryOllama(ctx, g); err == nil {
		return line
	}
	return stubEvent(g.TurnNumber)
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (n *Generator) tryOllama(ctx context.Context, g *game.GameState) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  n.model,
		Prompt: buildPrompt(g),
		Stream: false,
		Options: map[string]any{
			"temperature": 0.8,
			"num_predict": 50,
			"stop":        []string{".", "!", "?"},
		},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	line := cleanResponse(out.Response)
	if line == "" {
		return "", fmt.Errorf("empty model response")
	}
	return line, nil
}

func buildPrompt(g *game.GameState) string {
	p1, p2 := g.Players[0], g.Players[1]
	recent := "The campaign has begun"
	if len(g.EventLog) > 0 {
		recent = g.EventLog[len(g.EventLog)-1]
	}
	return fmt.Sprintf(
		"You are a narrator for Interstellar Command, a space strategy game inspired by Red Rising. "+
			"Generate ONE brief atmospheric event (under 20 words) based on this situation:\n"+
			"Turn %d: %s (Level %d, %d ships) controls %d sectors. "+
			"%s (Level %d, %d ships) controls %d sectors.\n"+
			"Recent: %s\n"+
			"Create flavor text about the solar empire, NOT game mechanics. Be dramatic and evocative.",
		g.TurnNumber,
		p1.Title(), p1.Level, p1.Fleet.TotalShips(), len(g.ControlledSectors(0)),
		p2.Title(), p2.Level, p2.Fleet.TotalShips(), len(g.ControlledSectors(1)),
		recent,
	)
}

// cleanResponse keeps the first line of model output, trimmed and terminated
// with a single period. Overlong output is discarded.
func cleanResponse(raw string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(raw), "\n")
	line = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line), "."))
	if line == "" || len(line) >= 100 {
		return ""
	}
	return line + "."
}

var stubEvents = [...]string{
	"The Martian Senate debates new trade regulations affecting the asteroid belt.",
	"Solar flares from Sol temporarily disrupt long-range communications.",
	"Rumors spread of ancient technology discovered in the Jovian moons.",
	"Pirates have been spotted near the outer rim territories.",
	"The Venusian nobility hosts a grand celebration, distracting local defenses.",
	"A prototype warp gate activates briefly near Saturn before shutting down.",
	"Asteroid miners report unusual energy readings from deep space.",
	"The Earth Coalition announces new military funding initiatives.",
}

// stubEvent keys the static rotation by turn number, wrapping around so a
// long campaign never goes quiet.
func stubEvent(turn int) string {
	if turn < 1 {
		return ""
	}
	return stubEvents[(turn-1)%len(stubEvents)]
}

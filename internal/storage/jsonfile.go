package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

const saveFileName = "game_state.json"

// JSONStore keeps the campaign in pretty-printed JSON files under one
// directory: the full state plus one protected view file per player.
type JSONStore struct {
	dir string
}

// NewJSONStore creates the save directory if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir %q: %w", dir, err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) savePath() string {
	return filepath.Join(s.dir, saveFileName)
}

func (s *JSONStore) viewPath(pid game.PlayerID) string {
	return filepath.Join(s.dir, fmt.Sprintf("player_%d_view.dat", pid))
}

func (s *JSONStore) SaveGame(g *game.GameState) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}
	// Write-then-rename so a crash mid-write cannot corrupt the save.
	tmp := s.savePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, s.savePath()); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *JSONStore) LoadGame() (*game.GameState, error) {
	data, err := os.ReadFile(s.savePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("read save: %w", err)
	}
	var g game.GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	return &g, nil
}

func (s *JSONStore) SaveExists() bool {
	_, err := os.Stat(s.savePath())
	return err == nil
}

// DeleteSave removes the save file and any player view files. Missing files
// are not an error.
func (s *JSONStore) DeleteSave() error {
	if err := os.Remove(s.savePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete save: %w", err)
	}
	for pid := game.PlayerID(0); pid < 2; pid++ {
		if err := os.Remove(s.viewPath(pid)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete player view: %w", err)
		}
	}
	return nil
}

func (s *JSONStore) SavePlayerView(pid game.PlayerID, view string) error {
	if err := os.WriteFile(s.viewPath(pid), []byte(view), 0o600); err != nil {
		return fmt.Errorf("write player view: %w", err)
	}
	return nil
}

// LoadPlayerView re-verifies the password against the saved state before
// releasing the stored view. A player without a stored hash has open access.
func (s *JSONStore) LoadPlayerView(pid game.PlayerID, password string) (string, error) {
	g, err := s.LoadGame()
	if err != nil {
		return "", err
	}
	player, cerr := g.Player(pid)
	if cerr != nil {
		return "", fmt.Errorf("load player view: %s", cerr.Reason)
	}
	if !player.VerifyPassword(password) {
		return "", ErrBadCredentials
	}
	data, err := os.ReadFile(s.viewPath(pid))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no stored view for %s", player.Name)
		}
		return "", fmt.Errorf("read player view: %w", err)
	}
	return string(data), nil
}

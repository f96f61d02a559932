// Package storage persists campaigns: a JSON save-file store for the live
// game and a SQLite chronicle for the permanent archive.
package storage

import (
	"errors"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

// ErrNoSave is returned when a load finds no save on disk.
var ErrNoSave = errors.New("no saved campaign found")

// ErrBadCredentials is returned when a player view is requested with the
// wrong password.
var ErrBadCredentials = errors.New("password verification failed")

// Store is the persistence surface the game loop talks to. The JSON file
// implementation is the default; the interface keeps the door open for a
// database-backed one.
type Store interface {
	SaveGame(g *game.GameState) error
	LoadGame() (*game.GameState, error)
	SaveExists() bool
	DeleteSave() error

	// SavePlayerView stores one player's rendered private view.
	SavePlayerView(pid game.PlayerID, view string) error
	// LoadPlayerView returns a stored view after re-verifying the
	// player's password against the saved game state.
	LoadPlayerView(pid game.PlayerID, password string) (string, error)
}

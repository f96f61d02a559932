package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/FilmonaM/interstellar-command/internal/game"
)

// Chronicle is the permanent SQLite archive of campaigns: one row per game,
// one per completed turn, one per event-log line. It survives save-file
// deletion and outlives individual campaigns.
type Chronicle struct {
	db *sql.DB
}

const chronicleSchema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id          TEXT PRIMARY KEY,
	map_name    TEXT NOT NULL,
	player_one  TEXT NOT NULL,
	player_two  TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	ended_at    INTEGER,
	winner      TEXT
);

CREATE TABLE IF NOT EXISTS turns (
	campaign_id   TEXT NOT NULL REFERENCES campaigns(id),
	number        INTEGER NOT NULL,
	active_player INTEGER NOT NULL,
	actions       INTEGER NOT NULL,
	completed_at  INTEGER NOT NULL,
	PRIMARY KEY (campaign_id, number)
);

CREATE TABLE IF NOT EXISTS events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	campaign_id TEXT NOT NULL REFERENCES campaigns(id),
	turn_number INTEGER NOT NULL,
	body        TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_campaign ON events(campaign_id, id);
`

// OpenChronicle opens (creating if needed) the archive database at path.
func OpenChronicle(path string) (*Chronicle, error) {
	if path == "" {
		return nil, fmt.Errorf("chronicle path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open chronicle: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping chronicle: %w", err)
	}
	if _, err := db.Exec(chronicleSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply chronicle schema: %w", err)
	}
	return &Chronicle{db: db}, nil
}

func (c *Chronicle) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

// BeginCampaign registers a new campaign and returns its archive id.
func (c *Chronicle) BeginCampaign(ctx context.Context, g *game.GameState) (string, error) {
	id := uuid.NewString()
	_, err := c.db.ExecContext(ctx, `
INSERT INTO campaigns (id, map_name, player_one, player_two, started_at)
VALUES (?, ?, ?, ?, ?)
`, id, g.MapName, g.Players[0].Name, g.Players[1].Name, toMillis(time.Now()))
	if err != nil {
		return "", fmt.Errorf("begin campaign: %w", err)
	}
	return id, nil
}

// ArchiveTurn records one completed turn. Re-archiving the same turn number
// updates in place, so saving after every turn is safe.
func (c *Chronicle) ArchiveTurn(ctx context.Context, campaignID string, t game.Turn) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO turns (campaign_id, number, active_player, actions, completed_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(campaign_id, number) DO UPDATE SET
	active_player = excluded.active_player,
	actions = excluded.actions,
	completed_at = excluded.completed_at
`, campaignID, t.Number, int(t.ActivePlayer), len(t.ActionsTaken), toMillis(time.Now()))
	if err != nil {
		return fmt.Errorf("archive turn %d: %w", t.Number, err)
	}
	return nil
}

// AppendEvents archives event-log lines for one turn in a single transaction.
func (c *Chronicle) AppendEvents(ctx context.Context, campaignID string, turnNumber int, events []string) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin event write: %w", err)
	}
	now := toMillis(time.Now())
	for _, body := range events {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO events (campaign_id, turn_number, body, created_at)
VALUES (?, ?, ?, ?)
`, campaignID, turnNumber, body, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event write: %w", err)
	}
	return nil
}

// FinishCampaign closes the campaign record. Winner may be empty when the
// game ended by forfeit with both players alive.
func (c *Chronicle) FinishCampaign(ctx context.Context, campaignID, winner string) error {
	res, err := c.db.ExecContext(ctx, `
UPDATE campaigns SET ended_at = ?, winner = ? WHERE id = ?
`, toMillis(time.Now()), winner, campaignID)
	if err != nil {
		return fmt.Errorf("finish campaign: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish campaign rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish campaign: unknown campaign %s", campaignID)
	}
	return nil
}

// CampaignEvents returns up to limit archived event lines in chronological
// order.
func (c *Chronicle) CampaignEvents(ctx context.Context, campaignID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := c.db.QueryContext(ctx, `
SELECT body FROM events
WHERE campaign_id = ?
ORDER BY id ASC
LIMIT ?
`, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list campaign events: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		out = append(out, body)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return out, nil
}

// TurnCount reports how many turns are archived for a campaign.
func (c *Chronicle) TurnCount(ctx context.Context, campaignID string) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM turns WHERE campaign_id = ?
`, campaignID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count turns: %w", err)
	}
	return n, nil
}

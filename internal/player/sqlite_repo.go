package player

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// playerRowID is the fixed key of the singleton record.
const playerRowID = 1

// SQLiteRepo persists the player record in a single-row SQLite table.
type SQLiteRepo struct {
	db       *sql.DB
	defaults func() State
}

// NewSQLiteRepo opens (creating if needed) the database at path. defaults is
// called to seed the record on first access.
func NewSQLiteRepo(path string, defaults func() State) (*SQLiteRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if defaults == nil {
		return nil, fmt.Errorf("defaults func is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer only: every action runs under the engine mutex anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteRepo{db: db, defaults: defaults}, nil
}

func initPragmas(db *sql.DB) error {
	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	} {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS player_state (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	money        INTEGER NOT NULL,
	energy       INTEGER NOT NULL,
	max_energy   INTEGER NOT NULL,
	xp           INTEGER NOT NULL,
	level        INTEGER NOT NULL,
	upgrades     TEXT    NOT NULL DEFAULT '[]',
	junior_devs  INTEGER NOT NULL DEFAULT 0,
	last_updated INTEGER NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Load reads the record, creating it with defaults on first access.
func (r *SQLiteRepo) Load(ctx context.Context) (State, error) {
	s, err := r.get(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return State{}, err
	}
	s = r.defaults()
	if err := r.Save(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

func (r *SQLiteRepo) get(ctx context.Context) (State, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT money, energy, max_energy, xp, level, upgrades, junior_devs, last_updated
FROM player_state WHERE id = ?`, playerRowID)

	var s State
	var upgradesJSON string
	var lastUpdatedNanos int64
	if err := row.Scan(&s.Money, &s.Energy, &s.MaxEnergy, &s.XP, &s.Level,
		&upgradesJSON, &s.JuniorDevs, &lastUpdatedNanos); err != nil {
		return State{}, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(upgradesJSON), &ids); err != nil {
		return State{}, fmt.Errorf("decode upgrades: %w", err)
	}
	s.Upgrades = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.Upgrades[id] = true
	}
	if lastUpdatedNanos > 0 {
		s.LastUpdated = time.Unix(0, lastUpdatedNanos).UTC()
	}
	return Normalize(s), nil
}

// Save upserts the whole record in one transaction.
func (r *SQLiteRepo) Save(ctx context.Context, s State) error {
	upgradesJSON, err := json.Marshal(s.UpgradeList())
	if err != nil {
		return fmt.Errorf("encode upgrades: %w", err)
	}
	var lastUpdatedNanos int64
	if !s.LastUpdated.IsZero() {
		lastUpdatedNanos = s.LastUpdated.UnixNano()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO player_state (id, money, energy, max_energy, xp, level, upgrades, junior_devs, last_updated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	money        = excluded.money,
	energy       = excluded.energy,
	max_energy   = excluded.max_energy,
	xp           = excluded.xp,
	level        = excluded.level,
	upgrades     = excluded.upgrades,
	junior_devs  = excluded.junior_devs,
	last_updated = excluded.last_updated`,
		playerRowID, s.Money, s.Energy, s.MaxEnergy, s.XP, s.Level,
		string(upgradesJSON), s.JuniorDevs, lastUpdatedNanos)
	if err != nil {
		return fmt.Errorf("save player state: %w", err)
	}
	return tx.Commit()
}

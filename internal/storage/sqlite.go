// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrReplayNotFound is returned when no replay has the requested ID.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is a recorded run: the seed and settings it started from plus
// every input frame and time step fed to the simulation. Stepping a fresh
// simulation with the same values reproduces the run exactly.
type Replay struct {
	ID        int64
	Seed      int64
	Preset    string // difficulty preset name, "" for the config as loaded
	TickRate  int
	Score     int
	Wave      int
	FinalHash uint64 // hash of the last frame, used to verify playback
	ConfigFP  uint64 // fingerprint of the config the run used, 0 if unknown
	Frames    []Frame
	CreatedAt time.Time
}

// Summary is a replay without its frames, for listings.
type Summary struct {
	ID         int64
	Seed       int64
	Preset     string
	Score      int
	Wave       int
	FrameCount int
	CreatedAt  time.Time
}

// Duration returns the recorded play time.
func (r *Replay) Duration() time.Duration {
	var secs float64
	for _, f := range r.Frames {
		secs += f.DT
	}
	return time.Duration(secs * float64(time.Second))
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			tick_rate INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			wave INTEGER NOT NULL DEFAULT 0,
			final_hash INTEGER NOT NULL DEFAULT 0,
			frame_count INTEGER NOT NULL,
			frames BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases created before config fingerprints were recorded.
	var n int
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info('replays') WHERE name = 'config_fp'`,
	).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.db.Exec(`ALTER TABLE replays ADD COLUMN config_fp INTEGER NOT NULL DEFAULT 0`); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay records a finished run and returns its ID.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	blob := EncodeFrames(r.Frames)
	result, err := s.db.Exec(
		`INSERT INTO replays (seed, preset, tick_rate, score, wave, final_hash, config_fp, frame_count, frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Preset, r.TickRate, r.Score, r.Wave,
		int64(r.FinalHash), //#nosec G115 -- stored as two's complement, restored by LoadReplay
		int64(r.ConfigFP),  //#nosec G115 -- same encoding as final_hash
		len(r.Frames), blob,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LoadReplay retrieves a replay with all its frames.
func (s *Store) LoadReplay(id int64) (*Replay, error) {
	var r Replay
	var hash, fp int64
	var blob []byte
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, seed, preset, tick_rate, score, wave, final_hash, config_fp, frames, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Seed, &r.Preset, &r.TickRate, &r.Score, &r.Wave, &hash, &fp, &blob, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.FinalHash = uint64(hash) //#nosec G115 -- inverse of the conversion in SaveReplay
	r.ConfigFP = uint64(fp)    //#nosec G115 -- inverse of the conversion in SaveReplay
	r.CreatedAt = parseTime(createdAt)
	r.Frames, err = DecodeFrames(blob)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	return &r, nil
}

// ListReplays returns the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, preset, score, wave, frame_count, created_at
		 FROM replays
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var createdAt any
		if err := rows.Scan(&sum.ID, &sum.Seed, &sum.Preset, &sum.Score, &sum.Wave, &sum.FrameCount, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// DeleteReplay removes a replay. Deleting a missing ID returns
// ErrReplayNotFound.
func (s *Store) DeleteReplay(id int64) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrReplayNotFound, id)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes returned by the
// driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}

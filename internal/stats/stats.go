// internal/stats/stats.go
//
// Results of finished sessions for the lifetime of the process.
// Responsibilities:
//   - Open an in-memory SQLite database and apply the embedded schema.
//   - Record a session when it is won or abandoned.
//   - Summarise games played, wins and guesses-to-win.
//
// The database never touches disk; results are gone after a restart.

package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/logik/assets"
)

// Result is one finished session.
type Result struct {
	SessionID string
	Won       bool
	Guesses   int
}

// Summary aggregates all recorded results.
type Summary struct {
	GamesPlayed int     `json:"gamesPlayed"`
	Wins        int     `json:"wins"`
	BestGuesses int     `json:"bestGuesses,omitempty"` // fewest guesses in a win
	AvgGuesses  float64 `json:"avgGuesses,omitempty"`  // mean guesses over wins
}

// Recent is a row of the recent-results listing.
type Recent struct {
	SessionID  string `json:"sessionId"`
	Won        bool   `json:"won"`
	Guesses    int    `json:"guesses"`
	FinishedAt string `json:"finishedAt"`
}

// Store wraps the stats database.
type Store struct {
	db *sql.DB
}

// Open creates the in-memory database and applies the schema.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	// Every new connection to :memory: is a fresh empty database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	schema, err := assets.Schema()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Debug().Msg("stats database ready")
	return &Store{db: db}, nil
}

// Close releases the database; all results are discarded.
func (s *Store) Close() error { return s.db.Close() }

// Record stores r. Recording the same session twice keeps the first row.
func (s *Store) Record(ctx context.Context, r Result) error {
	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results (id, won, guesses, finished_at)
        VALUES (?, ?, ?, ?)`,
		r.SessionID, won, r.Guesses, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", r.SessionID, err)
	}
	return nil
}

// Summary returns aggregate counts over every recorded result.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var (
		out  Summary
		best sql.NullInt64
		avg  sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(won), 0),
               MIN(CASE WHEN won = 1 THEN guesses END),
               AVG(CASE WHEN won = 1 THEN guesses END)
        FROM results`,
	).Scan(&out.GamesPlayed, &out.Wins, &best, &avg)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	out.BestGuesses = int(best.Int64)
	out.AvgGuesses = avg.Float64
	return out, nil
}

// Latest lists the most recent results, newest first.
// Default limit is 20 if not specified.
func (s *Store) Latest(ctx context.Context, limit int) ([]Recent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, won, guesses, finished_at
        FROM results
        ORDER BY rowid DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Recent, 0, limit)
	for rows.Next() {
		var r Recent
		if err := rows.Scan(&r.SessionID, &r.Won, &r.Guesses, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Package results persists finished matches to Postgres.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/dkoval/arena/internal/arena"
)

// Repository implements arena.ResultSink on a Postgres database.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveMatch inserts one finished match. A replayed game after a resume
// from an earlier crash is silently skipped.
func (r *Repository) SaveMatch(ctx context.Context, rec arena.MatchRecord) error {
	movesRaw, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("encode moves: %w", err)
	}

	q := `INSERT INTO arena_matches (
	        run_id, opening_index, game_number,
	        white_name, black_name,
	        outcome, pgn_result, plies, moves, played_at
	      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	      ON CONFLICT (run_id, game_number) DO NOTHING`

	_, err = r.db.ExecContext(ctx, q,
		rec.RunID,
		rec.OpeningIndex,
		rec.GameNumber,
		rec.WhiteName,
		rec.BlackName,
		rec.Outcome.String(),
		rec.Outcome.PGNResult(),
		rec.Plies,
		movesRaw,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	q := `CREATE TABLE IF NOT EXISTS arena_matches (
	        id            BIGSERIAL PRIMARY KEY,
	        run_id        TEXT NOT NULL,
	        opening_index INT NOT NULL,
	        game_number   INT NOT NULL,
	        white_name    TEXT NOT NULL,
	        black_name    TEXT NOT NULL,
	        outcome       TEXT NOT NULL,
	        pgn_result    TEXT NOT NULL,
	        plies         INT NOT NULL,
	        moves         JSONB NOT NULL,
	        played_at     TIMESTAMPTZ NOT NULL,
	        UNIQUE (run_id, game_number)
	      )`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

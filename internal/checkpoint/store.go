// Package checkpoint persists tournament progress to Redis so an
// interrupted run can resume from the last fully completed opening.
package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkoval/arena/internal/arena"
)

const ttlRun = 7 * 24 * time.Hour

// Store implements arena.Checkpointer on Redis, one key per run ID.
type Store struct {
	rdb   *redis.Client
	runID string
}

func NewStore(redisURL, runID string) (*Store, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	if strings.TrimSpace(runID) == "" {
		return nil, fmt.Errorf("run id is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{rdb: rdb, runID: runID}, nil
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *Store) key() string { return "arena:run:" + s.runID }

// Load returns the stored snapshot, or nil when this run has none yet.
func (s *Store) Load(ctx context.Context) (*arena.Snapshot, error) {
	raw, err := s.rdb.Get(ctx, s.key()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap arena.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save overwrites the run's snapshot.
func (s *Store) Save(ctx context.Context, snap *arena.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.rdb.Set(ctx, s.key(), raw, ttlRun).Err()
}

// Command arena plays a head-to-head benchmark between two running
// engine services and reports scores, per-ply move latencies, and game
// transcripts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dkoval/arena/internal/arena"
	"github.com/dkoval/arena/internal/checkpoint"
	appcfg "github.com/dkoval/arena/internal/config"
	"github.com/dkoval/arena/internal/engineclient"
	"github.com/dkoval/arena/internal/obslog"
	"github.com/dkoval/arena/internal/record"
	"github.com/dkoval/arena/internal/report"
	"github.com/dkoval/arena/internal/results"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (env overrides)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := appcfg.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	obslog.Init(*debug)
	defer obslog.Sync()
	logger := obslog.L()

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	openings, err := arena.LoadOpenings(cfg.OpeningsFile)
	if err != nil {
		logger.Fatal("load openings", zap.Error(err))
	}

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	playerA := arena.NewPlayer(cfg.EngineA.Name,
		engineclient.NewClient(cfg.EngineA.URL, engineclient.WithTimeout(timeout)), cfg.IncrementMs)
	playerB := arena.NewPlayer(cfg.EngineB.Name,
		engineclient.NewClient(cfg.EngineB.URL, engineclient.WithTimeout(timeout)), cfg.IncrementMs)

	var opts []arena.TournamentOption

	var book *record.Book
	if cfg.RecordPGN {
		book = record.NewBook(fmt.Sprintf("%s vs %s", cfg.EngineA.Name, cfg.EngineB.Name))
		opts = append(opts, arena.WithRecorderFactory(book.NewRecorder))
	}

	if cfg.RedisURL != "" {
		store, err := checkpoint.NewStore(cfg.RedisURL, runID)
		if err != nil {
			logger.Fatal("checkpoint store", zap.Error(err))
		}
		defer store.Close()
		opts = append(opts, arena.WithCheckpointer(store))
	}

	if cfg.DatabaseURL != "" {
		repo, err := results.NewRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("results repository", zap.Error(err))
		}
		defer repo.Close()
		opts = append(opts, arena.WithResultSink(repo))
	}

	logger.Info("starting tournament",
		zap.String("run_id", runID),
		zap.String("engine_a", cfg.EngineA.Name),
		zap.String("engine_b", cfg.EngineB.Name),
		zap.Int("openings", len(openings)),
		zap.Int64("total_ms", cfg.TotalTimeMs),
		zap.Int64("increment_ms", cfg.IncrementMs),
	)

	t := arena.NewTournament(runID, playerA, playerB, openings, cfg.TotalTimeMs, opts...)
	if err := t.Run(context.Background()); err != nil {
		logger.Fatal("tournament aborted", zap.Error(err))
	}

	if err := writeReports(cfg, playerA, playerB, book); err != nil {
		logger.Fatal("write reports", zap.Error(err))
	}
	logger.Info("done", zap.String("out_dir", cfg.OutDir))
}

func writeReports(cfg *appcfg.AppConfig, a, b *arena.Player, book *record.Book) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := report.WriteScores(filepath.Join(cfg.OutDir, "scores.json"), a, b); err != nil {
		return err
	}
	if err := report.WriteTimings(filepath.Join(cfg.OutDir, "times.json"), a, b); err != nil {
		return err
	}
	if cfg.ScoreChart {
		if err := report.WriteScoreChart(filepath.Join(cfg.OutDir, "scores.png"), a, b); err != nil {
			return err
		}
	}
	if book != nil && book.Len() > 0 {
		if err := book.WriteFile(filepath.Join(cfg.OutDir, "games.pgn")); err != nil {
			return err
		}
	}
	return nil
}

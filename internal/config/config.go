package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// EngineConfig identifies one remote engine service.
type EngineConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// AppConfig holds the full harness configuration. Values come from an
// optional YAML file first, then from the environment; env wins.
type AppConfig struct {
	EngineA EngineConfig `yaml:"engine_a"`
	EngineB EngineConfig `yaml:"engine_b"`

	TotalTimeMs int64 `yaml:"total_time_ms"`
	IncrementMs int64 `yaml:"increment_ms"`

	OpeningsFile string `yaml:"openings_file"`
	OutDir       string `yaml:"out_dir"`

	RecordPGN  bool `yaml:"record_pgn"`
	ScoreChart bool `yaml:"score_chart"`

	RunID       string `yaml:"run_id"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`

	RequestTimeoutSec int `yaml:"request_timeout_sec"`
}

// Load builds the configuration from the YAML file at path (optional,
// empty path means env only) and the environment.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		EngineA:           EngineConfig{Name: "A"},
		EngineB:           EngineConfig{Name: "B"},
		TotalTimeMs:       60_000,
		IncrementMs:       0,
		OutDir:            "out",
		RecordPGN:         true,
		ScoreChart:        false,
		RequestTimeoutSec: 300,
	}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.EngineA.URL == "" {
		return nil, errors.New("ENGINE_A_URL is required")
	}
	if cfg.EngineB.URL == "" {
		return nil, errors.New("ENGINE_B_URL is required")
	}
	if cfg.EngineA.Name == cfg.EngineB.Name {
		return nil, fmt.Errorf("engine names must differ (both %q)", cfg.EngineA.Name)
	}
	if cfg.TotalTimeMs <= 0 {
		return nil, errors.New("total time budget must be positive")
	}
	if cfg.IncrementMs < 0 {
		return nil, errors.New("increment must not be negative")
	}

	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	setStr(&cfg.EngineA.Name, "ENGINE_A_NAME")
	setStr(&cfg.EngineA.URL, "ENGINE_A_URL")
	setStr(&cfg.EngineB.Name, "ENGINE_B_NAME")
	setStr(&cfg.EngineB.URL, "ENGINE_B_URL")

	setInt64(&cfg.TotalTimeMs, "TIME_TOTAL_MS")
	setInt64(&cfg.IncrementMs, "TIME_INCREMENT_MS")

	setStr(&cfg.OpeningsFile, "OPENINGS_FILE")
	setStr(&cfg.OutDir, "OUT_DIR")

	setBool(&cfg.RecordPGN, "RECORD_PGN")
	setBool(&cfg.ScoreChart, "SCORE_CHART")

	setStr(&cfg.RunID, "RUN_ID")
	setStr(&cfg.RedisURL, "REDIS_URL")
	setStr(&cfg.DatabaseURL, "DATABASE_URL")

	setInt(&cfg.RequestTimeoutSec, "REQUEST_TIMEOUT_SEC")
}

func setStr(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

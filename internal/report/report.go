// Package report writes the end-of-run artifacts: the score and timing
// JSON files and the optional score chart.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dkoval/arena/internal/arena"
)

// WriteScores serializes each player's score sheet keyed by display
// name: {"Baseline": {"white": {"win": 3, ...}, "black": {...}}, ...}.
func WriteScores(path string, players ...*arena.Player) error {
	out := make(map[string]arena.ScoreSheet, len(players))
	for _, p := range players {
		out[p.Name()] = p.Scores()
	}
	return writeJSON(path, out)
}

// WriteTimings serializes each player's timing log keyed by display
// name; ply indices become JSON object keys, latencies are seconds.
func WriteTimings(path string, players ...*arena.Player) error {
	out := make(map[string]arena.TimingSheet, len(players))
	for _, p := range players {
		out[p.Name()] = p.Timings()
	}
	return writeJSON(path, out)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

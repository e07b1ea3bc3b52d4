package report

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkoval/arena/internal/arena"
)

func testPlayers(t *testing.T) (*arena.Player, *arena.Player) {
	t.Helper()
	a := arena.NewPlayer("Baseline", nil, 0)
	b := arena.NewPlayer("Candidate", nil, 0)

	a.RecordOutcome(arena.White, arena.ResultWin)
	b.RecordOutcome(arena.Black, arena.ResultLose)
	a.RecordOutcome(arena.Black, arena.ResultDraw)
	b.RecordOutcome(arena.White, arena.ResultDraw)
	a.RecordLatency(0, 250*time.Millisecond)
	a.RecordLatency(2, 1200*time.Millisecond)
	a.RecordLatency(2, 800*time.Millisecond)
	return a, b
}

func TestWriteScoresFormat(t *testing.T) {
	a, b := testPlayers(t)
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := WriteScores(path, a, b); err != nil {
		t.Fatalf("WriteScores: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scores: %v", err)
	}
	var out map[string]map[string]map[string]int
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode scores: %v", err)
	}
	if out["Baseline"]["white"]["win"] != 1 {
		t.Fatalf("Baseline white win = %d, want 1", out["Baseline"]["white"]["win"])
	}
	if out["Candidate"]["black"]["lose"] != 1 {
		t.Fatalf("Candidate black lose = %d, want 1", out["Candidate"]["black"]["lose"])
	}
	if out["Baseline"]["black"]["draw"] != 1 || out["Candidate"]["white"]["draw"] != 1 {
		t.Fatalf("draw counts wrong: %v", out)
	}
	// Zero buckets are present, not omitted.
	if _, ok := out["Baseline"]["white"]["lose"]; !ok {
		t.Fatalf("zero buckets must be serialized: %v", out)
	}
}

func TestWriteTimingsKeysPliesAsStrings(t *testing.T) {
	a, b := testPlayers(t)
	path := filepath.Join(t.TempDir(), "times.json")
	if err := WriteTimings(path, a, b); err != nil {
		t.Fatalf("WriteTimings: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read timings: %v", err)
	}
	var out map[string]map[string][]float64
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode timings: %v", err)
	}
	if got := out["Baseline"]["0"]; len(got) != 1 || got[0] != 0.25 {
		t.Fatalf("ply 0 latencies = %v, want [0.25]", got)
	}
	if got := out["Baseline"]["2"]; len(got) != 2 || got[0] != 1.2 {
		t.Fatalf("ply 2 latencies = %v, want [1.2 0.8] in observation order", got)
	}
	if len(out["Candidate"]) != 0 {
		t.Fatalf("Candidate timings = %v, want empty", out["Candidate"])
	}
}

func TestWriteScoreChartProducesPNG(t *testing.T) {
	a, b := testPlayers(t)
	path := filepath.Join(t.TempDir(), "scores.png")
	if err := WriteScoreChart(path, a, b); err != nil {
		t.Fatalf("WriteScoreChart: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read chart: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if img.Bounds().Dx() != chartWidth || img.Bounds().Dy() != chartHeight {
		t.Fatalf("chart bounds = %v", img.Bounds())
	}
}

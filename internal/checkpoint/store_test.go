package checkpoint

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/dkoval/arena/internal/arena"
)

func newTestStore(t *testing.T, runID string) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	s, err := NewStore("redis://"+mr.Addr()+"/0", runID)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreLoadMissingRunIsNil(t *testing.T) {
	s := newTestStore(t, "fresh-run")
	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap != nil {
		t.Fatalf("snap = %+v, want nil for a fresh run", snap)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t, "run-42")
	ctx := context.Background()

	scores := arena.NewScoreSheet()
	scores[arena.White][arena.ResultWin] = 3
	in := &arena.Snapshot{
		OpeningsDone: 7,
		Players: map[string]arena.PlayerState{
			"Baseline": {Scores: scores, Timings: arena.TimingSheet{4: {0.5, 1.25}}},
		},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out == nil || out.OpeningsDone != 7 {
		t.Fatalf("round trip lost openings done: %+v", out)
	}
	st, ok := out.Players["Baseline"]
	if !ok {
		t.Fatalf("player state missing: %+v", out)
	}
	if st.Scores[arena.White][arena.ResultWin] != 3 {
		t.Fatalf("scores lost: %+v", st.Scores)
	}
	if got := st.Timings[4]; len(got) != 2 || got[1] != 1.25 {
		t.Fatalf("timings lost: %+v", st.Timings)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	s := newTestStore(t, "run-1")
	ctx := context.Background()

	for done := 1; done <= 3; done++ {
		snap := &arena.Snapshot{OpeningsDone: done, Players: map[string]arena.PlayerState{}}
		if err := s.Save(ctx, snap); err != nil {
			t.Fatalf("Save %d: %v", done, err)
		}
	}
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.OpeningsDone != 3 {
		t.Fatalf("openings done = %d, want latest save", out.OpeningsDone)
	}
}

package arena

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkoval/arena/internal/obslog"
)

// Tournament plays every opening twice, once with each engine taking
// white, and accumulates results into the two players. Matches run
// strictly one at a time; the players' aggregates are never touched
// concurrently.
type Tournament struct {
	runID    string
	a, b     *Player
	openings [][]string
	totalMs  int64

	newRecorder func(white, black string) MoveRecorder
	checkpoint  Checkpointer
	results     ResultSink
}

type TournamentOption func(*Tournament)

// WithRecorderFactory enables move recording; the factory is invoked
// once per match with the player names in role order.
func WithRecorderFactory(f func(white, black string) MoveRecorder) TournamentOption {
	return func(t *Tournament) { t.newRecorder = f }
}

// WithCheckpointer persists progress after every completed opening and
// resumes from the stored snapshot on start.
func WithCheckpointer(c Checkpointer) TournamentOption {
	return func(t *Tournament) { t.checkpoint = c }
}

// WithResultSink stores every finished match.
func WithResultSink(s ResultSink) TournamentOption {
	return func(t *Tournament) { t.results = s }
}

func NewTournament(runID string, a, b *Player, openings [][]string, totalMs int64, opts ...TournamentOption) *Tournament {
	t := &Tournament{runID: runID, a: a, b: b, openings: openings, totalMs: totalMs}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run plays the whole opening set. Any engine or protocol failure
// aborts the run; there is no per-match retry.
func (t *Tournament) Run(ctx context.Context) error {
	start, err := t.resume(ctx)
	if err != nil {
		return err
	}

	for i := start; i < len(t.openings); i++ {
		opening := t.openings[i]
		if _, err := t.playGame(ctx, i, 2*i+1, t.a, t.b, opening); err != nil {
			return err
		}
		if _, err := t.playGame(ctx, i, 2*i+2, t.b, t.a, opening); err != nil {
			return err
		}
		if err := t.saveCheckpoint(ctx, i+1); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tournament) playGame(ctx context.Context, openingIdx, gameNumber int, white, black *Player, opening []string) (Outcome, error) {
	white.Clock().Reset(t.totalMs)
	black.Clock().Reset(t.totalMs)

	var rec MoveRecorder
	if t.newRecorder != nil {
		rec = t.newRecorder(white.Name(), black.Name())
	}

	m := NewMatch(white, black, opening, rec)
	outcome, err := m.Play(ctx)
	if err != nil {
		return 0, fmt.Errorf("opening %d game %d: %w", openingIdx+1, gameNumber, err)
	}

	obslog.L().Info("game finished",
		zap.Int("opening", openingIdx+1),
		zap.Int("game", gameNumber),
		zap.String("white", white.Name()),
		zap.String("black", black.Name()),
		zap.Int("plies", m.Plies()),
		zap.String("result", resultLabel(outcome, white, black)),
	)

	if t.results != nil {
		rec := MatchRecord{
			RunID:        t.runID,
			OpeningIndex: openingIdx,
			GameNumber:   gameNumber,
			WhiteName:    white.Name(),
			BlackName:    black.Name(),
			Outcome:      outcome,
			Plies:        m.Plies(),
			Moves:        m.Moves(),
		}
		if err := t.results.SaveMatch(ctx, rec); err != nil {
			// Persistence is best effort; losing a row must not kill
			// the benchmark.
			obslog.L().Warn("save match", zap.Error(err))
		}
	}

	return outcome, nil
}

func (t *Tournament) resume(ctx context.Context) (int, error) {
	if t.checkpoint == nil {
		return 0, nil
	}
	snap, err := t.checkpoint.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load checkpoint: %w", err)
	}
	if snap == nil {
		return 0, nil
	}
	if snap.OpeningsDone > len(t.openings) {
		return 0, fmt.Errorf("checkpoint has %d openings done but only %d configured", snap.OpeningsDone, len(t.openings))
	}
	for _, p := range []*Player{t.a, t.b} {
		st, ok := snap.Players[p.Name()]
		if !ok {
			return 0, fmt.Errorf("checkpoint has no state for engine %q", p.Name())
		}
		p.RestoreState(st)
	}
	obslog.L().Info("resumed from checkpoint",
		zap.String("run_id", t.runID),
		zap.Int("openings_done", snap.OpeningsDone),
	)
	return snap.OpeningsDone, nil
}

func (t *Tournament) saveCheckpoint(ctx context.Context, openingsDone int) error {
	if t.checkpoint == nil {
		return nil
	}
	snap := &Snapshot{
		OpeningsDone: openingsDone,
		Players: map[string]PlayerState{
			t.a.Name(): t.a.State(),
			t.b.Name(): t.b.State(),
		},
	}
	if err := t.checkpoint.Save(ctx, snap); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

func resultLabel(o Outcome, white, black *Player) string {
	w, ok := o.Winner()
	if !ok {
		return "Draw"
	}
	name := white.Name()
	if w == Black {
		name = black.Name()
	}
	if o.TimeForfeit() {
		return name + " (time forfeit)"
	}
	return name
}

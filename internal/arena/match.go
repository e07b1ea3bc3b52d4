package arena

import (
	"context"

	"go.uber.org/zap"

	"github.com/dkoval/arena/internal/obslog"
	"github.com/dkoval/arena/pkg/enginedto"
)

// Match drives one game between two players to a terminal outcome. The
// white/black roles are fixed for the lifetime of the match; the
// tournament swaps the physical engines between games.
//
// A match walks three phases: replaying the opening line, timed play
// where each side's engine is queried and its clock charged, and the
// terminal position. Moves are applied to both remote sessions so the
// two boards stay mirrored.
type Match struct {
	white, black *Player
	opening      []string
	recorder     MoveRecorder

	ply   int
	moves []string
}

// NewMatch prepares a match. recorder may be nil to disable move
// recording. Clocks are expected to be reset by the caller before Play.
func NewMatch(white, black *Player, opening []string, recorder MoveRecorder) *Match {
	return &Match{white: white, black: black, opening: opening, recorder: recorder}
}

// Plies returns the number of half-moves actually applied.
func (m *Match) Plies() int { return m.ply }

// Moves returns the applied move tokens in order.
func (m *Match) Moves() []string { return m.moves }

// Play runs the match to completion. Sessions are created on both
// services first and released when the match ends, whether it produced
// an outcome or failed on a protocol error.
func (m *Match) Play(ctx context.Context) (Outcome, error) {
	if err := m.white.CreateGame(ctx); err != nil {
		return 0, err
	}
	if err := m.black.CreateGame(ctx); err != nil {
		_ = m.white.DeleteGame(ctx)
		return 0, err
	}

	outcome, err := m.run(ctx)

	if derr := m.white.DeleteGame(ctx); derr != nil && err == nil {
		err = derr
	}
	if derr := m.black.DeleteGame(ctx); derr != nil && err == nil {
		err = derr
	}
	if err != nil {
		return 0, err
	}

	m.recordOutcome(outcome)
	if m.recorder != nil {
		m.recorder.Finalize(outcome)
	}
	return outcome, nil
}

func (m *Match) run(ctx context.Context) (Outcome, error) {
	var lastInfo enginedto.TurnInfo

	for {
		mover, other, color := m.white, m.black, White
		if m.ply%2 == 1 {
			mover, other, color = m.black, m.white, Black
		}

		var move string
		if m.ply < len(m.opening) {
			// Book move: no engine query, no clock charge.
			move = m.opening[m.ply]
		} else {
			mv, elapsed, err := mover.BestMove(ctx)
			if err != nil {
				return 0, err
			}
			mover.RecordLatency(m.ply, elapsed)
			if !mover.Clock().Charge(elapsed.Milliseconds()) {
				// The flag fell while thinking. The move is
				// discarded, not applied.
				obslog.L().Debug("time forfeit",
					zap.String("player", mover.Name()),
					zap.Int("ply", m.ply),
					zap.Duration("elapsed", elapsed),
				)
				if color == White {
					return WhiteTimeForfeit, nil
				}
				return BlackTimeForfeit, nil
			}
			move = mv
		}

		if move == "" {
			// The engine answered without a move. Treat it as an
			// end-of-game signal on the last known position summary
			// rather than a protocol error. That summary describes the
			// current mover's own position, so the previous mover is
			// the one credited with a mate; a fresh game with no
			// summary yet reads as a quiet position and scores a draw.
			return terminalOutcome(lastInfo, color.Opp()), nil
		}

		if _, err := mover.MakeMove(ctx, move); err != nil {
			return 0, err
		}
		info, err := other.MakeMove(ctx, move)
		if err != nil {
			return 0, err
		}

		if m.recorder != nil {
			m.recorder.Record(color, move)
		}
		m.moves = append(m.moves, move)
		m.ply++
		lastInfo = info

		if len(info.Moves) == 0 {
			return terminalOutcome(info, color), nil
		}
	}
}

// terminalOutcome scores a position with no legal replies: a side in
// check has been mated by the mover, otherwise the game is drawn.
func terminalOutcome(info enginedto.TurnInfo, mover Color) Outcome {
	if !info.InCheck {
		return Draw
	}
	if mover == White {
		return WhiteWin
	}
	return BlackWin
}

func (m *Match) recordOutcome(o Outcome) {
	if w, ok := o.Winner(); ok {
		winner, loser := m.white, m.black
		if w == Black {
			winner, loser = m.black, m.white
		}
		winner.RecordOutcome(w, ResultWin)
		loser.RecordOutcome(w.Opp(), ResultLose)
		return
	}
	m.white.RecordOutcome(White, ResultDraw)
	m.black.RecordOutcome(Black, ResultDraw)
}

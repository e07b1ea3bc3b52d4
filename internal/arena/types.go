// Package arena drives matches between two remote engine services and
// keeps the per-engine score and timing aggregates.
package arena

import "context"

// Color identifies a side within one match. Assignment is per match;
// the tournament swaps the physical engines between the two games it
// plays per opening.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opp() Color {
	if c == White {
		return Black
	}
	return White
}

// Result is one engine's outcome in one match, relative to the color it
// played.
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultDraw Result = "draw"
)

// Outcome is the single terminal result of a match.
type Outcome int

const (
	WhiteWin Outcome = iota
	BlackWin
	Draw
	WhiteTimeForfeit
	BlackTimeForfeit
)

func (o Outcome) String() string {
	switch o {
	case WhiteWin:
		return "white win"
	case BlackWin:
		return "black win"
	case Draw:
		return "draw"
	case WhiteTimeForfeit:
		return "white time forfeit"
	case BlackTimeForfeit:
		return "black time forfeit"
	}
	return "unknown"
}

// Winner reports the winning color, if any.
func (o Outcome) Winner() (Color, bool) {
	switch o {
	case WhiteWin, BlackTimeForfeit:
		return White, true
	case BlackWin, WhiteTimeForfeit:
		return Black, true
	}
	return "", false
}

// TimeForfeit reports whether the match ended on the clock.
func (o Outcome) TimeForfeit() bool {
	return o == WhiteTimeForfeit || o == BlackTimeForfeit
}

// PGNResult renders the outcome as a PGN result code.
func (o Outcome) PGNResult() string {
	switch w, ok := o.Winner(); {
	case ok && w == White:
		return "1-0"
	case ok && w == Black:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

// ScoreSheet counts outcomes per color played.
type ScoreSheet map[Color]map[Result]int

func NewScoreSheet() ScoreSheet {
	return ScoreSheet{
		White: {ResultWin: 0, ResultLose: 0, ResultDraw: 0},
		Black: {ResultWin: 0, ResultLose: 0, ResultDraw: 0},
	}
}

// TimingSheet maps ply index to the decision latencies, in seconds,
// observed at that ply across all games.
type TimingSheet map[int][]float64

// MoveRecorder collects the moves of one match for transcription. A nil
// recorder disables recording.
type MoveRecorder interface {
	Record(c Color, move string)
	Finalize(o Outcome)
}

// Checkpointer persists tournament progress between openings so an
// interrupted run can resume. Implementations live outside this package.
type Checkpointer interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Snapshot is the durable tournament state after some number of fully
// completed openings.
type Snapshot struct {
	OpeningsDone int                    `json:"openings_done"`
	Players      map[string]PlayerState `json:"players"`
}

// PlayerState is one engine's aggregates inside a Snapshot.
type PlayerState struct {
	Scores  ScoreSheet  `json:"scores"`
	Timings TimingSheet `json:"timings"`
}

// MatchRecord describes one finished match for persistence.
type MatchRecord struct {
	RunID        string
	OpeningIndex int
	GameNumber   int
	WhiteName    string
	BlackName    string
	Outcome      Outcome
	Plies        int
	Moves        []string
}

// ResultSink receives finished matches. Implementations live outside
// this package.
type ResultSink interface {
	SaveMatch(ctx context.Context, rec MatchRecord) error
}

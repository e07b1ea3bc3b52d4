// Package record builds PGN transcripts of finished matches.
package record

import (
	"fmt"
	"os"
	"strings"
	"time"

	nchess "github.com/corentings/chess/v2"

	"github.com/dkoval/arena/internal/arena"
)

// Book collects the transcripts of one tournament run, one game per
// finished match, in completion order.
type Book struct {
	event string
	games []string
}

func NewBook(event string) *Book {
	if strings.TrimSpace(event) == "" {
		event = "Engine match"
	}
	return &Book{event: event}
}

// NewRecorder returns a fresh per-match recorder feeding this book.
func (b *Book) NewRecorder(white, black string) arena.MoveRecorder {
	return &recorder{book: b, white: white, black: black}
}

func (b *Book) Len() int { return len(b.games) }

// PGN renders the whole book.
func (b *Book) PGN() string {
	return strings.Join(b.games, "\n\n")
}

// WriteFile persists the book to path.
func (b *Book) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(b.PGN()+"\n"), 0o644); err != nil {
		return fmt.Errorf("write pgn: %w", err)
	}
	return nil
}

type recorder struct {
	book         *Book
	white, black string
	moves        []string
}

func (r *recorder) Record(_ arena.Color, move string) {
	r.moves = append(r.moves, move)
}

func (r *recorder) Finalize(o arena.Outcome) {
	r.book.games = append(r.book.games, r.build(o))
}

func (r *recorder) build(o arena.Outcome) string {
	var b strings.Builder
	now := time.Now()
	result := o.PGNResult()

	b.WriteString(fmt.Sprintf("[Event %q]\n", r.book.event))
	b.WriteString(fmt.Sprintf("[Date \"%04d.%02d.%02d\"]\n", now.Year(), int(now.Month()), now.Day()))
	b.WriteString(fmt.Sprintf("[White %q]\n", sanitize(r.white)))
	b.WriteString(fmt.Sprintf("[Black %q]\n", sanitize(r.black)))
	if o.TimeForfeit() {
		b.WriteString("[Termination \"time forfeit\"]\n")
	}
	b.WriteString(fmt.Sprintf("[Result %q]\n\n", result))

	moves, ok := sanMoves(r.moves)
	if !ok {
		// A token the chess library cannot replay (non-standard
		// variant, engine quirk): keep the raw tokens so the record
		// stays readable.
		moves = r.moves
	}
	for i := 0; i < len(moves); i += 2 {
		b.WriteString(fmt.Sprintf("%d. %s", i/2+1, moves[i]))
		if i+1 < len(moves) {
			b.WriteString(" ")
			b.WriteString(moves[i+1])
		}
		b.WriteString(" ")
	}
	b.WriteString(result)
	return b.String()
}

// sanMoves replays UCI move tokens through a fresh game to render them
// in standard algebraic notation.
func sanMoves(tokens []string) ([]string, bool) {
	game := nchess.NewGame()
	notationUCI := nchess.UCINotation{}
	sans := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		pos := game.Position()
		mv, err := notationUCI.Decode(pos, tok)
		if err != nil {
			return nil, false
		}
		san := nchess.AlgebraicNotation{}.Encode(pos, mv)
		if err := game.Move(mv, nil); err != nil {
			return nil, false
		}
		sans = append(sans, san)
	}
	return sans, true
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}

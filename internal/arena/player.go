package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/dkoval/arena/internal/engineclient"
	"github.com/dkoval/arena/pkg/enginedto"
)

// Player binds one remote engine service to its tournament-wide
// aggregates: the clock, the score sheet, and the timing log. A player
// holds at most one open game session at a time and is reused across
// every match of the run.
type Player struct {
	name   string
	client *engineclient.Client
	clock  *Clock

	gameKey string

	scores  ScoreSheet
	timings TimingSheet
}

func NewPlayer(name string, client *engineclient.Client, incrementMs int64) *Player {
	return &Player{
		name:    name,
		client:  client,
		clock:   NewClock(incrementMs),
		scores:  NewScoreSheet(),
		timings: TimingSheet{},
	}
}

func (p *Player) Name() string  { return p.name }
func (p *Player) Clock() *Clock { return p.clock }

// CreateGame opens a session on the remote service. The previous
// session must have been released first.
func (p *Player) CreateGame(ctx context.Context) error {
	if p.gameKey != "" {
		return fmt.Errorf("player %s already has an open game %s", p.name, p.gameKey)
	}
	key, err := p.client.CreateGame(ctx)
	if err != nil {
		return fmt.Errorf("player %s: %w", p.name, err)
	}
	p.gameKey = key
	return nil
}

// DeleteGame releases the open session.
func (p *Player) DeleteGame(ctx context.Context) error {
	if p.gameKey == "" {
		return fmt.Errorf("player %s has no open game", p.name)
	}
	key := p.gameKey
	p.gameKey = ""
	if err := p.client.DeleteGame(ctx, key); err != nil {
		return fmt.Errorf("player %s: %w", p.name, err)
	}
	return nil
}

// MakeMove applies a move (own or the opponent's) to this player's
// session, keeping the two remote boards mirrored.
func (p *Player) MakeMove(ctx context.Context, move string) (enginedto.TurnInfo, error) {
	info, err := p.client.MakeMove(ctx, p.gameKey, move)
	if err != nil {
		return enginedto.TurnInfo{}, fmt.Errorf("player %s: %w", p.name, err)
	}
	return info, nil
}

// BestMove asks this player's engine for a move, passing the current
// clock budget as the time hint. Returns the move and the wall-clock
// duration the query took.
func (p *Player) BestMove(ctx context.Context) (string, time.Duration, error) {
	move, elapsed, err := p.client.BestMove(ctx, p.gameKey, p.clock.RemainingMs())
	if err != nil {
		return "", 0, fmt.Errorf("player %s: %w", p.name, err)
	}
	return move, elapsed, nil
}

// RecordOutcome increments the score bucket for the color this player
// held in the match just played.
func (p *Player) RecordOutcome(c Color, r Result) {
	p.scores[c][r]++
}

// RecordLatency appends one observed decision latency for a ply.
func (p *Player) RecordLatency(ply int, elapsed time.Duration) {
	p.timings[ply] = append(p.timings[ply], elapsed.Seconds())
}

func (p *Player) Scores() ScoreSheet   { return p.scores }
func (p *Player) Timings() TimingSheet { return p.timings }

// State copies the aggregates for checkpointing.
func (p *Player) State() PlayerState {
	scores := NewScoreSheet()
	for c, row := range p.scores {
		for r, n := range row {
			scores[c][r] = n
		}
	}
	timings := TimingSheet{}
	for ply, vals := range p.timings {
		timings[ply] = append([]float64(nil), vals...)
	}
	return PlayerState{Scores: scores, Timings: timings}
}

// RestoreState replaces the aggregates with a checkpointed copy.
func (p *Player) RestoreState(st PlayerState) {
	scores := NewScoreSheet()
	for c, row := range st.Scores {
		for r, n := range row {
			scores[c][r] = n
		}
	}
	p.scores = scores
	p.timings = TimingSheet{}
	for ply, vals := range st.Timings {
		p.timings[ply] = append([]float64(nil), vals...)
	}
}

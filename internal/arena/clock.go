package arena

// Clock is a countdown-with-increment time control for one player. It
// is charged only for engine queries, never for book moves.
type Clock struct {
	remainingMs int64
	incrementMs int64
}

func NewClock(incrementMs int64) *Clock {
	return &Clock{incrementMs: incrementMs}
}

// Reset sets the remaining budget back to totalMs. Called at the start
// of every match.
func (c *Clock) Reset(totalMs int64) {
	c.remainingMs = totalMs
}

// Charge subtracts elapsedMs and reports whether the clock is still
// alive. The increment is added only after the survival test: a charge
// that flags the player must never be softened by the bonus.
func (c *Clock) Charge(elapsedMs int64) bool {
	c.remainingMs -= elapsedMs
	if c.remainingMs <= 0 {
		return false
	}
	c.remainingMs += c.incrementMs
	return true
}

// RemainingMs returns the current budget. Negative once the player has
// been flagged.
func (c *Clock) RemainingMs() int64 {
	return c.remainingMs
}

func (c *Clock) IncrementMs() int64 {
	return c.incrementMs
}

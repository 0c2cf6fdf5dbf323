package fetch

import (
	"time"
)

// Backoff produces exponentially growing delays between retry attempts,
// clamped to Maximum.
type Backoff struct {
	Minimum time.Duration
	Maximum time.Duration

	current time.Duration
}

// Current returns the delay for the current attempt without advancing.
func (b *Backoff) Current() time.Duration {
	if b.current == 0 {
		b.current = b.Minimum
	}
	return b.current
}

// Next advances to the next delay and returns it.
func (b *Backoff) Next() time.Duration {
	if b.current == 0 {
		b.current = b.Minimum
		return b.current
	}
	b.current = b.current * 2
	if b.current >= b.Maximum {
		b.current = b.Maximum
	}
	return b.current
}

// Reset restores the backoff to its initial state.
func (b *Backoff) Reset() {
	b.current = 0
}

package iislog

import (
	"time"

	"github.com/benbjohnson/clock"
)

// ProgressThrottle rate-limits progress notifications so parsing a large
// file does not flood the caller. The first and final lines are always
// delivered.
type ProgressThrottle struct {
	clock clock.Clock
	min   time.Duration
	fn    ProgressFunc
	last  time.Time
	seen  bool
}

// NewProgressThrottle wraps fn so it fires at most once per min interval.
func NewProgressThrottle(fn ProgressFunc, min time.Duration) *ProgressThrottle {
	return newProgressThrottle(fn, min, clock.New())
}

func newProgressThrottle(fn ProgressFunc, min time.Duration, clk clock.Clock) *ProgressThrottle {
	return &ProgressThrottle{clock: clk, min: min, fn: fn}
}

// Tick forwards a progress notification unless one fired too recently.
func (p *ProgressThrottle) Tick(line, total int) {
	now := p.clock.Now()
	if p.seen && line != total && now.Sub(p.last) < p.min {
		return
	}
	p.seen = true
	p.last = now
	p.fn(line, total)
}

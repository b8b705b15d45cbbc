package control

import "time"

// Pulse is a wall-clock periodic tick with missed-pulse catch-up counting: if the reader
// is late by more than one period, Read reports how many pulses were coalesced so the
// caller can advance its own state by the right amount in one step.
type Pulse struct {
	period time.Duration
	latest time.Time
}

// NewPulse starts a Pulse with the given period, anchored at now.
func NewPulse(period time.Duration, now time.Time) Pulse {
	return Pulse{period: period, latest: now}
}

// PulseResult is what Read returns when at least one period has elapsed.
type PulseResult struct {
	Latest time.Time
	Missed int
}

// Read computes how many whole periods have elapsed since the last Read (or construction),
// advances the internal clock by that many periods, and reports missed = periods - 1. It
// returns false if less than one full period has elapsed.
func (p *Pulse) Read(now time.Time) (PulseResult, bool) {
	elapsed := now.Sub(p.latest)
	if elapsed < p.period {
		return PulseResult{}, false
	}
	periods := int(elapsed / p.period)
	p.latest = p.latest.Add(time.Duration(periods) * p.period)
	return PulseResult{Latest: p.latest, Missed: periods - 1}, true
}

// WithPeriod returns a copy of p with its period changed but latest preserved, so a tempo
// change doesn't reset phase.
func (p Pulse) WithPeriod(period time.Duration) Pulse {
	return Pulse{period: period, latest: p.latest}
}

// Period returns the current period.
func (p Pulse) Period() time.Duration { return p.period }

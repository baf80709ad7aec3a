package pipeline

import (
	"context"
	"time"

	"authorscan/internal/provider"
)

// PollState is one state of the completion poller
type PollState int

const (
	StateSubmitted PollState = iota
	StatePolling
	StateResultReady
	StateRateLimited
	StateTimedOut
)

func (s PollState) String() string {
	switch s {
	case StateSubmitted:
		return "submitted"
	case StatePolling:
		return "polling"
	case StateResultReady:
		return "result_ready"
	case StateRateLimited:
		return "rate_limited"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends polling
func (s PollState) Terminal() bool {
	return s == StateResultReady || s == StateRateLimited || s == StateTimedOut
}

// Poller drives a submitted scan to one of its terminal page
// conditions: the rendered result, the provider's rate-limit page, or
// a hard timeout after the bounded probe budget.
type Poller struct {
	rounds       int
	probeTimeout time.Duration
}

// NewPoller creates a poller with the given probe budget
func NewPoller(rounds int, probeTimeout time.Duration) *Poller {
	if rounds <= 0 {
		rounds = 10
	}
	if probeTimeout <= 0 {
		probeTimeout = time.Second
	}
	return &Poller{rounds: rounds, probeTimeout: probeTimeout}
}

// PollOutcome reports how polling ended and how many rounds it took
type PollOutcome struct {
	State  PollState
	Rounds int
}

// Poll probes the session until a terminal condition appears or the
// round budget is spent. Each round checks the rate-limit indicator
// before the result indicator: a provider that renders both
// near-simultaneously must be reported as rate-limited, never as a
// possibly partial result.
func (p *Poller) Poll(ctx context.Context, session Session, spec *provider.Spec) (PollOutcome, error) {
	state := StatePolling

	for round := 1; round <= p.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return PollOutcome{State: state, Rounds: round - 1}, err
		}

		if session.WaitFor(ctx, spec.RateLimitSelector, p.probeTimeout) {
			return PollOutcome{State: StateRateLimited, Rounds: round}, nil
		}

		if session.WaitFor(ctx, spec.ResultSelector, p.probeTimeout) {
			return PollOutcome{State: StateResultReady, Rounds: round}, nil
		}
	}

	return PollOutcome{State: StateTimedOut, Rounds: p.rounds}, nil
}

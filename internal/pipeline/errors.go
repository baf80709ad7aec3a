package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel outcomes the caller is expected to branch on with errors.Is
var (
	// ErrRateLimited reports the provider's daily-quota refusal. It is
	// an expected, user-actionable condition, not an infrastructure
	// fault; callers should suggest trying again tomorrow.
	ErrRateLimited = errors.New("provider rate limit reached")

	// ErrTimedOut reports that neither terminal page condition appeared
	// within the polling budget. The engine never retries internally;
	// retrying is the caller's decision.
	ErrTimedOut = errors.New("scan did not complete within the polling budget")

	// ErrNoScoredWords reports that aggregation was attempted over zero
	// total words, i.e. the provider rendered no recognizable spans.
	ErrNoScoredWords = errors.New("no scored words to aggregate")
)

// SessionError reports that the browser capability failed to start or
// to reach the provider page.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("browser session: %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// InteractionError reports that an expected page control was missing,
// usually meaning the provider changed its page layout.
type InteractionError struct {
	Selector string
	Err      error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("page control %q not interactable: %v", e.Selector, e.Err)
}

func (e *InteractionError) Unwrap() error { return e.Err }

// ParseError reports that a page reported as ready could not be parsed.
// The poller only reports ready after seeing the result container, so
// this is an invariant violation rather than an expected condition.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse result page: %s", e.Reason)
}

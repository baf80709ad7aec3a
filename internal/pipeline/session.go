package pipeline

import (
	"context"
	"time"
)

// Session is the browser capability the pipeline drives. The real
// implementation lives in internal/browser; tests substitute fakes so
// the poller and parser run against synthetic pages.
type Session interface {
	// Navigate loads the provider page
	Navigate(ctx context.Context, url string) error

	// SubmitText enters the sample into the input control and clicks
	// the submit control
	SubmitText(ctx context.Context, inputSelector, submitSelector, text string) error

	// WaitFor reports whether an element matching the selector appeared
	// within the timeout. An ordinary timeout is a false, not an error.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) bool

	// PageMarkup returns the current rendered page markup
	PageMarkup() (string, error)

	// Close releases the underlying browser process. Idempotent; must
	// run on every exit path.
	Close() error
}

// SessionOpener starts a fresh browser session per invocation
type SessionOpener interface {
	Open(ctx context.Context) (Session, error)
}

package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"authorscan/internal/model"
	"authorscan/internal/pipeline"
)

// controlTimeout bounds how long locating an input/submit control may
// take. Controls are part of the static page, unlike the asynchronous
// scan result, so a missing control means a changed page layout.
const controlTimeout = 10 * time.Second

// Opener launches one fresh headless browser per invocation
type Opener struct {
	cfg model.BrowserConfig
}

// NewOpener creates an opener with the given browser configuration
func NewOpener(cfg model.BrowserConfig) *Opener {
	return &Opener{cfg: cfg}
}

// Open launches a headless Chromium and connects a fresh session to it
func (o *Opener) Open(ctx context.Context) (pipeline.Session, error) {
	l := launcher.New().Headless(o.cfg.Headless)
	if o.cfg.Bin != "" {
		l = l.Bin(o.cfg.Bin)
	}
	if o.cfg.Proxy != "" {
		l = l.Set(flags.ProxyServer, o.cfg.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, &pipeline.SessionError{Op: "launch", Err: err}
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, &pipeline.SessionError{Op: "connect", Err: err}
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, &pipeline.SessionError{Op: "open page", Err: err}
	}

	return &Session{
		browser:    b,
		page:       page,
		launcher:   l,
		navTimeout: o.cfg.NavigationTimeout,
	}, nil
}

// Session drives one exclusively-owned headless browser page
type Session struct {
	browser    *rod.Browser
	page       *rod.Page
	launcher   *launcher.Launcher
	navTimeout time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Navigate loads the provider page and waits for the initial load
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx).Timeout(s.navTimeout)
	if err := page.Navigate(url); err != nil {
		return &pipeline.SessionError{Op: fmt.Sprintf("navigate %s", url), Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return &pipeline.SessionError{Op: fmt.Sprintf("load %s", url), Err: err}
	}
	return nil
}

// SubmitText locates the input control, enters the sample, then clicks
// the submit control
func (s *Session) SubmitText(ctx context.Context, inputSelector, submitSelector, text string) error {
	input, err := s.page.Context(ctx).Timeout(controlTimeout).Element(inputSelector)
	if err != nil {
		return &pipeline.InteractionError{Selector: inputSelector, Err: err}
	}
	if err := input.Input(text); err != nil {
		return &pipeline.InteractionError{Selector: inputSelector, Err: err}
	}

	submit, err := s.page.Context(ctx).Timeout(controlTimeout).Element(submitSelector)
	if err != nil {
		return &pipeline.InteractionError{Selector: submitSelector, Err: err}
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return &pipeline.InteractionError{Selector: submitSelector, Err: err}
	}

	return nil
}

// WaitFor reports whether an element matching the selector appeared
// within the timeout. Ordinary timeouts are not errors; the poller
// probes repeatedly and expects many misses.
func (s *Session) WaitFor(ctx context.Context, selector string, timeout time.Duration) bool {
	_, err := s.page.Context(ctx).Timeout(timeout).Element(selector)
	return err == nil
}

// PageMarkup returns the rendered markup of the current page
func (s *Session) PageMarkup() (string, error) {
	markup, err := s.page.HTML()
	if err != nil {
		return "", &pipeline.SessionError{Op: "read page markup", Err: err}
	}
	return markup, nil
}

// Close tears down the page, the browser connection, and the launched
// process. Safe to call multiple times and on partially failed scans.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.browser.Close()
		s.launcher.Kill()
	})
	return s.closeErr
}

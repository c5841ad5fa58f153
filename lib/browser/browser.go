// Package browser drives a headless Chrome session through a navigation
// script and hands back the settled DOM. It knows nothing about what the
// page contains; parsing lives with the callers.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// ErrLocatorTimeout reports that a required interactive element never
// appeared within the step's wait window.
var ErrLocatorTimeout = errors.New("locator timed out")

const (
	// DefaultStepTimeout bounds the wait for any single interactive element.
	DefaultStepTimeout = 10 * time.Second
	// settleDelay gives the page a moment to finish rendering after the
	// last interaction before the DOM is captured.
	settleDelay = 2 * time.Second
)

type Options struct {
	Headless bool
	// StepTimeout overrides DefaultStepTimeout when positive.
	StepTimeout time.Duration
}

// Session owns one browser instance. It is not safe for concurrent use;
// the pipeline is strictly sequential anyway.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	stepTimeout time.Duration
}

func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.StepTimeout <= 0 {
		opts.StepTimeout = DefaultStepTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// start the browser eagerly so a missing chrome binary surfaces here
	// instead of in the middle of a render
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, err
	}

	return &Session{
		ctx:         browserCtx,
		cancel:      cancel,
		stepTimeout: opts.StepTimeout,
	}, nil
}

// Close tears down the browser. It also unblocks any in-flight Render call.
func (s *Session) Close() {
	s.cancel()
}

// Script is a sequence of interactions performed after navigating to URL.
type Script struct {
	URL   string
	Steps []Step
}

type Step interface {
	describe() string
	run(ctx context.Context, s *Session) error
}

// Render navigates to the script's URL, performs every step in order, and
// returns the final serialized DOM. Element waits are bounded by the
// session's step timeout and fail with ErrLocatorTimeout; the navigation
// itself is bounded only by the session lifetime.
func (s *Session) Render(ctx context.Context, script Script) (string, error) {
	slog.DebugContext(ctx, "rendering page", "url", script.URL, "steps", len(script.Steps))

	if err := chromedp.Run(s.ctx, chromedp.Navigate(script.URL)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", script.URL, err)
	}

	for _, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		slog.DebugContext(ctx, "running step", "step", step.describe())
		if err := step.run(ctx, s); err != nil {
			return "", err
		}
	}

	var page string
	err := chromedp.Run(s.ctx,
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &page, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("capture dom: %w", err)
	}
	return page, nil
}

// bounded runs actions under the step timeout, translating a deadline hit
// into ErrLocatorTimeout. A cancellation of the session or caller context
// propagates as-is.
func (s *Session) bounded(desc string, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(s.ctx, s.stepTimeout)
	defer cancel()

	err := chromedp.Run(stepCtx, actions...)
	if errors.Is(err, context.DeadlineExceeded) && s.ctx.Err() == nil {
		return fmt.Errorf("%w after %s: %s", ErrLocatorTimeout, s.stepTimeout, desc)
	}
	return err
}

// Package scrape drives the competition crawl and per-player extraction.
package scrape

import (
	"context"
	"time"
)

// WaitCondition selects what WaitFor waits for.
type WaitCondition int

const (
	// WaitPresent waits for an element matching the selector to exist.
	WaitPresent WaitCondition = iota
	// WaitClickable additionally waits for the element to be actionable.
	WaitClickable
)

// Page is the rendered-page contract the crawl logic is written against. The
// production implementation wraps a headless browser session (see the browser
// package); tests script a fake. A Page is stateful and serially reused,
// so only one logical operation may run against it at a time.
type Page interface {
	// Navigate loads url and blocks until the document load event, failing
	// with ErrNavigation if the page is unreachable in time.
	Navigate(ctx context.Context, url string) error
	// WaitFor blocks up to timeout for selector to satisfy cond, failing
	// with ErrWaitTimeout. Callers treat this as recoverable per item.
	WaitFor(ctx context.Context, selector string, cond WaitCondition, timeout time.Duration) error
	// Click dispatches a UI click, failing with ErrNotInteractable.
	Click(ctx context.Context, selector string) error
	// HTML returns the fully rendered document markup at call time. The
	// caller is responsible for settling the page first: the site re-renders
	// asynchronously with no completion signal.
	HTML(ctx context.Context) (string, error)
	// Settle pauses for the configured delay after a state-changing
	// interaction. Every fixed sleep in the system goes through here so the
	// timing can be tuned in one place.
	Settle()
}

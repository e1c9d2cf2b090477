package scrape

import (
	"errors"
	"fmt"
)

// ErrNavigation indicates a page could not be reached. Discovery-phase
// navigation failures are fatal to the run; they are never retried.
type ErrNavigation struct {
	URL string
	Err error
}

func (e ErrNavigation) Error() string {
	return fmt.Sprintf("navigation: %s: %v", e.URL, e.Err)
}

func (e ErrNavigation) Unwrap() error {
	return e.Err
}

// ErrWaitTimeout indicates an expected element never appeared. Recoverable
// per item: matches are skipped, players are retried.
type ErrWaitTimeout struct {
	Selector string
	Err      error
}

func (e ErrWaitTimeout) Error() string {
	return fmt.Sprintf("wait timeout: %s: %v", e.Selector, e.Err)
}

func (e ErrWaitTimeout) Unwrap() error {
	return e.Err
}

// ErrNotInteractable indicates a click target was found but not actionable.
// Handled exactly like a wait timeout.
type ErrNotInteractable struct {
	Selector string
	Err      error
}

func (e ErrNotInteractable) Error() string {
	return fmt.Sprintf("not interactable: %s: %v", e.Selector, e.Err)
}

func (e ErrNotInteractable) Unwrap() error {
	return e.Err
}

// ErrNoData indicates a player scrape completed without yielding a single
// innings row. Counts as a failure for retry purposes.
type ErrNoData struct {
	Player string
}

func (e ErrNoData) Error() string {
	return fmt.Sprintf("no data: no season yielded rows for %s", e.Player)
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var nav ErrNavigation
	if errors.As(err, &nav) {
		return "navigation"
	}
	var timeout ErrWaitTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var interact ErrNotInteractable
	if errors.As(err, &interact) {
		return "not_interactable"
	}
	var noData ErrNoData
	if errors.As(err, &noData) {
		return "no_data"
	}
	return "other"
}

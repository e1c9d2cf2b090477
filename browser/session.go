// Package browser implements the rendered-page contract over a headless
// Chromium instance driven through the DevTools protocol.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/AJ-Clark83/bears/config"
	"github.com/AJ-Clark83/bears/scrape"
)

// Session owns one browser and one tab, serially reused for the whole run.
// It satisfies scrape.Page. Not safe for concurrent use.
type Session struct {
	browser    *rod.Browser
	page       *rod.Page
	navTimeout time.Duration
	settle     time.Duration
}

// NewSession launches the browser and opens the tab the crawl will drive.
// The caller must Close the session when done.
func NewSession(cfg *config.Config) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-blink-features", "AutomationControlled")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.MustClose()
		return nil, fmt.Errorf("open page: %w", err)
	}
	if cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent}); err != nil {
			browser.MustClose()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	return &Session{
		browser:    browser,
		page:       page,
		navTimeout: cfg.NavTimeout,
		settle:     cfg.SettleDelay,
	}, nil
}

// Navigate loads url in the session tab and blocks until the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx).Timeout(s.navTimeout)
	if err := page.Navigate(url); err != nil {
		return scrape.ErrNavigation{URL: url, Err: err}
	}
	if err := page.WaitLoad(); err != nil {
		return scrape.ErrNavigation{URL: url, Err: err}
	}
	return nil
}

// WaitFor blocks up to timeout for selector to appear, and when asked for a
// clickable element additionally waits until it is interactable.
func (s *Session) WaitFor(ctx context.Context, selector string, cond scrape.WaitCondition, timeout time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)
	el, err := page.Element(selector)
	if err != nil {
		return scrape.ErrWaitTimeout{Selector: selector, Err: err}
	}
	if cond == scrape.WaitClickable {
		if _, err := el.WaitInteractable(); err != nil {
			return scrape.ErrWaitTimeout{Selector: selector, Err: err}
		}
	}
	return nil
}

// Click dispatches a left-button click on the first element matching selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return scrape.ErrNotInteractable{Selector: selector, Err: err}
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return scrape.ErrNotInteractable{Selector: selector, Err: err}
	}
	return nil
}

// HTML returns the tab's rendered markup at call time.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Settle sleeps for the configured delay. The site re-renders asynchronously
// after clicks with no completion signal, so a fixed pause is the only
// synchronization available.
func (s *Session) Settle() {
	time.Sleep(s.settle)
}

// Close tears the browser down.
func (s *Session) Close() {
	if s.browser != nil {
		s.browser.MustClose()
	}
}

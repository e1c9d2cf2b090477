package scrape

import (
	"context"
	"time"
)

// fakePage scripts the rendered-page contract for tests. Hooks mutate html
// to simulate the site re-rendering after an interaction.
type fakePage struct {
	html       string
	currentURL string

	onNavigate func(url string) error
	onClick    func(selector string) error
	onWait     func(selector string, cond WaitCondition) error

	navigated []string
	clicked   []string
}

func (f *fakePage) Navigate(_ context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	f.currentURL = url
	if f.onNavigate != nil {
		return f.onNavigate(url)
	}
	return nil
}

func (f *fakePage) WaitFor(_ context.Context, selector string, cond WaitCondition, _ time.Duration) error {
	if f.onWait != nil {
		return f.onWait(selector, cond)
	}
	return nil
}

func (f *fakePage) Click(_ context.Context, selector string) error {
	f.clicked = append(f.clicked, selector)
	if f.onClick != nil {
		return f.onClick(selector)
	}
	return nil
}

func (f *fakePage) HTML(_ context.Context) (string, error) {
	return f.html, nil
}

func (f *fakePage) Settle() {}

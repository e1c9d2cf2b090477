package scrape

import (
	"context"
	"log/slog"

	"github.com/AJ-Clark83/bears/models"
)

// ScrapeFunc attempts one player and returns their full history or an error.
type ScrapeFunc func(ctx context.Context, playerURL string) (*models.PlayerHistory, error)

// RetryCoordinator re-runs failed player scrapes over a shrinking failure
// set, up to a fixed budget of extra rounds. Players still failing after the
// budget is spent are excluded from the output without raising an error;
// availability of the rest of the data wins over completeness.
type RetryCoordinator struct {
	budget  int
	metrics *Metrics
}

// NewRetryCoordinator builds a coordinator allowing budget retry rounds
// beyond the initial attempt.
func NewRetryCoordinator(budget int, metrics *Metrics) *RetryCoordinator {
	return &RetryCoordinator{budget: budget, metrics: metrics}
}

// Run attempts every player once, then retries the failing subset until it
// empties or the budget runs out. Histories come back in the input order of
// the players that succeeded; the second return value lists the players that
// never succeeded and the third counts individual retry attempts.
func (rc *RetryCoordinator) Run(ctx context.Context, players []string, scrape ScrapeFunc) ([]*models.PlayerHistory, []string, int) {
	results := make(map[string]*models.PlayerHistory, len(players))

	failing, _ := rc.attempt(ctx, players, scrape, results, false)
	retries := 0
	for round := 1; round <= rc.budget && len(failing) > 0; round++ {
		if ctx.Err() != nil {
			break
		}
		slog.Info("retrying failed players",
			slog.Int("round", round),
			slog.Int("remaining", len(failing)),
		)
		var attempted int
		failing, attempted = rc.attempt(ctx, failing, scrape, results, true)
		retries += attempted
	}

	if len(failing) > 0 {
		slog.Warn("players excluded after exhausting retries",
			slog.Int("count", len(failing)),
		)
	}

	var histories []*models.PlayerHistory
	for _, player := range players {
		if h, ok := results[player]; ok {
			histories = append(histories, h)
		}
	}
	return histories, failing, retries
}

// attempt scrapes each player once, recording successes in results. It
// returns the players that failed and how many scrapes actually ran; players
// skipped because the context was cancelled fail without counting as
// attempts.
func (rc *RetryCoordinator) attempt(ctx context.Context, players []string, scrape ScrapeFunc, results map[string]*models.PlayerHistory, isRetry bool) ([]string, int) {
	var failing []string
	attempted := 0
	for _, player := range players {
		if ctx.Err() != nil {
			failing = append(failing, player)
			continue
		}
		attempted++
		if isRetry {
			rc.metrics.IncRetries()
		}
		history, err := scrape(ctx, player)
		if err != nil {
			slog.Warn("player scrape failed",
				slog.String("player", player),
				slog.Any("error", err),
			)
			rc.metrics.IncError(err)
			failing = append(failing, player)
			continue
		}
		results[player] = history
	}
	return failing, attempted
}

package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AJ-Clark83/bears/cache"
	"github.com/AJ-Clark83/bears/config"
	"github.com/AJ-Clark83/bears/models"
)

// Service ties discovery, per-player extraction, retries and the result
// cache into one run entry point.
type Service struct {
	cfg     *config.Config
	crawler *Crawler
	players *PlayerScraper
	retry   *RetryCoordinator
	results *cache.ResultCache
	metrics *Metrics
}

// NewService wires a full scrape service over one page session.
func NewService(cfg *config.Config, page Page, metrics *Metrics) *Service {
	return &Service{
		cfg:     cfg,
		crawler: NewCrawler(page, cfg.WaitTimeout, metrics),
		players: NewPlayerScraper(page, cfg.Seasons, cfg.WaitTimeout, metrics),
		retry:   NewRetryCoordinator(cfg.RetryBudget, metrics),
		results: cache.New(cfg.CacheSize, cfg.CacheTTL),
		metrics: metrics,
	}
}

// Teams lists the competition's teams for interactive selection.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	return s.crawler.DiscoverTeams(ctx, s.cfg.CompetitionURL)
}

// Run executes the full crawl for the configured competition, team and
// season count. A repeated run with the same configuration inside the cache
// window returns the cached result without touching the browser.
func (s *Service) Run(ctx context.Context) (*models.Result, error) {
	key := s.cfg.CacheKey()
	if cached, ok := s.results.Get(key); ok {
		slog.Info("returning cached result",
			slog.String("team", s.cfg.Team),
			slog.Int("players", cached.PlayerCount),
		)
		return cached, nil
	}

	start := time.Now()

	matches, err := s.crawler.DiscoverMatches(ctx, s.cfg.CompetitionURL, s.cfg.Team)
	if err != nil {
		return nil, fmt.Errorf("discover matches: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no matches found for team %q", s.cfg.Team)
	}
	slog.Info("matches discovered", slog.Int("count", len(matches)))

	players := s.crawler.DiscoverPlayers(ctx, matches, s.cfg.Abbrev())
	if len(players) == 0 {
		return nil, fmt.Errorf("no players discovered for team %q", s.cfg.Team)
	}
	slog.Info("players discovered", slog.Int("count", len(players)))

	histories, failed, retries := s.retry.Run(ctx, players, s.players.Scrape)

	result := &models.Result{
		StartTime:     start,
		EndTime:       time.Now(),
		MatchCount:    len(matches),
		PlayerCount:   len(histories),
		RetryCount:    retries,
		FailedPlayers: failed,
	}
	for _, history := range histories {
		for _, season := range history.Seasons {
			result.Batting = append(result.Batting, season.Batting...)
			result.Bowling = append(result.Bowling, season.Bowling...)
		}
	}

	s.results.Add(key, result)
	return result, nil
}

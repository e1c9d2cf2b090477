package scrape

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the crawl.
type Metrics struct {
	Registry          *prometheus.Registry
	MatchesDiscovered prometheus.Counter
	MatchesSkipped    prometheus.Counter
	PlayersDiscovered prometheus.Counter
	PlayersScraped    prometheus.Counter
	InningsExtracted  *prometheus.CounterVec
	RowsDropped       *prometheus.CounterVec
	RetriesTotal      prometheus.Counter
	ErrorsTotal       *prometheus.CounterVec
	PlayerDuration    prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	matches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cricstats_matches_discovered_total",
			Help: "Match URLs discovered for the selected team.",
		},
	)
	skipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cricstats_matches_skipped_total",
			Help: "Matches skipped because a scorecard interaction failed.",
		},
	)
	playersDiscovered := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cricstats_players_discovered_total",
			Help: "Distinct player profile links discovered.",
		},
	)
	playersScraped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cricstats_players_scraped_total",
			Help: "Players whose full season history extracted cleanly.",
		},
	)
	innings := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cricstats_innings_extracted_total",
			Help: "Innings rows extracted, by discipline.",
		},
		[]string{"discipline"},
	)
	dropped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cricstats_rows_dropped_total",
			Help: "Table rows dropped during extraction, by reason.",
		},
		[]string{"reason"},
	)
	retries := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cricstats_retries_total",
			Help: "Player scrape retry attempts.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cricstats_errors_total",
			Help: "Scrape errors by type.",
		},
		[]string{"error_type"},
	)
	playerDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cricstats_player_scrape_duration_seconds",
			Help:    "Wall time spent scraping one player's history.",
			Buckets: prometheus.DefBuckets,
		},
	)

	registry.MustRegister(matches, skipped, playersDiscovered, playersScraped,
		innings, dropped, retries, errorsTotal, playerDuration)

	return &Metrics{
		Registry:          registry,
		MatchesDiscovered: matches,
		MatchesSkipped:    skipped,
		PlayersDiscovered: playersDiscovered,
		PlayersScraped:    playersScraped,
		InningsExtracted:  innings,
		RowsDropped:       dropped,
		RetriesTotal:      retries,
		ErrorsTotal:       errorsTotal,
		PlayerDuration:    playerDuration,
	}
}

// IncMatches adds discovered match URLs.
func (m *Metrics) IncMatches(n int) {
	if m == nil {
		return
	}
	m.MatchesDiscovered.Add(float64(n))
}

// IncSkippedMatch counts a match skipped mid-crawl.
func (m *Metrics) IncSkippedMatch() {
	if m == nil {
		return
	}
	m.MatchesSkipped.Inc()
}

// IncPlayersDiscovered adds discovered player links.
func (m *Metrics) IncPlayersDiscovered(n int) {
	if m == nil {
		return
	}
	m.PlayersDiscovered.Add(float64(n))
}

// IncPlayerScraped counts a clean player extraction.
func (m *Metrics) IncPlayerScraped() {
	if m == nil {
		return
	}
	m.PlayersScraped.Inc()
}

// IncInnings counts extracted rows for a discipline (batting or bowling).
func (m *Metrics) IncInnings(discipline string, n int) {
	if m == nil {
		return
	}
	m.InningsExtracted.WithLabelValues(discipline).Add(float64(n))
}

// IncDropped counts a dropped table row by reason.
func (m *Metrics) IncDropped(reason string) {
	if m == nil {
		return
	}
	m.RowsDropped.WithLabelValues(reason).Inc()
}

// IncRetries counts a retry attempt.
func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// IncError counts an error by classification label.
func (m *Metrics) IncError(err error) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorTypeLabel(err)).Inc()
}

// ObservePlayerDuration records one player's scrape wall time.
func (m *Metrics) ObservePlayerDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.PlayerDuration.Observe(d.Seconds())
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AJ-Clark83/bears/browser"
	"github.com/AJ-Clark83/bears/config"
	"github.com/AJ-Clark83/bears/models"
	"github.com/AJ-Clark83/bears/pipeline"
	"github.com/AJ-Clark83/bears/scrape"
	"github.com/AJ-Clark83/bears/stats"
)

func main() {
	defaultCfg := config.DefaultConfig()
	urlDefault := defaultCfg.CompetitionURL
	if value, ok := config.EnvString("CRICSTATS_COMPETITION_URL"); ok {
		urlDefault = value
	}
	teamDefault := defaultCfg.Team
	if value, ok := config.EnvString("CRICSTATS_TEAM"); ok {
		teamDefault = value
	}
	seasonsDefault := defaultCfg.Seasons
	if value, ok, err := config.EnvInt("CRICSTATS_SEASONS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid CRICSTATS_SEASONS: %v\n", err)
		os.Exit(1)
	} else if ok {
		seasonsDefault = value
	}
	outputDefault := defaultCfg.OutputDir
	if value, ok := config.EnvString("CRICSTATS_OUTPUT_DIR"); ok {
		outputDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("CRICSTATS_METRICS_ADDR"); ok {
		metricsDefault = value
	}

	competitionURL := flag.String("competition-url", urlDefault, "Competition fixtures/results URL")
	team := flag.String("team", teamDefault, "Team name as listed in the competition filter")
	teamAbbrev := flag.String("team-abbrev", "", "Scorecard side prefix (default: first three letters of team)")
	seasons := flag.Int("seasons", seasonsDefault, "Seasons of history per player (1-5)")
	listTeams := flag.Bool("list-teams", false, "List the competition's teams and exit")
	headless := flag.Bool("headless", defaultCfg.Headless, "Run the browser headless")
	navTimeoutMs := flag.Int("nav-timeout", int(defaultCfg.NavTimeout/time.Millisecond), "Navigation timeout (milliseconds)")
	waitTimeoutMs := flag.Int("wait-timeout", int(defaultCfg.WaitTimeout/time.Millisecond), "Element wait timeout (milliseconds)")
	settleMs := flag.Int("settle", int(defaultCfg.SettleDelay/time.Millisecond), "Settle delay after interactions (milliseconds)")
	retryBudget := flag.Int("retry-budget", defaultCfg.RetryBudget, "Retry rounds for failed player scrapes")
	outputDir := flag.String("output-dir", outputDefault, "Directory for summary tables")
	outputFormat := flag.String("format", defaultCfg.OutputFormat, "Output format: csv, json, or dual")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := buildConfigFromFlags(*competitionURL, *team, *teamAbbrev, *seasons, *headless,
		*navTimeoutMs, *waitTimeoutMs, *settleMs, *retryBudget, *outputDir, *outputFormat, *metricsAddr, *verbose)
	if *listTeams {
		// Team listing runs before a team is chosen.
		if cfg.CompetitionURL == "" {
			slog.Error("invalid configuration", slog.Any("error", fmt.Errorf("competition URL cannot be empty")))
			os.Exit(1)
		}
	} else if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.NewSession(cfg)
	if err != nil {
		slog.Error("starting browser", slog.Any("error", err))
		os.Exit(1)
	}
	defer session.Close()

	metrics := scrape.NewMetrics()
	service := scrape.NewService(cfg, session, metrics)

	if *listTeams {
		teams, err := service.Teams(ctx)
		if err != nil {
			slog.Error("listing teams", slog.Any("error", err))
			os.Exit(1)
		}
		for _, name := range teams {
			fmt.Println(name)
		}
		return
	}

	slog.Info("starting extraction",
		slog.String("competition", cfg.CompetitionURL),
		slog.String("team", cfg.Team),
		slog.Int("seasons", cfg.Seasons),
	)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	result, err := service.Run(ctx)
	if err != nil {
		slog.Error("extraction failed", slog.Any("error", err))
		os.Exit(1)
	}
	if len(result.Batting) == 0 && len(result.Bowling) == 0 {
		slog.Error("no data extracted", slog.String("team", cfg.Team))
		os.Exit(1)
	}

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputDir)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	tables := map[string]stats.Table{
		"batting_overall":   stats.BattingTable(stats.AggregateBatting(result.Batting), false),
		"batting_by_season": stats.BattingTable(stats.AggregateBattingBySeason(result.Batting), true),
		"bowling_overall":   stats.BowlingTable(stats.AggregateBowling(result.Bowling), false),
		"bowling_by_season": stats.BowlingTable(stats.AggregateBowlingBySeason(result.Bowling), true),
	}
	for _, name := range []string{"batting_overall", "batting_by_season", "bowling_overall", "bowling_by_season"} {
		if err := writer.WriteTable(name, tables[name]); err != nil {
			slog.Error("writing table", slog.String("table", name), slog.Any("error", err))
			os.Exit(1)
		}
	}
	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, filepath.Clean(cfg.OutputDir))
}

func buildConfigFromFlags(competitionURL, team, teamAbbrev string, seasons int, headless bool,
	navTimeoutMs, waitTimeoutMs, settleMs, retryBudget int, outputDir, outputFormat, metricsAddr string, verbose bool) *config.Config {
	cfg := config.DefaultConfig()
	cfg.CompetitionURL = competitionURL
	cfg.Team = team
	cfg.TeamAbbrev = teamAbbrev
	cfg.Seasons = seasons
	cfg.Headless = headless
	cfg.NavTimeout = time.Duration(navTimeoutMs) * time.Millisecond
	cfg.WaitTimeout = time.Duration(waitTimeoutMs) * time.Millisecond
	cfg.SettleDelay = time.Duration(settleMs) * time.Millisecond
	cfg.RetryBudget = retryBudget
	cfg.OutputDir = outputDir
	cfg.OutputFormat = strings.ToLower(outputFormat)
	cfg.MetricsAddr = metricsAddr
	cfg.Verbose = verbose
	return cfg
}

func createWriter(format, dir string) (pipeline.TableWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(dir)
	case "csv":
		return pipeline.NewCSVWriter(dir)
	case "dual":
		return pipeline.NewDualWriter(dir)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(result *models.Result, outputDir string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Extraction complete")
	fmt.Printf("  Matches:         %d\n", result.MatchCount)
	fmt.Printf("  Players:         %d\n", result.PlayerCount)
	fmt.Printf("  Batting innings: %d\n", len(result.Batting))
	fmt.Printf("  Bowling innings: %d\n", len(result.Bowling))
	fmt.Printf("  Retries:         %d\n", result.RetryCount)
	if len(result.FailedPlayers) > 0 {
		fmt.Printf("  Dropped players: %d\n", len(result.FailedPlayers))
	}
	fmt.Printf("  Duration:        %v\n", result.EndTime.Sub(result.StartTime).Round(time.Millisecond))
	fmt.Printf("  Output dir:      %s\n", outputDir)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

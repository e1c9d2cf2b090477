package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AJ-Clark83/bears/models"
	"github.com/AJ-Clark83/bears/parse"
)

// Selectors for the player profile's match-history view.
const (
	selPlayerName   = "h1.player-name"
	selSeasonFilter = "div.season-filter button.dropdown-toggle"
	selSeasonOption = "div.season-filter ul.dropdown-menu li"
	selBattingRows  = "table.batting-history tbody tr"
	selBowlingRows  = "table.bowling-history tbody tr"

	defaultPlayerName = "Unknown Player"

	battingCellCount = 7
	bowlingCellCount = 13
)

// PlayerScraper walks a player's season selector and extracts one innings
// table per season. A player either yields every requested season cleanly or
// contributes nothing: partial histories would silently misrepresent a
// player's record, so any failure mid-walk discards the whole player.
type PlayerScraper struct {
	page        Page
	seasons     int
	waitTimeout time.Duration
	metrics     *Metrics
}

// NewPlayerScraper builds a scraper that extracts up to seasons seasons,
// most recent first.
func NewPlayerScraper(page Page, seasons int, waitTimeout time.Duration, metrics *Metrics) *PlayerScraper {
	return &PlayerScraper{
		page:        page,
		seasons:     seasons,
		waitTimeout: waitTimeout,
		metrics:     metrics,
	}
}

// Scrape extracts the player's season histories from their profile page.
func (p *PlayerScraper) Scrape(ctx context.Context, playerURL string) (*models.PlayerHistory, error) {
	start := time.Now()
	defer func() {
		p.metrics.ObservePlayerDuration(time.Since(start))
	}()

	if err := p.page.Navigate(ctx, playerURL); err != nil {
		return nil, err
	}
	doc, err := p.openSeasonFilter(ctx)
	if err != nil {
		return nil, err
	}

	name := playerName(doc)
	options := seasonOptions(doc)
	if len(options) == 0 {
		return nil, ErrNoData{Player: name}
	}
	if len(options) > p.seasons {
		options = options[:p.seasons]
	}

	history := &models.PlayerHistory{Name: name, URL: playerURL}
	totalRows := 0
	for i, option := range options {
		if err := p.page.Click(ctx, nthSelector(selSeasonOption, option.index)); err != nil {
			return nil, err
		}
		p.page.Settle()

		html, err := p.page.HTML(ctx)
		if err != nil {
			return nil, err
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("parse player page: %w", err)
		}

		records := p.extractSeason(doc, name, option.label)
		if len(records.Batting) > 0 || len(records.Bowling) > 0 {
			history.Seasons = append(history.Seasons, records)
			totalRows += len(records.Batting) + len(records.Bowling)
		}

		// The menu closed when the option was clicked. Re-open it for
		// the next season, not after the last.
		if i < len(options)-1 {
			if _, err := p.openSeasonFilter(ctx); err != nil {
				return nil, err
			}
		}
	}

	if totalRows == 0 {
		return nil, ErrNoData{Player: name}
	}

	p.metrics.IncPlayerScraped()
	slog.Debug("player scraped",
		slog.String("player", name),
		slog.Int("seasons", len(history.Seasons)),
		slog.Int("rows", totalRows),
	)
	return history, nil
}

// openSeasonFilter clicks the season selector open and returns the rendered
// document so the caller can read the option list.
func (p *PlayerScraper) openSeasonFilter(ctx context.Context) (*goquery.Document, error) {
	if err := p.page.WaitFor(ctx, selSeasonFilter, WaitClickable, p.waitTimeout); err != nil {
		return nil, err
	}
	if err := p.page.Click(ctx, selSeasonFilter); err != nil {
		return nil, err
	}
	p.page.Settle()

	html, err := p.page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse player page: %w", err)
	}
	return doc, nil
}

// extractSeason reads the batting and bowling history tables from a rendered
// player page. Rows that do not carry the exact expected cell count are
// dropped rather than guessed at.
func (p *PlayerScraper) extractSeason(doc *goquery.Document, player, season string) models.SeasonRecords {
	records := models.SeasonRecords{Season: season}

	doc.Find(selBattingRows).Each(func(_ int, row *goquery.Selection) {
		if strings.Contains(strings.ToLower(row.Text()), "did not bat") {
			p.metrics.IncDropped("did_not_bat")
			return
		}
		match, grade := headingCell(row)
		cells := cellTexts(row)
		if len(cells) != battingCellCount {
			p.metrics.IncDropped("malformed_batting_row")
			return
		}
		records.Batting = append(records.Batting, models.BattingInnings{
			Player:        player,
			Season:        season,
			Match:         match,
			Grade:         grade,
			InningsNumber: cells[0],
			Runs:          cells[1],
			Balls:         cells[2],
			Fours:         cells[3],
			Sixes:         cells[4],
			StrikeRate:    cells[5],
			Dismissal:     parse.Dismissal(cells[6]),
		})
	})

	doc.Find(selBowlingRows).Each(func(_ int, row *goquery.Selection) {
		if strings.Contains(strings.ToLower(row.Text()), "did not bowl") {
			p.metrics.IncDropped("did_not_bowl")
			return
		}
		match, grade := headingCell(row)
		cells := cellTexts(row)
		if len(cells) != bowlingCellCount {
			p.metrics.IncDropped("malformed_bowling_row")
			return
		}
		records.Bowling = append(records.Bowling, models.BowlingInnings{
			Player:          player,
			Season:          season,
			Match:           match,
			Grade:           grade,
			Innings:         cells[0],
			Overs:           cells[1],
			Maidens:         cells[2],
			RunsConceded:    cells[3],
			Wickets:         cells[4],
			TopOrderWickets: cells[5],
			TailWickets:     cells[6],
			Bowled:          cells[7],
			Caught:          cells[8],
			LBW:             cells[9],
			CaughtAndBowled: cells[10],
			Stumped:         cells[11],
			Other:           cells[12],
		})
	})

	p.metrics.IncInnings("batting", len(records.Batting))
	p.metrics.IncInnings("bowling", len(records.Bowling))
	return records
}

func playerName(doc *goquery.Document) string {
	name := strings.TrimSpace(doc.Find(selPlayerName).First().Text())
	if name == "" {
		return defaultPlayerName
	}
	return name
}

// seasonOption pairs a season label with its menu position, so blank menu
// entries can be skipped without shifting the click targets.
type seasonOption struct {
	index int
	label string
}

// seasonOptions returns the season options in site order, most recent first.
func seasonOptions(doc *goquery.Document) []seasonOption {
	var options []seasonOption
	doc.Find(selSeasonOption).Each(func(i int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if label != "" {
			options = append(options, seasonOption{index: i, label: label})
		}
	})
	return options
}

// headingCell reads the match name and grade from a row's heading cell.
func headingCell(row *goquery.Selection) (match, grade string) {
	th := row.Find("th").First()
	match = strings.TrimSpace(th.Find(".match-name").Text())
	grade = strings.TrimSpace(th.Find(".grade").Text())
	if match == "" {
		match = strings.TrimSpace(th.Text())
	}
	return match, grade
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("td").Each(func(_ int, s *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(s.Text()))
	})
	return cells
}

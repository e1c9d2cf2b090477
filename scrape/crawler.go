package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the competition fixtures view and match scorecards. The site
// renders these client-side, so every read happens after a wait and settle.
const (
	selTeamFilter  = "div.team-filter button.dropdown-toggle"
	selTeamOption  = "div.team-filter ul.dropdown-menu li"
	selMatchList   = "div.fixture-results"
	selMatchLink   = "div.fixture-results div.match-card a.match-link"
	selSideToggle  = "div.scorecard-tabs button.team-tab"
	selBattingCard = "table.batting-scorecard"
	selPlayerLink  = "table.batting-scorecard tbody tr a.player-link"

	// The team filter carries a sentinel entry that selects every team.
	allTeamsSentinel = "All Teams"

	// Appended to player profile links so the profile opens on the
	// match-history view directly.
	matchHistoryParam = "tab=match-history"
)

// Crawler discovers a team's matches and the players appearing in them.
type Crawler struct {
	page        Page
	waitTimeout time.Duration
	metrics     *Metrics
}

// NewCrawler builds a crawler over an existing page session.
func NewCrawler(page Page, waitTimeout time.Duration, metrics *Metrics) *Crawler {
	return &Crawler{
		page:        page,
		waitTimeout: waitTimeout,
		metrics:     metrics,
	}
}

// DiscoverTeams opens the competition page and enumerates the team filter,
// excluding the all-teams sentinel. Order is the site's display order.
func (c *Crawler) DiscoverTeams(ctx context.Context, competitionURL string) ([]string, error) {
	doc, err := c.openTeamFilter(ctx, competitionURL)
	if err != nil {
		return nil, err
	}

	var teams []string
	doc.Find(selTeamOption).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if name == "" || strings.EqualFold(name, allTeamsSentinel) {
			return
		}
		teams = append(teams, name)
	})

	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams found at %s", competitionURL)
	}
	return teams, nil
}

// DiscoverMatches selects teamName in the team filter and extracts the link
// from every match card that appears.
func (c *Crawler) DiscoverMatches(ctx context.Context, competitionURL, teamName string) ([]string, error) {
	doc, err := c.openTeamFilter(ctx, competitionURL)
	if err != nil {
		return nil, err
	}

	index := -1
	doc.Find(selTeamOption).Each(func(i int, s *goquery.Selection) {
		if index == -1 && strings.EqualFold(strings.TrimSpace(s.Text()), teamName) {
			index = i
		}
	})
	if index == -1 {
		return nil, fmt.Errorf("team %q not present in the competition filter", teamName)
	}

	if err := c.page.Click(ctx, nthSelector(selTeamOption, index)); err != nil {
		return nil, err
	}
	if err := c.page.WaitFor(ctx, selMatchList, WaitPresent, c.waitTimeout); err != nil {
		return nil, err
	}
	c.page.Settle()

	html, err := c.page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse fixtures page: %w", err)
	}

	seen := make(map[string]struct{})
	var matches []string
	doc.Find(selMatchLink).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		abs := absoluteURL(competitionURL, href)
		if abs == "" {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		matches = append(matches, abs)
	})

	c.metrics.IncMatches(len(matches))
	return matches, nil
}

// DiscoverPlayers visits each match scorecard, opens the side matching
// teamAbbrev and collects the listed players' profile links. A match that
// fails at any step is skipped: the upstream site is unreliable and the crawl
// makes maximal forward progress on whatever it can reach. Duplicate links
// across matches collapse to one entry.
func (c *Crawler) DiscoverPlayers(ctx context.Context, matchURLs []string, teamAbbrev string) []string {
	prefix := strings.ToLower(teamAbbrev)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	seen := make(map[string]struct{})
	var players []string
	for _, matchURL := range matchURLs {
		if ctx.Err() != nil {
			break
		}
		if err := c.collectMatchPlayers(ctx, matchURL, prefix, seen, &players); err != nil {
			slog.Warn("skipping match",
				slog.String("url", matchURL),
				slog.Any("error", err),
			)
			c.metrics.IncSkippedMatch()
			c.metrics.IncError(err)
		}
	}

	c.metrics.IncPlayersDiscovered(len(players))
	return players
}

func (c *Crawler) collectMatchPlayers(ctx context.Context, matchURL, prefix string, seen map[string]struct{}, players *[]string) error {
	if err := c.page.Navigate(ctx, matchURL); err != nil {
		return err
	}
	if err := c.page.WaitFor(ctx, selSideToggle, WaitPresent, c.waitTimeout); err != nil {
		return err
	}

	html, err := c.page.HTML(ctx)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse scorecard: %w", err)
	}

	index := -1
	doc.Find(selSideToggle).Each(func(i int, s *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(s.Text()))
		if index == -1 && strings.HasPrefix(name, prefix) {
			index = i
		}
	})
	if index == -1 {
		return fmt.Errorf("no side matching %q on scorecard", prefix)
	}

	if err := c.page.Click(ctx, nthSelector(selSideToggle, index)); err != nil {
		return err
	}
	if err := c.page.WaitFor(ctx, selBattingCard, WaitPresent, c.waitTimeout); err != nil {
		return err
	}
	c.page.Settle()

	html, err = c.page.HTML(ctx)
	if err != nil {
		return err
	}
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse scorecard: %w", err)
	}

	doc.Find(selPlayerLink).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		abs := absoluteURL(matchURL, href)
		if abs == "" {
			return
		}
		abs = withMatchHistory(abs)
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		*players = append(*players, abs)
	})

	return nil
}

// openTeamFilter navigates to the competition page and opens the
// team-selector control, returning the rendered document.
func (c *Crawler) openTeamFilter(ctx context.Context, competitionURL string) (*goquery.Document, error) {
	if err := c.page.Navigate(ctx, competitionURL); err != nil {
		return nil, err
	}
	if err := c.page.WaitFor(ctx, selTeamFilter, WaitClickable, c.waitTimeout); err != nil {
		return nil, err
	}
	if err := c.page.Click(ctx, selTeamFilter); err != nil {
		return nil, err
	}
	c.page.Settle()

	html, err := c.page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse competition page: %w", err)
	}
	return doc, nil
}

// nthSelector addresses the i-th (zero-based) element matched by a selector
// whose final segment targets siblings of one element type.
func nthSelector(selector string, i int) string {
	return fmt.Sprintf("%s:nth-of-type(%d)", selector, i+1)
}

func absoluteURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func withMatchHistory(profileURL string) string {
	if strings.Contains(profileURL, "?") {
		return profileURL + "&" + matchHistoryParam
	}
	return profileURL + "?" + matchHistoryParam
}

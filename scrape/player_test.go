package scrape

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

func playerPage(heading string, labels []string, tables string) string {
	var b strings.Builder
	if heading != "" {
		b.WriteString(`<h1 class="player-name">` + heading + `</h1>`)
	}
	b.WriteString(`<div class="season-filter"><button class="dropdown-toggle">Season</button><ul class="dropdown-menu">`)
	for _, label := range labels {
		b.WriteString(`<li>` + label + `</li>`)
	}
	b.WriteString(`</ul></div>`)
	b.WriteString(tables)
	return b.String()
}

func battingTable(rows ...string) string {
	return `<table class="batting-history"><tbody>` + strings.Join(rows, "") + `</tbody></table>`
}

func bowlingTable(rows ...string) string {
	return `<table class="bowling-history"><tbody>` + strings.Join(rows, "") + `</tbody></table>`
}

func historyRow(match, grade string, cells ...string) string {
	var b strings.Builder
	b.WriteString(`<tr><th><span class="match-name">` + match + `</span> <span class="grade">` + grade + `</span></th>`)
	for _, cell := range cells {
		b.WriteString(`<td>` + cell + `</td>`)
	}
	b.WriteString(`</tr>`)
	return b.String()
}

// seasonOptionClick installs an onClick hook swapping in per-season markup
// when a season option is selected.
func seasonOptionClick(page *fakePage, pages map[int]string) {
	page.onClick = func(selector string) error {
		for i, html := range pages {
			if strings.Contains(selector, "dropdown-menu li:nth-of-type("+strconv.Itoa(i)+")") {
				page.html = html
			}
		}
		return nil
	}
}

func newTestPlayerScraper(page Page, seasons int) *PlayerScraper {
	return NewPlayerScraper(page, seasons, 100*time.Millisecond, nil)
}

func TestScrapeExtractsRequestedSeasons(t *testing.T) {
	labels := []string{"2024/25", "2023/24", "2022/23"}

	season1 := playerPage("Sam Whiteman", labels,
		battingTable(historyRow("vs Midland", "First Grade", "1", "50", "40", "6", "1", "125.00", "c"))+
			bowlingTable(historyRow("vs Midland", "First Grade",
				"1", "3.5", "1", "28", "3", "2", "1", "1", "2", "0", "0", "0", "0")))
	season2 := playerPage("Sam Whiteman", labels,
		battingTable(historyRow("vs Scarborough", "First Grade", "2", "30", "20", "2", "0", "150.00", "no")))

	page := &fakePage{html: playerPage("Sam Whiteman", labels, "")}
	seasonOptionClick(page, map[int]string{1: season1, 2: season2})

	history, err := newTestPlayerScraper(page, 2).Scrape(context.Background(), "https://example.com/player/10")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}

	if history.Name != "Sam Whiteman" {
		t.Errorf("name = %q, want Sam Whiteman", history.Name)
	}
	if len(history.Seasons) != 2 {
		t.Fatalf("seasons = %d, want 2", len(history.Seasons))
	}
	if history.Seasons[0].Season != "2024/25" || history.Seasons[1].Season != "2023/24" {
		t.Errorf("season labels = %q, %q", history.Seasons[0].Season, history.Seasons[1].Season)
	}

	bat := history.Seasons[0].Batting
	if len(bat) != 1 {
		t.Fatalf("season 1 batting rows = %d, want 1", len(bat))
	}
	if bat[0].Match != "vs Midland" || bat[0].Grade != "First Grade" {
		t.Errorf("heading cell = %q / %q", bat[0].Match, bat[0].Grade)
	}
	if bat[0].Runs != "50" || bat[0].Balls != "40" || bat[0].Dismissal != "Caught" {
		t.Errorf("row = %+v", bat[0])
	}
	if history.Seasons[1].Batting[0].Dismissal != "Not Out" {
		t.Errorf("dismissal = %q, want Not Out", history.Seasons[1].Batting[0].Dismissal)
	}

	bowl := history.Seasons[0].Bowling
	if len(bowl) != 1 {
		t.Fatalf("season 1 bowling rows = %d, want 1", len(bowl))
	}
	if bowl[0].Overs != "3.5" || bowl[0].Wickets != "3" || bowl[0].TopOrderWickets != "2" {
		t.Errorf("bowling row = %+v", bowl[0])
	}
}

func TestScrapeSkipsBlankMenuEntriesWithoutShiftingClicks(t *testing.T) {
	// A decorative empty <li> precedes the real season entries; the click
	// must land on the entry carrying the label, not the blank one.
	labels := []string{"", "2024/25"}
	season1 := playerPage("Sam Whiteman", labels,
		battingTable(historyRow("vs Midland", "First Grade", "1", "50", "40", "6", "1", "125.00", "c")))

	page := &fakePage{html: playerPage("Sam Whiteman", labels, "")}
	seasonOptionClick(page, map[int]string{2: season1})

	history, err := newTestPlayerScraper(page, 1).Scrape(context.Background(), "https://example.com/player/10")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(history.Seasons) != 1 || history.Seasons[0].Season != "2024/25" {
		t.Fatalf("seasons = %+v, want the labelled entry only", history.Seasons)
	}

	for _, sel := range page.clicked {
		if strings.Contains(sel, "dropdown-menu li:nth-of-type(1)") {
			t.Fatalf("clicked the blank menu entry: %v", page.clicked)
		}
	}
}

func TestScrapeFailureMidSeasonDiscardsAll(t *testing.T) {
	labels := []string{"2024/25", "2023/24"}
	season1 := playerPage("Sam Whiteman", labels,
		battingTable(historyRow("vs Midland", "First Grade", "1", "50", "40", "6", "1", "125.00", "c")))

	page := &fakePage{html: playerPage("Sam Whiteman", labels, "")}
	page.onClick = func(selector string) error {
		if strings.Contains(selector, "li:nth-of-type(2)") {
			return ErrNotInteractable{Selector: selector}
		}
		if strings.Contains(selector, "li:nth-of-type(1)") {
			page.html = season1
		}
		return nil
	}

	history, err := newTestPlayerScraper(page, 2).Scrape(context.Background(), "https://example.com/player/10")
	if err == nil {
		t.Fatalf("expected failure when a later season aborts")
	}
	if history != nil {
		t.Fatalf("history = %+v, want none: partial seasons must not leak", history)
	}
}

func TestScrapeDropsMalformedRows(t *testing.T) {
	labels := []string{"2024/25"}
	season1 := playerPage("Sam Whiteman", labels,
		battingTable(
			historyRow("vs Midland", "First Grade", "1", "50", "40", "6", "1", "125.00", "c"),
			historyRow("vs Perth", "First Grade", "1", "12", "9", "1", "0", "133.33"),
		))

	page := &fakePage{html: playerPage("Sam Whiteman", labels, "")}
	seasonOptionClick(page, map[int]string{1: season1})

	history, err := newTestPlayerScraper(page, 1).Scrape(context.Background(), "https://example.com/player/10")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if got := len(history.Seasons[0].Batting); got != 1 {
		t.Fatalf("batting rows = %d, want 1 after dropping the six-cell row", got)
	}
	if history.Seasons[0].Batting[0].Match != "vs Midland" {
		t.Errorf("surviving row = %+v", history.Seasons[0].Batting[0])
	}
}

func TestScrapeSkipsDidNotBatRows(t *testing.T) {
	labels := []string{"2024/25"}
	season1 := playerPage("Sam Whiteman", labels,
		battingTable(
			`<tr><td colspan="8">Did not bat</td></tr>`,
			historyRow("vs Midland", "First Grade", "1", "50", "40", "6", "1", "125.00", "c"),
		))

	page := &fakePage{html: playerPage("Sam Whiteman", labels, "")}
	seasonOptionClick(page, map[int]string{1: season1})

	history, err := newTestPlayerScraper(page, 1).Scrape(context.Background(), "https://example.com/player/10")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if got := len(history.Seasons[0].Batting); got != 1 {
		t.Fatalf("batting rows = %d, want 1", got)
	}
}

func TestScrapeNoRowsIsFailure(t *testing.T) {
	labels := []string{"2024/25"}
	empty := playerPage("Sam Whiteman", labels, battingTable()+bowlingTable())

	page := &fakePage{html: playerPage("Sam Whiteman", labels, "")}
	seasonOptionClick(page, map[int]string{1: empty})

	_, err := newTestPlayerScraper(page, 1).Scrape(context.Background(), "https://example.com/player/10")
	var noData ErrNoData
	if !errors.As(err, &noData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
	if noData.Player != "Sam Whiteman" {
		t.Errorf("player = %q", noData.Player)
	}
}

func TestScrapeDefaultsMissingPlayerName(t *testing.T) {
	labels := []string{"2024/25"}
	season1 := playerPage("", labels,
		battingTable(historyRow("vs Midland", "First Grade", "1", "50", "40", "6", "1", "125.00", "c")))

	page := &fakePage{html: playerPage("", labels, "")}
	seasonOptionClick(page, map[int]string{1: season1})

	history, err := newTestPlayerScraper(page, 1).Scrape(context.Background(), "https://example.com/player/10")
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if history.Name != "Unknown Player" {
		t.Errorf("name = %q, want Unknown Player", history.Name)
	}
}

// Package models defines data structures for the scraper.
package models

import "time"

// BattingInnings is one batting performance extracted from a player's
// match-history table. Numeric fields stay as scraped text; coercion to
// numbers happens at aggregation time so a garbled cell never aborts a run.
type BattingInnings struct {
	Player        string `csv:"player" json:"player"`
	Season        string `csv:"season" json:"season"`
	Match         string `csv:"match" json:"match"`
	Grade         string `csv:"grade" json:"grade"`
	InningsNumber string `csv:"innings_number" json:"innings_number"`
	Runs          string `csv:"runs" json:"runs"`
	Balls         string `csv:"balls" json:"balls"`
	Fours         string `csv:"fours" json:"fours"`
	Sixes         string `csv:"sixes" json:"sixes"`
	StrikeRate    string `csv:"strike_rate" json:"strike_rate"`
	Dismissal     string `csv:"dismissal" json:"dismissal"`
}

// BowlingInnings is one bowling performance from the same page. Overs are in
// cricket notation (the digit after the point counts balls 0-5).
type BowlingInnings struct {
	Player          string `csv:"player" json:"player"`
	Season          string `csv:"season" json:"season"`
	Match           string `csv:"match" json:"match"`
	Grade           string `csv:"grade" json:"grade"`
	Innings         string `csv:"innings" json:"innings"`
	Overs           string `csv:"overs" json:"overs"`
	Maidens         string `csv:"maidens" json:"maidens"`
	RunsConceded    string `csv:"runs_conceded" json:"runs_conceded"`
	Wickets         string `csv:"wickets" json:"wickets"`
	TopOrderWickets string `csv:"top_order_wickets" json:"top_order_wickets"`
	TailWickets     string `csv:"tail_wickets" json:"tail_wickets"`
	Bowled          string `csv:"bowled" json:"bowled"`
	Caught          string `csv:"caught" json:"caught"`
	LBW             string `csv:"lbw" json:"lbw"`
	CaughtAndBowled string `csv:"caught_and_bowled" json:"caught_and_bowled"`
	Stumped         string `csv:"stumped" json:"stumped"`
	Other           string `csv:"other" json:"other"`
}

// SeasonRecords holds everything extracted for one player in one season.
type SeasonRecords struct {
	Season  string
	Batting []BattingInnings
	Bowling []BowlingInnings
}

// PlayerHistory is the all-or-nothing unit of a player scrape: either every
// requested season extracted cleanly, or the player contributes nothing.
type PlayerHistory struct {
	Name    string
	URL     string
	Seasons []SeasonRecords
}

// Result holds the outcome of a full crawl-and-scrape run.
type Result struct {
	StartTime     time.Time
	EndTime       time.Time
	MatchCount    int
	PlayerCount   int
	RetryCount    int
	FailedPlayers []string
	Batting       []BattingInnings
	Bowling       []BowlingInnings
}

package stats

import (
	"math"
	"sort"
	"strconv"

	"github.com/AJ-Clark83/bears/models"
	"github.com/AJ-Clark83/bears/parse"
)

// Summaries are derived views, never ground truth: they are recomputed from
// the full innings-record set on every request.

// BattingSummary is one aggregate row, overall or per season.
type BattingSummary struct {
	Player  string
	Season  string // empty for overall aggregates
	Innings int
	Runs    int
	Balls   int
	Fours   int
	Sixes   int

	// Dismissals counts every innings exactly once; the sum of its values
	// always equals Innings.
	Dismissals map[string]int

	StrikeRate      float64 // runs per 100 balls, 0 when no balls faced
	Average         float64 // mean runs per innings row, as the source defines it
	PctBoundaryRuns float64
	AvgBoundaries   float64 // boundaries per innings (overall table)
	AvgFours        float64 // per-season table splits the boundary average
	AvgSixes        float64
}

// BowlingSummary is one bowling aggregate row.
type BowlingSummary struct {
	Player  string
	Season  string
	Innings int

	BallsBowled  int
	ValidOvers   float64 // true fractional overs, for rate division
	Overs        float64 // cricket display notation reconstructed from balls
	Maidens      int
	RunsConceded int
	Wickets      int

	TopOrderWickets int
	TailWickets     int
	Bowled          int
	Caught          int
	LBW             int
	CaughtAndBowled int
	Stumped         int
	Other           int

	Economy    *float64 // nil when no overs bowled
	StrikeRate *float64 // nil when no wickets taken
	Average    *float64 // nil when no wickets taken
}

// AggregateBatting groups innings rows by player, sorted by Average
// descending for display.
func AggregateBatting(rows []models.BattingInnings) []BattingSummary {
	sums := aggregateBatting(rows, false)
	sort.SliceStable(sums, func(i, j int) bool {
		if sums[i].Average != sums[j].Average {
			return sums[i].Average > sums[j].Average
		}
		return sums[i].Player < sums[j].Player
	})
	return sums
}

// AggregateBattingBySeason groups by (player, season), ascending.
func AggregateBattingBySeason(rows []models.BattingInnings) []BattingSummary {
	sums := aggregateBatting(rows, true)
	sort.SliceStable(sums, func(i, j int) bool {
		if sums[i].Player != sums[j].Player {
			return sums[i].Player < sums[j].Player
		}
		return sums[i].Season < sums[j].Season
	})
	return sums
}

func aggregateBatting(rows []models.BattingInnings, bySeason bool) []BattingSummary {
	groups := make(map[string]*BattingSummary)
	var order []string

	for _, r := range rows {
		key := r.Player
		if bySeason {
			key += "\x00" + r.Season
		}
		s, ok := groups[key]
		if !ok {
			s = &BattingSummary{Player: r.Player, Dismissals: make(map[string]int)}
			if bySeason {
				s.Season = r.Season
			}
			groups[key] = s
			order = append(order, key)
		}

		s.Innings++
		s.Runs += parse.Count(r.Runs)
		s.Balls += parse.Count(r.Balls)
		s.Fours += parse.Count(r.Fours)
		s.Sixes += parse.Count(r.Sixes)
		s.Dismissals[parse.Dismissal(r.Dismissal)]++
	}

	sums := make([]BattingSummary, 0, len(order))
	for _, key := range order {
		s := groups[key]
		s.StrikeRate = round2(finiteOrZero(float64(s.Runs) / float64(s.Balls) * 100))
		s.Average = round2(finiteOrZero(float64(s.Runs) / float64(s.Innings)))
		s.PctBoundaryRuns = finiteOrZero(float64(s.Runs) / float64(s.Fours*4+s.Sixes*6))
		s.AvgBoundaries = round2(finiteOrZero(float64(s.Fours+s.Sixes) / float64(s.Innings)))
		s.AvgFours = round2(finiteOrZero(float64(s.Fours) / float64(s.Innings)))
		s.AvgSixes = round2(finiteOrZero(float64(s.Sixes) / float64(s.Innings)))
		sums = append(sums, *s)
	}
	return sums
}

// AggregateBowling groups bowling rows by player, sorted by Wickets
// descending for display.
func AggregateBowling(rows []models.BowlingInnings) []BowlingSummary {
	sums := aggregateBowling(rows, false)
	sort.SliceStable(sums, func(i, j int) bool {
		if sums[i].Wickets != sums[j].Wickets {
			return sums[i].Wickets > sums[j].Wickets
		}
		return sums[i].Player < sums[j].Player
	})
	return sums
}

// AggregateBowlingBySeason groups by (player, season), ascending.
func AggregateBowlingBySeason(rows []models.BowlingInnings) []BowlingSummary {
	sums := aggregateBowling(rows, true)
	sort.SliceStable(sums, func(i, j int) bool {
		if sums[i].Player != sums[j].Player {
			return sums[i].Player < sums[j].Player
		}
		return sums[i].Season < sums[j].Season
	})
	return sums
}

func aggregateBowling(rows []models.BowlingInnings, bySeason bool) []BowlingSummary {
	groups := make(map[string]*BowlingSummary)
	var order []string

	for _, r := range rows {
		key := r.Player
		if bySeason {
			key += "\x00" + r.Season
		}
		s, ok := groups[key]
		if !ok {
			s = &BowlingSummary{Player: r.Player}
			if bySeason {
				s.Season = r.Season
			}
			groups[key] = s
			order = append(order, key)
		}

		// Overs notation must be converted before any arithmetic; summing the
		// raw notation would treat 0.5 + 0.1 as a full over.
		overs := parse.Overs(r.Overs)
		s.BallsBowled += OversToBalls(overs)
		s.ValidOvers += FloatOvers(overs)

		s.Innings += parse.Count(r.Innings)
		s.Maidens += parse.Count(r.Maidens)
		s.RunsConceded += parse.Count(r.RunsConceded)
		s.Wickets += parse.Count(r.Wickets)
		s.TopOrderWickets += parse.Count(r.TopOrderWickets)
		s.TailWickets += parse.Count(r.TailWickets)
		s.Bowled += parse.Count(r.Bowled)
		s.Caught += parse.Count(r.Caught)
		s.LBW += parse.Count(r.LBW)
		s.CaughtAndBowled += parse.Count(r.CaughtAndBowled)
		s.Stumped += parse.Count(r.Stumped)
		s.Other += parse.Count(r.Other)
	}

	sums := make([]BowlingSummary, 0, len(order))
	for _, key := range order {
		s := groups[key]
		s.Overs = BallsToOvers(s.BallsBowled)
		if s.ValidOvers > 0 {
			s.Economy = ptr(round2(float64(s.RunsConceded) / s.ValidOvers))
		}
		if s.Wickets > 0 {
			s.StrikeRate = ptr(round2(float64(s.BallsBowled) / float64(s.Wickets)))
			s.Average = ptr(round2(float64(s.RunsConceded) / float64(s.Wickets)))
		}
		sums = append(sums, *s)
	}
	return sums
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

func ptr(x float64) *float64 {
	return &x
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func formatNullable(x *float64) string {
	if x == nil {
		return ""
	}
	return formatFloat(*x)
}

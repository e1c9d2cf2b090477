package stats

import (
	"sort"
	"strconv"
)

// Table is an ordered, presentation-ready frame. The column sequence is fixed
// and declared up front; columns absent from the computed data are synthesized
// as zero so the output shape never depends on which dismissal types occurred.
type Table struct {
	Columns []string
	Rows    [][]string
}

// dismissalColumns is the declared order for dismissal-type columns. Types
// observed in the data but not listed here are appended alphabetically.
var dismissalColumns = []string{
	"Caught",
	"Bowled",
	"LBW",
	"Run Out",
	"Hit Wicket",
	"Stumped",
	"Caught & Bowled",
	"Not Out",
}

func orderedDismissals(sums []BattingSummary) []string {
	known := make(map[string]bool, len(dismissalColumns))
	cols := make([]string, len(dismissalColumns))
	copy(cols, dismissalColumns)
	for _, c := range dismissalColumns {
		known[c] = true
	}

	var extras []string
	seen := make(map[string]bool)
	for _, s := range sums {
		for dtype := range s.Dismissals {
			if !known[dtype] && !seen[dtype] {
				extras = append(extras, dtype)
				seen[dtype] = true
			}
		}
	}
	sort.Strings(extras)
	return append(cols, extras...)
}

// BattingTable renders batting summaries with the declared column order.
func BattingTable(sums []BattingSummary, bySeason bool) Table {
	dismissals := orderedDismissals(sums)

	columns := []string{"Player"}
	if bySeason {
		columns = append(columns, "Season")
	}
	columns = append(columns, "Innings", "Runs", "4s", "6s")
	columns = append(columns, dismissals...)
	columns = append(columns, "SR", "Average")
	if bySeason {
		columns = append(columns, "Avg 4s/Inns", "Avg 6s/Inns")
	} else {
		columns = append(columns, "% Boundary Runs", "Avg Boundary/Inns")
	}

	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		row := []string{s.Player}
		if bySeason {
			row = append(row, s.Season)
		}
		row = append(row,
			strconv.Itoa(s.Innings),
			strconv.Itoa(s.Runs),
			strconv.Itoa(s.Fours),
			strconv.Itoa(s.Sixes),
		)
		for _, dtype := range dismissals {
			row = append(row, strconv.Itoa(s.Dismissals[dtype]))
		}
		row = append(row, formatFloat(s.StrikeRate), formatFloat(s.Average))
		if bySeason {
			row = append(row, formatFloat(s.AvgFours), formatFloat(s.AvgSixes))
		} else {
			row = append(row, formatFloat(s.PctBoundaryRuns), formatFloat(s.AvgBoundaries))
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// BowlingTable renders bowling summaries. Rates that are undefined for a row
// (no wickets, no overs) render as empty cells, never as NaN.
func BowlingTable(sums []BowlingSummary, bySeason bool) Table {
	columns := []string{"Player"}
	if bySeason {
		columns = append(columns, "Season")
	}
	columns = append(columns,
		"Innings", "Overs", "Wickets", "Average", "Runs Conceded", "Economy", "SR",
		"Top Order Wickets", "Tail Wickets",
		"Bowled", "Caught", "LBW", "C&B", "Stumped", "Other",
	)

	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		row := []string{s.Player}
		if bySeason {
			row = append(row, s.Season)
		}
		row = append(row,
			strconv.Itoa(s.Innings),
			strconv.FormatFloat(s.Overs, 'f', 1, 64),
			strconv.Itoa(s.Wickets),
			formatNullable(s.Average),
			strconv.Itoa(s.RunsConceded),
			formatNullable(s.Economy),
			formatNullable(s.StrikeRate),
			strconv.Itoa(s.TopOrderWickets),
			strconv.Itoa(s.TailWickets),
			strconv.Itoa(s.Bowled),
			strconv.Itoa(s.Caught),
			strconv.Itoa(s.LBW),
			strconv.Itoa(s.CaughtAndBowled),
			strconv.Itoa(s.Stumped),
			strconv.Itoa(s.Other),
		)
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

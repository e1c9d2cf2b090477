// Package parse normalizes scraped cricket fields.
package parse

import (
	"strconv"
	"strings"
)

// dismissalCodes maps the site's raw dismissal vocabulary to the canonical
// taxonomy used as aggregate columns. Unmapped codes pass through unchanged.
var dismissalCodes = map[string]string{
	"no":   "Not Out",
	"rtno": "Not Out",
	"c":    "Caught",
	"b":    "Bowled",
	"lbw":  "LBW",
	"ro":   "Run Out",
	"hw":   "Hit Wicket",
}

// Dismissal converts a raw dismissal code to its canonical form. An empty
// code means the batter was never dismissed, so it lands in the Not Out
// bucket rather than being dropped.
func Dismissal(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Not Out"
	}
	if canonical, ok := dismissalCodes[strings.ToLower(code)]; ok {
		return canonical
	}
	return code
}

// Count coerces a scraped cell to an integer count. Unparseable values become
// zero so missing upstream data never aborts aggregation.
func Count(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Some cells arrive as "5.0" style floats.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// Overs coerces a scraped overs cell (cricket notation) to a float. The
// notation itself is interpreted later by the stats package; unparseable
// values become zero.
func Overs(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Package stats folds raw innings records into batting and bowling summaries.
package stats

import "math"

// Cricket overs notation is base-6: the digit after the decimal point counts
// balls (0-5), not tenths. 3.5 means 3 overs and 5 balls, i.e. 23 balls.

// ballDigit splits overs notation into whole overs and the ball digit,
// clamping the digit into 0-5. Upstream data is not guaranteed clean; an
// out-of-range digit is a data-quality problem, not a reason to produce NaN.
func ballDigit(overs float64) (int, int) {
	if overs < 0 {
		return 0, 0
	}
	whole := int(overs)
	digit := int(math.Round((overs - float64(whole)) * 10))
	if digit > 5 {
		digit = 5
	}
	if digit < 0 {
		digit = 0
	}
	return whole, digit
}

// FloatOvers converts overs notation to true fractional overs
// (3.5 -> 3.8333), the form divisions like economy rate need.
func FloatOvers(overs float64) float64 {
	whole, digit := ballDigit(overs)
	return float64(whole) + float64(digit)/6
}

// OversToBalls converts overs notation to a linear ball count.
func OversToBalls(overs float64) int {
	whole, digit := ballDigit(overs)
	return whole*6 + digit
}

// BallsToOvers converts a ball count back to overs display notation.
// 21 balls -> 3.5, not 3.5 decimal overs.
func BallsToOvers(totalBalls int) float64 {
	if totalBalls < 0 {
		totalBalls = 0
	}
	return float64(totalBalls/6) + float64(totalBalls%6)/10
}

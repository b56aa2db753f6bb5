package util

import (
	"math"
	"strconv"
)

func RoundFloat64(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}

// FormatWinRate renders wins/total as a percentage with one fractional digit,
// rounding halves away from zero: 5/6 is "83.3%", 1/16 is "6.3%". A zero total is "0.0%".
// The percentage is computed as wins*100/total so exact halves such as 23/80 stay exact.
func FormatWinRate(wins, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	percent := float64(wins) * 100 / float64(total)
	return strconv.FormatFloat(RoundFloat64(percent, 1), 'f', 1, 64) + "%"
}

package wacc

import "strconv"

// DefaultPercentDecimals is the display precision for rates
const DefaultPercentDecimals = 6

// FormatPercent renders a decimal fraction as a percentage, e.g. 0.0929 -> "9.290000%"
func FormatPercent(x float64) string {
	return FormatPercentPrecision(x, DefaultPercentDecimals)
}

// FormatPercentPrecision renders x*100 with the given number of decimals
func FormatPercentPrecision(x float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(x*100, 'f', decimals, 64) + "%"
}

// FormatWeight renders a capital weight with four decimals
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', 4, 64)
}

package clamp

import (
	"math"
	"strconv"
)

// DefaultPrecision is the number of decimals generated values are rounded to
const DefaultPrecision = 4

// formatNumber rounds v to precision decimals and drops trailing zeros
func formatNumber(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	scale := math.Pow(10, float64(precision))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func formatRem(v float64, precision int) string {
	return formatNumber(v, precision) + "rem"
}

// Package format renders projection values for display. Every function floors;
// projections are never rounded up.
package format

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Currency floors v to whole units: 68600.9 -> "$68,600", -1000.5 -> "-$1,001".
func Currency(v float64) string {
	n := floorInt(v)
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// JobValue marks the open-ended ceiling: at or above max it reads "$50,000+".
func JobValue(v, max float64) string {
	if v >= max {
		return Currency(max) + "+"
	}
	return Currency(v)
}

// Percent renders a floored whole percentage: 4900 -> "4,900%".
func Percent(p float64) string {
	return humanize.Comma(floorInt(p)) + "%"
}

// Multiplier renders a ratio floored to one decimal: 49.06 -> "49.0x".
func Multiplier(m float64) string {
	return OneDecimal(m) + "x"
}

// Deals renders closed deals floored to one decimal.
func Deals(d float64) string {
	return OneDecimal(d)
}

// Rate renders a closing rate as a whole percent.
func Rate(r float64) string {
	return strconv.FormatInt(floorInt(r), 10) + "%"
}

// OneDecimal floors v to one decimal place.
func OneDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.0"
	}
	// The nudge absorbs binary error such as 0.7*10 = 6.9999999.
	f := math.Floor(v*10+1e-9) / 10
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func floorInt(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Floor(v))
}

package domain

import (
	"math"
	"strconv"
)

const (
	DefaultCoats         = 2
	DefaultYieldPerLiter = 10.0

	// yields below this floor are treated as the floor
	minYieldPerLiter = 0.1
)

// Coverage returns the liters of paint needed for area square meters
// with the given number of coats, rounded to two decimals. Halves are
// rounded on the exact binary value, so 0.125 becomes 0.12.
// yieldPerLiter is the area covered by one liter.
func Coverage(area float64, coats int, yieldPerLiter float64) float64 {
	liters := area * float64(coats) / math.Max(minYieldPerLiter, yieldPerLiter)
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(liters, 'f', 2, 64), 64)
	return rounded
}

package game

import "math"

// pixelDim converts a layout length to an integer raster dimension.
// Negative, NaN and infinite values become 0; fractions are truncated.
func pixelDim(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v > maxDim {
		return maxDim
	}
	return int(v)
}

// maxDim bounds raster allocations for absurd layout values.
const maxDim = 1 << 15

package metrics

import "math"

const bytesPerMB = 1024 * 1024

// BytesToMB converts a byte count to megabytes rounded to two decimals.
func BytesToMB(b uint64) float64 {
	return round2(float64(b) / bytesPerMB)
}

// TruncatePercent cuts a percentage down to two decimals, keeping it inside [0, 100).
func TruncatePercent(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	v = math.Floor(v*100) / 100
	if v >= 100 {
		return 99.99
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package common

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Nearest returns the value in vals closest to v. Returns v unchanged when
// vals is empty.
func Nearest(v float64, vals []float64) float64 {
	if len(vals) == 0 {
		return v
	}
	best := vals[0]
	for _, c := range vals[1:] {
		if abs(c-v) < abs(best-v) {
			best = c
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

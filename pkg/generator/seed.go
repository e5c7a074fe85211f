package generator

import "math"

// SeededRandom maps a seed to a pseudo-random value in [0, 1).
// It is a sine hash rather than a general purpose source, so results are stable
// across processes and platforms that share IEEE-754 sin.
func SeededRandom(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

// pick returns an index in [0, n) derived from seed.
func pick(seed int64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(SeededRandom(seed) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

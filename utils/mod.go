package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Uniform returns a distribution of n equal weights.
func Uniform(n int) []float64 {
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = 1 / float64(n)
	}
	return dist
}

// Normalize scales weights in place to sum to one and returns their sum
// beforehand. Weights summing to zero or less are left untouched.
func Normalize(weights []float64) float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum > 0 {
		for i := range weights {
			weights[i] /= sum
		}
	}
	return sum
}

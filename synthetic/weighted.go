package synthetic

// pickWeighted draws one item by cumulative weight: a single uniform
// draw over [0, total) followed by a linear scan. Floating-point edge
// misses deterministically fall back to the first item.
func pickWeighted[T any](rng *lockedRand, items []T, weight func(T) float64) T {
	var total float64
	for _, item := range items {
		total += weight(item)
	}

	draw := rng.Float64() * total
	for _, item := range items {
		draw -= weight(item)
		if draw <= 0 {
			return item
		}
	}
	return items[0]
}

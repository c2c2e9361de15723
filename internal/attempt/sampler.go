package attempt

import (
	"math/rand"
)

// SamplePool draws needed question IDs from pool. Each pass consumes an
// unbiased Fisher-Yates permutation of the full pool from the front, so no
// question repeats within a pass; when the permutation runs out before needed
// IDs are collected the pool is reshuffled and drawing continues, so repeats
// across passes are possible when needed exceeds the pool size. Draw order is
// preserved. Panics on an empty pool: callers validate the bank first.
func SamplePool(rng *rand.Rand, pool []string, needed int) []string {
	out := make([]string, 0, needed)
	var pass []string
	for len(out) < needed {
		if len(pass) == 0 {
			pass = shuffled(rng, pool)
		}
		out = append(out, pass[0])
		pass = pass[1:]
	}
	return out
}

func shuffled(rng *rand.Rand, pool []string) []string {
	out := make([]string, len(pool))
	copy(out, pool)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

package attempt

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPool(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = fmt.Sprintf("q%d", i)
	}
	return pool
}

func TestSamplePoolNoEarlyRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := testPool(20)

	got := SamplePool(rng, pool, 12)
	assert.Len(t, got, 12)

	seen := map[string]struct{}{}
	for _, id := range got {
		_, dup := seen[id]
		assert.False(t, dup, "no repeats when needed <= pool size")
		seen[id] = struct{}{}
		assert.Contains(t, pool, id)
	}
}

func TestSamplePoolWraparound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := testPool(5)

	got := SamplePool(rng, pool, 13)
	assert.Len(t, got, 13)

	// The first full pass is a permutation of the pool.
	assert.ElementsMatch(t, pool, got[:5])
	// So is the second.
	assert.ElementsMatch(t, pool, got[5:10])
	// Every drawn ID comes from the pool.
	for _, id := range got {
		assert.Contains(t, pool, id)
	}
}

func TestSamplePoolSingleQuestion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := SamplePool(rng, []string{"only"}, 3)
	assert.Equal(t, []string{"only", "only", "only"}, got)
}

func TestSamplePoolDoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	pool := testPool(10)
	clone := append([]string(nil), pool...)

	SamplePool(rng, pool, 25)
	assert.Equal(t, clone, pool)
}

func TestSamplePoolZeroNeeded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	got := SamplePool(rng, testPool(4), 0)
	assert.Empty(t, got)
}

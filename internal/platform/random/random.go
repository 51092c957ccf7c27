package random

import "math/rand/v2"

// Source is the randomness used by dataset generation and grid patterns.
// *rand.Rand satisfies it, so tests can pass a seeded generator.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// System draws from the runtime-seeded global generator.
type System struct{}

func (System) IntN(n int) int { return rand.IntN(n) }

func (System) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Seeded returns a deterministic source for tests and reproducible catalogues.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Pick returns count distinct values from [0, n), in draw order.
func Pick(src Source, n, count int) []int {
	if count > n {
		count = n
	}
	if count <= 0 {
		return nil
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	src.Shuffle(n, func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:count]
}

package services

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies every stochastic decision the engines make.
// Injecting it keeps game outcomes deterministic under test.
type RandomSource interface {
	// Float64 returns a uniform real in [0, 1).
	Float64() float64

	// IntN returns a uniform integer in [0, n).
	IntN(n int) int

	// Shuffle performs a Fisher-Yates shuffle over n elements.
	Shuffle(n int, swap func(i, j int))
}

type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a time-seeded RandomSource safe for use from
// concurrent wager resolutions.
func NewRandomSource() RandomSource {
	return &lockedRandom{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRandomSource returns a deterministic RandomSource for tests.
func NewSeededRandomSource(seed int64) RandomSource {
	return &lockedRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRandom) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

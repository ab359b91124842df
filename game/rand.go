package game

import (
	"math/rand"
	"time"
)

// Rand is the random source the simulation draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"shooterx/internal/defs"
)

// Random is the random source every core component draws from.
// Tests inject seeded or scripted implementations.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// PRNGService wraps a seeded math/rand generator so a whole run can be replayed.
type PRNGService struct {
	rng  *rand.Rand
	seed int64
}

// NewPRNGService creates a generator with the given seed.
// A zero seed means "use the current time".
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Intn returns a number in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range returns a number in [min, max).
func Range(r Random, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Float64()*(max-min)
}

// ChooseWeighted picks an enemy type from a weight table: sum the weights,
// draw in that range and walk the table until the draw is covered.
func ChooseWeighted(r Random, entries []defs.WeightedEntry) defs.EnemyType {
	if len(entries) == 0 {
		return ""
	}

	totalWeight := 0
	for _, entry := range entries {
		if entry.Weight > 0 {
			totalWeight += entry.Weight
		}
	}

	if totalWeight <= 0 {
		return entries[0].Type
	}

	n := r.Intn(totalWeight)
	upto := 0
	for _, entry := range entries {
		if entry.Weight <= 0 {
			continue
		}
		if upto+entry.Weight > n {
			return entry.Type
		}
		upto += entry.Weight
	}

	return entries[len(entries)-1].Type
}

// Shuffle permutes s in place (Fisher–Yates).
func Shuffle[T any](r Random, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

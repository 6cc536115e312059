package benchmark_test

import (
	"testing"

	"github.com/longlongdada/lenskit"
	"github.com/longlongdada/lenskit/ratings"
	"github.com/longlongdada/lenskit/store"
	"github.com/longlongdada/lenskit/util"
)

// ============================================================================
// Benchmark Configuration
// ============================================================================

// Standard population sizes used across benchmarks for consistency.
// Items scale with users so matrix density stays comparable.
const (
	usersSmall  = 500 // Quick iteration
	itemsSmall  = 200

	usersMedium = 2_000 // Default CI
	itemsMedium = 800

	usersLarge = 10_000 // Production-scale
	itemsLarge = 2_000
)

// Seed for deterministic benchmarks - enables reproducible comparisons.
const benchSeed = 42

// ============================================================================
// Benchmark Helpers
// ============================================================================

// newBenchStore builds a deterministic rating matrix.
func newBenchStore(b *testing.B, users, items int) *store.MemoryStore {
	b.Helper()

	rng := util.NewRNG(benchSeed)
	st := store.NewMemoryStore()
	st.AddAll(rng.GenerateRatings(users, items))
	return st
}

// newBenchFinder creates a finder over st, failing the benchmark on
// configuration errors.
func newBenchFinder(b *testing.B, st store.Store, opts ...lenskit.Option) *lenskit.Finder {
	b.Helper()

	finder, err := lenskit.New(st, opts...)
	if err != nil {
		b.Fatalf("failed to create finder: %v", err)
	}
	return finder
}

// probeVector returns the rating vector of the lowest-numbered user.
func probeVector(b *testing.B, st *store.MemoryStore) (ratings.UserID, ratings.Vector) {
	b.Helper()

	users := st.Users()
	if len(users) == 0 {
		b.Fatal("empty store")
	}

	user := users[0]
	for _, u := range users {
		if u < user {
			user = u
		}
	}

	v := ratings.Vector{}
	for _, r := range st.Ratings() {
		if r.User == user {
			v.Set(r.Item, r.Value)
		}
	}
	return user, v
}

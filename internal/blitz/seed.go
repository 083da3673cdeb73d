// Package blitz holds the deterministic seed cycling and the payout
// interpolation math for the blitz game mode.
package blitz

import (
	"log/slog"
	"time"

	"github.com/quickplay-games/sessiond/internal/domain"
	"github.com/quickplay-games/sessiond/internal/localcache"
)

const seedWindowSize = 5

// epochReference anchors the hour counter. Changing it reshuffles every seed,
// so it stays fixed for the lifetime of the product.
var epochReference = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// BaseSeed returns the whole hours elapsed since the epoch reference. It
// increases by one every hour.
func BaseSeed(now time.Time) int64 {
	return int64(now.Sub(epochReference) / time.Hour)
}

// Window builds the 5-wide seed window centered on base.
func Window(base int64) [seedWindowSize]int64 {
	return [seedWindowSize]int64{base - 2, base - 1, base, base + 1, base + 2}
}

// SeedCycler selects RNG seeds from the hour window, rotating through it with
// a persisted game counter so consecutive games within the same hour never
// repeat a seed until the cycle wraps.
type SeedCycler struct {
	cache *localcache.Store
	log   *slog.Logger
}

// NewSeedCycler builds a cycler persisting its counter in the local cache.
func NewSeedCycler(cache *localcache.Store, log *slog.Logger) *SeedCycler {
	if log == nil {
		log = slog.Default()
	}

	return &SeedCycler{cache: cache, log: log}
}

// NextSeed picks the seed for the next game and advances the persisted
// counter. The counter starts at 1 on first use.
func (c *SeedCycler) NextSeed(now time.Time) int64 {
	cycle := domain.BlitzSeedCycleData{GameNumber: 1}
	c.cache.Get(localcache.KeyBlitzSeedCycle, &cycle)
	if cycle.GameNumber < 1 {
		cycle.GameNumber = 1
	}

	window := Window(BaseSeed(now))
	seed := window[cycle.GameNumber%seedWindowSize]

	cycle.GameNumber++
	if err := c.cache.Put(localcache.KeyBlitzSeedCycle, cycle); err != nil {
		c.log.Warn("failed to persist blitz seed cycle", "error", err)
	}

	return seed
}

package blitz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplay-games/sessiond/internal/localcache"
)

func TestBaseSeed(t *testing.T) {
	assert.Equal(t, int64(0), BaseSeed(time.Date(2023, 1, 1, 0, 30, 0, 0, time.UTC)))
	assert.Equal(t, int64(1), BaseSeed(time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(24), BaseSeed(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))

	// The base only moves on the hour boundary.
	within := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, BaseSeed(within), BaseSeed(within.Add(59*time.Minute)))
	assert.Equal(t, BaseSeed(within)+1, BaseSeed(within.Add(time.Hour)))
}

func TestWindow(t *testing.T) {
	assert.Equal(t, [5]int64{98, 99, 100, 101, 102}, Window(100))
}

func TestSeedCycler_NextSeed_Periodicity(t *testing.T) {
	cache, err := localcache.New(t.TempDir(), nil)
	require.NoError(t, err)

	cycler := NewSeedCycler(cache, nil)

	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	window := Window(BaseSeed(now))

	// Ten draws within the same hour walk the window twice; draw N and draw
	// N+5 pick the same seed.
	var seeds []int64
	for i := 0; i < 10; i++ {
		seeds = append(seeds, cycler.NextSeed(now))
	}

	// The counter starts at 1, so the first draw picks window[1].
	assert.Equal(t, window[1], seeds[0])
	for i := 0; i < 5; i++ {
		assert.Equalf(t, seeds[i], seeds[i+5], "draw %d and draw %d should reuse the seed", i+1, i+6)
	}

	distinct := map[int64]struct{}{}
	for _, s := range seeds[:5] {
		distinct[s] = struct{}{}
	}
	assert.Len(t, distinct, 5, "five consecutive draws exhaust the window")
}

func TestSeedCycler_CounterPersistsAcrossCyclers(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	window := Window(BaseSeed(now))

	cache, err := localcache.New(dir, nil)
	require.NoError(t, err)

	first := NewSeedCycler(cache, nil)
	assert.Equal(t, window[1], first.NextSeed(now))
	assert.Equal(t, window[2], first.NextSeed(now))

	// A new cycler over the same cache dir resumes the counter.
	reopened, err := localcache.New(dir, nil)
	require.NoError(t, err)

	second := NewSeedCycler(reopened, nil)
	assert.Equal(t, window[3], second.NextSeed(now))
}

func TestSeedCycler_CorruptCounterResets(t *testing.T) {
	cache, err := localcache.New(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, cache.Put(localcache.KeyBlitzSeedCycle, map[string]any{"gameNumber": -3}))

	cycler := NewSeedCycler(cache, nil)
	now := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	window := Window(BaseSeed(now))

	assert.Equal(t, window[1], cycler.NextSeed(now), "a nonsense counter restarts the cycle")
}

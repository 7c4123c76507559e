package metrics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAppendAndGet(t *testing.T) {
	store := NewStore()

	for i := 0; i < 5; i++ {
		store.Append(Sample{
			Operation:  "array_generation",
			DurationMs: float64(i),
		})
	}

	history := store.Get("array_generation")
	require.Len(t, history, 5)
	for i, sample := range history {
		assert.Equal(t, float64(i), sample.DurationMs, "samples must be returned in call order")
		assert.False(t, sample.Time.IsZero(), "append must stamp samples")
	}
}

func TestStoreGetUnknownOperation(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Get("never_recorded"))
	assert.Equal(t, 0, store.Count("never_recorded"))
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Append(Sample{Operation: "op", DurationMs: 1.0})

	history := store.Get("op")
	history[0].DurationMs = 999

	assert.Equal(t, 1.0, store.Get("op")[0].DurationMs)
}

func TestStoreAll(t *testing.T) {
	store := NewStore()
	store.Append(Sample{Operation: "a", DurationMs: 1})
	store.Append(Sample{Operation: "b", DurationMs: 2})
	store.Append(Sample{Operation: "a", DurationMs: 3})

	all := store.All()
	require.Len(t, all, 2)
	assert.Len(t, all["a"], 2)
	assert.Len(t, all["b"], 1)
}

func TestStoreReset(t *testing.T) {
	store := NewStore()
	store.Append(Sample{Operation: "a", DurationMs: 1})
	store.Append(Sample{Operation: "b", DurationMs: 2})

	store.Reset()

	assert.Empty(t, store.All())
	assert.Nil(t, store.Get("a"))
	assert.Nil(t, store.Get("b"))

	// Store remains usable after reset.
	store.Append(Sample{Operation: "a", DurationMs: 3})
	assert.Equal(t, 1, store.Count("a"))
}

func TestStoreConcurrentAppends(t *testing.T) {
	store := NewStore()

	const writers = 10
	const perWriter = 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			op := fmt.Sprintf("op-%d", id%3)
			for i := 0; i < perWriter; i++ {
				store.Append(Sample{Operation: op, DurationMs: float64(i)})
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, history := range store.All() {
		total += len(history)
	}
	assert.Equal(t, writers*perWriter, total, "concurrent appends must not lose samples")
}

func TestSummarize(t *testing.T) {
	store := NewStore()
	for i := 1; i <= 100; i++ {
		store.Append(Sample{Operation: "transform", DurationMs: float64(i)})
	}

	summaries := store.Summarize()
	require.Contains(t, summaries, "transform")

	summary := summaries["transform"]
	assert.Equal(t, int64(100), summary.Count)
	assert.Equal(t, 1.0, summary.MinMs)
	assert.Equal(t, 100.0, summary.MaxMs)
	assert.InDelta(t, 50.5, summary.AvgMs, 0.001)
	assert.InDelta(t, 50, summary.P50Ms, 1.0)
	assert.InDelta(t, 90, summary.P90Ms, 1.5)
	assert.True(t, summary.P50Ms <= summary.P90Ms)
	assert.True(t, summary.P90Ms <= summary.P95Ms)
	assert.True(t, summary.P95Ms <= summary.P99Ms)
}

func TestSummarizeSubMicrosecondSamples(t *testing.T) {
	store := NewStore()
	for i := 0; i < 10; i++ {
		store.Append(Sample{Operation: "fast", DurationMs: 0.0001})
	}

	summary := store.Summarize()["fast"]
	require.NotNil(t, summary)

	// Every sample must count toward the percentiles, clamped to the
	// histogram floor rather than dropped.
	assert.Equal(t, int64(10), summary.Count)
	assert.Greater(t, summary.P50Ms, 0.0)
	assert.Greater(t, summary.P99Ms, 0.0)
}

func TestSummarizeSkipsEmptyStore(t *testing.T) {
	store := NewStore()
	assert.Empty(t, store.Summarize())
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerStopRecordsSample(t *testing.T) {
	store := NewStore()

	timer := store.StartTimer("stage").
		WithField("rows", 150).
		WithTag("request_id", "abc")
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	assert.Greater(t, elapsed, 0.0)

	history := store.Get("stage")
	require.Len(t, history, 1)
	assert.Equal(t, elapsed, history[0].DurationMs)
	assert.Equal(t, 150.0, history[0].Fields["rows"])
	assert.Equal(t, "abc", history[0].Tags["request_id"])
}

func TestTimerStopIsIdempotent(t *testing.T) {
	store := NewStore()

	timer := store.StartTimer("stage")
	first := timer.Stop()
	second := timer.Stop()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Count("stage"), "second Stop must not append again")
	assert.Equal(t, first, timer.ElapsedMs())
}

func TestNestedTimersProduceIndependentSamples(t *testing.T) {
	store := NewStore()

	outer := store.StartTimer("outer")
	inner := store.StartTimer("outer")
	inner.Stop()
	outer.Stop()

	assert.Equal(t, 2, store.Count("outer"))
}

func TestMeasureReturnsResult(t *testing.T) {
	store := NewStore()

	result, elapsed, err := Measure(store, "work", func() (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.GreaterOrEqual(t, elapsed, 0.0)
	assert.Equal(t, 1, store.Count("work"))
}

func TestMeasureRecordsOnError(t *testing.T) {
	store := NewStore()
	wantErr := errors.New("stage failed")

	_, _, err := Measure(store, "work", func() (int, error) {
		return 0, wantErr
	})

	assert.ErrorIs(t, err, wantErr, "error must propagate unchanged")
	assert.Equal(t, 1, store.Count("work"), "timing must be recorded even on failure")
}

func TestMeasureRecordsOnPanic(t *testing.T) {
	store := NewStore()

	assert.Panics(t, func() {
		_, _, _ = Measure(store, "work", func() (int, error) {
			panic("boom")
		})
	})
	assert.Equal(t, 1, store.Count("work"), "timing must be recorded even on panic")
}

func TestMeasureCallOrder(t *testing.T) {
	store := NewStore()

	for i := 0; i < 10; i++ {
		i := i
		_, _, _ = Measure(store, "ordered", func() (int, error) {
			return i, nil
		})
	}

	history := store.Get("ordered")
	require.Len(t, history, 10)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].Time.Before(history[i-1].Time))
	}
}

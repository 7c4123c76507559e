package metrics

import "time"

// Timer is a paired start/stop capture for one named operation.
// Stop records the elapsed time into the store exactly once; further
// calls return the captured duration without appending again.
type Timer struct {
	store     *Store
	operation string
	start     time.Time
	fields    map[string]float64
	tags      map[string]string
	stopped   bool
	elapsedMs float64
}

// StartTimer begins a measurement for the named operation.
func (s *Store) StartTimer(operation string) *Timer {
	return &Timer{
		store:     s,
		operation: operation,
		start:     time.Now(),
	}
}

// WithField attaches a numeric metadata field to the recorded sample.
func (t *Timer) WithField(key string, value float64) *Timer {
	if t.fields == nil {
		t.fields = make(map[string]float64)
	}
	t.fields[key] = value
	return t
}

// WithTag attaches a string metadata tag to the recorded sample.
func (t *Timer) WithTag(key, value string) *Timer {
	if t.tags == nil {
		t.tags = make(map[string]string)
	}
	t.tags[key] = value
	return t
}

// Stop records the sample and returns the elapsed time in milliseconds.
func (t *Timer) Stop() float64 {
	if t.stopped {
		return t.elapsedMs
	}
	t.stopped = true
	t.elapsedMs = float64(time.Since(t.start)) / float64(time.Millisecond)

	t.store.Append(Sample{
		Operation:  t.operation,
		DurationMs: t.elapsedMs,
		Time:       time.Now(),
		Fields:     t.fields,
		Tags:       t.tags,
	})
	return t.elapsedMs
}

// ElapsedMs returns the duration captured by Stop, or 0 if still running.
func (t *Timer) ElapsedMs() float64 {
	return t.elapsedMs
}

// Measure runs fn under a timer for the named operation and returns its
// result together with the elapsed milliseconds. The sample is recorded
// on every exit path, including error returns and panics, and an error
// from fn propagates unchanged.
func Measure[T any](store *Store, operation string, fn func() (T, error)) (result T, elapsedMs float64, err error) {
	timer := store.StartTimer(operation)
	defer func() {
		elapsedMs = timer.Stop()
	}()

	result, err = fn()
	return result, elapsedMs, err
}

package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// PageStats counts home pages served by the web layer. Rendered only
// counts responses written in full; Failed counts build or render errors.
type PageStats struct {
	Rendered Counter
	Failed   Counter
	// lastBuildNanos is the duration of the most recent successful build.
	lastBuildNanos int64
}

func (s *PageStats) ObserveBuild(d time.Duration) {
	atomic.StoreInt64(&s.lastBuildNanos, int64(d))
}

func (s *PageStats) Snapshot() map[string]any {
	return map[string]any{
		"rendered":      s.Rendered.Load(),
		"failed":        s.Failed.Load(),
		"last_build_ms": time.Duration(atomic.LoadInt64(&s.lastBuildNanos)).Milliseconds(),
	}
}

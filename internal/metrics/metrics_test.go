package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(50), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestPageStats(t *testing.T) {
	var s PageStats
	s.ObserveBuild(42 * time.Millisecond)
	s.Failed.Inc()

	snap := s.Snapshot()
	assert.Equal(t, uint64(0), snap["rendered"], "a build alone is not a rendered page")
	assert.Equal(t, uint64(1), snap["failed"])
	assert.Equal(t, int64(42), snap["last_build_ms"])

	s.Rendered.Inc()
	snap = s.Snapshot()
	assert.Equal(t, uint64(1), snap["rendered"])
	assert.Equal(t, uint64(1), snap["failed"])
	assert.Equal(t, int64(42), snap["last_build_ms"])
}

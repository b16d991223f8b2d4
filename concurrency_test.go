package timesync

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One producer goroutine per channel, all inserting the same run of
// timestamps. Interleaving is arbitrary, so some rows complete and some are
// swept by newer completions; what must hold: no timestamp ever completes
// twice, the dispatch time never goes backwards, and every timestamp is
// eventually observed through exactly one of the two paths.
func TestSynchronizer_ConcurrentProducers(t *testing.T) {
	const channels = 4
	const stamps = 500

	s, err := New(channels, WithLogger(discardLogger()))
	require.NoError(t, err)

	var mu sync.Mutex
	completed := map[time.Time]int{}
	observed := map[time.Time]bool{}
	var lastDispatch time.Time
	monotone := true

	s.RegisterCallback(func(r Row) {
		mu.Lock()
		defer mu.Unlock()
		completed[r.Time()]++
		observed[r.Time()] = true
		if r.Time().Before(lastDispatch) {
			monotone = false
		}
		lastDispatch = r.Time()
	})
	s.RegisterDropCallback(func(r Row) {
		mu.Lock()
		defer mu.Unlock()
		observed[r.Time()] = true
	})

	var wg sync.WaitGroup
	for ch := 0; ch < channels; ch++ {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()
			for i := 0; i < stamps; i++ {
				ts := at(i)
				assert.NoError(t, s.AddAt(ch, payload{Channel: ch, Seq: i, TS: ts}, ts))
			}
		}(ch)
	}
	wg.Wait()

	// Flush whatever is still partial.
	require.NoError(t, s.Close())

	mu.Lock()
	defer mu.Unlock()

	assert.True(t, monotone, "dispatch timestamps went backwards")
	for ts, n := range completed {
		assert.Equal(t, 1, n, "timestamp %s completed %d times", ts, n)
	}
	for i := 0; i < stamps; i++ {
		assert.True(t, observed[at(i)], "timestamp %s never observed", at(i))
	}
}

// Register and disconnect drop callbacks while inserts are in flight. The
// registry must stay consistent; a callback sees an eviction sweep in full or
// not at all.
func TestSynchronizer_ConcurrentRegistration(t *testing.T) {
	s, err := New(2, WithQueueSize(4), WithLogger(discardLogger()))
	require.NoError(t, err)
	defer s.Close()

	stop := make(chan struct{})
	var churn sync.WaitGroup
	churn.Add(1)
	go func() {
		defer churn.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			conn := s.RegisterDropCallback(func(Row) {})
			conn.Disconnect()
		}
	}()

	var wg sync.WaitGroup
	for ch := 0; ch < 2; ch++ {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				ts := at(i)
				assert.NoError(t, s.AddAt(ch, payload{Channel: ch, Seq: i, TS: ts}, ts))
			}
		}(ch)
	}
	wg.Wait()
	close(stop)
	churn.Wait()

	stats := s.Stats()
	assert.LessOrEqual(t, stats.Pending, 4)
}

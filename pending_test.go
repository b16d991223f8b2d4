package timesync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(sec int) int64 { return at(sec).UnixNano() }

func TestPendingSet_GetOrCreate(t *testing.T) {
	p := newPendingSet()

	row := p.getOrCreate(key(1), at(1), 2)
	require.NotNil(t, row)
	assert.Equal(t, at(1), row.Time())
	assert.Equal(t, 2, row.Len())
	assert.False(t, row.Complete())

	// Same key returns the same row, not a replacement.
	row.put(0, "x")
	again := p.getOrCreate(key(1), at(1), 2)
	assert.Same(t, row, again)
	assert.True(t, again.Has(0))
	assert.Equal(t, 1, p.len())
}

func TestPendingSet_MinAndRemove(t *testing.T) {
	p := newPendingSet()

	// Insert out of order; min must always be the smallest timestamp.
	for _, sec := range []int{5, 1, 3} {
		p.getOrCreate(key(sec), at(sec), 2)
	}

	k, row, ok := p.min()
	require.True(t, ok)
	assert.Equal(t, key(1), k)
	assert.Equal(t, at(1), row.Time())

	p.remove(key(1))
	k, _, ok = p.min()
	require.True(t, ok)
	assert.Equal(t, key(3), k)
	assert.Equal(t, 2, p.len())

	// Removing an absent key changes nothing.
	p.remove(key(99))
	assert.Equal(t, 2, p.len())

	p.remove(key(3))
	p.remove(key(5))
	_, _, ok = p.min()
	assert.False(t, ok)
	assert.Equal(t, 0, p.len())
}

func TestPendingSet_TakeUpTo(t *testing.T) {
	p := newPendingSet()
	for _, sec := range []int{4, 2, 1, 8} {
		p.getOrCreate(key(sec), at(sec), 2)
	}

	taken := p.takeUpTo(key(4))
	times := make([]time.Time, len(taken))
	for i, r := range taken {
		times[i] = r.Time()
	}
	assert.Equal(t, []time.Time{at(1), at(2), at(4)}, times)
	assert.Equal(t, 1, p.len())

	// Nothing at or below the limit.
	assert.Empty(t, p.takeUpTo(key(4)))
	assert.Equal(t, 1, p.len())
}

func TestPendingSet_TakeOldest(t *testing.T) {
	p := newPendingSet()
	for sec := 1; sec <= 5; sec++ {
		p.getOrCreate(key(sec), at(sec), 2)
	}

	taken := p.takeOldest(2)
	require.Len(t, taken, 2)
	assert.Equal(t, at(1), taken[0].Time())
	assert.Equal(t, at(2), taken[1].Time())
	assert.Equal(t, 3, p.len())

	// Asking for more than remain drains the set.
	taken = p.takeOldest(10)
	require.Len(t, taken, 3)
	assert.Equal(t, 0, p.len())
}

func TestPendingSet_Drain(t *testing.T) {
	p := newPendingSet()
	for _, sec := range []int{3, 1, 2} {
		p.getOrCreate(key(sec), at(sec), 2)
	}

	rows := p.drain()
	require.Len(t, rows, 3)
	assert.Equal(t, at(1), rows[0].Time())
	assert.Equal(t, at(3), rows[2].Time())
	assert.Equal(t, 0, p.len())
	assert.Empty(t, p.drain())
}

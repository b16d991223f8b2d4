package timesync

import (
	"slices"
	"time"
)

// pendingSet is the timestamp-ordered store of in-flight rows: a map keyed by
// UnixNano plus a sorted key slice for ascending iteration. At most one row
// exists per timestamp. All access happens under the Synchronizer's mutex.
type pendingSet struct {
	rows map[int64]*Row
	keys []int64 // ascending
}

func newPendingSet() *pendingSet {
	return &pendingSet{rows: make(map[int64]*Row)}
}

func (p *pendingSet) len() int { return len(p.keys) }

// getOrCreate returns the row for ts, materializing an empty n-slot row if
// none exists yet.
func (p *pendingSet) getOrCreate(key int64, ts time.Time, n int) *Row {
	if row, ok := p.rows[key]; ok {
		return row
	}
	row := newRow(ts, n)
	p.rows[key] = row
	i, _ := slices.BinarySearch(p.keys, key)
	p.keys = slices.Insert(p.keys, i, key)
	return row
}

func (p *pendingSet) remove(key int64) {
	if _, ok := p.rows[key]; !ok {
		return
	}
	delete(p.rows, key)
	if i, ok := slices.BinarySearch(p.keys, key); ok {
		p.keys = slices.Delete(p.keys, i, i+1)
	}
}

// min returns the smallest-timestamp row, if any.
func (p *pendingSet) min() (int64, *Row, bool) {
	if len(p.keys) == 0 {
		return 0, nil, false
	}
	k := p.keys[0]
	return k, p.rows[k], true
}

// takeUpTo removes and returns, in ascending order, every row whose key is
// <= limit. The keys are sorted, so scanning stops at the first key past it.
func (p *pendingSet) takeUpTo(limit int64) []*Row {
	var out []*Row
	n := 0
	for _, k := range p.keys {
		if k > limit {
			break
		}
		out = append(out, p.rows[k])
		delete(p.rows, k)
		n++
	}
	p.keys = p.keys[n:]
	return out
}

// takeOldest removes and returns the n smallest-timestamp rows.
func (p *pendingSet) takeOldest(n int) []*Row {
	if n > len(p.keys) {
		n = len(p.keys)
	}
	out := make([]*Row, 0, n)
	for _, k := range p.keys[:n] {
		out = append(out, p.rows[k])
		delete(p.rows, k)
	}
	p.keys = p.keys[n:]
	return out
}

// drain removes and returns all rows in ascending timestamp order.
func (p *pendingSet) drain() []*Row {
	return p.takeOldest(len(p.keys))
}

package timesync

import "time"

// Row is the per-timestamp collection of up to N message slots. A row is
// created on the first insert for its timestamp and handed to callbacks once
// it either completes (every slot filled) or is dropped (removed before
// completing). After the synchronizer removes a row it never mutates it again,
// so callbacks may retain it.
type Row struct {
	time   time.Time
	msgs   []any
	set    []bool
	filled int
}

func newRow(ts time.Time, n int) *Row {
	return &Row{
		time: ts,
		msgs: make([]any, n),
		set:  make([]bool, n),
	}
}

// Time returns the timestamp all slots of this row share.
func (r Row) Time() time.Time { return r.time }

// Len returns the number of slots (the synchronizer's channel count).
func (r Row) Len() int { return len(r.msgs) }

// Has reports whether the slot for the given channel is occupied.
func (r Row) Has(channel int) bool {
	return channel >= 0 && channel < len(r.set) && r.set[channel]
}

// At returns the message in the given channel's slot, or nil if the slot is
// empty. Complete rows have every slot occupied.
func (r Row) At(channel int) any {
	if !r.Has(channel) {
		return nil
	}
	return r.msgs[channel]
}

// Complete reports whether every slot is occupied.
func (r Row) Complete() bool { return r.filled == len(r.msgs) }

// Messages returns a copy of the slot contents, indexed by channel. Empty
// slots are nil.
func (r Row) Messages() []any {
	out := make([]any, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// put stores msg in the channel's slot. The last writer for a given
// channel+timestamp wins; an overwrite before completion is silent.
func (r *Row) put(channel int, msg any) {
	if !r.set[channel] {
		r.set[channel] = true
		r.filled++
	}
	r.msgs[channel] = msg
}

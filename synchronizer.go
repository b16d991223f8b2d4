package timesync

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Synchronizer groups messages from N channels by exact timestamp. It is safe
// for concurrent use by any number of producer goroutines; completion and
// eviction are decided under a single mutex so a completed row is dispatched
// exactly once.
type Synchronizer struct {
	channels int
	cfg      config
	log      *slog.Logger

	mu       sync.Mutex
	pending  *pendingSet
	lastKey  int64
	haveLast bool
	closed   bool

	completed signal
	dropped   signal

	nCompleted atomic.Uint64
	nDropped   atomic.Uint64
}

// Stats is a point-in-time snapshot of synchronizer counters.
type Stats struct {
	Completed uint64 // rows dispatched to complete callbacks
	Dropped   uint64 // rows removed without completing
	Pending   int    // rows currently buffered
}

// New creates a Synchronizer for the given number of channels (at least two).
func New(channels int, opts ...Option) (*Synchronizer, error) {
	if channels < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrChannelCount, channels)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if cfg.name != "" {
		cfg.log = cfg.log.With("synchronizer", cfg.name)
	}

	return &Synchronizer{
		channels: channels,
		cfg:      cfg,
		log:      cfg.log,
		pending:  newPendingSet(),
	}, nil
}

// Channels returns the channel count fixed at construction.
func (s *Synchronizer) Channels() int { return s.channels }

// Name returns the debug label set with WithName, or "".
func (s *Synchronizer) Name() string { return s.cfg.name }

// Add extracts the message's timestamp with the configured extractor and
// inserts it into the given channel's slot.
func (s *Synchronizer) Add(channel int, msg any) error {
	ts, err := s.cfg.extract(msg)
	if err != nil {
		return err
	}
	return s.AddAt(channel, msg, ts)
}

// AddAt inserts msg into the given channel's slot for the row at ts. If the
// insert fills the row's last empty slot the complete callbacks fire
// synchronously before AddAt returns, followed by eviction of any rows made
// stale by the dispatch and enforcement of the queue bound.
//
// Inserting twice on the same channel for the same timestamp overwrites the
// earlier payload silently.
func (s *Synchronizer) AddAt(channel int, msg any, ts time.Time) error {
	if channel < 0 || channel >= s.channels {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidChannel, channel, s.channels)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSynchronizerClosed
	}

	key := ts.UnixNano()
	row := s.pending.getOrCreate(key, ts, s.channels)
	row.put(channel, msg)
	s.checkRow(key, row)
	return nil
}

// checkRow runs the completion check, stale-row cleanup, and queue-bound
// enforcement for the row just written. Caller holds s.mu.
func (s *Synchronizer) checkRow(key int64, row *Row) {
	if row.Complete() {
		s.completed.dispatch(s.log, *row)
		s.nCompleted.Add(1)
		s.lastKey, s.haveLast = key, true
		s.pending.remove(key)

		// Anything at or before the dispatched timestamp can never
		// complete: the synchronizer only advances.
		if stale := s.pending.takeUpTo(s.lastKey); len(stale) > 0 {
			s.drop(stale)
		}
	}

	if s.cfg.queueSize > 0 {
		if over := s.pending.len() - s.cfg.queueSize; over > 0 {
			s.drop(s.pending.takeOldest(over))
		}
	}
}

// drop fires the drop callbacks for rows already removed from the pending
// set, oldest first. Caller holds s.mu.
func (s *Synchronizer) drop(rows []*Row) {
	s.dropped.dispatchAll(s.log, rows)
	s.nDropped.Add(uint64(len(rows)))
	s.log.Debug("dropped incomplete rows", "count", len(rows))
}

// RegisterCallback registers fn to receive every completed row, in completion
// order. Callbacks fire in registration order on the inserting goroutine.
func (s *Synchronizer) RegisterCallback(fn func(Row)) Connection {
	id := s.completed.add(fn)
	return Connection{remove: func() { s.completed.remove(id) }, once: new(sync.Once)}
}

// RegisterDropCallback registers fn to receive every row removed from the
// buffer without completing, whether displaced by the queue bound or made
// stale by a newer completion.
func (s *Synchronizer) RegisterDropCallback(fn func(Row)) Connection {
	id := s.dropped.add(fn)
	return Connection{remove: func() { s.dropped.remove(id) }, once: new(sync.Once)}
}

// LastTime returns the timestamp of the most recently completed row. The
// second return is false until the first completion. The value never
// decreases over the synchronizer's lifetime.
func (s *Synchronizer) LastTime() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.haveLast {
		return time.Time{}, false
	}
	return time.Unix(0, s.lastKey), true
}

// Stats returns a snapshot of the synchronizer's counters.
func (s *Synchronizer) Stats() Stats {
	s.mu.Lock()
	pending := s.pending.len()
	s.mu.Unlock()
	return Stats{
		Completed: s.nCompleted.Load(),
		Dropped:   s.nDropped.Load(),
		Pending:   pending,
	}
}

// Close flushes every buffered row through the drop path and clears the
// callback registries. Further Add/AddAt calls return ErrSynchronizerClosed.
func (s *Synchronizer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSynchronizerClosed
	}
	s.closed = true
	if rows := s.pending.drain(); len(rows) > 0 {
		s.drop(rows)
	}
	s.mu.Unlock()

	s.completed.clear()
	s.dropped.clear()
	return nil
}

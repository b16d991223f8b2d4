package timesync

import (
	"log/slog"
	"sync"
)

// Connection is the opaque handle returned by RegisterCallback and
// RegisterDropCallback. Disconnect removes the callback; it is safe to call
// more than once, and the zero Connection is a no-op.
type Connection struct {
	remove func()
	once   *sync.Once
}

// Disconnect unregisters the callback. Insertions that acquire the
// synchronizer's lock after Disconnect returns will not observe the callback;
// an insertion already dispatching may still invoke it once.
func (c Connection) Disconnect() {
	if c.remove == nil {
		return
	}
	c.once.Do(c.remove)
}

type callbackEntry struct {
	id uint64
	fn func(Row)
}

// signal is an ordered callback registry. Each dispatch invokes every
// registered callback in registration order, isolating panics so one failing
// callback cannot starve the rest or leak the lock. The registry mutex is held
// across a whole dispatch batch, so a callback added mid-sweep observes the
// sweep either in full or not at all.
type signal struct {
	mu      sync.Mutex
	nextID  uint64
	entries []callbackEntry
}

func (s *signal) add(fn func(Row)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.entries = append(s.entries, callbackEntry{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *signal) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *signal) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *signal) dispatch(log *slog.Logger, row Row) {
	s.dispatchAll(log, []*Row{&row})
}

func (s *signal) dispatchAll(log *slog.Logger, rows []*Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		for _, e := range s.entries {
			invoke(log, e.fn, *row)
		}
	}
}

func invoke(log *slog.Logger, fn func(Row), row Row) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("synchronizer callback panic recovered",
				"panic", r,
				"time", row.Time())
		}
	}()
	fn(row)
}

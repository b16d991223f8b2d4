package timesync

import "time"

// Typed façades over the N-ary core. They fix the arity in the type system so
// the combined callback gets concrete message types instead of a Row. Higher
// arities use the core directly.

// Synchronizer2 synchronizes two typed channels.
type Synchronizer2[M0, M1 any] struct {
	core *Synchronizer
}

// New2 creates a two-channel typed synchronizer.
func New2[M0, M1 any](opts ...Option) (*Synchronizer2[M0, M1], error) {
	core, err := New(2, opts...)
	if err != nil {
		return nil, err
	}
	return &Synchronizer2[M0, M1]{core: core}, nil
}

// Core exposes the untyped synchronizer for drop callbacks, stats, and Close.
func (s *Synchronizer2[M0, M1]) Core() *Synchronizer { return s.core }

// Add0 inserts a channel-0 message at ts.
func (s *Synchronizer2[M0, M1]) Add0(m M0, ts time.Time) error { return s.core.AddAt(0, m, ts) }

// Add1 inserts a channel-1 message at ts.
func (s *Synchronizer2[M0, M1]) Add1(m M1, ts time.Time) error { return s.core.AddAt(1, m, ts) }

// RegisterCallback registers a typed callback for completed pairs.
func (s *Synchronizer2[M0, M1]) RegisterCallback(fn func(M0, M1)) Connection {
	return s.core.RegisterCallback(func(r Row) {
		m0, _ := r.At(0).(M0)
		m1, _ := r.At(1).(M1)
		fn(m0, m1)
	})
}

// RegisterDropCallback registers a callback for dropped rows. Dropped rows may
// be partial, so they stay untyped.
func (s *Synchronizer2[M0, M1]) RegisterDropCallback(fn func(Row)) Connection {
	return s.core.RegisterDropCallback(fn)
}

// Close closes the underlying synchronizer.
func (s *Synchronizer2[M0, M1]) Close() error { return s.core.Close() }

// Synchronizer3 synchronizes three typed channels.
type Synchronizer3[M0, M1, M2 any] struct {
	core *Synchronizer
}

// New3 creates a three-channel typed synchronizer.
func New3[M0, M1, M2 any](opts ...Option) (*Synchronizer3[M0, M1, M2], error) {
	core, err := New(3, opts...)
	if err != nil {
		return nil, err
	}
	return &Synchronizer3[M0, M1, M2]{core: core}, nil
}

// Core exposes the untyped synchronizer.
func (s *Synchronizer3[M0, M1, M2]) Core() *Synchronizer { return s.core }

// Add0 inserts a channel-0 message at ts.
func (s *Synchronizer3[M0, M1, M2]) Add0(m M0, ts time.Time) error { return s.core.AddAt(0, m, ts) }

// Add1 inserts a channel-1 message at ts.
func (s *Synchronizer3[M0, M1, M2]) Add1(m M1, ts time.Time) error { return s.core.AddAt(1, m, ts) }

// Add2 inserts a channel-2 message at ts.
func (s *Synchronizer3[M0, M1, M2]) Add2(m M2, ts time.Time) error { return s.core.AddAt(2, m, ts) }

// RegisterCallback registers a typed callback for completed triples.
func (s *Synchronizer3[M0, M1, M2]) RegisterCallback(fn func(M0, M1, M2)) Connection {
	return s.core.RegisterCallback(func(r Row) {
		m0, _ := r.At(0).(M0)
		m1, _ := r.At(1).(M1)
		m2, _ := r.At(2).(M2)
		fn(m0, m1, m2)
	})
}

// RegisterDropCallback registers a callback for dropped rows.
func (s *Synchronizer3[M0, M1, M2]) RegisterDropCallback(fn func(Row)) Connection {
	return s.core.RegisterDropCallback(fn)
}

// Close closes the underlying synchronizer.
func (s *Synchronizer3[M0, M1, M2]) Close() error { return s.core.Close() }

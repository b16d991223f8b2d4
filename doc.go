// Package timesync synchronizes N independently arriving message channels by
// exact timestamp.
//
// A Synchronizer buffers messages from each channel, keyed by the timestamp
// extracted from each message, and fires a combined callback only when all N
// channels have produced a message sharing the same timestamp. Rows that can
// never complete — either because a newer timestamp already completed, or
// because the configured queue bound displaced them — are reported through a
// separate drop callback.
//
// The core treats a message as an opaque payload plus a timestamp. Transport,
// subscription, and decoding live elsewhere; the adapter subpackage binds NATS
// subjects to a Synchronizer's channels for callers who want that wiring done
// for them.
//
// Example usage:
//
//	s, err := timesync.New(3, timesync.WithQueueSize(10))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	conn := s.RegisterCallback(func(row timesync.Row) {
//		log.Printf("synced %d messages at %s", row.Len(), row.Time())
//	})
//	defer conn.Disconnect()
//
//	// one producer goroutine per channel
//	_ = s.AddAt(0, payload, ts)
//
// Callbacks run synchronously on the inserting goroutine while the
// synchronizer's lock is held. They must return quickly and must not call Add,
// AddAt, or Close on the same Synchronizer, or they will deadlock.
package timesync

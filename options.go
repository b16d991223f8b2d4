package timesync

import (
	"fmt"
	"log/slog"
	"time"
)

// Timestamped is the capability the default extractor looks for on inserted
// messages.
type Timestamped interface {
	Timestamp() time.Time
}

// ExtractFunc derives the canonical timestamp for a message. It must be pure:
// the same message always yields the same timestamp.
type ExtractFunc func(msg any) (time.Time, error)

func defaultExtract(msg any) (time.Time, error) {
	if t, ok := msg.(Timestamped); ok {
		return t.Timestamp(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %T does not implement Timestamped", ErrNoTimestamp, msg)
}

type config struct {
	queueSize int
	extract   ExtractFunc
	log       *slog.Logger
	name      string
}

func defaultConfig() config {
	return config{extract: defaultExtract}
}

// Option configures a Synchronizer.
type Option func(*config)

// WithQueueSize bounds the number of retained rows. Once the bound is
// exceeded the oldest rows are dropped (with notification) until the bound
// holds again. Zero, the default, means unbounded.
func WithQueueSize(n int) Option { return func(c *config) { c.queueSize = n } }

// WithExtractor replaces the default Timestamped-based timestamp extraction
// used by Add. AddAt bypasses extraction entirely.
func WithExtractor(fn ExtractFunc) Option { return func(c *config) { c.extract = fn } }

// WithLogger injects a slog logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.log = l } }

// WithName sets a debug label reported by Name and attached to log records.
func WithName(name string) Option { return func(c *config) { c.name = name } }

package adapter

import (
	"fmt"
	"log/slog"
	"time"

	timesync "github.com/a2y-d5l/go-timesync"
	"github.com/a2y-d5l/go-timesync/message"
)

// BackpressurePolicy controls what happens when a channel's buffer is full.
type BackpressurePolicy int

const (
	BackpressureBlock BackpressurePolicy = iota // default
	BackpressureDropNewest
	BackpressureDropOldest
)

// ExtractFunc derives the synchronization timestamp from an envelope.
type ExtractFunc func(env *message.Envelope) (time.Time, error)

// defaultExtract uses the timestamp header, falling back to the envelope's
// Time field.
func defaultExtract(env *message.Envelope) (time.Time, error) {
	if ts, err := env.Headers.Timestamp(); err == nil {
		return ts, nil
	}
	if !env.Time.IsZero() {
		return env.Time, nil
	}
	return time.Time{}, fmt.Errorf("%w: subject %q", timesync.ErrNoTimestamp, env.Subject)
}

type options struct {
	bufferSize   int
	backpressure BackpressurePolicy
	codec        message.Codec
	extract      ExtractFunc
	flushTimeout time.Duration
	log          *slog.Logger
}

func defaultOptions() options {
	return options{
		bufferSize:   1024,
		backpressure: BackpressureBlock,
		codec:        message.JSONCodec,
		extract:      defaultExtract,
		flushTimeout: 2 * time.Second,
	}
}

// Option configures Bind and Publish.
type Option func(*options)

// WithBufferSize sets the per-channel buffer size (default 1024).
func WithBufferSize(n int) Option { return func(o *options) { o.bufferSize = n } }

// WithBackpressure sets the buffer overflow policy (default block).
func WithBackpressure(p BackpressurePolicy) Option { return func(o *options) { o.backpressure = p } }

// WithCodec sets the payload codec used by Publish (default JSON).
func WithCodec(c message.Codec) Option { return func(o *options) { o.codec = c } }

// WithExtractor replaces the default header-based timestamp extraction.
func WithExtractor(fn ExtractFunc) Option { return func(o *options) { o.extract = fn } }

// WithFlushTimeout sets the post-subscribe flush timeout.
func WithFlushTimeout(d time.Duration) Option { return func(o *options) { o.flushTimeout = d } }

// WithLogger injects a slog logger.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

// Package adapter binds NATS subjects to the channels of a
// timesync.Synchronizer: one subscription per channel, each forwarding
// incoming messages with their extracted timestamps into the core.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	timesync "github.com/a2y-d5l/go-timesync"
	"github.com/a2y-d5l/go-timesync/message"
)

var (
	// ErrSubjectCount indicates the subject list does not match the
	// synchronizer's channel count.
	ErrSubjectCount = errors.New("subject count does not match channel count")
)

var _ timesync.Timestamped = (*message.Envelope)(nil)

// Group owns the subscriptions feeding one synchronizer. Stop or Drain it
// before closing the synchronizer.
type Group struct {
	sync *timesync.Synchronizer
	cfg  options
	log  *slog.Logger

	subs  []*nats.Subscription
	chans []chan *message.Envelope
	wg    sync.WaitGroup
	stop  chan struct{}
	once  sync.Once
}

// Bind subscribes to subjects[i] for channel i and starts forwarding. The
// subject list length must equal the synchronizer's channel count.
func Bind(nc *nats.Conn, s *timesync.Synchronizer, subjects []string, opts ...Option) (*Group, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if len(subjects) != s.Channels() {
		return nil, fmt.Errorf("%w: %d subjects for %d channels", ErrSubjectCount, len(subjects), s.Channels())
	}

	g := &Group{
		sync: s,
		cfg:  cfg,
		log:  cfg.log,
		stop: make(chan struct{}),
	}

	for i, subject := range subjects {
		ch := make(chan *message.Envelope, cfg.bufferSize)
		g.chans = append(g.chans, ch)

		sub, err := nc.Subscribe(subject, func(m *nats.Msg) { g.enqueue(ch, fromNATS(m)) })
		if err != nil {
			g.teardown()
			return nil, fmt.Errorf("subscribe %q: %w", subject, err)
		}
		g.subs = append(g.subs, sub)

		g.wg.Add(1)
		go g.forward(i, ch)
	}

	if err := nc.FlushTimeout(cfg.flushTimeout); err != nil {
		g.teardown()
		return nil, fmt.Errorf("flush after subscribe: %w", err)
	}

	return g, nil
}

// enqueue applies the backpressure policy on the per-channel buffer. Runs on
// the NATS delivery goroutine.
func (g *Group) enqueue(ch chan *message.Envelope, env *message.Envelope) {
	switch g.cfg.backpressure {
	case BackpressureBlock:
		select {
		case ch <- env:
		case <-g.stop:
		}
	case BackpressureDropNewest:
		select {
		case ch <- env:
		default:
			g.log.Debug("buffer full, dropping newest", "subject", env.Subject)
		}
	case BackpressureDropOldest:
		select {
		case ch <- env:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- env:
			default:
			}
		}
	}
}

// forward drains one channel's buffer into the synchronizer. A single worker
// per channel keeps per-channel arrival order intact.
func (g *Group) forward(channel int, ch <-chan *message.Envelope) {
	defer g.wg.Done()
	for {
		select {
		case <-g.stop:
			return
		case env, ok := <-ch:
			if !ok {
				return
			}
			ts, err := g.cfg.extract(env)
			if err != nil {
				g.log.Warn("skipping message without usable timestamp",
					"subject", env.Subject, "err", err)
				continue
			}
			if err := g.sync.AddAt(channel, env, ts); err != nil {
				g.log.Warn("synchronizer rejected message",
					"subject", env.Subject, "channel", channel, "err", err)
			}
		}
	}
}

// Drain unsubscribes, waits for the buffers to empty (bounded by ctx), then
// stops the forwarding workers.
func (g *Group) Drain(ctx context.Context) error {
	var merr multiErr
	for _, sub := range g.subs {
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			merr.add(err)
		}
	}

	t := time.NewTicker(20 * time.Millisecond)
	defer t.Stop()
WAIT:
	for {
		if g.buffered() == 0 {
			break
		}
		select {
		case <-ctx.Done():
			merr.add(fmt.Errorf("drain: %w", ctx.Err()))
			break WAIT
		case <-t.C:
		}
	}

	g.once.Do(func() { close(g.stop) })
	g.wg.Wait()

	if len(merr) > 0 {
		return merr
	}
	return nil
}

// Stop unsubscribes and stops the workers without waiting for buffered
// messages to be forwarded.
func (g *Group) Stop() error {
	g.teardown()
	return nil
}

func (g *Group) teardown() {
	for _, sub := range g.subs {
		_ = sub.Unsubscribe()
	}
	g.once.Do(func() { close(g.stop) })
	g.wg.Wait()
}

func (g *Group) buffered() int {
	n := 0
	for _, ch := range g.chans {
		n += len(ch)
	}
	return n
}

// fromNATS converts a wire message into an envelope, picking up the canonical
// timestamp header when present.
func fromNATS(m *nats.Msg) *message.Envelope {
	env := message.New(m.Subject, m.Data)
	for k, vv := range m.Header {
		if len(vv) > 0 {
			env.Headers[k] = vv[0]
		}
	}
	env.ID = env.Headers.MessageID()
	if ts, err := env.Headers.Timestamp(); err == nil {
		env.Time = ts
	}
	return env
}

// multiErr is a simple error accumulator.
type multiErr []error

func (m *multiErr) add(err error) { *m = append(*m, err) }

func (m multiErr) Error() string {
	if len(m) == 0 {
		return ""
	}
	if len(m) == 1 {
		return m[0].Error()
	}
	msg := "multiple errors:"
	for _, e := range m {
		msg += "\n - " + e.Error()
	}
	return msg
}

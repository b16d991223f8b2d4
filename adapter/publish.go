package adapter

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/a2y-d5l/go-timesync/message"
)

// Publish encodes v with the configured codec and publishes it on subject
// with the timestamp header set to ts. Messages published this way carry
// everything a bound Group needs to route them into the right row.
func Publish(nc *nats.Conn, subject string, v any, ts time.Time, opts ...Option) error {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	data, err := cfg.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = data
	// Direct map writes keep the lower-case header keys the message package
	// uses; nats.Header.Set would canonicalize them.
	msg.Header[string(message.HeaderContentType)] = []string{cfg.codec.ContentType()}
	msg.Header[string(message.HeaderTimestamp)] = []string{ts.Format(time.RFC3339Nano)}

	return nc.PublishMsg(msg)
}

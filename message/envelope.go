// Package message defines the transport envelope and codecs used by the
// adapter package. The synchronization core never inspects these; it sees an
// envelope only as an opaque payload with a timestamp.
package message

import "time"

// Envelope carries one message as it crosses the transport boundary.
type Envelope struct {
	Subject string  `json:"subject" msgpack:"subject"`
	Data    []byte  `json:"data" msgpack:"data"`
	Headers Headers `json:"headers" msgpack:"headers"`
	ID      string  `json:"id,omitempty" msgpack:"id,omitempty"`

	// Time is the canonical timestamp channels are synchronized on, mirrored
	// into the timestamp header when set through WithTime.
	Time time.Time `json:"time" msgpack:"time"`
}

// New creates an envelope for the given subject and raw payload.
func New(subject string, data []byte) *Envelope {
	return &Envelope{
		Subject: subject,
		Data:    data,
		Headers: NewHeaders(),
	}
}

// WithID sets the envelope ID and the matching header.
func (e *Envelope) WithID(id string) *Envelope {
	e.ID = id
	e.Headers.SetMessageID(id)
	return e
}

// WithTime sets the canonical timestamp and the matching header.
func (e *Envelope) WithTime(t time.Time) *Envelope {
	e.Time = t
	e.Headers.SetTimestamp(t)
	return e
}

// Timestamp returns the envelope's canonical timestamp.
func (e *Envelope) Timestamp() time.Time { return e.Time }

// Clone deep-copies the envelope.
func (e *Envelope) Clone() *Envelope {
	clone := &Envelope{
		Subject: e.Subject,
		Data:    make([]byte, len(e.Data)),
		Headers: e.Headers.Clone(),
		ID:      e.ID,
		Time:    e.Time,
	}
	copy(clone.Data, e.Data)
	return clone
}

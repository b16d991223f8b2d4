package message

import (
	"fmt"
	"time"
)

// HeaderKey names a well-known envelope header.
type HeaderKey string

const (
	HeaderContentType   HeaderKey = "content-type"
	HeaderTimestamp     HeaderKey = "timestamp"
	HeaderMessageID     HeaderKey = "message-id"
	HeaderCorrelationID HeaderKey = "correlation-id"
)

// Headers is a string map with helpers for the well-known keys.
type Headers map[string]string

// NewHeaders creates an empty headers map.
func NewHeaders() Headers {
	return make(Headers)
}

// Set sets a header value.
func (h Headers) Set(key HeaderKey, value string) {
	h[string(key)] = value
}

// Get retrieves a header value, "" if absent.
func (h Headers) Get(key HeaderKey) string {
	return h[string(key)]
}

// Has checks whether a header is present.
func (h Headers) Has(key HeaderKey) bool {
	_, ok := h[string(key)]
	return ok
}

// SetContentType sets the content-type header.
func (h Headers) SetContentType(contentType string) {
	h.Set(HeaderContentType, contentType)
}

// ContentType returns the content-type header.
func (h Headers) ContentType() string {
	return h.Get(HeaderContentType)
}

// SetTimestamp stores t in the timestamp header as RFC3339Nano.
func (h Headers) SetTimestamp(t time.Time) {
	h.Set(HeaderTimestamp, t.Format(time.RFC3339Nano))
}

// Timestamp parses the timestamp header. Absence is an error.
func (h Headers) Timestamp() (time.Time, error) {
	ts := h.Get(HeaderTimestamp)
	if ts == "" {
		return time.Time{}, fmt.Errorf("timestamp header not set")
	}
	return time.Parse(time.RFC3339Nano, ts)
}

// SetMessageID sets the message-id header.
func (h Headers) SetMessageID(id string) {
	h.Set(HeaderMessageID, id)
}

// MessageID returns the message-id header.
func (h Headers) MessageID() string {
	return h.Get(HeaderMessageID)
}

// Clone copies the headers map.
func (h Headers) Clone() Headers {
	clone := NewHeaders()
	for k, v := range h {
		clone[k] = v
	}
	return clone
}

package message

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec is a pluggable payload encoder/decoder (default JSON).
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	ContentType() string
}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Decode(b []byte, v any) error { return json.Unmarshal(b, v) }
func (jsonCodec) ContentType() string          { return "application/json" }

// JSONCodec encodes payloads with encoding/json.
var JSONCodec Codec = jsonCodec{}

type msgpackCodec struct{}

func (msgpackCodec) Encode(v any) ([]byte, error) { return msgpack.Marshal(v) }
func (msgpackCodec) Decode(b []byte, v any) error { return msgpack.Unmarshal(b, v) }
func (msgpackCodec) ContentType() string          { return "application/msgpack" }

// MsgpackCodec encodes payloads with msgpack, for callers who care about
// payload size more than readability.
var MsgpackCodec Codec = msgpackCodec{}

package attrkit

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// The codec surface of a record: every encoder receives the ToMap rendering,
// keeping ToMap the single serialization boundary. Decoding is not provided;
// construction goes through Schema.New so coercion and validation always run.
var (
	_ json.Marshaler        = (*Record)(nil)
	_ yaml.Marshaler        = (*Record)(nil)
	_ msgpack.CustomEncoder = (*Record)(nil)
)

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// MarshalYAML implements yaml.Marshaler.
func (r *Record) MarshalYAML() (any, error) {
	return r.ToMap(), nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (r *Record) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(r.ToMap())
}

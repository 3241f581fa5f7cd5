// Package encoding provides Registrum's canonical, content-addressable
// serialization: deterministic JSON with map keys sorted at every
// depth, and a SHA-256 hash over that canonical form. It plays the
// role the teacher's codec package plays for consensus messages, but
// where codec.JSONCodec merely version-guards plain encoding/json,
// Canonical additionally guarantees byte-stable output across runs —
// required so two Registrar instances that replay the same registry
// produce identical snapshot hashes.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Canonical returns the canonical JSON encoding of v: object keys are
// sorted lexicographically at every nesting depth, and the output
// contains no insignificant whitespace. Equal values always produce
// byte-identical output regardless of map iteration order.
func Canonical(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding: marshal: %w", err)
	}
	return CanonicalJSON(raw)
}

// CanonicalJSON re-encodes an already-serialized JSON document into
// canonical form, sorting object keys at every depth.
func CanonicalJSON(raw []byte) ([]byte, error) {
	var decoded interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("encoding: decode: %w", err)
	}

	var buf bytes.Buffer
	if err := encodeCanonical(&buf, decoded); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCanonical(buf *bytes.Buffer, v interface{}) error {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return fmt.Errorf("encoding: marshal key: %w", err)
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			if err := encodeCanonical(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []interface{}:
		buf.WriteByte('[')
		for i, elt := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeCanonical(buf, elt); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("encoding: marshal scalar: %w", err)
		}
		buf.Write(encoded)
	}
	return nil
}

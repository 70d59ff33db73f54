// Package normalize flattens the several response shapes the commerce
// service answers with (raw array, paginated envelope, named wrapper)
// into one ordered sequence of entities.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "normalize").Logger()

// Strategy extracts an ordered entity sequence from a decoded payload.
// Extract reports whether the strategy applied to the input.
type Strategy interface {
	Name() string
	Extract(raw json.RawMessage) ([]json.RawMessage, bool)
}

// Strategies are tried in order; the first one that applies wins.
var Strategies = []Strategy{
	RawArray{},
	WrappedArray{Keys: []string{"content", "products", "items"}},
	FirstArrayField{},
}

// Items normalizes raw into an entity sequence. Null, absent, or
// unrecognizable input yields an empty sequence, never an error.
func Items(raw json.RawMessage) []json.RawMessage {
	if isNull(raw) {
		return nil
	}
	for _, s := range Strategies {
		if items, ok := s.Extract(raw); ok {
			logger.Debug().Str("strategy", s.Name()).Int("items", len(items)).Msg("payload normalized")
			return items
		}
	}
	return nil
}

// Decode normalizes raw and unmarshals each element into T.
func Decode[T any](raw json.RawMessage) ([]T, error) {
	items := Items(raw)
	if len(items) == 0 {
		return nil, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, fmt.Errorf("decode element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// RawArray applies when the payload is already an array.
type RawArray struct{}

func (RawArray) Name() string { return "raw-array" }

func (RawArray) Extract(raw json.RawMessage) ([]json.RawMessage, bool) {
	if !isArray(raw) {
		return nil, false
	}
	return decodeArray(raw)
}

// WrappedArray probes a fixed set of well-known wrapper keys, in the
// order given, for an array-valued field.
type WrappedArray struct {
	Keys []string
}

func (WrappedArray) Name() string { return "known-wrapper" }

func (w WrappedArray) Extract(raw json.RawMessage) ([]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	for _, key := range w.Keys {
		if val, ok := fields[key]; ok && isArray(val) {
			return decodeArray(val)
		}
	}
	return nil, false
}

// FirstArrayField scans all fields of an object in document order and
// returns the first array-valued one.
type FirstArrayField struct{}

func (FirstArrayField) Name() string { return "first-array-field" }

func (FirstArrayField) Extract(raw json.RawMessage) ([]json.RawMessage, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, false
		}
		if isArray(val) {
			return decodeArray(val)
		}
	}
	return nil, false
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func isArray(raw json.RawMessage) bool {
	return firstByte(raw) == '['
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// Copyright (c) 2026 Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/taibuivan/atlas/pkg/slice"
)

// UpstreamCountry is the subset of a REST Countries v3.1 record we read.
//
// Every field is optional and decoded on its own: a member with an unexpected
// JSON shape is left at its zero value and the rest of the record survives.
type UpstreamCountry struct {
	Name struct {
		Common string `json:"common"`
	}
	Capital    []string
	Population int64
	Region     string
	Continents []string
	Flags      struct {
		SVG string `json:"svg"`
	}
	Maps struct {
		GoogleMaps string `json:"googleMaps"`
	}
	Currencies OrderedMap[Currency]
	Languages  OrderedMap[string]
	LatLng     []float64
}

// UnmarshalJSON implements [json.Unmarshaler]. It fails only when data is not
// a JSON object.
func (record *UpstreamCountry) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return fmt.Errorf("country: upstream record is not an object: %w", err)
	}

	decoded := UpstreamCountry{
		Capital:    lenientStrings(members["capital"]),
		Population: lenientInteger(members["population"]),
		Continents: lenientStrings(members["continents"]),
	}
	lenient(members["name"], &decoded.Name)
	lenient(members["region"], &decoded.Region)
	lenient(members["flags"], &decoded.Flags)
	lenient(members["maps"], &decoded.Maps)
	lenient(members["currencies"], &decoded.Currencies)
	lenient(members["languages"], &decoded.Languages)
	lenient(members["latlng"], &decoded.LatLng)

	*record = decoded
	return nil
}

// lenient decodes raw into target, leaving target untouched on any mismatch.
func lenient[T any](raw json.RawMessage, target *T) {
	if len(raw) == 0 {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return
	}
	*target = value
}

// lenientStrings keeps the string elements of a JSON list. Anything other
// than a list yields nil.
func lenientStrings(raw json.RawMessage) []string {
	var elements []json.RawMessage
	lenient(raw, &elements)

	var values []string
	for _, element := range elements {
		var value string
		if json.Unmarshal(element, &value) == nil {
			values = append(values, value)
		}
	}
	return values
}

// lenientInteger reads a JSON number, or a numeric string, truncating
// fractions. Anything else yields 0.
func lenientInteger(raw json.RawMessage) int64 {
	var number json.Number
	lenient(raw, &number)
	if number == "" {
		return 0
	}
	if value, err := number.Int64(); err == nil {
		return value
	}
	value, err := number.Float64()
	if err != nil || math.IsNaN(value) || value >= math.MaxInt64 || value <= math.MinInt64 {
		return 0
	}
	return int64(value)
}

// Currency is one entry of the upstream currencies object.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Pair is one key/value member of a JSON object.
type Pair[V any] struct {
	Key   string
	Value V
}

// OrderedMap decodes a JSON object into its members in document order, so
// "the first currency" means the same thing on every run.
type OrderedMap[V any] []Pair[V]

// UnmarshalJSON implements [json.Unmarshaler].
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("country: expected JSON object, got %v", token)
	}

	var pairs OrderedMap[V]
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := token.(string)
		if !ok {
			return fmt.Errorf("country: expected object key, got %v", token)
		}

		var value V
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("country: decode member %q: %w", key, err)
		}
		pairs = append(pairs, Pair[V]{Key: key, Value: value})
	}

	// Consume the closing brace.
	if _, err := decoder.Token(); err != nil {
		return err
	}

	*m = pairs
	return nil
}

// Keys returns the member names in order.
func (m OrderedMap[V]) Keys() []string {
	return slice.Map(m, func(p Pair[V]) string { return p.Key })
}

// Values returns the member values in order.
func (m OrderedMap[V]) Values() []V {
	return slice.Map(m, func(p Pair[V]) V { return p.Value })
}

// First returns the first member, if any.
func (m OrderedMap[V]) First() (Pair[V], bool) {
	if len(m) == 0 {
		return Pair[V]{}, false
	}
	return m[0], true
}

// embeddedStatus reports the numeric "status" member of a JSON object body.
// REST Countries answers some misses with {"status": 404, "message": "Not Found"}.
func embeddedStatus(body []byte) (int, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 0, false
	}

	var envelope struct {
		Status json.Number `json:"status"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return 0, false
	}

	status, err := envelope.Status.Int64()
	if err != nil {
		return 0, false
	}
	return int(status), true
}

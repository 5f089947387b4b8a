// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"maps"
	"reflect"
	"strconv"
)

// Payload is the flat key/value form of a record's synchronized fields.
//
// Values are JSON-compatible scalars. After a JSON round trip numbers arrive
// as float64 or json.Number, so readers should go through the typed accessors
// instead of asserting concrete types.
type Payload map[string]any

// Clone returns a shallow copy of p.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Only returns a copy of p restricted to keys.
func (p Payload) Only(keys []string) Payload {
	out := make(Payload, len(keys))
	for _, key := range keys {
		if v, ok := p[key]; ok {
			out[key] = v
		}
	}
	return out
}

// Merge copies every key of src into p, overwriting existing values.
func (p Payload) Merge(src Payload) Payload {
	if p == nil {
		p = make(Payload, len(src))
	}
	maps.Copy(p, src)
	return p
}

// Equal reports whether p and other hold the same values, treating numbers
// of different Go types but equal value as equal.
func (p Payload) Equal(other Payload) bool {
	if len(p) != len(other) {
		return false
	}
	for key, v := range p {
		ov, ok := other[key]
		if !ok {
			return false
		}
		if !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

// String returns the value under key as a string.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Int returns the value under key as int64, accepting any numeric
// representation that holds an integral value.
func (p Payload) Int(key string) (int64, bool) {
	switch v := p[key].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Float returns the value under key as float64.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Bool returns the value under key as bool.
func (p Payload) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}

func valuesEqual(a, b any) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	return Payload{"v": v}.Float("v")
}

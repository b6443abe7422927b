// Package gsi projects raw Dota 2 game state integration snapshots into typed, ordered views.
//
// Every function in this package is total. Missing, null or mistyped values resolve to zero
// values instead of errors, so a partially populated snapshot always produces a usable view.
package gsi

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/leighmacdonald/dota-tui/internal/encoding"
)

var ErrNotObject = errors.New("snapshot is not a JSON object")

// Object is a decoded JSON object with accessors that never fail.
type Object map[string]any

// ParseSnapshot decodes a single websocket frame. Only JSON objects are accepted.
func ParseSnapshot(frame []byte) (Object, error) {
	value, err := encoding.UnmarshalJSON[any](bytes.NewReader(frame))
	if err != nil {
		return nil, err
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	return obj, nil
}

// Object returns the child object stored under key, or nil.
func (o Object) Object(key string) Object {
	if o == nil {
		return nil
	}

	switch child := o[key].(type) {
	case map[string]any:
		return child
	case Object:
		return child
	default:
		return nil
	}
}

// Path walks nested objects, returning nil as soon as a level is missing.
func (o Object) Path(keys ...string) Object {
	current := o
	for _, key := range keys {
		current = current.Object(key)
		if current == nil {
			return nil
		}
	}

	return current
}

// String returns the string under key or "" when absent or not a string.
func (o Object) String(key string) string {
	if o == nil {
		return ""
	}

	value, ok := o[key].(string)
	if !ok {
		return ""
	}

	return value
}

// Number resolves a finite numeric value.
func (o Object) Number(key string) Number {
	if o == nil {
		return Number{}
	}

	var value float64

	switch number := o[key].(type) {
	case float64:
		value = number
	case float32:
		value = float64(number)
	case int:
		value = float64(number)
	case int64:
		value = float64(number)
	case json.Number:
		parsed, err := number.Float64()
		if err != nil {
			return Number{}
		}
		value = parsed
	default:
		return Number{}
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Number{}
	}

	return Number{Value: value, Valid: true}
}

// Flag resolves a strict boolean. Truthy strings or numbers are not coerced.
func (o Object) Flag(key string) Flag {
	if o == nil {
		return Flag{}
	}

	value, ok := o[key].(bool)
	if !ok {
		return Flag{}
	}

	return Flag{Value: value, Valid: true}
}

// FirstNumber returns the first valid number found under the given keys.
func (o Object) FirstNumber(keys ...string) Number {
	for _, key := range keys {
		if value := o.Number(key); value.Valid {
			return value
		}
	}

	return Number{}
}

// Number is an optional numeric field.
type Number struct {
	Value float64
	Valid bool
}

// Num builds a valid Number.
func Num(value float64) Number {
	return Number{Value: value, Valid: true}
}

// Or returns the value, or def when the number is absent.
func (n Number) Or(def float64) float64 {
	if !n.Valid {
		return def
	}

	return n.Value
}

// Flag is an optional boolean field.
type Flag struct {
	Value bool
	Valid bool
}

// True reports whether the flag was present and set.
func (f Flag) True() bool {
	return f.Valid && f.Value
}

// False reports whether the flag was present and explicitly unset.
func (f Flag) False() bool {
	return f.Valid && !f.Value
}

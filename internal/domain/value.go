package domain

import (
	"bytes"
	"encoding/json"
)

// Value tags a field as either observed upstream data or unavailable. Unavailable values
// marshal to JSON null so consumers can tell a missing line from a real zero.
type Value[T any] struct {
	v  T
	ok bool
}

// Observed wraps a real upstream value.
func Observed[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// Unavailable returns the empty tag.
func Unavailable[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nullable wire field.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Unavailable[T]()
	}
	return Observed(*p)
}

// Get returns the value and whether it was observed.
func (x Value[T]) Get() (T, bool) {
	return x.v, x.ok
}

// Available reports whether the value was observed.
func (x Value[T]) Available() bool {
	return x.ok
}

// Or returns the observed value or def.
func (x Value[T]) Or(def T) T {
	if x.ok {
		return x.v
	}
	return def
}

func (x Value[T]) MarshalJSON() ([]byte, error) {
	if !x.ok {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

func (x *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*x = Unavailable[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*x = Observed(v)
	return nil
}

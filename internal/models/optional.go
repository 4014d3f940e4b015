package models

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was present, explicitly null, or of
// the wrong type, so partial updates can tell "absent" from "null".
type Optional[T any] struct {
	Set     bool
	Null    bool
	Invalid bool
	Value   T
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		o.Invalid = true
	}
	return nil
}

// Ptr returns the value when it is present and usable.
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null || o.Invalid {
		return nil
	}
	v := o.Value
	return &v
}

func (o Optional[T]) Or(fallback T) T {
	if p := o.Ptr(); p != nil {
		return *p
	}
	return fallback
}

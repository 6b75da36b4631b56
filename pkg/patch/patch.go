// Package patch provides optional-field types for partial updates. A field
// that is absent from the request body stays unset and the existing value is
// preserved; a supplied value always wins, even when it is falsy (empty
// string, zero, false).
package patch

import "encoding/json"

// Field wraps a value that may or may not have been supplied in a JSON
// payload. The zero Field is unset.
type Field[T any] struct {
	Value T
	Set   bool
}

// UnmarshalJSON marks the field as set. It is only invoked for keys present
// in the payload, which is what distinguishes absent from supplied-zero.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &f.Value); err != nil {
		return err
	}
	f.Set = true
	return nil
}

// MarshalJSON round-trips the wrapped value.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Or returns the supplied value when the field is set, otherwise existing.
func (f Field[T]) Or(existing T) T {
	if f.Set {
		return f.Value
	}
	return existing
}

// OrPtr returns a pointer to the supplied value when set, otherwise existing.
func (f Field[T]) OrPtr(existing *T) *T {
	if f.Set {
		v := f.Value
		return &v
	}
	return existing
}

package frame

import (
	"fmt"

	"go.uber.org/zap"
)

// Result is the erased container backing a named, dynamically typed
// value in a FrameContext's result map. Reading a Result that was never
// Set, or that was reset by Clear, yields the "no value" state: ResultAs
// returns the zero value with no error.
type Result struct {
	value interface{}
	set   bool
}

// Set stores v as the result's current dynamic value.
func (r *Result) Set(v interface{}) {
	r.value = v
	r.set = true
}

// HasValue reports whether the result currently holds a value.
func (r *Result) HasValue() bool {
	return r.set
}

// clear resets the result to the "no value" state without dropping it
// from its owning map.
func (r *Result) clear() {
	r.value = nil
	r.set = false
}

// ResultAs downcasts r's dynamic value to T. If r holds no value it
// returns the zero value of T and a nil error ("no value" is not a
// failure). If r holds a value of a different type it returns the zero
// value and ErrTypeMismatch.
func ResultAs[T any](r *Result) (T, error) {
	var zero T
	if !r.set {
		return zero, nil
	}
	v, ok := r.value.(T)
	if !ok {
		logger().Debug("result type mismatch",
			zap.String("want", fmt.Sprintf("%T", zero)),
			zap.String("got", fmt.Sprintf("%T", r.value)),
		)
		return zero, fmt.Errorf("%w: want %T, got %T", ErrTypeMismatch, zero, r.value)
	}
	return v, nil
}

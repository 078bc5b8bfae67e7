package frame

import "errors"

// ErrTypeMismatch is returned by ResultAs when a result was set with a
// different dynamic type than the one requested.
var ErrTypeMismatch = errors.New("frame: result type mismatch")

// ErrNotFound is returned by Graphics when the named image slot has never
// been touched by either Image or PushGraphics.
var ErrNotFound = errors.New("frame: image slot not found")

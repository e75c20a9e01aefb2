package acquisition

// Outcome is the result of a fallible acquisition step: either a value was
// found or nothing was. The zero Outcome is not found.
type Outcome[T any] struct {
	value T
	ok    bool
}

// Found wraps v as a successful Outcome.
func Found[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// NotFound returns an empty Outcome.
func NotFound[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Get returns the value and whether it was found.
func (o Outcome[T]) Get() (T, bool) {
	return o.value, o.ok
}

// OK reports whether a value was found.
func (o Outcome[T]) OK() bool {
	return o.ok
}

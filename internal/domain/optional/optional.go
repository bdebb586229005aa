// Package optional models a value that is either present or absent,
// so that "unconstrained" is never confused with a zero value.
package optional

// Value holds an optional T.
type Value[T any] struct {
	v   T
	set bool
}

// Of returns a present value.
func Of[T any](v T) Value[T] { return Value[T]{v: v, set: true} }

// None returns an absent value.
func None[T any]() Value[T] { return Value[T]{} }

// FromPtr converts a nil-able pointer into a Value.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Of(*p)
}

// Get returns the value and whether it is present.
func (o Value[T]) Get() (T, bool) { return o.v, o.set }

// IsSet reports whether the value is present.
func (o Value[T]) IsSet() bool { return o.set }

// OrElse returns the value if present, otherwise def.
func (o Value[T]) OrElse(def T) T {
	if o.set {
		return o.v
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Value[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.v
	return &v
}

package reconcile

// Field is an optional value that distinguishes "not provided" from an
// explicit null. The zero value is absent.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns a field carrying v.
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a field that explicitly clears the stored value.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// FromPtr returns Some(*p), or Null when p is nil.
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

// Present reports whether the field was provided, as a value or as null.
func (f Field[T]) Present() bool { return f.set }

// IsNull reports whether the field is an explicit null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and whether one is held.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

// Ptr returns a pointer to the value, nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.set || f.null {
		return nil
	}
	v := f.value
	return &v
}

// column returns the value for a column update: nil for null.
func (f Field[T]) column() any {
	if f.null {
		return nil
	}
	return f.value
}

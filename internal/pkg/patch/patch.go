package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Changed reports whether ptr carries a value different from current.
func Changed[T comparable](ptr *T, current T) bool {
	return ptr != nil && *ptr != current
}

// Nullable applies a double-pointer patch: nil keeps current, a pointer to nil clears it.
func Nullable[T any](p **T, current *T) *T {
	if p == nil {
		return current
	}
	return *p
}

package converting

// Unwrap returns the zero value of T for nil pointers
func Unwrap[T any](x *T) (r T) {
	if x != nil {
		r = *x
	}

	return
}

func PointerToValue[T any](v T) *T {
	return &v
}

// ValueOr returns fallback when v is the zero value
func ValueOr[T comparable](v T, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}

	return v
}

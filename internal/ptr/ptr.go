package ptr

// Ref returns a pointer to the value passed as argument. Handy for the
// optional timestamp fields on session records.
func Ref[T any](v T) *T {
	return &v
}

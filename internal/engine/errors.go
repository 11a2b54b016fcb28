package engine

// unavailableError signals that a backend's native support was not compiled
// into this binary.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailability error for a backend.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates missing native engine support.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}

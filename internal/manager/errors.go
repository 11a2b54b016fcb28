package manager

// unsupportedPairError signals a pair outside the registry for 400 mapping.
type unsupportedPairError struct{ source, target string }

func (e unsupportedPairError) Error() string {
	return "unsupported language pair: " + e.source + " -> " + e.target
}

// ErrUnsupportedPair constructs an unsupportedPairError.
func ErrUnsupportedPair(source, target string) error {
	return unsupportedPairError{source: source, target: target}
}

// IsUnsupportedPair reports whether err indicates a pair outside the
// registry (client input error, never retried automatically).
func IsUnsupportedPair(err error) bool {
	_, ok := err.(unsupportedPairError)
	return ok
}

// modelLoadError signals a failed load episode: artifact fetch,
// decompression or handle construction. The cache holds nothing for the
// identifier afterwards, so a later call retries from scratch.
type modelLoadError struct {
	id    string
	cause error
}

func (e modelLoadError) Error() string { return "load model " + e.id + ": " + e.cause.Error() }
func (e modelLoadError) Unwrap() error { return e.cause }

// ErrModelLoad constructs a modelLoadError.
func ErrModelLoad(id string, cause error) error { return modelLoadError{id: id, cause: cause} }

// IsModelLoad reports whether err came from a failed load episode.
func IsModelLoad(err error) bool {
	_, ok := err.(modelLoadError)
	return ok
}

// engineError signals that the engine capability failed on an
// already-loaded handle. The cached handle stays valid.
type engineError struct {
	id    string
	cause error
}

func (e engineError) Error() string { return "engine failure on model " + e.id + ": " + e.cause.Error() }
func (e engineError) Unwrap() error { return e.cause }

// ErrEngineFailure constructs an engineError.
func ErrEngineFailure(id string, cause error) error { return engineError{id: id, cause: cause} }

// IsEngineFailure reports whether err is a translation-time engine failure.
func IsEngineFailure(err error) bool {
	_, ok := err.(engineError)
	return ok
}

// tooBusyError signals download queue overflow for 429 mapping.
type tooBusyError struct{ id string }

func (e tooBusyError) Error() string { return "too busy: " + e.id }

// ErrTooBusy constructs a tooBusyError.
func ErrTooBusy(id string) error { return tooBusyError{id: id} }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// Package engine defines the translation backend capability: a Kind ranking
// decided once at startup, an Engine that constructs and drives per-model
// handles, and the always-available placeholder terminal fallback.
package engine

import (
	"context"

	"transd/internal/registry"
)

// Kind names a translation backend capability.
type Kind string

const (
	// KindBergamot is the native high-performance engine (cgo, build-tag gated).
	KindBergamot Kind = "bergamot"
	// KindCTranslate2 is the general-purpose neural engine (cgo, build-tag gated).
	KindCTranslate2 Kind = "ctranslate2"
	// KindPlaceholder always exists and never fails.
	KindPlaceholder Kind = "placeholder"
)

// Handle is an opaque loaded-model handle. Handles are constructed once per
// model by the engine that owns them and are safe for concurrent read-only
// translation calls.
type Handle interface {
	// Kind reports which engine the handle belongs to.
	Kind() Kind
	// Close releases resources associated with the handle.
	Close() error
}

// Request carries one text through an engine. Source and Target accompany
// the text because multilingual models select the output language per call.
type Request struct {
	Text   string
	Source string
	Target string
}

// Engine is a translation backend. One engine instance serves the whole
// process; per-model state lives in the Handle.
type Engine interface {
	Kind() Kind
	// NewHandle constructs a handle from a local artifact. artifactPath is
	// empty when the descriptor has no artifact to stage.
	NewHandle(artifactPath string, desc registry.Descriptor) (Handle, error)
	// Translate translates one text with an already-constructed handle.
	Translate(ctx context.Context, h Handle, req Request) (string, error)
}

// New returns the engine implementation for a kind. Kinds whose native
// support is not compiled in return an engine whose NewHandle fails with an
// unavailability error.
func New(kind Kind) Engine {
	switch kind {
	case KindBergamot:
		return newBergamotEngine()
	case KindCTranslate2:
		return newCTranslate2Engine()
	default:
		return newPlaceholderEngine()
	}
}

//go:build !bergamot

package engine

import (
	"context"

	"transd/internal/registry"
)

// This file provides a no-CGO stub for the bergamot backend. It is compiled
// when the 'bergamot' build tag is NOT set, keeping default builds and CI
// CGO-free. The cgo binding to the bergamot-translator runtime lives in the
// files tagged 'bergamot'.

func bergamotAvailable() bool { return false }

type bergamotEngine struct{}

func newBergamotEngine() Engine { return bergamotEngine{} }

func (bergamotEngine) Kind() Kind { return KindBergamot }

func (bergamotEngine) NewHandle(artifactPath string, desc registry.Descriptor) (Handle, error) {
	return nil, ErrUnavailable("bergamot support not built (missing 'bergamot' build tag)")
}

func (bergamotEngine) Translate(ctx context.Context, h Handle, req Request) (string, error) {
	return "", ErrUnavailable("bergamot support not built (missing 'bergamot' build tag)")
}

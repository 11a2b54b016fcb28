//go:build !ctranslate2

package engine

import (
	"context"

	"transd/internal/registry"
)

// No-CGO stub for the ctranslate2 backend, compiled when the 'ctranslate2'
// build tag is NOT set. See bergamot_stub.go for the pattern.

func ctranslate2Available() bool { return false }

type ctranslate2Engine struct{}

func newCTranslate2Engine() Engine { return ctranslate2Engine{} }

func (ctranslate2Engine) Kind() Kind { return KindCTranslate2 }

func (ctranslate2Engine) NewHandle(artifactPath string, desc registry.Descriptor) (Handle, error) {
	return nil, ErrUnavailable("ctranslate2 support not built (missing 'ctranslate2' build tag)")
}

func (ctranslate2Engine) Translate(ctx context.Context, h Handle, req Request) (string, error) {
	return "", ErrUnavailable("ctranslate2 support not built (missing 'ctranslate2' build tag)")
}

package engine

import (
	"context"

	"transd/internal/registry"
)

// maxInputRunes caps each input before translation. Mirrors the 512-token
// budget of the native engines; truncation is an engine policy, not a
// manager one.
const maxInputRunes = 512

// placeholderEngine is the terminal fallback. It performs no inference and
// tags the input with its direction, which keeps the full request path
// exercisable in builds without a native backend.
type placeholderEngine struct{}

func newPlaceholderEngine() Engine { return placeholderEngine{} }

func (placeholderEngine) Kind() Kind { return KindPlaceholder }

type placeholderHandle struct {
	modelID string
}

func (h *placeholderHandle) Kind() Kind   { return KindPlaceholder }
func (h *placeholderHandle) Close() error { return nil }

func (placeholderEngine) NewHandle(artifactPath string, desc registry.Descriptor) (Handle, error) {
	// No artifact is required; the handle only remembers its identity.
	return &placeholderHandle{modelID: desc.ID}, nil
}

func (placeholderEngine) Translate(ctx context.Context, h Handle, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, ok := h.(*placeholderHandle); !ok {
		return "", ErrUnavailable("placeholder engine given a foreign handle")
	}
	text := req.Text
	if runes := []rune(text); len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}
	return "[" + req.Source + "->" + req.Target + "] " + text, nil
}

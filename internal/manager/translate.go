package manager

import (
	"context"

	"transd/internal/engine"
	"transd/internal/registry"
)

// TranslateAll resolves the pair, acquires its model once, and applies the
// handle across texts in order. The output always has the same length and
// order as the input; an empty input yields an empty output.
func (m *Manager) TranslateAll(ctx context.Context, pair registry.Pair, texts []string) ([]string, *LoadedModel, error) {
	desc, ok := m.reg.Resolve(pair)
	if !ok {
		return nil, nil, ErrUnsupportedPair(pair.Source, pair.Target)
	}
	lm, err := m.Acquire(ctx, desc)
	if err != nil {
		return nil, nil, err
	}
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		translated, err := m.eng.Translate(ctx, lm.Handle, engine.Request{
			Text:   text,
			Source: pair.Source,
			Target: pair.Target,
		})
		if err != nil {
			// The handle stays cached; only this call failed.
			return nil, lm, ErrEngineFailure(desc.ID, err)
		}
		out = append(out, translated)
	}
	return out, lm, nil
}

// TranslateOne is the single-text convenience path over the same contract.
func (m *Manager) TranslateOne(ctx context.Context, pair registry.Pair, text string) (string, *LoadedModel, error) {
	out, lm, err := m.TranslateAll(ctx, pair, []string{text})
	if err != nil {
		return "", lm, err
	}
	return out[0], lm, nil
}

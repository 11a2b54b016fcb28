package manager

import (
	"context"

	"transd/internal/registry"
)

// Preload warms the cache for the configured pairs. Best effort: an
// unsupported pair or a failed load is logged and skipped, it never aborts
// the remaining pairs or startup. Returns the number of pairs whose model
// ended up loaded.
func (m *Manager) Preload(ctx context.Context, pairs []registry.Pair) int {
	loaded := 0
	for _, pair := range pairs {
		desc, ok := m.reg.Resolve(pair)
		if !ok {
			m.log.Warn().Str("source", pair.Source).Str("target", pair.Target).
				Msg("preload: unsupported pair, skipping")
			continue
		}
		if _, err := m.Acquire(ctx, desc); err != nil {
			m.log.Error().Str("model", desc.ID).Err(err).Msg("preload: load failed, continuing")
			continue
		}
		loaded++
	}
	m.log.Info().Int("loaded", loaded).Int("requested", len(pairs)).Msg("preload done")
	return loaded
}

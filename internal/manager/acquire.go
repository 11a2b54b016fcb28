package manager

import (
	"context"
	"time"

	"transd/internal/registry"
)

// Acquire returns the loaded model for desc, loading it on first access.
//
// Fast path: a published entry is returned immediately. Slow path: the
// caller either starts the load episode for the identifier or joins the one
// in flight; every waiter observes that episode's single outcome. A failed
// episode publishes nothing, so the identifier stays eligible for retry.
//
// The load itself runs under the manager base context: a waiter whose ctx
// expires abandons its wait without aborting the load for the others.
func (m *Manager) Acquire(ctx context.Context, desc registry.Descriptor) (*LoadedModel, error) {
	id := desc.ID

	m.mu.Lock()
	if lm, ok := m.models[id]; ok {
		m.mu.Unlock()
		return lm, nil
	}
	ep, inflight := m.loading[id]
	if !inflight {
		ep = &loadEpisode{done: make(chan struct{})}
		m.loading[id] = ep
		go m.runLoad(desc, ep)
	}
	m.mu.Unlock()

	select {
	case <-ep.done:
		if ep.err != nil {
			return nil, ep.err
		}
		return ep.model, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// runLoad performs one load episode and publishes its outcome.
func (m *Manager) runLoad(desc registry.Descriptor, ep *loadEpisode) {
	start := time.Now()
	m.log.Info().Str("model", desc.ID).Msg("load start")

	lm, err := m.load(m.baseCtx, desc)
	ep.model, ep.err = lm, err

	m.mu.Lock()
	if err == nil {
		m.models[desc.ID] = lm
		loadedModelsGauge.Inc()
	}
	delete(m.loading, desc.ID)
	m.mu.Unlock()
	close(ep.done)

	if err != nil {
		modelLoadFailuresTotal.Inc()
		m.log.Error().Str("model", desc.ID).Err(err).Msg("load failed")
		return
	}
	modelLoadsTotal.Inc()
	m.log.Info().Str("model", desc.ID).Str("engine", string(lm.Engine)).
		Dur("dur", time.Since(start)).Msg("load ready")
}

// load stages the artifact and constructs the engine handle.
func (m *Manager) load(ctx context.Context, desc registry.Descriptor) (*LoadedModel, error) {
	artifact, err := m.store.Ensure(ctx, desc)
	if err != nil {
		return nil, ErrModelLoad(desc.ID, err)
	}
	h, err := m.eng.NewHandle(artifact, desc)
	if err != nil {
		return nil, ErrModelLoad(desc.ID, err)
	}
	return &LoadedModel{
		Descriptor: desc,
		Engine:     m.eng.Kind(),
		Handle:     h,
		LoadedAt:   time.Now(),
	}, nil
}

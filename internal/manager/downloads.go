package manager

import (
	"transd/internal/registry"
)

// Background artifact downloads run through a bounded worker pool so a
// request handler can trigger a fetch without detached goroutines: the pool
// caps concurrency, queue overflow surfaces as backpressure, and completion
// is observable in logs and the artifact_downloads_total metric.

func (m *Manager) startDownloadWorkers(n int) {
	for i := 0; i < n; i++ {
		m.downloadWG.Add(1)
		go m.downloadWorker()
	}
}

func (m *Manager) downloadWorker() {
	defer m.downloadWG.Done()
	for desc := range m.downloadCh {
		if _, err := m.store.Ensure(m.baseCtx, desc); err != nil {
			artifactDownloadsTotal.WithLabelValues("error").Inc()
			m.log.Error().Str("model", desc.ID).Err(err).Msg("background download failed")
			continue
		}
		artifactDownloadsTotal.WithLabelValues("ok").Inc()
		m.log.Info().Str("model", desc.ID).Msg("background download done")
	}
}

// SubmitDownload resolves the pair and enqueues its artifact fetch. Returns
// the descriptor being fetched, an unsupported-pair error, or a too-busy
// error when the queue is full (mapped to 429 at the HTTP layer).
func (m *Manager) SubmitDownload(pair registry.Pair) (registry.Descriptor, error) {
	desc, ok := m.reg.Resolve(pair)
	if !ok {
		return registry.Descriptor{}, ErrUnsupportedPair(pair.Source, pair.Target)
	}
	select {
	case m.downloadCh <- desc:
		return desc, nil
	default:
		return registry.Descriptor{}, tooBusyError{id: desc.ID}
	}
}

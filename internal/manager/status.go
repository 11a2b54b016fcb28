package manager

import (
	"sort"

	"transd/internal/registry"
)

// LoadedModels returns the identifiers currently cached, sorted for stable
// output.
func (m *Manager) LoadedModels() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.models))
	for id := range m.models {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// LoadedCount returns the number of cached models.
func (m *Manager) LoadedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.models)
}

// AvailablePairs returns the number of resolvable directions.
func (m *Manager) AvailablePairs() int { return m.reg.Len() }

// Languages returns every resolvable direction with its model, including
// the multilingual expansions.
func (m *Manager) Languages() []registry.Entry { return m.reg.Pairs() }

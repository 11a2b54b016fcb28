// Package manager owns the model lifecycle: resolving language pairs through
// the registry, loading model artifacts at most once per identifier under
// concurrent first access, caching loaded handles for the process lifetime,
// and applying one cached handle across single and batched translations.
package manager

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"transd/internal/engine"
	"transd/internal/registry"
)

// LoadedModel is a published cache entry. Immutable after construction and
// shared read-only across concurrent translation calls.
type LoadedModel struct {
	Descriptor registry.Descriptor
	Engine     engine.Kind
	Handle     engine.Handle
	LoadedAt   time.Time
}

// loadEpisode is one deduplicated load attempt for an identifier. All
// callers that arrive while it is in flight wait on done and observe the
// same outcome.
type loadEpisode struct {
	done  chan struct{}
	model *LoadedModel
	err   error
}

// Defaults applied when corresponding Config fields are unset.
const (
	defaultDownloadWorkers = 2
	defaultDownloadQueue   = 16
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	Registry  *registry.Registry
	Selection engine.Selection
	// Engine overrides the implementation derived from Selection.Active.
	// Tests use it to count loads and inject failures.
	Engine   engine.Engine
	ModelDir string
	// Download pool sizing for background artifact fetches.
	DownloadWorkers int
	DownloadQueue   int
	Logger          zerolog.Logger
	// BaseContext bounds load episodes and background downloads. Loads run
	// under it, not under any single caller's request context.
	BaseContext context.Context
}

// Manager is the process-wide model cache/loader. It is created once at
// service startup and passed to all handlers; there is no ambient global.
type Manager struct {
	mu      sync.Mutex
	models  map[string]*LoadedModel
	loading map[string]*loadEpisode

	reg     *registry.Registry
	sel     engine.Selection
	eng     engine.Engine
	store   *artifactStore
	log     zerolog.Logger
	baseCtx context.Context

	downloadCh chan registry.Descriptor
	downloadWG sync.WaitGroup
	closeOnce  sync.Once
}

// New constructs a Manager and starts its download workers.
func New(cfg Config) *Manager {
	if cfg.Registry == nil {
		cfg.Registry = registry.New(nil)
	}
	if cfg.Selection.Active == "" {
		cfg.Selection = engine.Selection{Active: engine.KindPlaceholder, Ranked: []engine.Kind{engine.KindPlaceholder}}
	}
	if cfg.Engine == nil {
		cfg.Engine = engine.New(cfg.Selection.Active)
	}
	if cfg.BaseContext == nil {
		cfg.BaseContext = context.Background()
	}
	if cfg.DownloadWorkers <= 0 {
		cfg.DownloadWorkers = defaultDownloadWorkers
	}
	if cfg.DownloadQueue <= 0 {
		cfg.DownloadQueue = defaultDownloadQueue
	}
	m := &Manager{
		models:     make(map[string]*LoadedModel),
		loading:    make(map[string]*loadEpisode),
		reg:        cfg.Registry,
		sel:        cfg.Selection,
		eng:        cfg.Engine,
		store:      newArtifactStore(cfg.ModelDir, cfg.Logger),
		log:        cfg.Logger,
		baseCtx:    cfg.BaseContext,
		downloadCh: make(chan registry.Descriptor, cfg.DownloadQueue),
	}
	m.startDownloadWorkers(cfg.DownloadWorkers)
	return m
}

// Close stops the download workers and releases all cached handles. Called
// at process teardown; entries are never evicted before that.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		close(m.downloadCh)
	})
	m.downloadWG.Wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, lm := range m.models {
		if err := lm.Handle.Close(); err != nil {
			m.log.Warn().Str("model", id).Err(err).Msg("close handle")
		}
		delete(m.models, id)
		loadedModelsGauge.Dec()
	}
	return nil
}

// Ready reports whether the service can accept translation requests.
// Preload is never a precondition: a non-empty registry is enough, cold
// pairs load lazily on first request.
func (m *Manager) Ready() bool {
	return m.reg.Len() > 0
}

// EngineKind returns the process-wide active engine.
func (m *Manager) EngineKind() engine.Kind { return m.sel.Active }

// Selection returns the immutable startup probe outcome.
func (m *Manager) Selection() engine.Selection { return m.sel }

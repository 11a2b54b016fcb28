package manager

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"transd/internal/engine"
	"transd/internal/registry"
)

// fakeEngine counts handle constructions per identifier and can inject
// per-identifier delays and one-shot failures.
type fakeEngine struct {
	mu        sync.Mutex
	loads     map[string]int
	delays    map[string]time.Duration
	failures  map[string]int
	translate error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		loads:    make(map[string]int),
		delays:   make(map[string]time.Duration),
		failures: make(map[string]int),
	}
}

func (e *fakeEngine) loadCount(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loads[id]
}

func (e *fakeEngine) Kind() engine.Kind { return engine.KindPlaceholder }

type fakeHandle struct {
	id     string
	mu     sync.Mutex
	closed bool
}

func (h *fakeHandle) Kind() engine.Kind { return engine.KindPlaceholder }
func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	return nil
}

func (e *fakeEngine) NewHandle(artifactPath string, desc registry.Descriptor) (engine.Handle, error) {
	e.mu.Lock()
	e.loads[desc.ID]++
	delay := e.delays[desc.ID]
	fail := e.failures[desc.ID] > 0
	if fail {
		e.failures[desc.ID]--
	}
	e.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail {
		return nil, errors.New("handle construction failed")
	}
	return &fakeHandle{id: desc.ID}, nil
}

func (e *fakeEngine) Translate(ctx context.Context, h engine.Handle, req engine.Request) (string, error) {
	if e.translate != nil {
		return "", e.translate
	}
	return "[" + req.Source + "->" + req.Target + "] " + req.Text, nil
}

func testRegistry() *registry.Registry {
	return registry.New(map[registry.Pair]registry.Descriptor{
		{Source: "en", Target: "es"}: {ID: "m1"},
		{Source: "de", Target: "en"}: {ID: "m2"},
	})
}

func newTestManager(dir string, eng engine.Engine) *Manager {
	return New(Config{
		Registry:        testRegistry(),
		Engine:          eng,
		ModelDir:        dir,
		DownloadWorkers: 1,
		DownloadQueue:   1,
		Logger:          zerolog.Nop(),
	})
}

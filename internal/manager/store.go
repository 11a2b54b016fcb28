package manager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"transd/internal/common/fsutil"
	"transd/internal/registry"
)

// artifactName is the on-disk name of a staged model artifact, stored
// decompressed under <root>/<model-id>/.
const artifactName = "model.bin"

const downloadTimeout = 5 * time.Minute

// artifactStore stages model artifacts on disk: one subdirectory per model
// identifier under root, written once and reused.
type artifactStore struct {
	root   string
	client *http.Client
	log    zerolog.Logger
}

func newArtifactStore(root string, log zerolog.Logger) *artifactStore {
	return &artifactStore{
		root:   root,
		client: &http.Client{Timeout: downloadTimeout},
		log:    log,
	}
}

func (s *artifactStore) dir(id string) string {
	return filepath.Join(s.root, id)
}

// Ensure stages the artifact for desc and returns its local path. The
// download is skipped when the artifact already exists; descriptors without
// an origin only get their directory created and return an empty path.
func (s *artifactStore) Ensure(ctx context.Context, desc registry.Descriptor) (string, error) {
	dir := s.dir(desc.ID)
	if err := fsutil.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("model dir: %w", err)
	}
	if desc.OriginURI == "" {
		return "", nil
	}
	path := filepath.Join(dir, artifactName)
	if fsutil.PathExists(path) {
		s.log.Debug().Str("model", desc.ID).Msg("artifact already staged")
		return path, nil
	}

	s.log.Info().Str("model", desc.ID).Str("origin", desc.OriginURI).Msg("downloading artifact")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, desc.OriginURI, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", desc.OriginURI, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", desc.OriginURI, resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if strings.HasSuffix(desc.OriginURI, ".gz") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("gunzip %s: %w", desc.OriginURI, err)
		}
		defer gz.Close()
		body = gz
	}

	// Write to a temp file and rename so a half-written artifact is never
	// mistaken for a staged one on the skip path.
	tmp, err := os.CreateTemp(dir, artifactName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publish artifact: %w", err)
	}
	s.log.Info().Str("model", desc.ID).Str("path", path).Msg("artifact staged")
	return path, nil
}

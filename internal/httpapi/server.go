package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"transd/internal/engine"
	"transd/internal/manager"
	"transd/internal/registry"
	"transd/pkg/types"
)

const (
	maxTextRunes  = 10000
	maxBatchTexts = 100
	minLangLen    = 2
	maxLangLen    = 5
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	TranslateOne(ctx context.Context, pair registry.Pair, text string) (string, *manager.LoadedModel, error)
	TranslateAll(ctx context.Context, pair registry.Pair, texts []string) ([]string, *manager.LoadedModel, error)
	Languages() []registry.Entry
	LoadedModels() []string
	AvailablePairs() int
	EngineKind() engine.Kind
	SubmitDownload(pair registry.Pair) (registry.Descriptor, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/translate", handleTranslate(svc))
	r.Post("/translate/batch", handleTranslateBatch(svc))
	r.Get("/languages", handleLanguages(svc))
	r.Get("/models", handleModels(svc))
	r.Post("/models/download", handleDownload(svc))
	r.Get("/health", handleHealth(svc))

	r.Get("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSON enforces the content type, limits the body size and decodes
// into dst. A false return means an error response was already written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func validateLang(name, code string) error {
	n := utf8.RuneCountInString(code)
	if n < minLangLen || n > maxLangLen {
		return fmt.Errorf("%s must be %d..%d characters", name, minLangLen, maxLangLen)
	}
	return nil
}

func validatePair(src, tgt string) (registry.Pair, error) {
	if err := validateLang("source_lang", src); err != nil {
		return registry.Pair{}, err
	}
	if err := validateLang("target_lang", tgt); err != nil {
		return registry.Pair{}, err
	}
	return registry.Pair{Source: strings.ToLower(src), Target: strings.ToLower(tgt)}, nil
}

func validateText(text string) error {
	if text == "" {
		return fmt.Errorf("text is required")
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		return fmt.Errorf("text exceeds %d characters", maxTextRunes)
	}
	return nil
}

// writeServiceError maps manager errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) int {
	switch {
	case manager.IsUnsupportedPair(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return http.StatusBadRequest
	case manager.IsTooBusy(err):
		IncrementBackpressure("download_queue")
		writeJSONError(w, http.StatusTooManyRequests, err.Error())
		return http.StatusTooManyRequests
	}
	if he, ok := err.(HTTPError); ok {
		writeJSONError(w, he.StatusCode(), he.Error())
		return he.StatusCode()
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error())
	return http.StatusInternalServerError
}

func logRequestEnd(r *http.Request, name string, status int, start time.Time, err error) {
	if requestLogLevel(r) < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg(name)
		return
	}
	if err != nil {
		log.Printf("%s status=%d dur=%s err=%v", name, status, time.Since(start), err)
		return
	}
	log.Printf("%s status=%d dur=%s", name, status, time.Since(start))
}

// handleTranslate godoc
// @Summary Translate a single text
// @Accept json
// @Produce json
// @Param request body types.TranslateRequest true "translation request"
// @Success 200 {object} types.TranslateResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /translate [post]
func handleTranslate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.TranslateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validateText(req.Text); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		pair, err := validatePair(req.SourceLang, req.TargetLang)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		out, lm, err := svc.TranslateOne(r.Context(), pair, req.Text)
		if err != nil {
			status := writeServiceError(w, err)
			logRequestEnd(r, "translate", status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.TranslateResponse{
			TranslatedText: out,
			SourceLang:     pair.Source,
			TargetLang:     pair.Target,
			Model:          lm.Descriptor.ID,
			Engine:         string(lm.Engine),
			LatencyMS:      float64(time.Since(start).Microseconds()) / 1000.0,
		})
		logRequestEnd(r, "translate", http.StatusOK, start, nil)
	}
}

// handleTranslateBatch godoc
// @Summary Translate a batch of texts, preserving order
// @Accept json
// @Produce json
// @Param request body types.BatchTranslateRequest true "batch translation request"
// @Success 200 {object} types.BatchTranslateResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /translate/batch [post]
func handleTranslateBatch(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		var req types.BatchTranslateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.Texts) == 0 {
			writeJSONError(w, http.StatusBadRequest, "texts is required")
			return
		}
		if len(req.Texts) > maxBatchTexts {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("texts exceeds %d items", maxBatchTexts))
			return
		}
		for i, text := range req.Texts {
			if err := validateText(text); err != nil {
				writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("texts[%d]: %s", i, err.Error()))
				return
			}
		}
		pair, err := validatePair(req.SourceLang, req.TargetLang)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		outs, lm, err := svc.TranslateAll(r.Context(), pair, req.Texts)
		if err != nil {
			status := writeServiceError(w, err)
			logRequestEnd(r, "translate batch", status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.BatchTranslateResponse{
			Translations: outs,
			SourceLang:   pair.Source,
			TargetLang:   pair.Target,
			Model:        lm.Descriptor.ID,
			Engine:       string(lm.Engine),
			Count:        len(outs),
			LatencyMS:    float64(time.Since(start).Microseconds()) / 1000.0,
		})
		logRequestEnd(r, "translate batch", http.StatusOK, start, nil)
	}
}

// handleLanguages godoc
// @Summary List supported language pairs
// @Produce json
// @Success 200 {object} map[string][]types.LanguagePair
// @Router /languages [get]
func handleLanguages(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Languages()
		pairs := make([]types.LanguagePair, 0, len(entries))
		for _, e := range entries {
			pairs = append(pairs, types.LanguagePair{
				Source: e.Pair.Source,
				Target: e.Pair.Target,
				Model:  e.Descriptor.ID,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string][]types.LanguagePair{"languages": pairs})
	}
}

// handleModels godoc
// @Summary List loaded models
// @Produce json
// @Success 200 {object} types.ModelsResponse
// @Router /models [get]
func handleModels(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loaded := svc.LoadedModels()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.ModelsResponse{
			LoadedModels:   loaded,
			Count:          len(loaded),
			AvailablePairs: svc.AvailablePairs(),
			Engine:         string(svc.EngineKind()),
		})
	}
}

// handleDownload godoc
// @Summary Queue a background model download
// @Produce json
// @Param source_lang query string true "source language code"
// @Param target_lang query string true "target language code"
// @Success 202 {object} types.DownloadResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 429 {object} types.ErrorResponse
// @Router /models/download [post]
func handleDownload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		pair, err := validatePair(r.URL.Query().Get("source_lang"), r.URL.Query().Get("target_lang"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		desc, err := svc.SubmitDownload(pair)
		if err != nil {
			status := writeServiceError(w, err)
			logRequestEnd(r, "download", status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(types.DownloadResponse{
			Message: fmt.Sprintf("download started for %s->%s", pair.Source, pair.Target),
			Model:   desc.ID,
		})
		logRequestEnd(r, "download", http.StatusAccepted, start, nil)
	}
}

// handleHealth godoc
// @Summary Service health summary
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Router /health [get]
func handleHealth(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.HealthResponse{
			Status:         "healthy",
			Engine:         string(svc.EngineKind()),
			LoadedModels:   len(svc.LoadedModels()),
			AvailablePairs: svc.AvailablePairs(),
		})
	}
}

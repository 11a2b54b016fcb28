package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transd/internal/engine"
	"transd/internal/manager"
	"transd/internal/registry"
	"transd/pkg/types"
)

type mockService struct {
	loaded       []string
	pairs        int
	kind         engine.Kind
	ready        bool
	translateErr error
	downloadErr  error
	entries      []registry.Entry
}

func (m *mockService) TranslateOne(ctx context.Context, pair registry.Pair, text string) (string, *manager.LoadedModel, error) {
	if m.translateErr != nil {
		return "", nil, m.translateErr
	}
	lm := &manager.LoadedModel{Descriptor: registry.Descriptor{ID: "m1"}, Engine: m.kind}
	return fmt.Sprintf("[%s->%s] %s", pair.Source, pair.Target, text), lm, nil
}

func (m *mockService) TranslateAll(ctx context.Context, pair registry.Pair, texts []string) ([]string, *manager.LoadedModel, error) {
	if m.translateErr != nil {
		return nil, nil, m.translateErr
	}
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		out = append(out, fmt.Sprintf("[%s->%s] %s", pair.Source, pair.Target, t))
	}
	lm := &manager.LoadedModel{Descriptor: registry.Descriptor{ID: "m1"}, Engine: m.kind}
	return out, lm, nil
}

func (m *mockService) Languages() []registry.Entry { return m.entries }
func (m *mockService) LoadedModels() []string      { return append([]string(nil), m.loaded...) }
func (m *mockService) AvailablePairs() int         { return m.pairs }
func (m *mockService) EngineKind() engine.Kind     { return m.kind }
func (m *mockService) Ready() bool                 { return m.ready }
func (m *mockService) SubmitDownload(pair registry.Pair) (registry.Descriptor, error) {
	if m.downloadErr != nil {
		return registry.Descriptor{}, m.downloadErr
	}
	return registry.Descriptor{ID: "m1"}, nil
}

func newMockService() *mockService {
	return &mockService{kind: engine.KindPlaceholder, pairs: 2, ready: true}
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTranslateHandler(t *testing.T) {
	r := NewMux(newMockService())
	w := postJSON(r, "/translate", `{"text":"hello","source_lang":"en","target_lang":"es"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.TranslateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.TranslatedText != "[en->es] hello" {
		t.Fatalf("translated=%q", body.TranslatedText)
	}
	if body.Model != "m1" || body.Engine != "placeholder" {
		t.Fatalf("body=%+v", body)
	}
	if body.LatencyMS < 0 {
		t.Fatalf("latency=%f", body.LatencyMS)
	}
}

func TestTranslateHandler_MissingContentType(t *testing.T) {
	r := NewMux(newMockService())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/translate", bytes.NewBufferString(`{"text":"hi","source_lang":"en","target_lang":"es"}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestTranslateHandler_InvalidJSON(t *testing.T) {
	r := NewMux(newMockService())
	w := postJSON(r, "/translate", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestTranslateHandler_EmptyText(t *testing.T) {
	r := NewMux(newMockService())
	w := postJSON(r, "/translate", `{"text":"","source_lang":"en","target_lang":"es"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestTranslateHandler_TextTooLong(t *testing.T) {
	r := NewMux(newMockService())
	long := strings.Repeat("x", maxTextRunes+1)
	w := postJSON(r, "/translate", fmt.Sprintf(`{"text":%q,"source_lang":"en","target_lang":"es"}`, long))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestTranslateHandler_BadLangCode(t *testing.T) {
	r := NewMux(newMockService())
	for _, body := range []string{
		`{"text":"hi","source_lang":"e","target_lang":"es"}`,
		`{"text":"hi","source_lang":"en","target_lang":"toolong"}`,
		`{"text":"hi","source_lang":"","target_lang":"es"}`,
	} {
		w := postJSON(r, "/translate", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%s status=%d", body, w.Code)
		}
	}
}

func TestTranslateHandler_UnsupportedPair(t *testing.T) {
	svc := newMockService()
	svc.translateErr = manager.ErrUnsupportedPair("xx", "yy")
	r := NewMux(svc)
	w := postJSON(r, "/translate", `{"text":"hi","source_lang":"xx","target_lang":"yy"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Code != http.StatusBadRequest || body.Error == "" {
		t.Fatalf("body=%+v", body)
	}
}

func TestTranslateHandler_LoadFailure(t *testing.T) {
	svc := newMockService()
	svc.translateErr = manager.ErrModelLoad("m1", fmt.Errorf("boom"))
	r := NewMux(svc)
	w := postJSON(r, "/translate", `{"text":"hi","source_lang":"en","target_lang":"es"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestBatchHandler(t *testing.T) {
	r := NewMux(newMockService())
	w := postJSON(r, "/translate/batch", `{"texts":["a","b"],"source_lang":"en","target_lang":"de"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.BatchTranslateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Count != 2 || len(body.Translations) != 2 {
		t.Fatalf("body=%+v", body)
	}
	if body.Translations[0] != "[en->de] a" || body.Translations[1] != "[en->de] b" {
		t.Fatalf("translations=%v", body.Translations)
	}
}

func TestBatchHandler_EmptyTexts(t *testing.T) {
	r := NewMux(newMockService())
	w := postJSON(r, "/translate/batch", `{"texts":[],"source_lang":"en","target_lang":"de"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestBatchHandler_TooManyTexts(t *testing.T) {
	r := NewMux(newMockService())
	texts := make([]string, maxBatchTexts+1)
	for i := range texts {
		texts[i] = "x"
	}
	payload, _ := json.Marshal(map[string]any{"texts": texts, "source_lang": "en", "target_lang": "de"})
	w := postJSON(r, "/translate/batch", string(payload))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestBatchHandler_EmptyItem(t *testing.T) {
	r := NewMux(newMockService())
	w := postJSON(r, "/translate/batch", `{"texts":["a",""],"source_lang":"en","target_lang":"de"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "texts[1]") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestLanguagesHandler(t *testing.T) {
	svc := newMockService()
	svc.entries = []registry.Entry{
		{Pair: registry.Pair{Source: "en", Target: "es"}, Descriptor: registry.Descriptor{ID: "m1"}},
		{Pair: registry.Pair{Source: "de", Target: "en"}, Descriptor: registry.Descriptor{ID: "m2"}},
	}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/languages", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string][]types.LanguagePair
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(body["languages"]) != 2 {
		t.Fatalf("languages=%v", body)
	}
	if body["languages"][0].Model != "m1" {
		t.Fatalf("languages=%v", body)
	}
}

func TestModelsHandler(t *testing.T) {
	svc := newMockService()
	svc.loaded = []string{"m1", "m2"}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.ModelsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Count != 2 || body.AvailablePairs != 2 || body.Engine != "placeholder" {
		t.Fatalf("body=%+v", body)
	}
}

func TestDownloadHandler(t *testing.T) {
	r := NewMux(newMockService())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/models/download?source_lang=en&target_lang=es", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body types.DownloadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Model != "m1" || !strings.Contains(body.Message, "en->es") {
		t.Fatalf("body=%+v", body)
	}
}

func TestDownloadHandler_MissingParams(t *testing.T) {
	r := NewMux(newMockService())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/models/download", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestDownloadHandler_QueueFull(t *testing.T) {
	svc := newMockService()
	svc.downloadErr = manager.ErrTooBusy("m1")
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/models/download?source_lang=en&target_lang=es", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	svc := newMockService()
	svc.loaded = []string{"m1"}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Status != "healthy" || body.LoadedModels != 1 {
		t.Fatalf("body=%+v", body)
	}
}

func TestLivez(t *testing.T) {
	r := NewMux(newMockService())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	r := NewMux(newMockService())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	svc := newMockService()
	svc.ready = false
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "loading") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewMux(newMockService())
	// Drive one request through the middleware so the counters have samples.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "transd_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

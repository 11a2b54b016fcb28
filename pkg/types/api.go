package types

// TranslateRequest is the payload for POST /translate.
type TranslateRequest struct {
	// Text to translate (1..10000 characters).
	// example: Hello, world!
	Text string `json:"text" example:"Hello, world!"`
	// Source language code (ISO 639-1 style).
	// example: en
	SourceLang string `json:"source_lang" example:"en"`
	// Target language code (ISO 639-1 style).
	// example: es
	TargetLang string `json:"target_lang" example:"es"`
}

// TranslateResponse is returned by POST /translate.
type TranslateResponse struct {
	// Translated text.
	// example: ¡Hola, mundo!
	TranslatedText string `json:"translated_text" example:"¡Hola, mundo!"`
	// Source language code echoed from the request.
	// example: en
	SourceLang string `json:"source_lang" example:"en"`
	// Target language code echoed from the request.
	// example: es
	TargetLang string `json:"target_lang" example:"es"`
	// Identifier of the model that served the request.
	// example: opus-mt-en-es
	Model string `json:"model" example:"opus-mt-en-es"`
	// Engine that executed the translation.
	// example: placeholder
	Engine string `json:"engine" example:"placeholder"`
	// Wall-clock latency in milliseconds.
	// example: 12.5
	LatencyMS float64 `json:"latency_ms" example:"12.5"`
}

// BatchTranslateRequest is the payload for POST /translate/batch.
type BatchTranslateRequest struct {
	// Texts to translate, in order (1..100 items).
	Texts []string `json:"texts"`
	// Source language code.
	// example: en
	SourceLang string `json:"source_lang" example:"en"`
	// Target language code.
	// example: de
	TargetLang string `json:"target_lang" example:"de"`
}

// BatchTranslateResponse is returned by POST /translate/batch.
// Translations preserve the order and count of the request texts.
type BatchTranslateResponse struct {
	Translations []string `json:"translations"`
	SourceLang   string   `json:"source_lang" example:"en"`
	TargetLang   string   `json:"target_lang" example:"de"`
	Model        string   `json:"model" example:"opus-mt-en-de"`
	Engine       string   `json:"engine" example:"placeholder"`
	// Number of translations (equals len(texts)).
	// example: 3
	Count int `json:"count" example:"3"`
	// Wall-clock latency in milliseconds for the whole batch.
	// example: 40.2
	LatencyMS float64 `json:"latency_ms" example:"40.2"`
}

// LanguagePair describes one supported translation direction.
type LanguagePair struct {
	// Source language code.
	// example: en
	Source string `json:"source" example:"en"`
	// Target language code.
	// example: es
	Target string `json:"target" example:"es"`
	// Identifier of the model serving the pair.
	// example: opus-mt-en-es
	Model string `json:"model" example:"opus-mt-en-es"`
}

// ModelsResponse is returned by GET /models.
type ModelsResponse struct {
	// Identifiers of currently loaded models.
	LoadedModels []string `json:"loaded_models"`
	// Number of loaded models.
	// example: 2
	Count int `json:"count" example:"2"`
	// Number of resolvable language pairs in the registry.
	// example: 44
	AvailablePairs int `json:"available_pairs" example:"44"`
	// Active translation engine for this process.
	// example: placeholder
	Engine string `json:"engine" example:"placeholder"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// Overall status string.
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Active translation engine for this process.
	// example: placeholder
	Engine string `json:"engine" example:"placeholder"`
	// Number of loaded models.
	// example: 2
	LoadedModels int `json:"loaded_models" example:"2"`
	// Number of resolvable language pairs in the registry.
	// example: 44
	AvailablePairs int `json:"available_pairs" example:"44"`
}

// DownloadResponse is returned by POST /models/download.
type DownloadResponse struct {
	// Human-readable confirmation.
	// example: download started for en->es
	Message string `json:"message" example:"download started for en->es"`
	// Identifier of the model being fetched.
	// example: opus-mt-en-es
	Model string `json:"model" example:"opus-mt-en-es"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unsupported language pair: xx -> yy
	Error string `json:"error" example:"unsupported language pair: xx -> yy"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

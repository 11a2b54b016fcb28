package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr            string `json:"addr" yaml:"addr" toml:"addr"`
	ModelDir        string `json:"model_dir" yaml:"model_dir" toml:"model_dir"`
	Preload         string `json:"preload" yaml:"preload" toml:"preload"`
	LogLevel        string `json:"log_level" yaml:"log_level" toml:"log_level"`
	DownloadWorkers int    `json:"download_workers" yaml:"download_workers" toml:"download_workers"`
	DownloadQueue   int    `json:"download_queue" yaml:"download_queue" toml:"download_queue"`
	CORSEnabled     bool   `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins     string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Defaults applied for any field left unspecified by file, env and flags.
const (
	DefaultAddr            = ":8080"
	DefaultModelDir        = "~/.cache/transd/models"
	DefaultPreload         = "en-es,en-de,es-en,de-en"
	DefaultLogLevel        = "info"
	DefaultDownloadWorkers = 2
	DefaultDownloadQueue   = 16
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays TRANSD_* environment variables onto cfg.
// Set variables win over file values; unset ones leave cfg untouched.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("TRANSD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TRANSD_MODEL_DIR"); v != "" {
		cfg.ModelDir = v
	}
	if v := os.Getenv("TRANSD_PRELOAD"); v != "" {
		cfg.Preload = v
	}
	if v := os.Getenv("TRANSD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TRANSD_DOWNLOAD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DownloadWorkers = n
		}
	}
	if v := os.Getenv("TRANSD_DOWNLOAD_QUEUE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DownloadQueue = n
		}
	}
	if v := os.Getenv("TRANSD_CORS_ENABLED"); v != "" {
		cfg.CORSEnabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TRANSD_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = v
	}
	return cfg
}

// WithDefaults fills any unspecified field with its package default.
func WithDefaults(cfg Config) Config {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ModelDir == "" {
		cfg.ModelDir = DefaultModelDir
	}
	if cfg.Preload == "" {
		cfg.Preload = DefaultPreload
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.DownloadWorkers <= 0 {
		cfg.DownloadWorkers = DefaultDownloadWorkers
	}
	if cfg.DownloadQueue <= 0 {
		cfg.DownloadQueue = DefaultDownloadQueue
	}
	return cfg
}

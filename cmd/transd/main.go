package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"transd/internal/common/fsutil"
	"transd/internal/config"
	"transd/internal/engine"
	"transd/internal/httpapi"
	"transd/internal/manager"
	"transd/internal/registry"
)

func main() {
	root := buildRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var (
		cfgPath         string
		addr            string
		modelDir        string
		preload         string
		logLevel        string
		downloadWorkers int
		downloadQueue   int
	)
	root := &cobra.Command{
		Use:           "transd",
		Short:         "Translation daemon with lazy model loading",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real env always wins over it.
			_ = godotenv.Load()

			if cfgPath == "" {
				cfgPath = os.Getenv("TRANSD_CONFIG")
			}
			var cfg config.Config
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			cfg = config.ApplyEnv(cfg)
			// Flags override file and env when set.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("model-dir") {
				cfg.ModelDir = modelDir
			}
			if cmd.Flags().Changed("preload") {
				cfg.Preload = preload
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("download-workers") {
				cfg.DownloadWorkers = downloadWorkers
			}
			if cmd.Flags().Changed("download-queue") {
				cfg.DownloadQueue = downloadQueue
			}
			cfg = config.WithDefaults(cfg)
			return run(cfg)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", "", "Path to config file (.yaml, .json or .toml)")
	root.Flags().StringVar(&addr, "addr", config.DefaultAddr, "HTTP listen address, e.g. :8080")
	root.Flags().StringVar(&modelDir, "model-dir", config.DefaultModelDir, "Directory for downloaded model artifacts")
	root.Flags().StringVar(&preload, "preload", config.DefaultPreload, "Comma-separated pairs to load at startup, e.g. en-es,de-en")
	root.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error")
	root.Flags().IntVar(&downloadWorkers, "download-workers", config.DefaultDownloadWorkers, "Background download worker count")
	root.Flags().IntVar(&downloadQueue, "download-queue", config.DefaultDownloadQueue, "Background download queue capacity")
	return root
}

func run(cfg config.Config) error {
	logger := newLogger(cfg.LogLevel)

	modelDir, err := fsutil.ExpandHome(cfg.ModelDir)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureDir(modelDir); err != nil {
		return err
	}

	reg := registry.Default()

	// Engine selection is probed once at startup and fixed for the process.
	sel := engine.Probe()
	logger.Info().Str("engine", string(sel.Active)).Msg("engine selected")

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	mgr := manager.New(manager.Config{
		Registry:        reg,
		Selection:       sel,
		ModelDir:        modelDir,
		DownloadWorkers: cfg.DownloadWorkers,
		DownloadQueue:   cfg.DownloadQueue,
		Logger:          logger,
		BaseContext:     baseCtx,
	})
	defer mgr.Close()

	httpapi.SetLogger(logger)
	if cfg.CORSEnabled {
		httpapi.SetCORSOptions(true, splitCSV(cfg.CORSOrigins),
			[]string{"GET", "POST", "OPTIONS"},
			[]string{"Accept", "Content-Type", "X-Log-Level"})
	}
	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	// Preload is best effort and must never delay serving.
	go func() {
		pairs := parsePairs(cfg.Preload, logger)
		if len(pairs) == 0 {
			return
		}
		loaded := mgr.Preload(baseCtx, pairs)
		logger.Info().Int("loaded", loaded).Int("requested", len(pairs)).Msg("preload finished")
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("model_dir", modelDir).Msg("transd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown")
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// parsePairs turns "en-es,de-en" into registry pairs, skipping malformed
// entries with a warning.
func parsePairs(csv string, logger zerolog.Logger) []registry.Pair {
	var pairs []registry.Pair
	for _, item := range splitCSV(csv) {
		parts := strings.SplitN(item, "-", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			logger.Warn().Str("pair", item).Msg("skipping malformed preload pair")
			continue
		}
		pairs = append(pairs, registry.Pair{Source: strings.ToLower(parts[0]), Target: strings.ToLower(parts[1])})
	}
	return pairs
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

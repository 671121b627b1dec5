package application

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lunatic-fringers/wg-bridge/internal/config"
	"github.com/lunatic-fringers/wg-bridge/internal/logging"
)

// Options control application startup.
type Options struct {
	// ConfigPath is the resolved location of the TOML configuration document.
	ConfigPath string
	// LogDir is the directory receiving the dated log file. Defaults to the
	// working directory.
	LogDir string
	// Clock overrides the time source, primarily for tests.
	Clock func() time.Time
}

// App bundles the subsystems started at process boot.
type App struct {
	Config *config.AppConfig
	Log    *logging.Logger

	diag *zap.Logger
}

// New starts the log pipeline first and then loads the configuration, so
// configuration failures can be reported through the pipeline. On a
// configuration failure the pipeline is drained before returning, making the
// failure line durable for the caller's exit path.
func New(opts Options, diag *zap.Logger) (*App, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logDir := opts.LogDir
	if logDir == "" {
		logDir = "."
	}

	logPath := filepath.Join(logDir, logFileName(clock()))
	log, err := logging.New(logPath)
	if err != nil {
		return nil, fmt.Errorf("initialize log pipeline: %w", err)
	}
	diag.Info("log pipeline started", zap.String("path", logPath))

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to load configuration: %v", err))
		_ = log.Close()
		return nil, err
	}
	log.Info(fmt.Sprintf("configuration loaded from %s", opts.ConfigPath))

	return &App{
		Config: cfg,
		Log:    log,
		diag:   diag,
	}, nil
}

// Close drains the log pipeline, flushing every queued record to disk. A
// drain failure is reported through the diagnostics logger as well, since the
// pipeline itself may no longer be writable.
func (a *App) Close() error {
	if err := a.Log.Close(); err != nil {
		a.diag.Warn("failed to drain log pipeline", zap.Error(err))
		return err
	}
	return nil
}

// logFileName follows the deployment convention of one log file per day.
func logFileName(now time.Time) string {
	return now.Format("2006-01-02") + ".log"
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/lunatic-fringers/wg-bridge/internal/logging"
)

const (
	// DefaultPath is the fixed system location of the application
	// configuration document.
	DefaultPath = "/etc/wg-bridge/app.toml"

	// EnvConfigPath overrides DefaultPath when set.
	EnvConfigPath = "WG_BRIDGE_CONFIG"

	homePlaceholder = "$HOME"
)

var (
	// ErrNotInitialized indicates Get was called before Init.
	ErrNotInitialized = errors.New("config: not initialized")
	// ErrAlreadyInitialized indicates Init was called twice; the loaded
	// configuration is never silently replaced.
	ErrAlreadyInitialized = errors.New("config: already initialized")
	// ErrHomeNotSet indicates user_conf contains the $HOME placeholder but
	// the HOME environment variable is empty.
	ErrHomeNotSet = errors.New("config: HOME is not set")
)

// AppConfig is the application-level configuration, read once at startup and
// immutable afterwards.
type AppConfig struct {
	Version  string `toml:"version"`
	LogPath  string `toml:"log_path"`
	UserConf string `toml:"user_conf"`
}

// Load reads and parses the configuration document at path. If user_conf
// contains the $HOME placeholder it is substituted with the invoking user's
// home directory from the environment. Errors name the failing path and
// distinguish read, parse, and environment causes.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if strings.Contains(cfg.UserConf, homePlaceholder) {
		home := os.Getenv("HOME")
		if home == "" {
			return nil, fmt.Errorf("resolve %s in user_conf: %w", homePlaceholder, ErrHomeNotSet)
		}
		cfg.UserConf = strings.ReplaceAll(cfg.UserConf, homePlaceholder, home)
	}

	return &cfg, nil
}

// ResolvePath picks the configuration path with precedence:
// CLI flag > WG_BRIDGE_CONFIG environment variable > DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := strings.TrimSpace(os.Getenv(EnvConfigPath)); env != "" {
		return env
	}
	return DefaultPath
}

var (
	defaultMu     sync.RWMutex
	defaultConfig *AppConfig
)

// Init loads the document at path and installs it as the process-wide
// configuration, reporting the outcome through the log pipeline if one is
// provided. It is a startup gate: the caller is expected to terminate the
// process on error.
func Init(path string, log *logging.Logger) (*AppConfig, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultConfig != nil {
		return nil, ErrAlreadyInitialized
	}

	cfg, err := Load(path)
	if err != nil {
		if log != nil {
			log.Error(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return nil, err
	}

	defaultConfig = cfg
	if log != nil {
		log.Debug("Configuration loaded successfully")
	}
	return cfg, nil
}

// Get returns the process-wide configuration installed by Init, or
// ErrNotInitialized if Init has not run.
func Get() (*AppConfig, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	if defaultConfig == nil {
		return nil, ErrNotInitialized
	}
	return defaultConfig, nil
}

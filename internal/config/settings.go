package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/userdeck/internal/logging"
)

const (
	appName    = "userdeck"
	configFile = "config.yaml"

	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// ErrSettingsExist is returned by CreateDefaultSettings when the file is
// already there and overwrite was not requested.
var ErrSettingsExist = errors.New("settings file already exists")

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/userdeck or $HOME/.config/userdeck
//   - macOS: $HOME/.config/userdeck (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\userdeck
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			baseDir = filepath.Join(xdg, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the settings file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadSettings reads the settings file at path (GetConfigPath when empty).
// A missing file is not an error: defaults are returned.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if s.Version != SettingsVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, SettingsVersion)
	}

	return &s, nil
}

// Save writes the settings to path (GetConfigPath when empty).
// Performs an atomic write to prevent corruption on crash.
func (s *Settings) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	// Create directory with user-only permissions (0700)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# userdeck configuration file
#
# Environment variables (USERDECK_API_BASE_URL, USERDECK_API_TIMEOUT,
# USERDECK_LOCALE, USERDECK_ALT_SCREEN) and command line flags override
# the values below.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultSettings writes a settings file holding the defaults.
func CreateDefaultSettings(path string, overwrite bool) (string, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, ErrSettingsExist
		}
	}

	return path, NewSettings().Save(path)
}

// LoadOptions controls Load.
type LoadOptions struct {
	// SettingsPath overrides the settings file location
	SettingsPath string
	// DotEnvPath overrides the .env location; "-" disables it
	DotEnvPath string
}

// Load resolves the configuration from defaults, the settings file, .env
// and the environment. Flags are applied by the caller.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	settings, err := LoadSettings(opts.SettingsPath)
	if err != nil {
		return nil, err
	}
	cfg.apply(settings)
	cfg.Sources = append(cfg.Sources, "file")

	dotenv := opts.DotEnvPath
	if dotenv == "" {
		dotenv = DotEnvFile
	}
	if dotenv != "-" {
		// godotenv never overrides variables already set
		if err := godotenv.Load(dotenv); err == nil {
			cfg.Sources = append(cfg.Sources, dotenv)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Sources = append(cfg.Sources, "env")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Debug("Configuration loaded",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("api_timeout", cfg.APITimeout),
		zap.String("locale", cfg.Locale),
		zap.Strings("sources", cfg.Sources),
	)

	return cfg, nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url must not be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.APITimeout)
	}
	return nil
}

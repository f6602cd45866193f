package config

import (
	"time"

	"github.com/muurk/userdeck/internal/urls"
)

// SettingsVersion is the only config file layout understood by this build.
const SettingsVersion = 1

// Settings represents the entire user configuration file.
type Settings struct {
	Version int          `yaml:"version"`
	API     *APISettings `yaml:"api,omitempty"`
	UI      *UISettings  `yaml:"ui,omitempty"`
}

// APISettings describes the remote users service.
type APISettings struct {
	BaseURL string        `yaml:"base_url,omitempty"` // e.g. https://jsonplaceholder.typicode.com
	Timeout time.Duration `yaml:"timeout,omitempty"`  // per-request timeout, e.g. 10s
}

// UISettings holds terminal preferences.
type UISettings struct {
	Locale    string `yaml:"locale,omitempty"` // "en" or "pt-BR"
	AltScreen *bool  `yaml:"alt_screen,omitempty"`
}

// NewSettings creates a Settings with default values.
func NewSettings() *Settings {
	d := Default()
	alt := d.AltScreen
	return &Settings{
		Version: SettingsVersion,
		API: &APISettings{
			BaseURL: d.APIBaseURL,
			Timeout: d.APITimeout,
		},
		UI: &UISettings{
			Locale:    d.Locale,
			AltScreen: &alt,
		},
	}
}

// Config is the resolved configuration the application runs with.
// Environment variables override the file; flags override both.
type Config struct {
	APIBaseURL string        `env:"USERDECK_API_BASE_URL"`
	APITimeout time.Duration `env:"USERDECK_API_TIMEOUT"`
	Locale     string        `env:"USERDECK_LOCALE"`
	AltScreen  bool          `env:"USERDECK_ALT_SCREEN"`

	// Sources lists the layers that were applied, lowest first
	Sources []string `env:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIBaseURL: urls.DefaultAPIBaseURL,
		APITimeout: 10 * time.Second,
		Locale:     "en",
		AltScreen:  true,
		Sources:    []string{"defaults"},
	}
}

// apply copies the values present in s over c.
func (c *Config) apply(s *Settings) {
	if s.API != nil {
		if s.API.BaseURL != "" {
			c.APIBaseURL = s.API.BaseURL
		}
		if s.API.Timeout > 0 {
			c.APITimeout = s.API.Timeout
		}
	}
	if s.UI != nil {
		if s.UI.Locale != "" {
			c.Locale = s.UI.Locale
		}
		if s.UI.AltScreen != nil {
			c.AltScreen = *s.UI.AltScreen
		}
	}
}

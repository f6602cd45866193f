// Package config provides configuration management for userdeck.
//
// Configuration is layered, lowest precedence first:
//
//  1. built-in defaults (Default)
//  2. the YAML settings file
//  3. a .env file in the working directory, if present
//  4. USERDECK_* environment variables
//  5. command line flags (applied by the caller)
//
// # Configuration File Location
//
// The settings file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/userdeck/config.yaml or $HOME/.config/userdeck/config.yaml
//   - macOS: $HOME/.config/userdeck/config.yaml
//   - Windows: %LOCALAPPDATA%\userdeck\config.yaml
//
// # Usage Example
//
//	cfg, err := config.Load(config.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := users.NewClient(cfg.APIBaseURL, cfg.APITimeout)
//
// # Thread Safety
//
// File writes are protected by a mutex and performed atomically.
package config

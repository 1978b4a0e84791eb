// Package config provides configuration loading and API key resolution for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvAPIKey is the environment variable that overrides the saved API key.
const EnvAPIKey = "RESUME_FORMATTER_API_KEY"

// appDirName is the per-user config directory name.
const appDirName = "resume-formatter"

// DefaultHonorific is used when no honorific is configured or passed.
const DefaultHonorific = "Mr."

// allowedHonorifics is the closed set of accepted honorifics.
var allowedHonorifics = map[string]bool{
	"Mr.": true,
	"Ms.": true,
}

// Config represents the per-user CLI configuration stored as JSON.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	APIKey    string `json:"api_key,omitempty"`    // Gemini API key
	Honorific string `json:"honorific,omitempty"`  // Default honorific for summaries
	OutputDir string `json:"output_dir,omitempty"` // Base directory for run output
}

// Path returns the location of the per-user config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(dir, appDirName, "config.json"), nil
}

// Load reads the per-user config file. A missing file is not an error and
// yields an empty config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to its per-user location, creating the directory
// as needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ResolveAPIKey returns the effective API key: the environment variable
// wins over the saved config value.
func (c *Config) ResolveAPIKey() string {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}
	return strings.TrimSpace(c.APIKey)
}

// SaveAPIKey persists a key in the per-user config without disturbing the
// other fields.
func SaveAPIKey(key string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.APIKey = strings.TrimSpace(key)
	return cfg.Save()
}

// ResolveHonorific validates a requested honorific against the closed set,
// falling back to the configured default and then to DefaultHonorific.
func (c *Config) ResolveHonorific(requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		if !allowedHonorifics[requested] {
			return "", fmt.Errorf("unsupported honorific %q: must be one of Mr., Ms.", requested)
		}
		return requested, nil
	}
	if c.Honorific != "" {
		if !allowedHonorifics[c.Honorific] {
			return "", fmt.Errorf("unsupported honorific %q in config: must be one of Mr., Ms.", c.Honorific)
		}
		return c.Honorific, nil
	}
	return DefaultHonorific, nil
}

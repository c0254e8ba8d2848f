package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// RelayConfig describes one relay endpoint in the config file.
type RelayConfig struct {
	Name     string            `toml:"name"`
	Endpoint string            `toml:"endpoint"`
	Shape    string            `toml:"shape"`
	Headers  map[string]string `toml:"headers,omitempty"`
}

// Config holds the machine-level knobs. User preferences (sort, toggles)
// live in the settings snapshot instead.
type Config struct {
	DataPath              string        `toml:"data_path"`
	WebhookURL            string        `toml:"webhook_url"`
	UpdateManifestURL     string        `toml:"update_manifest_url"`
	CheckIntervalDays     int           `toml:"check_interval_days"`
	CheckTimeoutSeconds   int           `toml:"check_timeout_seconds"`
	ExtractTimeoutSeconds int           `toml:"extract_timeout_seconds"`
	Relays                []RelayConfig `toml:"relays"`
}

func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		DataPath:              filepath.Join(homeDir, ".ixwha", "ixwha.db"),
		UpdateManifestURL:     "https://ixaliom.github.io/ixwha",
		CheckIntervalDays:     7,
		CheckTimeoutSeconds:   10,
		ExtractTimeoutSeconds: 30,
	}
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "ixwha", "config.toml")
}

// LoadConfig reads the TOML config at path, falling back to defaults when
// the file does not exist. Unset fields keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(expandPath(path))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalDays) * 24 * time.Hour
}

func (c Config) CheckTimeout() time.Duration {
	return time.Duration(c.CheckTimeoutSeconds) * time.Second
}

func (c Config) ExtractTimeout() time.Duration {
	return time.Duration(c.ExtractTimeoutSeconds) * time.Second
}

// expandPath replaces a leading "~" with the user home dir.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

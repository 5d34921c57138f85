package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config holds the searchlight runtime configuration.
type Config struct {
	// DBPath is the sqlite file holding the content collection snapshot.
	DBPath string `toml:"db_path"`

	// ContentFile is an optional JSON file of content items; serve watches
	// it and reimports on change.
	ContentFile string `toml:"content_file,omitempty"`

	// ListenAddr is the API server bind address.
	ListenAddr string `toml:"listen_addr"`

	// DefaultLimit caps search results per page when the caller does not
	// specify one. Zero means no slicing.
	DefaultLimit int `toml:"default_limit,omitempty"`

	// SuggestLimit caps autocomplete suggestions.
	SuggestLimit int `toml:"suggest_limit,omitempty"`

	// Debounce is the quiet period applied to live-search input and
	// content file reloads.
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML text marshalling ("300ms", "2s").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// GetDefaultConfig returns a configuration with all defaults applied.
func GetDefaultConfig() (*Config, error) {
	dbPath, err := GetDefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("getting default database path: %w", err)
	}
	return &Config{
		DBPath:       dbPath,
		ListenAddr:   ":8787",
		SuggestLimit: 5,
		Debounce:     Duration{300 * time.Millisecond},
	}, nil
}

// LoadConfig reads the configuration file at configPath, falling back to
// defaults when the file does not exist. Missing individual fields also
// fall back to their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.DBPath == "" {
		dbPath, err := GetDefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("getting default database path: %w", err)
		}
		config.DBPath = dbPath
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8787"
	}
	if config.SuggestLimit == 0 {
		config.SuggestLimit = 5
	}
	if config.Debounce.Duration == 0 {
		config.Debounce = Duration{300 * time.Millisecond}
	}

	return &config, nil
}

// SaveConfig writes the configuration to configPath, creating parent
// directories as needed.
func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the annotated sample configuration to
// configPath with the database path substituted for this machine.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := c.DBPath
	if dbPath == "" {
		var err error
		dbPath, err = GetDefaultDBPath()
		if err != nil {
			return fmt.Errorf("getting default database path: %w", err)
		}
	}

	template := strings.Replace(configTemplate, "/home/user/.local/share/searchlight/content.db", dbPath, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

// GetDefaultDataDir returns the data directory for the content database,
// honoring XDG_DATA_HOME.
func GetDefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	dir := filepath.Join(dataDir, "searchlight")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetDefaultDBPath returns the default content database path.
func GetDefaultDBPath() (string, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "content.db"), nil
}

// GetConfigDir returns the configuration directory, honoring
// XDG_CONFIG_HOME.
func GetConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "searchlight")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

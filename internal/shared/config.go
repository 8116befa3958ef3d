package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API         APIConfig         `toml:"api"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Refresh     RefreshConfig     `toml:"refresh"`
}

// APIConfig contains Blossom backend connection settings.
type APIConfig struct {
	BaseURL      string `toml:"base_url"`
	Timeout      int    `toml:"timeout"`
	ProgressPath string `toml:"progress_path"`
}

// CredentialsConfig contains the bearer credential and OAuth settings.
type CredentialsConfig struct {
	Token string      `toml:"token"`
	OAuth OAuthConfig `toml:"oauth"`
}

// OAuthConfig contains the local callback used to finish social account linking.
type OAuthConfig struct {
	RedirectURI string `toml:"redirect_uri"`
}

// DatabaseConfig contains local cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RefreshConfig contains auto-refresh settings for history views.
type RefreshConfig struct {
	Interval int `toml:"interval"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Environment variables override file values: BLOSSOM_API_URL, BLOSSOM_TOKEN,
// BLOSSOM_DB_PATH. A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("BLOSSOM_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("BLOSSOM_TOKEN"); v != "" {
		c.Credentials.Token = v
	}
	if v := os.Getenv("BLOSSOM_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("BLOSSOM_REFRESH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Refresh.Interval = n
		}
	}
}

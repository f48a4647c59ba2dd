// Package config loads peek's settings from a TOML file and PEEK_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// PEEK_PREVIEW_MAX_BYTES.
const EnvPrefix = "PEEK"

type Config struct {
	Preview PreviewConfig `mapstructure:"preview"`
	Network NetworkConfig `mapstructure:"network"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type PreviewConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
	TabWidth int   `mapstructure:"tab_width"`
}

type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func Default() *Config {
	return &Config{
		Preview: PreviewConfig{
			MaxBytes: 1 << 20,
			TabWidth: 4,
		},
		Network: NetworkConfig{
			Timeout:   30 * time.Second,
			UserAgent: "peek/" + Version,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Version is reported by --version and in the default user agent.
const Version = "0.3.0"

// DefaultPath returns $XDG_CONFIG_HOME/peek/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error finding home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "peek", "config.toml"), nil
}

// Load reads configFile, or the default path when configFile is empty. A
// missing default file is not an error; a missing explicit file is.
func Load(configFile string) (*Config, error) {
	cfg := Default()
	v := newViper(cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		path, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigType("toml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newViper registers every default so AutomaticEnv can override keys that
// are absent from the file.
func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetDefault("preview.max_bytes", defaults.Preview.MaxBytes)
	v.SetDefault("preview.tab_width", defaults.Preview.TabWidth)
	v.SetDefault("network.timeout", defaults.Network.Timeout)
	v.SetDefault("network.user_agent", defaults.Network.UserAgent)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.file", defaults.Logging.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Preview.MaxBytes <= 0 {
		return fmt.Errorf("preview.max_bytes must be positive, got %d", c.Preview.MaxBytes)
	}
	if c.Preview.TabWidth <= 0 || c.Preview.TabWidth > 16 {
		return fmt.Errorf("preview.tab_width must be between 1 and 16, got %d", c.Preview.TabWidth)
	}
	if c.Network.Timeout <= 0 {
		return fmt.Errorf("network.timeout must be positive, got %s", c.Network.Timeout)
	}
	return nil
}

// CreateExampleConfig writes a commented config file with the defaults.
func (c *Config) CreateExampleConfig(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	exampleContent := fmt.Sprintf(`# peek configuration file

[preview]
max_bytes = %d      # bytes read from a file or response body
tab_width = %d             # columns per tab stop

[network]
timeout = %q          # per-request timeout for http(s) sources
user_agent = %q

[logging]
level = %q            # debug, info, warn, error
format = %q           # text, json
file = ""                 # log file path (empty = stderr)
`, c.Preview.MaxBytes, c.Preview.TabWidth, c.Network.Timeout.String(), c.Network.UserAgent, c.Logging.Level, c.Logging.Format)

	return os.WriteFile(configPath, []byte(exampleContent), 0644)
}

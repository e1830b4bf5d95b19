package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/groupr-cli/internal/grouping"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Grouping defaults
	Groups        int      `mapstructure:"groups" yaml:"groups"`
	Seed          uint64   `mapstructure:"seed" yaml:"seed"`
	Format        string   `mapstructure:"format" yaml:"format"`
	HiddenColumns []string `mapstructure:"hidden_columns" yaml:"hidden_columns"`
	Strict        bool     `mapstructure:"strict" yaml:"strict"`

	// HTTP API
	ServeAddr string `mapstructure:"serve_addr" yaml:"serve_addr"`
	MaxBodyMB int    `mapstructure:"max_body_mb" yaml:"max_body_mb"`

	// Logging
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// DefaultPath returns ~/.groupr/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".groupr", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.groupr/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including a .env file in the working directory) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("GROUPR")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("groups", 2)
	v.SetDefault("seed", 0)
	v.SetDefault("format", "markdown")
	v.SetDefault("hidden_columns", []string{"notes"})
	v.SetDefault("strict", false)
	v.SetDefault("serve_addr", ":8080")
	v.SetDefault("max_body_mb", 10)
	v.SetDefault("log_format", "text")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".groupr"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no command can run with.
func (c *Global) Validate() error {
	if c.Groups <= 0 || c.Groups > grouping.MaxGroups {
		return fmt.Errorf("invalid groups: %d (must be between 1 and %d)", c.Groups, grouping.MaxGroups)
	}
	if c.MaxBodyMB <= 0 {
		return fmt.Errorf("invalid max_body_mb: %d (must be positive)", c.MaxBodyMB)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format: %s (use text or json)", c.LogFormat)
	}
	return nil
}

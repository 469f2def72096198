package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Seed     SeedConfig
	Loans    LoansConfig
	Payments PaymentsConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings. An empty path keeps records in memory.
type DatabaseConfig struct {
	Path string
}

// SeedConfig points at a YAML dataset; empty uses the bundled one.
type SeedConfig struct {
	Path string
}

type LoansConfig struct {
	IDPrefix string `mapstructure:"id_prefix"`
}

type PaymentsConfig struct {
	Method string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LogConfig controls the log file; the terminal belongs to the UI.
type LogConfig struct {
	Path  string
	Level string
}

// Path returns the config file location: LOANBOARD_CONFIG, or the default
// under $HOME/.config.
func Path() string {
	if p := os.Getenv("LOANBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "loanboard", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("database.path", "")
	v.SetDefault("seed.path", "")
	v.SetDefault("loans.id_prefix", "LN-2024")
	v.SetDefault("payments.method", "Bank Transfer")
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "loanboard", "loanboard.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	return v
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("LOANBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from file and env. Env var overrides use prefix
// LOANBOARD_. A missing config file is not an error.
func Load() (Config, error) {
	v := newViper()
	bindEnv(v)
	v.SetConfigFile(Path())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Default returns the built-in configuration, ignoring files and env.
func Default() (Config, error) {
	v := newViper()
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal defaults: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path(), creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("seed.path", cfg.Seed.Path)
	v.Set("loans.id_prefix", cfg.Loans.IDPrefix)
	v.Set("payments.method", cfg.Payments.Method)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

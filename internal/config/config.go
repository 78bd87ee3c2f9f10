// Package config loads and saves the cflow TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// Config holds all cflow configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Statement  StatementConfig  `toml:"statement"`
	Output     OutputConfig     `toml:"output"`
	Projection ProjectionConfig `toml:"projection"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds where inputs live and how far to project.
type GeneralConfig struct {
	DataDir string `toml:"data_dir"`
	Months  int    `toml:"months" validate:"min=1,max=120"`
}

// StatementConfig holds the credit card statement cycle.
type StatementConfig struct {
	DueDay   int `toml:"due_day" validate:"min=1,max=31"`
	CloseDay int `toml:"close_day" validate:"min=1,max=31"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir   string `toml:"dir,omitempty"` // defaults to <data_dir>/projected_cash_flow
	CSV   bool   `toml:"csv"`
	Chart bool   `toml:"chart"`
}

// ProjectionConfig holds simulator behavior.
type ProjectionConfig struct {
	// Strict fails the run on an unknown charge_to instead of leaving the
	// affected balances unset.
	Strict bool `toml:"strict"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataDir: "~/.finances",
			Months:  6,
		},
		Statement: StatementConfig{
			DueDay:   11,
			CloseDay: 13,
		},
		Output: OutputConfig{
			CSV:   true,
			Chart: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges, reporting every bad field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var merr *multierror.Error
	for _, fe := range verrs {
		merr = multierror.Append(merr, fmt.Errorf("%s: must satisfy %s=%s, got %v",
			fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return merr.ErrorOrNil()
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cflow")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path over the defaults. Keys absent from
// the file keep their default values.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // user config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // user config path
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DataDir resolves the input directory: CFLOW_DATA_DIR wins over the
// config value, and a leading "~" expands to the home directory.
func DataDir(cfg Config) string {
	dir := cfg.General.DataDir
	if env := os.Getenv("CFLOW_DATA_DIR"); env != "" {
		dir = env
	}
	return ExpandHome(dir)
}

// OutputDir resolves where exports are written.
func OutputDir(cfg Config) string {
	if cfg.Output.Dir != "" {
		return ExpandHome(cfg.Output.Dir)
	}
	return filepath.Join(DataDir(cfg), "projected_cash_flow")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

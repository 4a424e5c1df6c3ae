package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/telekom/dbusname/pkg/dbusname/output"
	"github.com/telekom/dbusname/pkg/manifest"
	"github.com/telekom/dbusname/pkg/utils"
)

const (
	VersionV1 = "v1"

	DefaultLintConcurrency = 4
)

type Config struct {
	Version  string   `yaml:"version"`
	Settings Settings `yaml:"settings,omitempty"`
	Lint     Lint     `yaml:"lint,omitempty"`
}

type Settings struct {
	OutputFormat    string `yaml:"output-format,omitempty"`
	AllowUnique     *bool  `yaml:"allow-unique,omitempty"`
	AllowWellKnown  *bool  `yaml:"allow-well-known,omitempty"`
	MetricsTextfile string `yaml:"metrics-textfile,omitempty"`
}

type Lint struct {
	// SkipInterfaces holds glob patterns for interfaces whose members are not checked.
	SkipInterfaces []string `yaml:"skip-interfaces,omitempty"`
	Concurrency    int      `yaml:"concurrency,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		Settings: Settings{
			OutputFormat: "table",
		},
		Lint: Lint{
			SkipInterfaces: append([]string(nil), manifest.DefaultSkipInterfaces...),
			Concurrency:    DefaultLintConcurrency,
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.UnmarshalStrict(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultConfig.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		def := DefaultConfig()
		return &def, nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) Validate() error {
	if c.Version != VersionV1 {
		return fmt.Errorf("unsupported config version %q", c.Version)
	}
	if _, err := output.ParseFormat(c.Settings.OutputFormat); err != nil {
		return fmt.Errorf("output-format: %w", err)
	}
	if c.Lint.Concurrency < 0 {
		return fmt.Errorf("lint.concurrency must not be negative, got %d", c.Lint.Concurrency)
	}
	if err := utils.ValidatePatterns(c.Lint.SkipInterfaces); err != nil {
		return fmt.Errorf("lint.skip-interfaces: %w", err)
	}
	return nil
}

func (c *Config) AllowUniqueOrDefault() bool {
	if c.Settings.AllowUnique == nil {
		return true
	}
	return *c.Settings.AllowUnique
}

func (c *Config) AllowWellKnownOrDefault() bool {
	if c.Settings.AllowWellKnown == nil {
		return true
	}
	return *c.Settings.AllowWellKnown
}

func (c *Config) LintConcurrencyOrDefault() int {
	if c.Lint.Concurrency <= 0 {
		return DefaultLintConcurrency
	}
	return c.Lint.Concurrency
}

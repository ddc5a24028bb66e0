// Package config resolves run settings from defaults, an optional YAML file and
// ALPS_FIG_* environment variables, in that order. Command-line flags are applied
// on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/contact-shreyas/ALPS/src/batch"
	"github.com/contact-shreyas/ALPS/src/render"
	"github.com/contact-shreyas/ALPS/src/style"
)

// Config is the resolved run configuration. DPI zero defers to the theme.
type Config struct {
	OutDir    string   `yaml:"out_dir"    env:"ALPS_FIG_OUT_DIR"`
	Formats   []string `yaml:"formats"    env:"ALPS_FIG_FORMATS" envSeparator:","`
	DPI       int      `yaml:"dpi"        env:"ALPS_FIG_DPI"`
	Parallel  int      `yaml:"parallel"   env:"ALPS_FIG_PARALLEL"`
	LogLevel  string   `yaml:"log_level"  env:"ALPS_FIG_LOG_LEVEL"`
	Theme     string   `yaml:"theme"      env:"ALPS_FIG_THEME"`
	Manifest  string   `yaml:"manifest"   env:"ALPS_FIG_MANIFEST"`
	ExportCSV bool     `yaml:"export_csv" env:"ALPS_FIG_EXPORT_CSV"`
	FailFast  bool     `yaml:"fail_fast"  env:"ALPS_FIG_FAIL_FAST"`
}

func Default() Config {
	return Config{
		OutDir:   batch.DefaultOutDir,
		Formats:  []string{string(render.PDF), string(render.PNG)},
		Parallel: min(runtime.NumCPU(), 4),
		LogLevel: "info",
	}
}

// Load returns defaults overlaid with the YAML file at path (if non-empty) and
// then the environment, validated.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that apply further overrides.
func Read(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.OutDir) == "" {
		errs = append(errs, errors.New("out_dir is empty"))
	}
	if _, err := c.RenderFormats(); err != nil {
		errs = append(errs, err)
	}
	if c.DPI < 0 {
		errs = append(errs, fmt.Errorf("dpi must not be negative, got %d", c.DPI))
	}
	if c.Parallel < 1 {
		errs = append(errs, fmt.Errorf("parallel must be at least 1, got %d", c.Parallel))
	}
	return errors.Join(errs...)
}

func (c Config) RenderFormats() ([]render.Format, error) {
	return render.ParseFormats(strings.Join(c.Formats, ","))
}

// LoadTheme reads the configured theme file. A positive DPI setting overrides the
// theme's dpi; zero keeps it.
func (c Config) LoadTheme() (style.Theme, error) {
	th, err := style.LoadTheme(c.Theme)
	if err != nil {
		return th, err
	}
	if c.DPI > 0 {
		th.DPI = c.DPI
	}
	return th, nil
}

// BatchOptions maps the config onto a batch run of names.
func (c Config) BatchOptions(names []string) (batch.Options, error) {
	formats, err := c.RenderFormats()
	if err != nil {
		return batch.Options{}, err
	}
	th, err := c.LoadTheme()
	if err != nil {
		return batch.Options{}, err
	}
	return batch.Options{
		Names:     names,
		OutDir:    c.OutDir,
		Formats:   formats,
		Parallel:  c.Parallel,
		Theme:     th,
		ExportCSV: c.ExportCSV,
		FailFast:  c.FailFast,
	}, nil
}

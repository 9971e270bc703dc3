// Package config loads the inkwell command configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/inkwell/theme"
)

// Errors returned by Load.
var (
	ErrFileNotFound     = errors.New("config file not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError reports a file that is not valid YAML for Config.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a setting with an unusable value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// Config is the command configuration.
type Config struct {
	Editor Editor `yaml:"editor"`
	Serve  Serve  `yaml:"serve"`
	Log    Log    `yaml:"log"`
}

// ThemeOption maps the configured theme name to a theme option. Names are
// matched case-insensitively.
func (e Editor) ThemeOption() theme.Option {
	return theme.ParseName(strings.ToLower(strings.TrimSpace(e.Theme)))
}

// Editor holds the editor props the command passes on every render.
type Editor struct {
	Theme         string `yaml:"theme"`
	Placeholder   string `yaml:"placeholder"`
	ReadOnly      bool   `yaml:"read_only"`
	IndentWithTab bool   `yaml:"indent_with_tab"`
	TabSize       int    `yaml:"tab_size"`
	Height        int    `yaml:"height"`
	MaxHeight     int    `yaml:"max_height"`
	// BasicSetup adds gutters, completion, folding, search and the status
	// panels.
	BasicSetup bool `yaml:"basic_setup"`
	// Words are extra completion candidates.
	Words []string `yaml:"words"`
	// LintDelay is how long the document must be idle before linting. Zero
	// disables the linter.
	LintDelay time.Duration `yaml:"lint_delay"`
}

// Serve configures the preview server.
type Serve struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
	// Doc is the document new preview sessions start with.
	Doc string `yaml:"doc"`
	// ANSI colors previews with terminal escape sequences.
	ANSI bool `yaml:"ansi"`
}

// Log configures the command's logger.
type Log struct {
	Level string `yaml:"level"`
	// File receives log output; the terminal belongs to the editor.
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: Editor{
			Theme:         "light",
			IndentWithTab: true,
			TabSize:       4,
			BasicSetup:    true,
			LintDelay:     750 * time.Millisecond,
		},
		Serve: Serve{Addr: ":8080", Metrics: true},
		Log:   Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, err
	}
	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every setting and joins the failures.
func (c Config) Validate() error {
	var errs []error
	if n := strings.ToLower(strings.TrimSpace(c.Editor.Theme)); n != theme.Light.Name() && n != theme.Dark.Name() {
		errs = append(errs, &ValidationError{Field: "editor.theme", Message: fmt.Sprintf("unknown theme %q", c.Editor.Theme)})
	}
	if c.Editor.TabSize < 1 || c.Editor.TabSize > 16 {
		errs = append(errs, &ValidationError{Field: "editor.tab_size", Message: "must be between 1 and 16"})
	}
	if c.Editor.Height < 0 || c.Editor.MaxHeight < 0 {
		errs = append(errs, &ValidationError{Field: "editor.height", Message: "must not be negative"})
	}
	if c.Editor.LintDelay < 0 {
		errs = append(errs, &ValidationError{Field: "editor.lint_delay", Message: "must not be negative"})
	}
	if c.Serve.Addr == "" {
		errs = append(errs, &ValidationError{Field: "serve.addr", Message: "must be set"})
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, &ValidationError{Field: "log.level", Message: err.Error()})
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, err
	}
	return lvl, nil
}

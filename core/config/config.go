// Package config loads jxrprism settings from an optional YAML file.
// Command-line flags override the file; the file overrides the defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/jxrprism/core/convert"
	"github.com/gaurav-prasanna/jxrprism/core/dom"
	"github.com/gaurav-prasanna/jxrprism/core/inject"
)

// Selectors locate the JXR source block and its line anchors.
type Selectors struct {
	Block  string `yaml:"block"`
	Anchor string `yaml:"anchor"`
}

// Inject holds the settings of the inject command.
type Inject struct {
	StylesDir string `yaml:"styles_dir"`
	Highlight bool   `yaml:"highlight"`
	NoConvert bool   `yaml:"no_convert"`
	Skip      bool   `yaml:"skip"`
}

// Config is the complete set of settings.
type Config struct {
	Language  string    `yaml:"language"`
	Anchors   string    `yaml:"anchors"`
	OutputDir string    `yaml:"output_dir"`
	Selectors Selectors `yaml:"selectors"`
	Inject    Inject    `yaml:"inject"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Language: convert.DefaultLanguage,
		Anchors:  string(convert.AnchorsSequential),
		Selectors: Selectors{
			Block:  dom.DefaultBlockSelector,
			Anchor: dom.DefaultAnchorSelector,
		},
		Inject: Inject{StylesDir: inject.DefaultStylesDir},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	// Unknown keys are typos, not extensions.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	switch convert.AnchorMode(c.Anchors) {
	case convert.AnchorsSequential, convert.AnchorsPreserve:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown anchor mode %q (want %s or %s)",
			c.Anchors, convert.AnchorsSequential, convert.AnchorsPreserve))
	}
	if strings.TrimSpace(c.Language) == "" {
		err = multierr.Append(err, errors.New("language must not be empty"))
	}
	if strings.TrimSpace(c.Selectors.Block) == "" {
		err = multierr.Append(err, errors.New("block selector must not be empty"))
	}
	if strings.TrimSpace(c.Selectors.Anchor) == "" {
		err = multierr.Append(err, errors.New("anchor selector must not be empty"))
	}
	return err
}

// ConvertOptions returns the converter settings.
func (c *Config) ConvertOptions() convert.Options {
	return convert.Options{
		Language: c.Language,
		Anchors:  convert.AnchorMode(c.Anchors),
	}
}

// DocumentOptions returns the selectors used to parse pages.
func (c *Config) DocumentOptions() dom.Options {
	return dom.Options{
		BlockSelector:  c.Selectors.Block,
		AnchorSelector: c.Selectors.Anchor,
	}
}

// Dump serializes the settings as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

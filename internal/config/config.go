package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"crunch2d/rectpack"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config holds every setting of a packing run.
type Config struct {
	Output string   `toml:"output"`
	Inputs []string `toml:"inputs"`

	Size    int `toml:"size"`
	Padding int `toml:"padding"`

	XML    bool `toml:"xml"`
	Binary bool `toml:"binary"`
	JSON   bool `toml:"json"`

	Premultiply bool `toml:"premultiply"`
	Trim        bool `toml:"trim"`
	Unique      bool `toml:"unique"`
	Rotate      bool `toml:"rotate"`
	Force       bool `toml:"force"`
	Verbose     bool `toml:"verbose"`

	PowerOfTwo     bool   `toml:"power_of_two"`
	AlphaThreshold int    `toml:"alpha_threshold"`
	Heuristic      string `toml:"heuristic"`
	Split          string `toml:"split"`

	Logging Logging `toml:"logging"`
}

// Load reads the TOML file at path on top of Default. An empty path returns
// the defaults. The result is normalized but not validated, so that
// command-line overrides can still be applied.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.Normalize()
	return cfg, nil
}

// SampleConfig returns the commented sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// Normalize trims whitespace, cleans paths, and drops empty inputs.
func (c *Config) Normalize() {
	c.Output = strings.TrimSpace(c.Output)
	if c.Output != "" {
		c.Output = filepath.Clean(c.Output)
	}
	inputs := c.Inputs[:0]
	for _, in := range c.Inputs {
		if in = strings.TrimSpace(in); in != "" {
			inputs = append(inputs, filepath.Clean(in))
		}
	}
	c.Inputs = inputs
	c.Heuristic = strings.TrimSpace(c.Heuristic)
	c.Split = strings.TrimSpace(c.Split)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// ApplyDefaultPreset switches on the xml, premultiply, trim and unique options.
func (c *Config) ApplyDefaultPreset() {
	c.XML = true
	c.Premultiply = true
	c.Trim = true
	c.Unique = true
}

// OutputName returns the output path with any extension removed. Every
// generated file name starts with it.
func (c *Config) OutputName() string {
	return strings.TrimSuffix(c.Output, filepath.Ext(c.Output))
}

// BaseName returns the file name part of OutputName.
func (c *Config) BaseName() string {
	return filepath.Base(c.OutputName())
}

// PackHeuristic resolves the configured selection and split rules.
func (c *Config) PackHeuristic() (rectpack.Heuristic, error) {
	return rectpack.ResolveHeuristic(c.Heuristic, c.Split)
}

// LogLevel returns the effective log level; verbose runs log at debug.
func (c *Config) LogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.Logging.Level
}

// Fingerprint returns a canonical TOML encoding of every setting that shapes
// the generated files. Force, Verbose and Logging are left out.
func (c *Config) Fingerprint() (string, error) {
	cp := *c
	cp.Force = false
	cp.Verbose = false
	cp.Logging = Logging{}
	data, err := toml.Marshal(cp)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crunch2d/rectpack"
)

func validConfig() Config {
	cfg := Default()
	cfg.Output = "out/atlas"
	cfg.Inputs = []string{"sprites"}
	return cfg
}

func TestDefaultIsValidOnceInputsAreSet(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4096, cfg.Size)
	assert.Equal(t, 1, cfg.Padding)

	h, err := cfg.PackHeuristic()
	require.NoError(t, err)
	assert.Equal(t, rectpack.DefaultHeuristic, h)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"missing output": func(c *Config) { c.Output = "" },
		"missing inputs": func(c *Config) { c.Inputs = nil },
		"size":           func(c *Config) { c.Size = 1000 },
		"padding high":   func(c *Config) { c.Padding = 17 },
		"padding low":    func(c *Config) { c.Padding = -1 },
		"threshold":      func(c *Config) { c.AlphaThreshold = 255 },
		"heuristic":      func(c *Config) { c.Heuristic = "Skyline" },
		"log format":     func(c *Config) { c.Logging.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crunch.toml")
	content := `
output = " build/atlas.png "
inputs = ["a", "", "b/"]
size = 1024
padding = 0
trim = true

[logging]
format = "JSON"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("build/atlas.png"), cfg.Output)
	assert.Equal(t, []string{"a", "b"}, cfg.Inputs)
	assert.Equal(t, 1024, cfg.Size)
	assert.Equal(t, 0, cfg.Padding)
	assert.True(t, cfg.Trim)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join("build", "atlas"), cfg.OutputName())
	assert.Equal(t, "atlas", cfg.BaseName())
	require.NoError(t, cfg.Validate())
}

func TestLoadUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crunch.toml")
	require.NoError(t, os.WriteFile(path, []byte("colour = true\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Size, cfg.Size)
}

func TestSampleConfigParses(t *testing.T) {
	cfg := Default()
	require.NoError(t, toml.Unmarshal([]byte(SampleConfig()), &cfg))
	assert.Equal(t, Default().Size, cfg.Size)
	assert.Equal(t, Default().Heuristic, cfg.Heuristic)
}

func TestApplyDefaultPresetAndLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaultPreset()
	assert.True(t, cfg.XML && cfg.Premultiply && cfg.Trim && cfg.Unique)
	assert.False(t, cfg.JSON || cfg.Binary || cfg.Rotate)

	assert.Equal(t, "info", cfg.LogLevel())
	cfg.Verbose = true
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestFingerprint(t *testing.T) {
	cfg := validConfig()
	base, err := cfg.Fingerprint()
	require.NoError(t, err)

	quiet := cfg
	quiet.Force = true
	quiet.Verbose = true
	quiet.Logging.Format = "json"
	got, err := quiet.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, base, got)

	for name, mutate := range map[string]func(*Config){
		"rotate": func(c *Config) { c.Rotate = true },
		"unique": func(c *Config) { c.Unique = true },
		"size":   func(c *Config) { c.Size = 1024 },
		"split":  func(c *Config) { c.Split = "MinimizeArea" },
	} {
		changed := validConfig()
		mutate(&changed)
		got, err := changed.Fingerprint()
		require.NoError(t, err)
		assert.NotEqual(t, base, got, name)
	}
}

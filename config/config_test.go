package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickchristie/diskpack/schema"
	"github.com/rickchristie/diskpack/snapshot"
)

func TestParse(t *testing.T) {
	type expected struct {
		config Config
		err    error
	}

	tests := []struct {
		name     string
		input    string
		expected expected
	}{
		{
			name:     "empty document keeps defaults",
			input:    "",
			expected: expected{config: Default()},
		},
		{
			name: "overrides merge onto defaults",
			input: `
policy: region
log_level: debug
snapshot:
  path: out.dpks
render:
  diff: true
`,
			expected: expected{config: Config{
				Policy:   "region",
				Input:    "-",
				LogLevel: "debug",
				Snapshot: SnapshotConfig{
					Path:        "out.dpks",
					Compression: "zstd",
					Level:       3,
				},
				Render: RenderConfig{Diff: true, Context: 3},
			}},
		},
		{
			name:     "unknown policy",
			input:    "policy: defrag\n",
			expected: expected{err: ErrInvalidConfig},
		},
		{
			name:     "misspelled key",
			input:    "polcy: region\n",
			expected: expected{err: ErrInvalidConfig},
		},
		{
			name:     "level out of range",
			input:    "snapshot:\n  level: 40\n",
			expected: expected{err: ErrInvalidConfig},
		},
		{
			name:     "snapshot path with leading space",
			input:    "snapshot:\n  path: ' out.dpks'\n",
			expected: expected{err: ErrInvalidConfig},
		},
		{
			name:     "trace path with trailing space",
			input:    "trace: 'events.yaml '\n",
			expected: expected{err: ErrInvalidConfig},
		},
		{
			name:     "single character path",
			input:    "input: x\n",
			expected: expected{config: func() Config { c := Default(); c.Input = "x"; return c }()},
		},
		{
			name:     "wrong type",
			input:    "render:\n  dense: yes please\n",
			expected: expected{err: ErrInvalidConfig},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.input))

			if tc.expected.err != nil {
				assert.ErrorIs(t, err, tc.expected.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected.config, cfg)
		})
	}
}

func TestParse_SchemaErrorIsExposed(t *testing.T) {
	_, err := Parse([]byte("policy: 7\n"))

	var validationErr *schema.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("policy: [region\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diskpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policy: block-swap\ninput: disk.txt\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "block-swap", cfg.Policy)
	assert.Equal(t, "disk.txt", cfg.Input)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "unknown policy", mutate: func(c *Config) { c.Policy = "defrag" }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "unknown compression", mutate: func(c *Config) { c.Snapshot.Compression = "lz4" }, wantErr: true},
		{name: "empty input", mutate: func(c *Config) { c.Input = "" }, wantErr: true},
		{name: "negative context", mutate: func(c *Config) { c.Render.Context = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Strategies(t *testing.T) {
	cfg := Default()
	names, err := cfg.Strategies()
	require.NoError(t, err)
	assert.Equal(t, []string{"block-swap", "region"}, names)

	cfg.Policy = "region"
	names, err = cfg.Strategies()
	require.NoError(t, err)
	assert.Equal(t, []string{"region"}, names)
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestConfig_SnapshotOptions(t *testing.T) {
	cfg := Default()
	cfg.Snapshot.Compression = "none"
	cfg.Snapshot.Level = 0

	opts, err := cfg.SnapshotOptions()
	require.NoError(t, err)
	assert.Equal(t, snapshot.Options{Compression: snapshot.CompressionNone}, opts)
}

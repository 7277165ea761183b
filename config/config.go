// Package config loads diskpack run settings from YAML files.
//
// A file is first checked against a JSON Schema so that misspelled keys
// and invalid values are rejected with their path, then decoded on top
// of [Default]:
//
//	policy: region
//	input: disk.txt
//	log_level: debug
//	trace: events.yaml
//	snapshot:
//	  path: out.dpks
//	  compression: zstd
//	  level: 3
//	render:
//	  dense: true
//	  diff: true
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/rickchristie/diskpack/compaction"
	"github.com/rickchristie/diskpack/schema"
	"github.com/rickchristie/diskpack/snapshot"
)

// PolicyAll runs every registered strategy on the same input.
const PolicyAll = "all"

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the settings of one diskpack invocation.
type Config struct {
	// Policy is a strategy name or [PolicyAll].
	Policy string `yaml:"policy"`

	// Input is a disk map file path, or "-" for stdin.
	Input string `yaml:"input"`

	// LogLevel is a slog level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Trace is a file receiving every compaction event as a YAML
	// document. Empty disables tracing.
	Trace string `yaml:"trace"`

	Snapshot SnapshotConfig `yaml:"snapshot"`
	Render   RenderConfig   `yaml:"render"`
}

// SnapshotConfig controls snapshot output. No snapshot is written when
// Path is empty.
type SnapshotConfig struct {
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"`
	Level       int    `yaml:"level"`
}

// RenderConfig selects the human-readable outputs.
type RenderConfig struct {
	// Dense prints the compacted layout one character per block.
	Dense bool `yaml:"dense"`

	// Diff prints a unified diff of the region listings before and
	// after compaction.
	Diff bool `yaml:"diff"`

	// Context is the number of diff context lines.
	Context int `yaml:"context"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Policy:   PolicyAll,
		Input:    "-",
		LogLevel: "info",
		Snapshot: SnapshotConfig{
			Compression: snapshot.CompressionZstd.String(),
			Level:       3,
		},
		Render: RenderConfig{
			Context: 3,
		},
	}
}

// pathPattern rejects paths with leading or trailing whitespace, which
// are almost always YAML quoting mistakes.
const pathPattern = `^\S(.*\S)?$`

var fileSchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"policy": schema.String("Compaction policy").
		Enum(policyValues()...).
		Default(PolicyAll),
	"input": schema.String("Disk map file, or - for stdin").
		MinLength(1).
		Pattern(pathPattern),
	"log_level": schema.String("Log level").
		Enum("debug", "info", "warn", "error").
		Default("info"),
	"trace": schema.String("Event trace file").Pattern(pathPattern),
	"snapshot": schema.Nested("Snapshot output", schema.Object(map[string]*schema.Property{
		"path":        schema.String("Snapshot file path").Pattern(pathPattern),
		"compression": schema.String("Payload compression").Enum("zstd", "none"),
		"level":       schema.Integer("zstd level").Min(1).Max(22),
	})),
	"render": schema.Nested("Rendered output", schema.Object(map[string]*schema.Property{
		"dense":   schema.Boolean("Print the dense layout"),
		"diff":    schema.Boolean("Print the region diff"),
		"context": schema.Integer("Diff context lines").Min(0).Max(100),
	})),
}))

func policyValues() []any {
	values := []any{PolicyAll}
	for _, name := range compaction.Names() {
		values = append(values, name)
	}
	return values
}

// Load reads and validates the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the config schema and decodes it on top
// of [Default]. Keys absent from data keep their default values.
func Parse(data []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	if err := fileSchema.Validate(doc); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that flags can set after loading.
func (c Config) Validate() error {
	if _, err := c.Strategies(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := snapshot.ParseCompression(c.Snapshot.Compression); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Input == "" {
		return fmt.Errorf("%w: input must not be empty", ErrInvalidConfig)
	}
	if c.Render.Context < 0 {
		return fmt.Errorf("%w: render context must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Strategies returns the strategy names selected by Policy, in run
// order.
func (c Config) Strategies() ([]string, error) {
	if c.Policy == PolicyAll {
		return compaction.Names(), nil
	}
	if !slices.Contains(compaction.Names(), c.Policy) {
		return nil, fmt.Errorf("%w: %q", compaction.ErrUnknownStrategy, c.Policy)
	}
	return []string{c.Policy}, nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// SnapshotOptions returns the snapshot encoding options.
func (c Config) SnapshotOptions() (snapshot.Options, error) {
	compression, err := snapshot.ParseCompression(c.Snapshot.Compression)
	if err != nil {
		return snapshot.Options{}, err
	}
	return snapshot.Options{
		Compression: compression,
		Level:       c.Snapshot.Level,
	}, nil
}

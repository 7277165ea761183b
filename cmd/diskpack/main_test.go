package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/config"
	"github.com/rickchristie/diskpack/format"
	"github.com/rickchristie/diskpack/snapshot"
)

const puzzle = "2333133121414131402\n"

func TestRun(t *testing.T) {
	type input struct {
		args  []string
		stdin string
	}

	type expected struct {
		stdout []string
		err    bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "both strategies by default",
			input:    input{stdin: puzzle},
			expected: expected{stdout: []string{"block-swap: 1928\n", "region: 2858\n"}},
		},
		{
			name:     "single policy",
			input:    input{args: []string{"--policy", "region"}, stdin: puzzle},
			expected: expected{stdout: []string{"region: 2858\n"}},
		},
		{
			name:  "dense layout",
			input: input{args: []string{"-p", "region", "--dense"}, stdin: puzzle},
			expected: expected{stdout: []string{
				"region: 2858\n00992111777.44.333....5555.6666.....8888..\n",
			}},
		},
		{
			name:     "diff of region listings",
			input:    input{args: []string{"-p", "block-swap", "--diff"}, stdin: "12345"},
			expected: expected{stdout: []string{"block-swap: 60\n", "--- before\n", "+++ after\n"}},
		},
		{
			name:     "empty input",
			input:    input{stdin: ""},
			expected: expected{stdout: []string{"block-swap: 0\n", "region: 0\n"}},
		},
		{
			name:     "version",
			input:    input{args: []string{"--version"}},
			expected: expected{stdout: []string{"diskpack dev\n"}},
		},
		{
			name:     "invalid disk map",
			input:    input{stdin: "12a"},
			expected: expected{err: true},
		},
		{
			name:     "unknown policy",
			input:    input{args: []string{"--policy", "defrag"}, stdin: puzzle},
			expected: expected{err: true},
		},
		{
			name:     "unknown flag",
			input:    input{args: []string{"--fast"}},
			expected: expected{err: true},
		},
		{
			name:     "stray argument",
			input:    input{args: []string{"disk.txt"}},
			expected: expected{err: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			err := run(tc.input.args, strings.NewReader(tc.input.stdin), &stdout, &stderr)

			if tc.expected.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tc.expected.stdout {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestRun_InputFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "disk.txt")
	configPath := filepath.Join(dir, "diskpack.yaml")
	require.NoError(t, os.WriteFile(inputPath, []byte(puzzle), 0o644))
	require.NoError(t, os.WriteFile(configPath, []byte(
		"policy: block-swap\ninput: "+inputPath+"\nlog_level: error\n",
	), 0o644))

	t.Run("config file selects policy and input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"--config", configPath}, strings.NewReader(""), &stdout, &stderr)

		require.NoError(t, err)
		assert.Equal(t, "block-swap: 1928\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("flags override config file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(
			[]string{"--config", configPath, "--policy", "region"},
			strings.NewReader(""), &stdout, &stderr,
		)

		require.NoError(t, err)
		assert.Equal(t, "region: 2858\n", stdout.String())
	})

	t.Run("missing input file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run(
			[]string{"--input", filepath.Join(dir, "missing.txt")},
			strings.NewReader(""), &stdout, &stderr,
		)
		assert.Error(t, err)
	})
}

func TestRun_Snapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.dpks")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--snapshot", path}, strings.NewReader(puzzle), &stdout, &stderr)
	require.NoError(t, err)

	tests := []struct {
		file   string
		layout string
	}{
		{file: "out.block-swap.dpks", layout: "0099811188827773336446555566.............."},
		{file: "out.region.dpks", layout: "00992111777.44.333....5555.6666.....8888.."},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			f, err := os.Open(filepath.Join(dir, tc.file))
			require.NoError(t, err)
			defer f.Close()

			seq, err := snapshot.Read(f)
			require.NoError(t, err)
			assert.Equal(t, tc.layout, format.Dense(seq))
		})
	}
}

func TestRun_DebugLogging(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(
		[]string{"--policy", "region", "--log-level", "debug"},
		strings.NewReader(puzzle), &stdout, &stderr,
	)
	require.NoError(t, err)

	logs := stderr.String()
	assert.Contains(t, logs, "msg=move")
	assert.Contains(t, logs, "msg=skip")
	assert.Contains(t, logs, `msg="compaction summary"`)
	assert.Contains(t, logs, "diskpack:moves: 4")
}

func TestEvalLine(t *testing.T) {
	r, err := newRunner(config.Default(), slog.New(slog.DiscardHandler), nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		line   string
		quit   bool
		output string
	}{
		{name: "disk map", line: "2333133121414131402", output: "block-swap: 1928  region: 2858"},
		{name: "blank line", line: "   "},
		{name: "quit", line: "q", quit: true},
		{name: "invalid", line: "1x", output: "Error:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer

			quit := evalLine(r, &out, tc.line)

			assert.Equal(t, tc.quit, quit)
			if tc.output == "" {
				assert.Empty(t, out.String())
			} else {
				assert.Contains(t, out.String(), tc.output)
			}
		})
	}
}

func TestSnapshotPath(t *testing.T) {
	assert.Equal(t, "out.dpks", snapshotPath("out.dpks", "region", false))
	assert.Equal(t, "out.region.dpks", snapshotPath("out.dpks", "region", true))
	assert.Equal(t, "dir/out.block-swap", snapshotPath("dir/out", "block-swap", true))
}

func TestLoggingHook_SkipsFailedRuns(t *testing.T) {
	var buf bytes.Buffer
	hook := newLoggingHook(slog.New(slog.NewTextHandler(&buf, nil)))
	cc := diskpack.NewCompactionContext("input", diskpack.NewSequence(nil))

	hook.OnAfterCompaction(cc, diskpack.AfterCompactionEvent{
		Strategy: "region",
		Err:      assert.AnError,
	})

	assert.Empty(t, buf.String())
}

func TestRun_Trace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")

	var stdout, stderr bytes.Buffer
	err := run(
		[]string{"--policy", "region", "--trace", path},
		strings.NewReader(puzzle), &stdout, &stderr,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var record map[string]any
		if err := dec.Decode(&record); err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		records = append(records, record)
	}

	require.Len(t, records, 12)
	assert.Equal(t, "before_compaction", records[0]["event"])
	assert.Equal(t, map[string]any{
		"event": "move", "id": 9, "from": 40, "to": 2, "length": 2,
	}, records[1])
	assert.Equal(t, "after_compaction", records[11]["event"])
	assert.Equal(t, 2858, records[11]["checksum"])
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/compaction"
	"github.com/rickchristie/diskpack/config"
	"github.com/rickchristie/diskpack/executor"
	"github.com/rickchristie/diskpack/format"
	"github.com/rickchristie/diskpack/hooks"
	"github.com/rickchristie/diskpack/snapshot"
)

// runner compacts disk maps with every strategy selected by the
// configuration and writes the requested outputs.
type runner struct {
	cfg       config.Config
	logger    *slog.Logger
	out       io.Writer
	executors []*executor.Executor
	snapshot  snapshot.Options
}

// newRunner builds one executor per selected strategy. extraHooks are
// registered after the logging hook and shared by every executor.
func newRunner(
	cfg config.Config,
	logger *slog.Logger,
	out io.Writer,
	extraHooks ...any,
) (*runner, error) {
	names, err := cfg.Strategies()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.SnapshotOptions()
	if err != nil {
		return nil, err
	}

	registry := hooks.NewRegistry().Register(newLoggingHook(logger))
	for _, hook := range extraHooks {
		registry.Register(hook)
	}

	r := &runner{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		snapshot: opts,
	}
	for _, name := range names {
		strategy, err := compaction.ByName(name)
		if err != nil {
			return nil, err
		}
		r.executors = append(r.executors,
			executor.New(strategy).WithHooks(registry).WithLogger(logger))
	}
	return r, nil
}

// process decodes diskMap once and compacts a copy of it per strategy.
func (r *runner) process(diskMap string) error {
	results, before, err := r.compact(diskMap)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Fprintf(r.out, "%s: %d\n", result.Strategy, result.Checksum)
		if err := r.render(before, result); err != nil {
			return err
		}
		if err := r.writeSnapshot(result); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) compact(diskMap string) ([]*executor.Result, *diskpack.Sequence, error) {
	before, err := diskpack.Decode(diskMap)
	if err != nil {
		return nil, nil, err
	}

	results := make([]*executor.Result, 0, len(r.executors))
	for _, e := range r.executors {
		result, err := e.ExecuteSequence(r.cfg.Input, before.Clone())
		if err != nil {
			return nil, nil, err
		}
		results = append(results, result)
	}
	return results, before, nil
}

func (r *runner) render(before *diskpack.Sequence, result *executor.Result) error {
	if r.cfg.Render.Dense {
		fmt.Fprintln(r.out, format.Dense(result.Sequence))
	}
	if r.cfg.Render.Diff {
		diff, err := format.Diff(before, result.Sequence, r.cfg.Render.Context)
		if err != nil {
			return fmt.Errorf("diff: %w", err)
		}
		fmt.Fprint(r.out, diff)
	}
	return nil
}

func (r *runner) writeSnapshot(result *executor.Result) error {
	if r.cfg.Snapshot.Path == "" {
		return nil
	}
	path := snapshotPath(r.cfg.Snapshot.Path, result.Strategy, len(r.executors) > 1)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := snapshot.Write(f, result.Sequence, r.snapshot); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	r.logger.Info("snapshot written",
		"strategy", result.Strategy,
		"path", path,
		"compression", r.snapshot.Compression.String(),
	)
	return nil
}

// snapshotPath inserts the strategy name before the extension when
// several strategies share one configured path: out.dpks becomes
// out.region.dpks.
func snapshotPath(path, strategy string, shared bool) string {
	if !shared {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + strategy + ext
}

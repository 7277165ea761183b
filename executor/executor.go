// Package executor runs the decode, compact, checksum pipeline.
package executor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/compaction"
	"github.com/rickchristie/diskpack/hooks"
)

// Result is the outcome of one run.
type Result struct {
	// Strategy is the name of the strategy that ran.
	Strategy string

	// Checksum of the compacted layout.
	Checksum uint64

	// Sequence is the compacted layout. It is no longer mutated.
	Sequence *diskpack.Sequence

	// Stats holds the counters recorded during compaction.
	Stats *diskpack.Stats

	// Duration covers compaction and checksum.
	Duration time.Duration
}

// Executor runs a single CompactionStrategy over disk maps, dispatching
// lifecycle events to its hooks.
//
// The Executor is responsible for:
//   - Decoding the disk map
//   - Creating a fresh CompactionContext per run
//   - Invoking hooks at appropriate points
//   - Computing the checksum of the compacted layout
//
// An Executor holds no per-run state, but its hook registry is not
// thread-safe: register hooks before the first run.
type Executor struct {
	strategy diskpack.CompactionStrategy
	hooks    *hooks.Registry
	logger   *slog.Logger
	clock    diskpack.Clock
}

// New creates an Executor for strategy.
func New(strategy diskpack.CompactionStrategy) *Executor {
	return &Executor{
		strategy: strategy,
		hooks:    hooks.NewRegistry(),
		logger:   slog.New(slog.DiscardHandler),
		clock:    diskpack.SystemClock{},
	}
}

// WithHooks replaces the executor's hook registry with the provided
// one. A nil registry installs an empty one.
// Returns the executor for chaining.
func (e *Executor) WithHooks(h *hooks.Registry) *Executor {
	if h == nil {
		h = hooks.NewRegistry()
	}
	e.hooks = h
	return e
}

// RegisterHook adds a hook to the executor's existing hook registry.
// The hook can implement any combination of hook interfaces.
// Returns the executor for chaining.
//
// Example:
//
//	exec := executor.New(compaction.NewRegion()).
//	    RegisterHook(&MoveLogger{}).
//	    RegisterHook(&MoveCounter{})
func (e *Executor) RegisterHook(hook any) *Executor {
	if e.hooks == nil {
		e.hooks = hooks.NewRegistry()
	}
	e.hooks.Register(hook)
	return e
}

// WithLogger sets the logger used for run summaries. Library output is
// discarded by default.
func (e *Executor) WithLogger(logger *slog.Logger) *Executor {
	e.logger = logger
	return e
}

// WithClock sets the clock used to time runs.
// Returns the executor for chaining.
func (e *Executor) WithClock(clock diskpack.Clock) *Executor {
	e.clock = clock
	return e
}

// Strategy returns the strategy this executor runs.
func (e *Executor) Strategy() diskpack.CompactionStrategy {
	return e.strategy
}

// Execute decodes diskMap, compacts it and returns the checksum.
//
// The execution flow:
//  1. Decode the disk map (fails fast on a non-digit character)
//  2. Fire BeforeCompaction
//  3. Run the strategy
//  4. Checksum the result
//  5. Fire AfterCompaction, also when 3 or 4 failed
func (e *Executor) Execute(name, diskMap string) (*Result, error) {
	seq, err := diskpack.Decode(diskMap)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return e.ExecuteSequence(name, seq)
}

// ExecuteSequence compacts seq in place and returns the checksum. The
// executor owns seq until the call returns.
func (e *Executor) ExecuteSequence(
	name string,
	seq *diskpack.Sequence,
) (result *Result, err error) {
	cc := diskpack.NewCompactionContext(name, seq)
	if e.hooks != nil {
		cc.SetHookFirer(e.hooks)
	}

	strategyName := e.strategy.Name()
	e.logger.Debug("compaction started",
		"name", name,
		"strategy", strategyName,
		"blocks", seq.Len(),
	)

	start := e.clock.Now()
	var checksum uint64
	defer func() {
		duration := e.clock.Now().Sub(start)
		cc.FireAfterCompaction(diskpack.AfterCompactionEvent{
			Strategy: strategyName,
			Checksum: checksum,
			Duration: duration,
			Err:      err,
		})
		if err != nil {
			e.logger.Error("compaction failed",
				"name", name,
				"strategy", strategyName,
				"error", err,
			)
			return
		}
		result.Duration = duration
		e.logger.Debug("compaction finished",
			"name", name,
			"strategy", strategyName,
			"checksum", checksum,
			"moves", cc.Stats().GetMoves(),
			"duration", duration,
		)
	}()

	cc.FireBeforeCompaction(diskpack.BeforeCompactionEvent{
		Strategy: strategyName,
		Blocks:   seq.Len(),
	})

	if err := e.strategy.Compact(cc); err != nil {
		return nil, fmt.Errorf("%s compaction of %s: %w", strategyName, name, err)
	}

	checksum, err = diskpack.Checksum(seq)
	if err != nil {
		return nil, fmt.Errorf("checksum of %s: %w", name, err)
	}

	return &Result{
		Strategy: strategyName,
		Checksum: checksum,
		Sequence: seq,
		Stats:    cc.Stats(),
	}, nil
}

// RunBlockSwap compacts diskMap with block-swap compaction and returns
// the checksum.
func RunBlockSwap(diskMap string) (uint64, error) {
	return run(compaction.NewBlockSwap(), diskMap)
}

// RunRegion compacts diskMap with region compaction and returns the
// checksum.
func RunRegion(diskMap string) (uint64, error) {
	return run(compaction.NewRegion(), diskMap)
}

func run(strategy diskpack.CompactionStrategy, diskMap string) (uint64, error) {
	result, err := New(strategy).Execute("input", diskMap)
	if err != nil {
		return 0, err
	}
	return result.Checksum, nil
}

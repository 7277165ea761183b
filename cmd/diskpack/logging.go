package main

import (
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/rickchristie/diskpack"
)

// loggingHook reports compaction progress through slog. Moves and skips
// are logged at Debug, run summaries at Info, and the full counter set
// is dumped as YAML at Debug.
type loggingHook struct {
	logger *slog.Logger
}

func newLoggingHook(logger *slog.Logger) *loggingHook {
	return &loggingHook{logger: logger}
}

func (h *loggingHook) OnBeforeCompaction(
	cc *diskpack.CompactionContext,
	event diskpack.BeforeCompactionEvent,
) {
	h.logger.Debug("before compaction",
		"name", cc.Name(),
		"strategy", event.Strategy,
		"blocks", event.Blocks,
	)
}

func (h *loggingHook) OnMove(
	cc *diskpack.CompactionContext,
	event diskpack.MoveEvent,
) {
	h.logger.Debug("move",
		"id", event.ID,
		"from", event.From,
		"to", event.To,
		"length", event.Length,
	)
}

func (h *loggingHook) OnSkip(
	cc *diskpack.CompactionContext,
	event diskpack.SkipEvent,
) {
	h.logger.Debug("skip",
		"id", event.ID,
		"start", event.Start,
		"length", event.Length,
	)
}

func (h *loggingHook) OnAfterCompaction(
	cc *diskpack.CompactionContext,
	event diskpack.AfterCompactionEvent,
) {
	if event.Err != nil {
		return
	}

	stats := cc.Stats()
	h.logger.Info("compaction summary",
		"name", cc.Name(),
		"strategy", event.Strategy,
		"checksum", event.Checksum,
		"moves", stats.GetMoves(),
		"blocks_moved", stats.GetBlocksMoved(),
		"skips", stats.GetSkips(),
		"duration", event.Duration,
	)

	data, err := yaml.Marshal(map[string]any{
		"strategy": event.Strategy,
		"counters": stats.CountersWithPrefix(diskpack.KeyPrefix),
	})
	if err != nil {
		h.logger.Warn("failed to marshal stats", "error", err)
		return
	}
	h.logger.Debug("stats", "yaml", string(data))
}

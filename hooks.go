package diskpack

// -----------------------------------------------------------------------------
// Compaction Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe a compaction run. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry
//  3. Pass the registry to the executor
//
// Example:
//
//	type MoveLogger struct {
//	    logger *slog.Logger
//	}
//
//	func (h *MoveLogger) OnMove(cc *CompactionContext, e MoveEvent) {
//	    h.logger.Debug("moved", "id", e.ID, "from", e.From, "to", e.To)
//	}
//
//	exec := executor.New(compaction.NewRegion()).
//	    RegisterHook(&MoveLogger{logger: slog.Default()})
//
// Hooks are called in registration order, synchronously, on the
// goroutine running the strategy. They must not mutate the Sequence.
// -----------------------------------------------------------------------------

// BeforeCompactionHook is notified once before the strategy runs.
type BeforeCompactionHook interface {
	OnBeforeCompaction(cc *CompactionContext, event BeforeCompactionEvent)
}

// AfterCompactionHook is notified once after the run, even on error,
// if BeforeCompactionHook was fired.
type AfterCompactionHook interface {
	OnAfterCompaction(cc *CompactionContext, event AfterCompactionEvent)
}

// MoveHook is notified every time allocated content moves left.
type MoveHook interface {
	OnMove(cc *CompactionContext, event MoveEvent)
}

// SkipHook is notified when an allocation is finalized in place.
type SkipHook interface {
	OnSkip(cc *CompactionContext, event SkipEvent)
}

// HookFirer dispatches events to hooks. hooks.Registry implements it;
// the indirection keeps the root package free of the registry.
type HookFirer interface {
	FireBeforeCompaction(cc *CompactionContext, event BeforeCompactionEvent)
	FireAfterCompaction(cc *CompactionContext, event AfterCompactionEvent)
	FireMove(cc *CompactionContext, event MoveEvent)
	FireSkip(cc *CompactionContext, event SkipEvent)
}

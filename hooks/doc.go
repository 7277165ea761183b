// Package hooks provides a registry for compaction lifecycle hooks.
//
// Hooks observe a compaction run. Each hook interface corresponds to a
// specific event type - implement only the interfaces you need.
//
// # Hook Interfaces
//
//   - [diskpack.BeforeCompactionHook] - Called once before the strategy runs
//   - [diskpack.AfterCompactionHook] - Called once after checksum, even on error
//   - [diskpack.MoveHook] - Called whenever allocated content moves left
//   - [diskpack.SkipHook] - Called when an allocation is finalized in place
//
// # Creating a Hook
//
//	type MoveCounter struct{ blocks int }
//
//	func (h *MoveCounter) OnMove(
//	    cc *diskpack.CompactionContext,
//	    event diskpack.MoveEvent,
//	) {
//	    h.blocks += event.Length
//	}
//
//	// Compile-time check
//	var _ diskpack.MoveHook = (*MoveCounter)(nil)
//
// # Registering Hooks
//
// Option 1: Register directly on the executor (simple cases):
//
//	exec := executor.New(compaction.NewRegion()).
//	    RegisterHook(&MoveCounter{})
//
// Option 2: Use a shared registry (when sharing across executors):
//
//	registry := hooks.NewRegistry()
//	registry.Register(&MoveCounter{})
//
//	swap := executor.New(compaction.NewBlockSwap()).WithHooks(registry)
//	region := executor.New(compaction.NewRegion()).WithHooks(registry)
package hooks

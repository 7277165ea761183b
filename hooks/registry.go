package hooks

import "github.com/rickchristie/diskpack"

// Registry manages a collection of hooks and dispatches events to them.
//
// # Overview
//
// Registry is the central coordination point for hooks. It:
//   - Stores registered hooks in order
//   - Dispatches events to hooks that implement the relevant interface
//   - Passes the CompactionContext to hooks for access to stats and the
//     layout being compacted
//
// Hooks can implement any combination of hook interfaces - they only
// receive events for the interfaces they implement.
//
// # Creating and Using
//
//	registry := hooks.NewRegistry()
//	registry.Register(&MoveLogger{})
//	registry.Register(&MoveCounter{})
//
//	exec := executor.New(compaction.NewRegion()).WithHooks(registry)
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all hooks before starting a
// run. Fire methods should only be called through a CompactionContext.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any
// combination of hook interfaces (MoveHook, SkipHook, etc.).
//
// Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// FireBeforeCompaction dispatches a BeforeCompactionEvent to all
// registered BeforeCompactionHook implementations.
func (r *Registry) FireBeforeCompaction(
	cc *diskpack.CompactionContext,
	event diskpack.BeforeCompactionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(diskpack.BeforeCompactionHook); ok {
			hook.OnBeforeCompaction(cc, event)
		}
	}
}

// FireAfterCompaction dispatches an AfterCompactionEvent to all
// registered AfterCompactionHook implementations.
func (r *Registry) FireAfterCompaction(
	cc *diskpack.CompactionContext,
	event diskpack.AfterCompactionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(diskpack.AfterCompactionHook); ok {
			hook.OnAfterCompaction(cc, event)
		}
	}
}

// FireMove dispatches a MoveEvent to all registered MoveHook
// implementations.
func (r *Registry) FireMove(
	cc *diskpack.CompactionContext,
	event diskpack.MoveEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(diskpack.MoveHook); ok {
			hook.OnMove(cc, event)
		}
	}
}

// FireSkip dispatches a SkipEvent to all registered SkipHook
// implementations.
func (r *Registry) FireSkip(
	cc *diskpack.CompactionContext,
	event diskpack.SkipEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(diskpack.SkipHook); ok {
			hook.OnSkip(cc, event)
		}
	}
}

// Compile-time check.
var _ diskpack.HookFirer = (*Registry)(nil)

package diskpack

// CompactionContext is the state of a single compaction call: the
// layout being compacted, its [Stats], and the hook dispatcher.
//
// A CompactionContext is owned by the call that created it. Nothing in
// it is shared across calls, and strategies must not keep references
// to it after Compact returns.
type CompactionContext struct {
	name  string
	seq   *Sequence
	stats *Stats
	hooks HookFirer
}

// NewCompactionContext creates a context over seq. The context takes
// exclusive ownership of seq for the duration of the call.
func NewCompactionContext(name string, seq *Sequence) *CompactionContext {
	return &CompactionContext{
		name:  name,
		seq:   seq,
		stats: NewStats(),
	}
}

// Name returns the label given at construction (e.g., the input name).
func (cc *CompactionContext) Name() string {
	return cc.name
}

// Sequence returns the layout being compacted.
func (cc *CompactionContext) Sequence() *Sequence {
	return cc.seq
}

// Stats returns the counters of this call.
func (cc *CompactionContext) Stats() *Stats {
	return cc.stats
}

// SetHookFirer installs the hook dispatcher. A nil firer disables
// hooks.
func (cc *CompactionContext) SetHookFirer(firer HookFirer) {
	cc.hooks = firer
}

// PublishMove records a move in Stats and dispatches it to MoveHooks.
func (cc *CompactionContext) PublishMove(event MoveEvent) {
	cc.stats.IncrCounter(SCMoves, 1)
	cc.stats.IncrCounter(SCBlocksMoved, int64(event.Length))
	if cc.hooks != nil {
		cc.hooks.FireMove(cc, event)
	}
}

// PublishSkip records a skip in Stats and dispatches it to SkipHooks.
func (cc *CompactionContext) PublishSkip(event SkipEvent) {
	cc.stats.IncrCounter(SCSkips, 1)
	if cc.hooks != nil {
		cc.hooks.FireSkip(cc, event)
	}
}

// FireBeforeCompaction dispatches a BeforeCompactionEvent, if hooks
// are installed.
func (cc *CompactionContext) FireBeforeCompaction(event BeforeCompactionEvent) {
	if cc.hooks != nil {
		cc.hooks.FireBeforeCompaction(cc, event)
	}
}

// FireAfterCompaction dispatches an AfterCompactionEvent, if hooks are
// installed.
func (cc *CompactionContext) FireAfterCompaction(event AfterCompactionEvent) {
	if cc.hooks != nil {
		cc.hooks.FireAfterCompaction(cc, event)
	}
}

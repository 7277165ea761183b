package tt

import (
	"time"

	"github.com/rickchristie/diskpack"
)

// -----------------------------------------------------------------------------
// RecordingHook - implements every diskpack hook interface
// -----------------------------------------------------------------------------

// RecordingHook records every event it receives, in order.
type RecordingHook struct {
	Befores []diskpack.BeforeCompactionEvent
	Afters  []diskpack.AfterCompactionEvent
	Moves   []diskpack.MoveEvent
	Skips   []diskpack.SkipEvent

	// Order holds every event in dispatch order.
	Order []diskpack.HookEvent
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

// OnBeforeCompaction implements diskpack.BeforeCompactionHook.
func (h *RecordingHook) OnBeforeCompaction(
	_ *diskpack.CompactionContext,
	event diskpack.BeforeCompactionEvent,
) {
	h.Befores = append(h.Befores, event)
	h.Order = append(h.Order, event)
}

// OnAfterCompaction implements diskpack.AfterCompactionHook.
func (h *RecordingHook) OnAfterCompaction(
	_ *diskpack.CompactionContext,
	event diskpack.AfterCompactionEvent,
) {
	h.Afters = append(h.Afters, event)
	h.Order = append(h.Order, event)
}

// OnMove implements diskpack.MoveHook.
func (h *RecordingHook) OnMove(
	_ *diskpack.CompactionContext,
	event diskpack.MoveEvent,
) {
	h.Moves = append(h.Moves, event)
	h.Order = append(h.Order, event)
}

// OnSkip implements diskpack.SkipHook.
func (h *RecordingHook) OnSkip(
	_ *diskpack.CompactionContext,
	event diskpack.SkipEvent,
) {
	h.Skips = append(h.Skips, event)
	h.Order = append(h.Order, event)
}

// MovedIDs returns the allocation id of every recorded move, in order.
func (h *RecordingHook) MovedIDs() []int {
	ids := make([]int, len(h.Moves))
	for i, m := range h.Moves {
		ids[i] = m.ID
	}
	return ids
}

// Compile-time check.
var (
	_ diskpack.BeforeCompactionHook = (*RecordingHook)(nil)
	_ diskpack.AfterCompactionHook  = (*RecordingHook)(nil)
	_ diskpack.MoveHook             = (*RecordingHook)(nil)
	_ diskpack.SkipHook             = (*RecordingHook)(nil)
)

// -----------------------------------------------------------------------------
// FailingStrategy - a CompactionStrategy that always fails
// -----------------------------------------------------------------------------

// FailingStrategy returns Err from Compact without touching the layout.
type FailingStrategy struct {
	Err error
}

// Name implements diskpack.CompactionStrategy.
func (s *FailingStrategy) Name() string {
	return "failing"
}

// Compact implements diskpack.CompactionStrategy.
func (s *FailingStrategy) Compact(*diskpack.CompactionContext) error {
	return s.Err
}

var _ diskpack.CompactionStrategy = (*FailingStrategy)(nil)

// -----------------------------------------------------------------------------
// StepClock - a Clock that advances by a fixed step on every call
// -----------------------------------------------------------------------------

// StepClock returns Start on the first call to Now and moves forward by
// Step on each later call.
type StepClock struct {
	Start time.Time
	Step  time.Duration
	calls int
}

// NewStepClock creates a StepClock starting at a fixed instant.
func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{
		Start: time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC),
		Step:  step,
	}
}

// Now implements diskpack.Clock.
func (c *StepClock) Now() time.Time {
	now := c.Start.Add(time.Duration(c.calls) * c.Step)
	c.calls++
	return now
}

var _ diskpack.Clock = (*StepClock)(nil)

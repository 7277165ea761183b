package diskpack

import "time"

// -----------------------------------------------------------------------------
// Hook Event Interface
// -----------------------------------------------------------------------------

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// -----------------------------------------------------------------------------
// Compaction Lifecycle Events
// -----------------------------------------------------------------------------

// BeforeCompactionEvent is emitted once before a strategy runs.
type BeforeCompactionEvent struct {
	// Strategy is the name of the strategy about to run.
	Strategy string

	// Blocks is the length of the layout.
	Blocks int
}

func (BeforeCompactionEvent) hookEvent() {}

// AfterCompactionEvent is emitted once after compaction and checksum
// finish, including on failure.
type AfterCompactionEvent struct {
	// Strategy is the name of the strategy that ran.
	Strategy string

	// Checksum of the final layout (0 if Err is set).
	Checksum uint64

	// Duration covers compaction and checksum.
	Duration time.Duration

	// Err is the error if the run failed (nil on success).
	Err error
}

func (AfterCompactionEvent) hookEvent() {}

// -----------------------------------------------------------------------------
// Movement Events
// -----------------------------------------------------------------------------

// MoveEvent is published when allocated content changes position.
//
// Block-swap compaction publishes one event per swapped block
// (Length 1). Region compaction publishes one event per relocated
// allocation.
type MoveEvent struct {
	// ID is the allocation id of the moved content.
	ID int

	// From is the position the content started at.
	From int

	// To is the position the content now starts at. Always < From.
	To int

	// Length is the number of blocks moved.
	Length int
}

func (MoveEvent) hookEvent() {}

// SkipEvent is published when region compaction leaves an allocation
// in place because no free region to its left can hold it.
type SkipEvent struct {
	// ID is the allocation id.
	ID int

	// Start is the allocation's current position.
	Start int

	// Length is the allocation's size in blocks.
	Length int
}

func (SkipEvent) hookEvent() {}

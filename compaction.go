package diskpack

// CompactionStrategy decides HOW a layout is compacted.
//
// The strategy reads and rewrites cc.Sequence() in place. It may only
// permute blocks: the number of free blocks and the number of blocks
// of each allocation must be identical before and after. Movement is
// reported through cc.PublishMove and cc.PublishSkip so that Stats and
// hooks stay in sync.
//
// # Error Handling
//
// An error invalidates the whole result. Callers must not checksum a
// layout whose compaction failed.
//
// # Available Implementations
//
//   - compaction.NewBlockSwap: moves single blocks from the rightmost
//     allocated position into the leftmost free position
//   - compaction.NewRegion: moves whole allocations into the leftmost
//     free region that fits, highest id first
//
// # Implementing Custom Strategies
//
//	type ReverseStrategy struct{}
//
//	func (s *ReverseStrategy) Name() string { return "reverse" }
//
//	func (s *ReverseStrategy) Compact(cc *CompactionContext) error {
//	    blocks := cc.Sequence().Blocks()
//	    slices.Reverse(blocks)
//	    return cc.Sequence().Replace(blocks)
//	}
type CompactionStrategy interface {
	// Name identifies the strategy in logs, events and config.
	Name() string

	// Compact rewrites cc.Sequence() in place.
	Compact(cc *CompactionContext) error
}

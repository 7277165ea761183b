package compaction

import "github.com/rickchristie/diskpack"

// BlockSwapName is the registered name of [BlockSwapStrategy].
const BlockSwapName = "block-swap"

// BlockSwapStrategy moves individual blocks: the block at the
// rightmost allocated position is swapped into the leftmost free
// position, repeatedly, until the cursors cross.
//
// Blocks move irrespective of the allocation they belong to, so a
// single allocation may end up split across the layout. Both cursors
// only ever move toward each other, so a run is O(n) overall.
//
// A layout with no free block, or no allocated block, is left as is.
//
// Example:
//
//	strategy := compaction.NewBlockSwap()
type BlockSwapStrategy struct{}

// NewBlockSwap creates a BlockSwapStrategy.
func NewBlockSwap() *BlockSwapStrategy {
	return &BlockSwapStrategy{}
}

// Name implements diskpack.CompactionStrategy.
func (s *BlockSwapStrategy) Name() string {
	return BlockSwapName
}

// Compact implements diskpack.CompactionStrategy.
func (s *BlockSwapStrategy) Compact(cc *diskpack.CompactionContext) error {
	seq := cc.Sequence()

	firstFree, ok := seq.FirstFree(0)
	if !ok {
		return nil
	}
	lastFile, ok := seq.LastFile(seq.Len() - 1)
	if !ok {
		return nil
	}

	for firstFree < lastFile {
		moved, err := seq.At(lastFile)
		if err != nil {
			return err
		}
		if err := seq.Swap(firstFree, lastFile); err != nil {
			return err
		}
		cc.Stats().IncrCounter(diskpack.SCSwaps, 1)

		id, _ := moved.ID()
		cc.PublishMove(diskpack.MoveEvent{
			ID:     id,
			From:   lastFile,
			To:     firstFree,
			Length: 1,
		})

		firstFree, ok = seq.FirstFree(firstFree + 1)
		if !ok {
			break
		}
		lastFile, ok = seq.LastFile(lastFile - 1)
		if !ok {
			break
		}
	}
	return nil
}

// Compile-time check.
var _ diskpack.CompactionStrategy = (*BlockSwapStrategy)(nil)

package diskpack

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a position is beyond the end of a
	// Sequence. It signals a broken invariant in the caller.
	ErrOutOfRange = errors.New("diskpack: position out of range")

	// ErrLengthChanged is returned when a rewrite would change the
	// number of blocks. Compaction is a permutation, never a resize.
	ErrLengthChanged = errors.New("diskpack: sequence length changed")
)

// Sequence is the in-memory storage layout: an ordered list of blocks
// where the index is the physical position.
//
// A Sequence is built once from decoded input, mutated in place by a
// single [CompactionStrategy], and then only read (for example by
// [Checksum]). The number of blocks never changes after construction.
//
// Sequence is NOT safe for concurrent use.
type Sequence struct {
	blocks []Block
}

// NewSequence creates a Sequence that takes ownership of blocks.
// Callers must not modify the slice afterwards.
func NewSequence(blocks []Block) *Sequence {
	return &Sequence{blocks: blocks}
}

// Len returns the number of blocks.
func (s *Sequence) Len() int {
	return len(s.blocks)
}

// At returns the block at position.
// Returns an error wrapping [ErrOutOfRange] if position is outside
// [0, Len()).
func (s *Sequence) At(position int) (Block, error) {
	if position < 0 || position >= len(s.blocks) {
		return Free, outOfRange(position, len(s.blocks))
	}
	return s.blocks[position], nil
}

// IsFree reports whether the block at position is free.
// Panics with an error wrapping [ErrOutOfRange] on an invalid position.
func (s *Sequence) IsFree(position int) bool {
	b, err := s.At(position)
	if err != nil {
		panic(err)
	}
	return b.IsFree()
}

// Swap exchanges the blocks at positions i and j.
func (s *Sequence) Swap(i, j int) error {
	if i < 0 || i >= len(s.blocks) {
		return outOfRange(i, len(s.blocks))
	}
	if j < 0 || j >= len(s.blocks) {
		return outOfRange(j, len(s.blocks))
	}
	s.blocks[i], s.blocks[j] = s.blocks[j], s.blocks[i]
	return nil
}

// FirstFree returns the first free position at or after from.
// The second return value is false if there is none.
func (s *Sequence) FirstFree(from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s.blocks); i++ {
		if s.blocks[i].IsFree() {
			return i, true
		}
	}
	return 0, false
}

// LastFile returns the last allocated position at or before through.
// The second return value is false if there is none.
func (s *Sequence) LastFile(through int) (int, bool) {
	if through >= len(s.blocks) {
		through = len(s.blocks) - 1
	}
	for i := through; i >= 0; i-- {
		if !s.blocks[i].IsFree() {
			return i, true
		}
	}
	return 0, false
}

// Blocks returns a copy of the blocks in position order.
func (s *Sequence) Blocks() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// Clone returns an independent copy of the Sequence.
func (s *Sequence) Clone() *Sequence {
	return NewSequence(s.Blocks())
}

// Replace overwrites the whole layout with blocks. The new layout must
// have exactly Len() blocks, otherwise [ErrLengthChanged] is returned
// and the Sequence is left untouched.
func (s *Sequence) Replace(blocks []Block) error {
	if len(blocks) != len(s.blocks) {
		return fmt.Errorf(
			"%w: have %d blocks, got %d",
			ErrLengthChanged, len(s.blocks), len(blocks),
		)
	}
	copy(s.blocks, blocks)
	return nil
}

// Start returns the lowest position holding a block of allocation id.
// The second return value is false if the allocation has no blocks.
func (s *Sequence) Start(id int) (int, bool) {
	for i, b := range s.blocks {
		if got, ok := b.ID(); ok && got == id {
			return i, true
		}
	}
	return 0, false
}

// MaxID returns the highest allocation id present, or -1 if the
// Sequence holds no allocated blocks.
func (s *Sequence) MaxID() int {
	maxID := -1
	for _, b := range s.blocks {
		if id, ok := b.ID(); ok && id > maxID {
			maxID = id
		}
	}
	return maxID
}

// Census counts blocks by content.
type Census struct {
	// Free is the number of free blocks.
	Free int

	// Files maps allocation id to its number of blocks.
	Files map[int]int
}

// Census returns the block counts of the Sequence. Two layouts that
// are permutations of each other have equal censuses.
func (s *Sequence) Census() Census {
	c := Census{Files: make(map[int]int)}
	for _, b := range s.blocks {
		if id, ok := b.ID(); ok {
			c.Files[id]++
		} else {
			c.Free++
		}
	}
	return c
}

func outOfRange(position, length int) error {
	return fmt.Errorf(
		"%w: position %d, length %d",
		ErrOutOfRange, position, length,
	)
}

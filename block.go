package diskpack

import "strconv"

// Block is a single storage unit in a disk layout. A Block is either
// [Free] or belongs to exactly one allocation, identified by a
// non-negative id.
//
// Block is a plain integer so that a layout of tens of thousands of
// units stays a flat slice:
//
//	b := diskpack.File(7)
//	id, ok := b.ID() // 7, true
//	diskpack.Free.IsFree() // true
type Block int

// Free is the unallocated block.
const Free Block = -1

// File returns the block belonging to allocation id.
// Panics if id is negative.
func File(id int) Block {
	if id < 0 {
		panic("diskpack: File called with negative id")
	}
	return Block(id)
}

// IsFree returns true if the block carries no data.
func (b Block) IsFree() bool {
	return b < 0
}

// ID returns the allocation id of the block. The second return value
// is false for free blocks.
func (b Block) ID() (int, bool) {
	if b.IsFree() {
		return 0, false
	}
	return int(b), true
}

// String returns "." for free blocks and the decimal id otherwise.
func (b Block) String() string {
	if b.IsFree() {
		return "."
	}
	return strconv.Itoa(int(b))
}

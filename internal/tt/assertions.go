// Package tt provides test helpers shared by the diskpack packages.
package tt

import (
	"testing"

	"github.com/rickchristie/diskpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Layout Helpers
// -----------------------------------------------------------------------------

// MustDecode decodes a disk map or fails the test.
func MustDecode(t *testing.T, diskMap string) *diskpack.Sequence {
	t.Helper()
	seq, err := diskpack.Decode(diskMap)
	require.NoError(t, err, "decode %q", diskMap)
	return seq
}

// Layout builds a Sequence from a puzzle-style rendering where '.' is a
// free block and a digit is a block of that allocation id.
//
//	tt.Layout(t, "0..111....22222")
func Layout(t *testing.T, rendered string) *diskpack.Sequence {
	t.Helper()
	blocks := make([]diskpack.Block, 0, len(rendered))
	for _, r := range rendered {
		switch {
		case r == '.':
			blocks = append(blocks, diskpack.Free)
		case r >= '0' && r <= '9':
			blocks = append(blocks, diskpack.File(int(r-'0')))
		default:
			require.Failf(t, "invalid layout", "unexpected %q in %q", r, rendered)
		}
	}
	return diskpack.NewSequence(blocks)
}

// -----------------------------------------------------------------------------
// Invariant Assertions
// -----------------------------------------------------------------------------

// AssertConserved asserts that after is a permutation of before: same
// length, same number of free blocks, and same number of blocks per
// allocation id.
func AssertConserved(t *testing.T, before, after *diskpack.Sequence) {
	t.Helper()
	assert.Equal(t, before.Len(), after.Len(), "layout length")
	assert.Equal(t, before.Census(), after.Census(), "block census")
}

// AssertContiguous asserts that the blocks of every allocation form a
// single unbroken run.
func AssertContiguous(t *testing.T, seq *diskpack.Sequence) {
	t.Helper()
	ended := make(map[int]bool)
	prev := diskpack.Free
	for position, b := range seq.Blocks() {
		if b != prev && !prev.IsFree() {
			id, _ := prev.ID()
			ended[id] = true
		}
		if id, ok := b.ID(); ok && b != prev {
			assert.False(t, ended[id],
				"allocation %d resumes at position %d", id, position)
		}
		prev = b
	}
}

// AssertNoRightwardMove asserts that no allocation starts further right
// in after than it did in before.
func AssertNoRightwardMove(t *testing.T, before, after *diskpack.Sequence) {
	t.Helper()
	for id := range before.Census().Files {
		was, _ := before.Start(id)
		now, ok := after.Start(id)
		require.True(t, ok, "allocation %d vanished", id)
		assert.LessOrEqual(t, now, was, "allocation %d moved right", id)
	}
}

// AssertPacked asserts that no free block sits left of an allocated
// block.
func AssertPacked(t *testing.T, seq *diskpack.Sequence) {
	t.Helper()
	firstFree, ok := seq.FirstFree(0)
	if !ok {
		return
	}
	lastFile, ok := seq.LastFile(seq.Len() - 1)
	if !ok {
		return
	}
	assert.Greater(t, firstFree, lastFile,
		"free block at %d precedes allocated block at %d", firstFree, lastFile)
}

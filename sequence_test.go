package diskpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSequence() *Sequence {
	// 0..11.2
	return NewSequence([]Block{
		File(0), Free, Free, File(1), File(1), Free, File(2),
	})
}

func TestSequence_At(t *testing.T) {
	seq := newTestSequence()

	b, err := seq.At(3)
	require.NoError(t, err)
	assert.Equal(t, File(1), b)

	_, err = seq.At(7)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = seq.At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSequence_IsFree(t *testing.T) {
	seq := newTestSequence()

	assert.False(t, seq.IsFree(0))
	assert.True(t, seq.IsFree(1))
	assert.Panics(t, func() { seq.IsFree(seq.Len()) })
}

func TestSequence_Cursors(t *testing.T) {
	seq := newTestSequence()

	tests := []struct {
		name   string
		find   func() (int, bool)
		wantAt int
		wantOK bool
	}{
		{"first free from start", func() (int, bool) { return seq.FirstFree(0) }, 1, true},
		{"first free at position", func() (int, bool) { return seq.FirstFree(2) }, 2, true},
		{"first free skips files", func() (int, bool) { return seq.FirstFree(3) }, 5, true},
		{"first free past end", func() (int, bool) { return seq.FirstFree(6) }, 0, false},
		{"last file from end", func() (int, bool) { return seq.LastFile(6) }, 6, true},
		{"last file skips free", func() (int, bool) { return seq.LastFile(5) }, 4, true},
		{"last file clamps through", func() (int, bool) { return seq.LastFile(100) }, 6, true},
		{"last file before start", func() (int, bool) { return seq.LastFile(-1) }, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			at, ok := tc.find()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantAt, at)
		})
	}
}

func TestSequence_Swap(t *testing.T) {
	seq := newTestSequence()

	require.NoError(t, seq.Swap(1, 6))
	assert.Equal(t, "02.11..", render(seq))

	assert.ErrorIs(t, seq.Swap(0, 9), ErrOutOfRange)
	assert.ErrorIs(t, seq.Swap(-2, 0), ErrOutOfRange)
}

func TestSequence_Replace(t *testing.T) {
	seq := newTestSequence()

	err := seq.Replace([]Block{File(0)})
	assert.ErrorIs(t, err, ErrLengthChanged)
	assert.Equal(t, "0..11.2", render(seq))

	require.NoError(t, seq.Replace([]Block{
		File(0), File(2), File(1), File(1), Free, Free, Free,
	}))
	assert.Equal(t, "0211...", render(seq))
}

func TestSequence_CloneIsIndependent(t *testing.T) {
	seq := newTestSequence()
	clone := seq.Clone()

	require.NoError(t, clone.Swap(0, 1))

	assert.Equal(t, "0..11.2", render(seq))
	assert.Equal(t, ".0.11.2", render(clone))
}

func TestSequence_StartAndMaxID(t *testing.T) {
	seq := newTestSequence()

	start, ok := seq.Start(1)
	assert.True(t, ok)
	assert.Equal(t, 3, start)

	_, ok = seq.Start(9)
	assert.False(t, ok)

	assert.Equal(t, 2, seq.MaxID())
	assert.Equal(t, -1, NewSequence([]Block{Free}).MaxID())
}

func TestBlock(t *testing.T) {
	id, ok := File(12).ID()
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	_, ok = Free.ID()
	assert.False(t, ok)

	assert.Equal(t, ".", Free.String())
	assert.Equal(t, "12", File(12).String())
	assert.Panics(t, func() { File(-3) })
}

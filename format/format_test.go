package format

import (
	"testing"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/compaction"
	"github.com/rickchristie/diskpack/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense(t *testing.T) {
	tests := []struct {
		name     string
		seq      *diskpack.Sequence
		expected string
	}{
		{
			name:     "puzzle example",
			seq:      tt.MustDecode(t, "2333133121414131402"),
			expected: "00...111...2...333.44.5555.6666.777.888899",
		},
		{
			name:     "empty",
			seq:      diskpack.NewSequence(nil),
			expected: "",
		},
		{
			name: "ids above nine",
			seq: diskpack.NewSequence([]diskpack.Block{
				diskpack.File(9), diskpack.File(10), diskpack.Free,
			}),
			expected: "9#.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Dense(tc.seq))
		})
	}
}

func TestRegions(t *testing.T) {
	out, err := Regions(tt.MustDecode(t, "12345"))

	require.NoError(t, err)
	assert.Equal(t, "0 1 file 0\n1 2 free\n3 3 file 1\n6 4 free\n10 5 file 2\n", out)
}

func TestDiff(t *testing.T) {
	seq := tt.Layout(t, "0.1.2")
	before := seq.Clone()

	same, err := Diff(before, seq, 1)
	require.NoError(t, err)
	assert.Empty(t, same)

	require.NoError(t, compaction.NewRegion().Compact(diskpack.NewCompactionContext("diff", seq)))

	out, err := Diff(before, seq, 0)
	require.NoError(t, err)
	assert.Contains(t, out, "--- before\n+++ after\n")
	assert.Contains(t, out, "-1 1 free\n")
	assert.Contains(t, out, "+1 1 file 2\n")
	assert.Contains(t, out, "-4 1 file 2\n")
	assert.Contains(t, out, "+3 2 free\n")
}

package format

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rickchristie/diskpack"
)

// Diff returns a unified diff between the [Regions] renderings of
// before and after, with context lines of surrounding regions.
// Identical layouts produce an empty string.
//
//	before := seq.Clone()
//	_ = strategy.Compact(diskpack.NewCompactionContext("x", seq))
//	out, _ := format.Diff(before, seq, 1)
func Diff(before, after *diskpack.Sequence, context int) (string, error) {
	a, err := Regions(before)
	if err != nil {
		return "", err
	}
	b, err := Regions(after)
	if err != nil {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "before",
		ToFile:   "after",
		Context:  context,
	})
}

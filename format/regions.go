package format

import (
	"fmt"
	"strings"

	"github.com/rickchristie/diskpack"
	"github.com/rickchristie/diskpack/compaction"
)

// Regions draws one line per region: start position, length and
// content ("free" or "file <id>"). Lines end with a newline.
//
//	0 2 file 0
//	2 3 free
//	5 3 file 1
func Regions(seq *diskpack.Sequence) (string, error) {
	regions, err := compaction.Regions(seq)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, r := range regions {
		if id, ok := r.Content.ID(); ok {
			fmt.Fprintf(&sb, "%d %d file %d\n", r.Start, r.Length, id)
		} else {
			fmt.Fprintf(&sb, "%d %d free\n", r.Start, r.Length)
		}
	}
	return sb.String(), nil
}

package format

import (
	"strings"

	"github.com/rickchristie/diskpack"
)

// Overflow is drawn for allocation ids that do not fit in one digit.
const Overflow = '#'

// Dense draws one character per block: '.' for free blocks, the id for
// allocations 0-9 and [Overflow] for larger ids.
//
//	format.Dense(seq) // "0099811188827773336446555566......"
func Dense(seq *diskpack.Sequence) string {
	var sb strings.Builder
	sb.Grow(seq.Len())
	for _, b := range seq.Blocks() {
		id, ok := b.ID()
		switch {
		case !ok:
			sb.WriteByte('.')
		case id < 10:
			sb.WriteByte(byte('0' + id))
		default:
			sb.WriteByte(Overflow)
		}
	}
	return sb.String()
}

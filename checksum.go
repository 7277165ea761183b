package diskpack

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrChecksumOverflow is returned when the checksum does not fit in a
// uint64. A wrapped checksum would be silently wrong, so it is refused.
var ErrChecksumOverflow = errors.New("diskpack: checksum overflow")

// Checksum returns the sum of id*position over every allocated block.
// Free blocks contribute nothing.
//
// Products are computed at 128 bits; any product or running sum that
// leaves the uint64 range returns [ErrChecksumOverflow].
func Checksum(seq *Sequence) (uint64, error) {
	var sum uint64
	for position, b := range seq.blocks {
		id, ok := b.ID()
		if !ok {
			continue
		}

		hi, lo := bits.Mul64(uint64(id), uint64(position))
		if hi != 0 {
			return 0, fmt.Errorf(
				"%w: id %d at position %d",
				ErrChecksumOverflow, id, position,
			)
		}

		var carry uint64
		sum, carry = bits.Add64(sum, lo, 0)
		if carry != 0 {
			return 0, fmt.Errorf(
				"%w: at position %d",
				ErrChecksumOverflow, position,
			)
		}
	}
	return sum, nil
}

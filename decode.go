package diskpack

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidInputFormat is returned when a disk map contains a
// character that is neither an ASCII digit nor whitespace.
var ErrInvalidInputFormat = errors.New("diskpack: invalid input format")

// InputFormatError describes the offending character of a disk map.
// It unwraps to [ErrInvalidInputFormat].
type InputFormatError struct {
	// Offset is the byte offset of Char in the raw input.
	Offset int

	// Char is the rejected character.
	Char rune
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf(
		"%v: %q at offset %d",
		ErrInvalidInputFormat, e.Char, e.Offset,
	)
}

func (e *InputFormatError) Unwrap() error {
	return ErrInvalidInputFormat
}

// Decode expands a disk map into a Sequence.
//
// A disk map is a string of digits read as alternating run lengths:
// the 0th, 2nd, 4th... digits are allocation runs and the 1st, 3rd...
// are free runs. Every allocation run consumes the next id (starting
// at 0) even when its length is zero, in which case it produces no
// blocks. Whitespace anywhere in the input is ignored.
//
//	seq, _ := diskpack.Decode("12345")
//	// 0..111....22222
//
// An empty (or all-whitespace) input yields an empty Sequence.
func Decode(diskMap string) (*Sequence, error) {
	blocks := make([]Block, 0, len(diskMap)*5)
	isFile := true
	nextID := 0

	for offset, r := range diskMap {
		if unicode.IsSpace(r) {
			continue
		}
		if r < '0' || r > '9' {
			return nil, &InputFormatError{Offset: offset, Char: r}
		}

		size := int(r - '0')
		fill := Free
		if isFile {
			fill = File(nextID)
			nextID++
		}
		for range size {
			blocks = append(blocks, fill)
		}
		isFile = !isFile
	}

	return NewSequence(blocks), nil
}

package snapshot

import "fmt"

// Compression identifies the payload compression of a snapshot. The
// values are stored in the snapshot header; changing them breaks
// existing snapshots.
type Compression uint8

const (
	// CompressionZstd compresses the payload with zstd. Run lists of
	// real layouts are highly repetitive and shrink well.
	CompressionZstd Compression = 0

	// CompressionNone stores the CBOR payload as is.
	CompressionNone Compression = 1
)

// String returns the human-readable name of a compression tag.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression tag from its name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "zstd", "":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

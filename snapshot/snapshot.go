package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rickchristie/diskpack"
	"github.com/zeebo/blake3"
)

// Version is the document version written by [Write].
const Version = 1

// MaxBlocks is the largest layout a snapshot may describe.
const MaxBlocks = 1 << 26

// maxPayloadSize bounds both the bytes read from a snapshot and the
// decompressed CBOR payload.
const maxPayloadSize = 1 << 30

const (
	magic      = "DPKS"
	digestSize = 32
	headerSize = len(magic) + 1 + digestSize
)

var (
	// ErrBadMagic is returned when the input is not a snapshot.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrDigestMismatch is returned when the payload does not match
	// the recorded digest.
	ErrDigestMismatch = errors.New("snapshot: digest mismatch")

	// ErrUnsupportedVersion is returned for documents newer than
	// [Version].
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrCorrupt is returned when a decoded document is inconsistent.
	ErrCorrupt = errors.New("snapshot: corrupt document")
)

// Run is a maximal span of identical content.
type Run struct {
	// ID is the allocation id, or -1 for free space.
	ID int `cbor:"1,keyasint"`

	// Length is the number of blocks. Always > 0.
	Length int `cbor:"2,keyasint"`
}

// Document is the CBOR payload of a snapshot.
type Document struct {
	Version int   `cbor:"1,keyasint"`
	Blocks  int   `cbor:"2,keyasint"`
	Runs    []Run `cbor:"3,keyasint"`
}

// Options configures [Write].
type Options struct {
	// Compression selects the payload compression. Default: zstd.
	Compression Compression

	// Level is the zstd level (1-22). Zero uses the zstd default.
	Level int
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode builds the run-length document of seq.
func Encode(seq *diskpack.Sequence) Document {
	doc := Document{Version: Version, Blocks: seq.Len()}
	for _, b := range seq.Blocks() {
		id := -1
		if fileID, ok := b.ID(); ok {
			id = fileID
		}
		if n := len(doc.Runs); n > 0 && doc.Runs[n-1].ID == id {
			doc.Runs[n-1].Length++
			continue
		}
		doc.Runs = append(doc.Runs, Run{ID: id, Length: 1})
	}
	return doc
}

// Sequence expands the document back into a layout.
func (d Document) Sequence() (*diskpack.Sequence, error) {
	if d.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}
	if d.Blocks < 0 || d.Blocks > MaxBlocks {
		return nil, fmt.Errorf("%w: block count %d", ErrCorrupt, d.Blocks)
	}

	// Validate the runs before allocating so a header cannot request
	// more memory than its runs account for.
	total := 0
	for i, run := range d.Runs {
		if run.Length <= 0 || run.ID < -1 {
			return nil, fmt.Errorf("%w: run %d is %+v", ErrCorrupt, i, run)
		}
		if run.Length > d.Blocks-total {
			return nil, fmt.Errorf(
				"%w: runs exceed the %d blocks in the header",
				ErrCorrupt, d.Blocks,
			)
		}
		total += run.Length
	}
	if total != d.Blocks {
		return nil, fmt.Errorf(
			"%w: runs cover %d blocks, header says %d",
			ErrCorrupt, total, d.Blocks,
		)
	}

	blocks := make([]diskpack.Block, 0, d.Blocks)
	for _, run := range d.Runs {
		fill := diskpack.Free
		if run.ID >= 0 {
			fill = diskpack.File(run.ID)
		}
		for range run.Length {
			blocks = append(blocks, fill)
		}
	}
	return diskpack.NewSequence(blocks), nil
}

// Write encodes seq as a snapshot to w.
func Write(w io.Writer, seq *diskpack.Sequence, opts Options) error {
	raw, err := encMode.Marshal(Encode(seq))
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	payload, err := compress(opts.Compression, opts.Level, raw)
	if err != nil {
		return err
	}

	digest := blake3.Sum256(raw)
	header := make([]byte, 0, headerSize)
	header = append(header, magic...)
	header = append(header, byte(opts.Compression))
	header = append(header, digest[:]...)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("snapshot: write payload: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r and verifies its digest.
func Read(r io.Reader) (*diskpack.Sequence, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(headerSize+maxPayloadSize+1)))
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}
	if len(data) > headerSize+maxPayloadSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrCorrupt, headerSize+maxPayloadSize)
	}
	if len(data) < headerSize || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return nil, ErrBadMagic
	}

	tag := Compression(data[len(magic)])
	var digest [digestSize]byte
	copy(digest[:], data[len(magic)+1:headerSize])

	raw, err := decompress(tag, data[headerSize:])
	if err != nil {
		return nil, err
	}
	if blake3.Sum256(raw) != digest {
		return nil, ErrDigestMismatch
	}

	var doc Document
	if err := cbor.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return doc.Sequence()
}

// Digest returns the BLAKE3-256 digest of the canonical encoding of
// seq. Equal layouts have equal digests.
func Digest(seq *diskpack.Sequence) ([digestSize]byte, error) {
	raw, err := encMode.Marshal(Encode(seq))
	if err != nil {
		return [digestSize]byte{}, fmt.Errorf("snapshot: encode: %w", err)
	}
	return blake3.Sum256(raw), nil
}

func compress(tag Compression, level int, raw []byte) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return raw, nil
	case CompressionZstd:
		var options []zstd.EOption
		if level > 0 {
			options = append(options,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
		encoder, err := zstd.NewWriter(nil, options...)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd encoder: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(raw, nil), nil
	default:
		return nil, fmt.Errorf("snapshot: unknown compression tag %d", tag)
	}
}

func decompress(tag Compression, payload []byte) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayloadSize))
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd decoder: %w", err)
		}
		defer decoder.Close()
		raw, err := decoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression tag %d", ErrCorrupt, tag)
	}
}

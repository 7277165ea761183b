// Package snapshot exports a disk layout to a compact, self-checking
// binary form and reads it back.
//
// A snapshot is:
//
//	magic "DPKS" | compression tag (1 byte) | BLAKE3-256 digest (32 bytes) | payload
//
// The payload is a CBOR document (Core Deterministic Encoding) holding
// the layout as runs of identical content, optionally zstd-compressed.
// The digest covers the uncompressed CBOR, so any corruption of the
// payload or of the tag is detected on [Read].
//
// Snapshots are inspection artifacts: the same layout always encodes
// to the same bytes, which makes them easy to compare across runs.
package snapshot

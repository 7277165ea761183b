// Package diskpack compacts run-length encoded disk layouts.
//
// A disk map such as "2333133121414131402" describes alternating runs
// of allocated and free blocks. diskpack decodes it into a [Sequence],
// packs allocated content toward the front with a [CompactionStrategy],
// and reduces the result to a single [Checksum].
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/rickchristie/diskpack/executor"
//	)
//
//	func main() {
//	    sum, err := executor.RunRegion("2333133121414131402")
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(sum) // 2858
//	}
//
// # Strategies
//
// Two strategies live in the compaction package:
//
//   - Block-swap: repeatedly swaps the leftmost free block with the
//     rightmost allocated block. Allocations may end up fragmented.
//   - Region: moves each allocation, highest id first, as a whole into
//     the leftmost free region large enough to hold it. Allocations are
//     never split and never move right.
//
// # Observing a Run
//
// A [CompactionContext] carries [Stats] and dispatches [MoveEvent] and
// [SkipEvent] to hooks registered with hooks.Registry. See [MoveHook].
//
// # Other Packages
//
//   - executor: decode, compact, checksum in one call
//   - format: text renderings and before/after diffs of a layout
//   - snapshot: compressed, digest-checked export of a layout
//   - config: YAML configuration for the diskpack command
package diskpack

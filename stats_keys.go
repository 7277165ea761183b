package diskpack

// StatKey names a counter in [Stats].
type StatKey string

// KeyPrefix is the prefix of every standard diskpack key.
// Callers recording their own counters should use their own prefix
// (e.g., "myapp:") to avoid collisions.
const KeyPrefix = "diskpack:"

// Movement tracking.
const (
	// SCMoves counts relocations. Block-swap records one per swapped
	// block; region compaction records one per relocated allocation.
	SCMoves StatKey = "diskpack:moves"

	// SCBlocksMoved counts allocated blocks that changed position.
	SCBlocksMoved StatKey = "diskpack:blocks_moved"

	// SCSkips counts allocations left in place because no free region
	// to their left could hold them.
	SCSkips StatKey = "diskpack:skips"
)

// Region compaction tracking.
const (
	// SCRegions is the number of regions built before compaction.
	SCRegions StatKey = "diskpack:regions"

	// SCRegionScans counts regions inspected by best-fit searches.
	SCRegionScans StatKey = "diskpack:region_scans"
)

// Block-swap tracking.
const (
	// SCSwaps counts block exchanges.
	SCSwaps StatKey = "diskpack:swaps"
)

// Package compaction provides the standard CompactionStrategy
// implementations for packing a disk layout toward the front.
//
// # Strategies
//
//   - [BlockSwapStrategy]: swaps single blocks between the leftmost
//     free position and the rightmost allocated position until the two
//     cursors cross
//   - [RegionStrategy]: relocates whole allocations, highest id first,
//     into the leftmost free region that can hold them
//
// Use [ByName] to resolve a strategy from configuration.
package compaction

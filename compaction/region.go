package compaction

import (
	"fmt"

	"github.com/rickchristie/diskpack"
)

// RegionName is the registered name of [RegionStrategy].
const RegionName = "region"

// RegionStrategy relocates whole allocations. Allocations are visited
// once each, highest id first; each moves into the leftmost free
// region that starts before it and is large enough to hold it
// entirely. An allocation with no such region stays where it is.
//
// Allocations are never split and never move right. Space vacated by a
// move becomes a free region of its own and is not merged with free
// neighbours: a later allocation always has a lower id and sits left
// of every vacated span, so merging could not change any placement.
//
// Each search walks the region list from the left, so the worst case
// is quadratic in the number of regions.
//
// Example:
//
//	strategy := compaction.NewRegion()
type RegionStrategy struct{}

// NewRegion creates a RegionStrategy.
func NewRegion() *RegionStrategy {
	return &RegionStrategy{}
}

// Name implements diskpack.CompactionStrategy.
func (s *RegionStrategy) Name() string {
	return RegionName
}

// Compact implements diskpack.CompactionStrategy.
func (s *RegionStrategy) Compact(cc *diskpack.CompactionContext) error {
	seq := cc.Sequence()

	idx, err := buildRegionIndex(seq)
	if err != nil {
		return err
	}
	cc.Stats().IncrCounter(diskpack.SCRegions, int64(idx.Len()))

	// Every id >= ceiling is final.
	ceiling := idx.maxID + 1
	for ceiling > 0 {
		alloc, ok := idx.highestBelow(ceiling)
		if !ok {
			break
		}
		id, _ := alloc.Content.ID()
		ceiling = id

		target, found, scanned := idx.firstFit(alloc.Length, alloc.Start)
		cc.Stats().IncrCounter(diskpack.SCRegionScans, int64(scanned))
		if !found {
			cc.PublishSkip(diskpack.SkipEvent{
				ID:     id,
				Start:  alloc.Start,
				Length: alloc.Length,
			})
			continue
		}

		idx.relocate(alloc, target)
		cc.PublishMove(diskpack.MoveEvent{
			ID:     id,
			From:   alloc.Start,
			To:     target.Start,
			Length: alloc.Length,
		})
	}

	if err := seq.Replace(idx.expand()); err != nil {
		return fmt.Errorf("region compaction: %w", err)
	}
	return nil
}

// Regions splits seq into its maximal runs of identical content, in
// position order.
func Regions(seq *diskpack.Sequence) ([]Region, error) {
	idx, err := buildRegionIndex(seq)
	if err != nil {
		return nil, err
	}
	return idx.Regions(), nil
}

// Compile-time check.
var _ diskpack.CompactionStrategy = (*RegionStrategy)(nil)

package compaction

import (
	"github.com/google/btree"
	"github.com/rickchristie/diskpack"
)

// regionDegree is the B-tree degree of the region index. Regions are
// few (low thousands), so a small node keeps inserts cheap.
const regionDegree = 16

// Region is a maximal run of adjacent blocks with identical content:
// all free, or all belonging to one allocation.
type Region struct {
	// Start is the position of the first block.
	Start int

	// Length is the number of blocks. Always > 0 inside an index.
	Length int

	// Content is diskpack.Free or the allocation's block.
	Content diskpack.Block
}

// End returns the position just past the region.
func (r Region) End() int {
	return r.Start + r.Length
}

func regionLess(a, b Region) bool {
	return a.Start < b.Start
}

// regionIndex is the working region list of one region compaction.
// Regions are ordered by Start, so ascending iteration is the
// left-to-right order every search depends on. Regions never overlap
// and together always cover the whole layout.
type regionIndex struct {
	tree *btree.BTreeG[Region]

	// locations maps an allocation id to the Start of its region.
	locations map[int]int
	maxID     int
	blocks    int
}

// buildRegionIndex scans seq left to right, merging adjacent blocks of
// identical content into one Region.
func buildRegionIndex(seq *diskpack.Sequence) (*regionIndex, error) {
	idx := &regionIndex{
		tree:      btree.NewG[Region](regionDegree, regionLess),
		locations: make(map[int]int),
		maxID:     -1,
		blocks:    seq.Len(),
	}

	var current Region
	open := false
	for position := 0; position < seq.Len(); position++ {
		b, err := seq.At(position)
		if err != nil {
			return nil, err
		}
		if open && b == current.Content {
			current.Length++
			continue
		}
		if open {
			idx.put(current)
		}
		current = Region{Start: position, Length: 1, Content: b}
		open = true
	}
	if open {
		idx.put(current)
	}
	return idx, nil
}

// put inserts r, replacing any region with the same Start.
func (idx *regionIndex) put(r Region) {
	idx.tree.ReplaceOrInsert(r)
	if id, ok := r.Content.ID(); ok {
		idx.locations[id] = r.Start
		if id > idx.maxID {
			idx.maxID = id
		}
	}
}

// Len returns the number of regions.
func (idx *regionIndex) Len() int {
	return idx.tree.Len()
}

// highestBelow returns the region of the highest allocation id that is
// strictly below ceiling. Ids whose allocation has no blocks (a zero
// length run in the disk map) have no region and are passed over.
func (idx *regionIndex) highestBelow(ceiling int) (Region, bool) {
	if ceiling > idx.maxID+1 {
		ceiling = idx.maxID + 1
	}
	for id := ceiling - 1; id >= 0; id-- {
		start, ok := idx.locations[id]
		if !ok {
			continue
		}
		r, ok := idx.tree.Get(Region{Start: start})
		if !ok {
			return Region{}, false
		}
		return r, true
	}
	return Region{}, false
}

// firstFit returns the leftmost free region starting before limit
// whose length is at least length. scanned is the number of regions
// inspected.
func (idx *regionIndex) firstFit(length, limit int) (found Region, ok bool, scanned int) {
	idx.tree.AscendLessThan(Region{Start: limit}, func(r Region) bool {
		scanned++
		if r.Content.IsFree() && r.Length >= length {
			found, ok = r, true
			return false
		}
		return true
	})
	return found, ok, scanned
}

// relocate moves the allocation region alloc into the front of the
// free region target. The vacated span becomes a free region of the
// same length; it is not merged with free neighbours. The remainder of
// target, if any, stays free.
func (idx *regionIndex) relocate(alloc, target Region) {
	idx.tree.ReplaceOrInsert(Region{
		Start:   alloc.Start,
		Length:  alloc.Length,
		Content: diskpack.Free,
	})
	idx.tree.Delete(target)

	idx.put(Region{
		Start:   target.Start,
		Length:  alloc.Length,
		Content: alloc.Content,
	})
	if remainder := target.Length - alloc.Length; remainder > 0 {
		idx.put(Region{
			Start:   target.Start + alloc.Length,
			Length:  remainder,
			Content: diskpack.Free,
		})
	}
}

// Regions returns all regions in position order.
func (idx *regionIndex) Regions() []Region {
	out := make([]Region, 0, idx.tree.Len())
	idx.tree.Ascend(func(r Region) bool {
		out = append(out, r)
		return true
	})
	return out
}

// expand reconstitutes the block layout from the regions.
func (idx *regionIndex) expand() []diskpack.Block {
	blocks := make([]diskpack.Block, 0, idx.blocks)
	idx.tree.Ascend(func(r Region) bool {
		for range r.Length {
			blocks = append(blocks, r.Content)
		}
		return true
	})
	return blocks
}

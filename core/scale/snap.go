package scale

import (
	"math"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Snap re-snaps a selected reference size to a member of a size list.
//
// The selected size has to be a member of the current size list. Whenever
// the list is regenerated and no longer contains it, the nearest member is
// chosen instead; of two equally near members the smaller one wins. If the
// selected size is still a member, it is returned unchanged.
// For an empty list Snap returns (selected, false).
func Snap(selected float64, sizes []float64) (float64, bool) {
	if len(sizes) == 0 {
		return selected, false
	}
	if math.IsNaN(selected) {
		return sizes[0], true
	}
	tree := redblacktree.NewWith(utils.Float64Comparator)
	for i, size := range sizes {
		if math.IsNaN(size) {
			continue
		}
		if _, found := tree.Get(size); !found {
			tree.Put(size, i)
		}
	}
	floor, hasFloor := tree.Floor(selected)
	ceil, hasCeil := tree.Ceiling(selected)
	switch {
	case hasFloor && !hasCeil:
		return floor.Key.(float64), true
	case hasCeil && !hasFloor:
		return ceil.Key.(float64), true
	case !hasFloor && !hasCeil:
		return selected, false
	}
	lo, hi := floor.Key.(float64), ceil.Key.(float64)
	if lo == selected {
		return lo, true
	}
	if hi-selected < selected-lo {
		tracer().Debugf("selected size %g snaps to %g", selected, hi)
		return hi, true
	}
	tracer().Debugf("selected size %g snaps to %g", selected, lo)
	return lo, true
}

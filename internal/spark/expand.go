// Package spark compiles filter lists into the backend's spark-id query.
//
// A spark id is a factor id with a single level digit appended: factor 17
// at level 3 is 173. Global categories compile to AND-groups of OR-arrays,
// main-parent categories to one flat capped set, and optional categories
// to bare factor ids.
package spark

import (
	"slices"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

// ID concatenates a factor id and a level digit.
func ID(factorID, level int) int {
	return factorID*10 + level
}

// Split is the inverse of [ID].
func Split(sparkID int) (factorID, level int) {
	return sparkID / 10, sparkID % 10
}

// expand emits the spark ids of one filter with max clamped to limit.
// An inverted range emits nothing.
func expand(f filter.FactorFilter, catalog []filter.Descriptor, limit int) []int {
	hi := min(f.Max, limit)

	var ids []int

	for level := f.Min; level <= hi; level++ {
		if !f.IsWildcard() {
			ids = append(ids, ID(f.FactorID, level))

			continue
		}

		for _, d := range catalog {
			ids = append(ids, ID(d.ID, level))
		}
	}

	return ids
}

// ExpandToFlatIDs unions the spark ids of every filter into one sorted,
// deduplicated set. Levels above limit are never emitted.
func ExpandToFlatIDs(filters []filter.FactorFilter, catalog []filter.Descriptor, limit int) []int {
	seen := make(map[int]struct{})

	var ids []int

	for _, f := range filters {
		for _, id := range expand(f, catalog, limit) {
			if _, ok := seen[id]; ok {
				continue
			}

			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)

	return ids
}

// ExpandToGroups expands each filter into its own OR-array. Filters that
// emit nothing are dropped. The backend requires one id from every group.
func ExpandToGroups(filters []filter.FactorFilter, catalog []filter.Descriptor, limit int) [][]int {
	var groups [][]int

	for _, f := range filters {
		ids := expand(f, catalog, limit)
		if len(ids) == 0 {
			continue
		}

		groups = append(groups, ids)
	}

	return groups
}

// ExpandToFactorIDs collects the concrete factor ids of optional filters,
// sorted and deduplicated. Wildcard entries contribute nothing.
func ExpandToFactorIDs(filters []filter.FactorFilter) []int {
	var ids []int

	for _, f := range filters {
		if f.IsWildcard() || slices.Contains(ids, f.FactorID) {
			continue
		}

		ids = append(ids, f.FactorID)
	}

	slices.Sort(ids)

	return ids
}

// MaxMin is the largest Min across filters, or 0 for an empty list.
//
// The backend takes a single "at least N qualifying factors" threshold per
// main-parent category, so with several filters this is an approximation.
func MaxMin(filters []filter.FactorFilter) int {
	best := 0
	for _, f := range filters {
		best = max(best, f.Min)
	}

	return best
}

// NineStar reports whether any filter demands level 9.
func NineStar(filters []filter.FactorFilter) bool {
	return slices.ContainsFunc(filters, func(f filter.FactorFilter) bool {
		return f.Min >= filter.MaxLevel
	})
}

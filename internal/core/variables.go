package core

import (
	"slices"
	"sort"
)

// buildVariables is the Variable Index Builder stage (spec.md §4.2): it
// derives TIME_BLOCKS from the day's CenterHours and emits the sparse
// (t, c, s) triple index over TIME_BLOCKS × STAFF_CHILD. Eligibility is
// enforced structurally here (I1): a triple for a disallowed (c,s) pair
// is never created, so later stages never need a staff-child constraint
// row, only a pass-through toggle (§4.3.2).
func buildVariables(model *Model) error {
	rows := model.centerHoursForDay
	if len(rows) == 0 {
		model.TimeBlocks = nil
		model.Index = nil
		return nil
	}

	var openIdx, closeIdx int
	first := true
	for _, row := range rows {
		if first {
			openIdx, closeIdx = row.Open, row.Close
			first = false
			continue
		}
		if row.Open < openIdx {
			openIdx = row.Open
		}
		if row.Close > closeIdx {
			closeIdx = row.Close
		}
	}

	timeBlocks := make([]int, 0, closeIdx-openIdx)
	for t := openIdx; t < closeIdx; t++ {
		timeBlocks = append(timeBlocks, t)
	}
	model.TimeBlocks = timeBlocks

	// STAFF_CHILD must be stable and deduplicated before being used as
	// the Cartesian spine; sort for deterministic iteration order so
	// that INDEX_DF construction (and every downstream constraint loop)
	// is reproducible run to run, then drop repeated pairs.
	pairs := append([]StaffChildPair(nil), model.StaffChild...)
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Child != pairs[j].Child {
			return pairs[i].Child < pairs[j].Child
		}
		return pairs[i].Staff < pairs[j].Staff
	})
	pairs = slices.Compact(pairs)

	index := make([]VarKey, 0, len(timeBlocks)*len(pairs))
	for _, t := range timeBlocks {
		for _, pair := range pairs {
			index = append(index, VarKey{Time: t, Child: pair.Child, Staff: pair.Staff})
		}
	}
	model.Index = index
	return nil
}

package core

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"CenterScheduling/pkg/log"
)

// assignedThreshold is the "effectively 1" cutoff for a solver's binary
// variable value, matching the ecosystem convention (nextmv's own
// shift-scheduling template reads x >= 0.9 as assigned) rather than
// testing for exact equality against floating-point solver output.
const assignedThreshold = 0.9

// Row is one line of the materialized schedule: a time block plus the
// child assigned to each staff member present that day (spec.md §4.7).
type Row struct {
	Day       string
	TimeBlock string
	Staff     map[string]string // staff -> child, omitted when staff is unassigned
}

// Result is the per-day wide schedule table the core hands back to the
// (out of scope) reporting layer.
type Result struct {
	Day  string
	Rows []Row
}

// materialize is the Solution Materializer (spec.md §4.7): it reads the
// solved variable values into the wide (time x staff -> child) layout,
// applying the lexicographic tie-break on any degenerate multi-child
// assignment (a SolutionWarning-class condition, spec.md §7).
func materialize(model *Model, solution *Solution) *Result {
	result := &Result{Day: model.Day}
	if len(model.TimeBlocks) == 0 {
		return result
	}

	byTime := map[int]map[string][]string{} // time -> staff -> candidate children
	for key, variable := range model.X {
		if solution.Solution.Value(variable) < assignedThreshold {
			continue
		}
		if byTime[key.Time] == nil {
			byTime[key.Time] = map[string][]string{}
		}
		byTime[key.Time][key.Staff] = append(byTime[key.Time][key.Staff], key.Child)
	}

	for _, t := range model.TimeBlocks {
		row := Row{
			Day:       model.Day,
			TimeBlock: IndexToTime(t),
			Staff:     map[string]string{},
		}
		staffAtT := byTime[t]
		staffNames := make([]string, 0, len(staffAtT))
		for staff := range staffAtT {
			staffNames = append(staffNames, staff)
		}
		sort.Strings(staffNames)
		for _, staff := range staffNames {
			children := staffAtT[staff]
			sort.Strings(children)
			if len(children) > 1 {
				model.warn(fmt.Sprintf("time %s: staff %s assigned %d children, keeping %s", row.TimeBlock, staff, len(children), children[0]))
				log.L().Warn("materialize_multi_child", zap.String("time", row.TimeBlock), zap.String("staff", staff), zap.Strings("children", children))
			}
			row.Staff[staff] = children[0]
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

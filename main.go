// Command main is the historical direct-MIP prototype: the staffing
// problem built var-by-var against the solver package, predating the
// internal/core package's typed pipeline. It is kept standing as the
// duplicate/legacy entry point spec.md's Design Notes describe;
// cmd/schedule is the production orchestrator.
package main

import (
	"fmt"
	"log"

	"github.com/nextmv-io/sdk/mip"
)

// block is one (time, child, staff) triple of a single hardcoded day,
// the same shape internal/core.VarKey generalizes.
type block struct {
	time  int
	child string
	staff string
}

func main() {
	timeBlocks := []int{18, 19} // 09:00, 09:30
	pairs := []struct{ child, staff string }{
		{"A", "s1"},
		{"B", "s1"},
	}

	m := mip.NewModel()
	m.Objective().SetMaximize()

	x := map[block]mip.Bool{}
	for _, t := range timeBlocks {
		for _, pair := range pairs {
			key := block{time: t, child: pair.child, staff: pair.staff}
			x[key] = m.NewBool()
			m.Objective().NewTerm(1.0, x[key])
		}
	}

	// one child per staff member per block
	for _, t := range timeBlocks {
		byStaff := map[string][]mip.Bool{}
		for _, pair := range pairs {
			byStaff[pair.staff] = append(byStaff[pair.staff], x[block{time: t, child: pair.child, staff: pair.staff}])
		}
		for _, vars := range byStaff {
			constraint := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, v := range vars {
				constraint.NewTerm(1.0, v)
			}
		}
	}

	// switch penalty: discourage a staff member moving between children
	// across adjacent blocks
	for i := 0; i+1 < len(timeBlocks); i++ {
		t, next := timeBlocks[i], timeBlocks[i+1]
		for _, pair := range pairs {
			current, currentOK := x[block{time: t, child: pair.child, staff: pair.staff}]
			following, followingOK := x[block{time: next, child: pair.child, staff: pair.staff}]
			if !currentOK || !followingOK {
				continue
			}
			z := m.NewBool()
			upper := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			upper.NewTerm(1.0, current)
			upper.NewTerm(-1.0, following)
			upper.NewTerm(-1.0, z)
			lower := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			lower.NewTerm(-1.0, current)
			lower.NewTerm(1.0, following)
			lower.NewTerm(-1.0, z)
			m.Objective().NewTerm(-0.1, z)
		}
	}

	solver, err := mip.NewSolver(mip.CBC, m)
	if err != nil {
		log.Fatalf("new solver: %v", err)
	}

	solution, err := solver.Solve(mip.NewSolveOptions())
	if err != nil {
		log.Fatalf("solve: %v", err)
	}
	if !solution.IsOptimal() && !solution.IsSubOptimal() {
		log.Fatal("no feasible schedule")
	}

	for _, t := range timeBlocks {
		for _, pair := range pairs {
			key := block{time: t, child: pair.child, staff: pair.staff}
			if solution.Value(x[key]) >= 0.9 {
				fmt.Printf("block %d: %s sits with %s\n", t, pair.staff, pair.child)
			}
		}
	}
}

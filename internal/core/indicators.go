package core

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"
)

// addIndicators is the Indicator Layer (spec.md §4.4): it introduces the
// binary auxiliaries that linearize the two nonlinear objective
// penalties, plus the optional no-staff indicator when the open
// question of Design Notes §9 resolves to "live" (NoStaffPenalty != 0).
func addIndicators(model *Model) error {
	byTimeChild := map[timeEntityKey][]VarKey{}
	for key := range model.X {
		bucketKey := timeEntityKey{Time: key.Time, Entity: key.Child}
		byTimeChild[bucketKey] = append(byTimeChild[bucketKey], key)
	}
	addChild2StaffIndicator(model, byTimeChild)
	addSwitchIndicator(model)
	if model.Config.NoStaffPenalty != 0 {
		addNoStaffIndicator(model, byTimeChild)
	}
	return nil
}

// addChild2StaffIndicator adds z_child_2_staff[t,c] with
// sum_s X[t,c,s] <= z_child_2_staff[t,c] + 1 (spec.md §4.4.1).
func addChild2StaffIndicator(model *Model, byTimeChild map[timeEntityKey][]VarKey) {
	model.ZChild2Staff = map[int]map[string]mip.Bool{}
	for _, bucketKey := range sortedBucketKeys(byTimeChild) {
		t, child := bucketKey.Time, bucketKey.Entity
		indicator := model.MIP.NewBool()
		if model.ZChild2Staff[t] == nil {
			model.ZChild2Staff[t] = map[string]mip.Bool{}
		}
		model.ZChild2Staff[t][child] = indicator

		constraint := model.MIP.NewConstraint(mip.LessThanOrEqual, 1.0)
		for _, key := range byTimeChild[bucketKey] {
			constraint.NewTerm(1.0, model.X[key])
		}
		constraint.NewTerm(-1.0, indicator)
	}
}

// addSwitchIndicator adds z_switch[t,s] for every adjacent block pair,
// per spec.md §4.4.2.
func addSwitchIndicator(model *Model) {
	model.ZSwitch = map[int]map[string]mip.Bool{}
	maxTime := model.TimeBlocks[len(model.TimeBlocks)-1]

	type tsKey struct {
		t     int
		staff string
	}
	seen := map[tsKey]struct{}{}
	for key := range model.X {
		if key.Time+1 > maxTime {
			continue
		}
		nextKey := VarKey{Time: key.Time + 1, Child: key.Child, Staff: key.Staff}
		if _, nextExists := model.X[nextKey]; !nextExists {
			continue
		}
		seen[tsKey{key.Time, key.Staff}] = struct{}{}
	}

	ordered := make([]tsKey, 0, len(seen))
	for k := range seen {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].t != ordered[j].t {
			return ordered[i].t < ordered[j].t
		}
		return ordered[i].staff < ordered[j].staff
	})

	for _, ts := range ordered {
		indicator := model.MIP.NewBool()
		if model.ZSwitch[ts.t] == nil {
			model.ZSwitch[ts.t] = map[string]mip.Bool{}
		}
		model.ZSwitch[ts.t][ts.staff] = indicator

		for key := range model.X {
			if key.Time != ts.t || key.Staff != ts.staff {
				continue
			}
			nextKey := VarKey{Time: ts.t + 1, Child: key.Child, Staff: ts.staff}
			nextVar, nextExists := model.X[nextKey]
			if !nextExists {
				continue
			}
			// X[t,c,s] - X[t+1,c,s] <= z_switch[t,s]
			upper := model.MIP.NewConstraint(mip.LessThanOrEqual, 0.0)
			upper.NewTerm(1.0, model.X[key])
			upper.NewTerm(-1.0, nextVar)
			upper.NewTerm(-1.0, indicator)
			// -(X[t,c,s] - X[t+1,c,s]) <= z_switch[t,s]
			lower := model.MIP.NewConstraint(mip.LessThanOrEqual, 0.0)
			lower.NewTerm(-1.0, model.X[key])
			lower.NewTerm(1.0, nextVar)
			lower.NewTerm(-1.0, indicator)
		}
	}
}

// addNoStaffIndicator adds z_child_no_staff[t,c] with
// sum_s X[t,c,s] >= 1 - z_child_no_staff[t,c] (spec.md §4.4.3), built
// only when the objective will reference it.
func addNoStaffIndicator(model *Model, byTimeChild map[timeEntityKey][]VarKey) {
	model.ZNoStaff = map[int]map[string]mip.Bool{}
	for _, bucketKey := range sortedBucketKeys(byTimeChild) {
		t, child := bucketKey.Time, bucketKey.Entity
		indicator := model.MIP.NewBool()
		if model.ZNoStaff[t] == nil {
			model.ZNoStaff[t] = map[string]mip.Bool{}
		}
		model.ZNoStaff[t][child] = indicator

		// sum_s X[t,c,s] + z_child_no_staff[t,c] >= 1
		constraint := model.MIP.NewConstraint(mip.GreaterThanOrEqual, 1.0)
		for _, key := range byTimeChild[bucketKey] {
			constraint.NewTerm(1.0, model.X[key])
		}
		constraint.NewTerm(1.0, indicator)
	}
}

package core

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"
)

const (
	// lunchStart/lunchEnd are the half-hour indices of [11:30, 14:00),
	// span 5, per spec.md §4.3.4.
	lunchStart = 23
	lunchEnd   = 28
)

// applyHardConstraints is the Hard Constraint Layer (spec.md §4.3). It
// first decides, purely over Model.Index, which (t,c,s) triples are
// fixed to zero (center hours, absence-type fixings); it then
// instantiates the MIP model and one mip.Bool per surviving key — a
// fixed key never gets a variable at all, which is the Go-native
// reading of "fix() removes the variable from the LP" (Design Notes §9)
// — and finally adds the constraint families that are genuine LP rows:
// one-place-per-time, lunch, and the optional junior-staff cap.
func applyHardConstraints(model *Model) error {
	if len(model.Index) == 0 {
		return &ModelBuildError{Reason: "STAFF_CHILD is empty: no decision variables to build"}
	}

	minTime, maxTime := model.TimeBlocks[0], model.TimeBlocks[len(model.TimeBlocks)-1]

	if model.Config.isEnabled(ConstraintCenterHours) {
		applyCenterHours(model)
	}
	if model.Config.isEnabled(ConstraintPTO) {
		fixAbsenceType(model, AbsencePTO, minTime, maxTime, fixByStaff)
	}
	if model.Config.isEnabled(ConstraintParentTraining) {
		fixAbsenceType(model, AbsenceParentTraining, minTime, maxTime, fixByChild)
	}
	if model.Config.isEnabled(ConstraintTeamMeeting) {
		fixAbsenceType(model, AbsenceTeamMeeting, minTime, maxTime, fixEveryone)
	}
	if model.Config.isEnabled(ConstraintNapTime) {
		fixAbsenceType(model, AbsenceNap, minTime, maxTime, fixByChild)
	}
	if model.Config.isEnabled(ConstraintSpeechTherapy) {
		fixAbsenceType(model, AbsenceSpeech, minTime, maxTime, fixByChild)
	}
	if model.Config.isEnabled(ConstraintArrivalDeparture) {
		fixAbsenceType(model, AbsenceLateArrival, minTime, maxTime, fixByChild)
		fixAbsenceType(model, AbsenceLeavesEarly, minTime, maxTime, fixByChild)
	}

	instantiateVariables(model)

	if model.Config.isEnabled(ConstraintOnePlacePerTime) {
		addOnePlacePerTime(model)
	}
	if model.Config.isEnabled(ConstraintLunch) {
		addLunchConstraint(model)
	}
	if model.Config.isEnabled(ConstraintJuniorStaff) {
		addJuniorStaffConstraint(model)
	}

	return nil
}

// applyCenterHours fixes every (t,c,s) whose t falls outside
// [min(TimeBlocks), max(TimeBlocks)+1), per spec.md §4.3.1.
func applyCenterHours(model *Model) {
	if len(model.TimeBlocks) == 0 {
		return
	}
	open, close := model.TimeBlocks[0], model.TimeBlocks[len(model.TimeBlocks)-1]+1
	for _, key := range model.Index {
		if key.Time < open || key.Time >= close {
			model.fix(key)
		}
	}
}

// absenceFixScope decides which variables an absence row knocks out.
type absenceFixScope func(model *Model, name string, t int)

func fixByStaff(model *Model, name string, t int) {
	for _, key := range model.Index {
		if key.Time == t && key.Staff == name {
			model.fix(key)
		}
	}
}

func fixByChild(model *Model, name string, t int) {
	for _, key := range model.Index {
		if key.Time == t && key.Child == name {
			model.fix(key)
		}
	}
}

func fixEveryone(model *Model, _ string, t int) {
	for _, key := range model.Index {
		if key.Time == t {
			model.fix(key)
		}
	}
}

// fixAbsenceType applies one row of the §4.3.5 table: clamp/default the
// row's [start,end) against the model's time window, skip a degenerate
// or empty interval (I4), and fix every variable the scope selects.
func fixAbsenceType(model *Model, absenceType AbsenceType, minTime, maxTime int, scope absenceFixScope) {
	for _, absence := range model.Absences {
		if absence.Type != absenceType {
			continue
		}
		start, end := clampAbsenceWindow(absence, minTime, maxTime)
		if start >= end {
			continue
		}
		for t := start; t < end; t++ {
			scope(model, absence.Name, t)
		}
	}
}

// clampAbsenceWindow mirrors original_source's _clean_start_end:
// default a missing start to minTime and a missing end to maxTime+1,
// the exclusive end of the window, then raise start to at least minTime
// and lower end to at most maxTime+1 (I4).
func clampAbsenceWindow(absence Absence, minTime, maxTime int) (int, int) {
	start := ParseTimeIndex(absence.Start, minTime)
	end := ParseTimeIndex(absence.End, maxTime+1)
	if start < minTime {
		start = minTime
	}
	if end > maxTime+1 {
		end = maxTime + 1
	}
	return start, end
}

// instantiateVariables creates the MIP model and one mip.Bool per
// surviving (non-fixed) key of Index.
func instantiateVariables(model *Model) {
	m := mip.NewModel()
	model.MIP = &m
	model.X = make(map[VarKey]mip.Bool, len(model.Index))
	for _, key := range model.Index {
		if model.isFixed(key) {
			continue
		}
		model.X[key] = m.NewBool()
	}
}

// addOnePlacePerTime adds §4.3.3: for each (t,s), sum_c X[t,c,s] <= 1.
func addOnePlacePerTime(model *Model) {
	byTimeStaff := map[timeEntityKey][]VarKey{}
	for key := range model.X {
		bucketKey := timeEntityKey{Time: key.Time, Entity: key.Staff}
		byTimeStaff[bucketKey] = append(byTimeStaff[bucketKey], key)
	}
	for _, bucketKey := range sortedBucketKeys(byTimeStaff) {
		constraint := model.MIP.NewConstraint(mip.LessThanOrEqual, 1.0)
		for _, key := range byTimeStaff[bucketKey] {
			constraint.NewTerm(1.0, model.X[key])
		}
	}
}

// addLunchConstraint adds §4.3.4: for each staff, at most span-1 of the
// span lunch-window blocks may be worked.
func addLunchConstraint(model *Model) {
	windowStart := maxInt(lunchStart, model.TimeBlocks[0])
	windowEnd := minInt(lunchEnd, model.TimeBlocks[len(model.TimeBlocks)-1]+1)
	span := lunchEnd - lunchStart
	if windowStart >= windowEnd {
		return
	}

	byStaff := map[string][]VarKey{}
	for key := range model.X {
		if key.Time >= windowStart && key.Time < windowEnd {
			byStaff[key.Staff] = append(byStaff[key.Staff], key)
		}
	}
	staffNames := make([]string, 0, len(byStaff))
	for name := range byStaff {
		staffNames = append(staffNames, name)
	}
	sort.Strings(staffNames)
	for _, staff := range staffNames {
		constraint := model.MIP.NewConstraint(mip.LessThanOrEqual, float64(span-1))
		for _, key := range byStaff[staff] {
			constraint.NewTerm(1.0, model.X[key])
		}
	}
}

// addJuniorStaffConstraint is the optional legacy cap from the Design
// Notes: sum_{s in JSTAFF} X[t,c,s] <= 1.
func addJuniorStaffConstraint(model *Model) {
	jstaffSet := make(map[string]struct{}, len(model.JStaff))
	for _, staff := range model.JStaff {
		jstaffSet[staff] = struct{}{}
	}
	byTimeChild := map[timeEntityKey][]VarKey{}
	for key := range model.X {
		if _, junior := jstaffSet[key.Staff]; !junior {
			continue
		}
		bucketKey := timeEntityKey{Time: key.Time, Entity: key.Child}
		byTimeChild[bucketKey] = append(byTimeChild[bucketKey], key)
	}
	for _, bucketKey := range sortedBucketKeys(byTimeChild) {
		constraint := model.MIP.NewConstraint(mip.LessThanOrEqual, 1.0)
		for _, key := range byTimeChild[bucketKey] {
			constraint.NewTerm(1.0, model.X[key])
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// sortedBucketKeys gives deterministic iteration order over a
// time/entity bucket map, ordered by time then entity name.
func sortedBucketKeys(buckets map[timeEntityKey][]VarKey) []timeEntityKey {
	keys := make([]timeEntityKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Time != keys[j].Time {
			return keys[i].Time < keys[j].Time
		}
		return keys[i].Entity < keys[j].Entity
	})
	return keys
}

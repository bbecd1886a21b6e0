// Package core builds and solves the per-day staffing MIP: one binary
// decision variable per (time block, child, staff) triple, a family of
// hard constraints, linearized indicator variables, a reward-weighted
// objective, and a solver invocation. It is deliberately single-threaded
// per day; the orchestration shell (cmd/schedule) owns any parallelism
// across days.
package core

import "github.com/nextmv-io/sdk/mip"

// ConstraintName enumerates the toggleable hard-constraint subfamilies of
// section 4.3. applyHardConstraints applies the center-hours and absence
// fixings first and adds the constraint rows after them, so the enum
// order is not the order of application.
type ConstraintName string

const (
	ConstraintCenterHours      ConstraintName = "center_hours"
	ConstraintStaffChild       ConstraintName = "staff_child"
	ConstraintOnePlacePerTime  ConstraintName = "one_place_per_time"
	ConstraintLunch            ConstraintName = "lunch"
	ConstraintPTO              ConstraintName = "pto"
	ConstraintParentTraining   ConstraintName = "parent_training"
	ConstraintTeamMeeting      ConstraintName = "team_meeting"
	ConstraintNapTime          ConstraintName = "nap_time"
	ConstraintSpeechTherapy    ConstraintName = "speech_therapy"
	ConstraintArrivalDeparture ConstraintName = "arrival_departure"
	// ConstraintJuniorStaff is not in the enumerated set of spec.md §6;
	// it is the optional, off-by-default legacy constraint from the
	// Design Notes (present in some revisions, absent in later ones).
	ConstraintJuniorStaff ConstraintName = "junior_staff"
)

// DefaultConstraintToggles returns every named constraint enabled except
// the legacy junior-staff cap, matching spec.md §6's "Default: all true"
// for the enumerated set and the Design Notes' "treat as optional" for
// the one that isn't enumerated.
func DefaultConstraintToggles() map[ConstraintName]bool {
	return map[ConstraintName]bool{
		ConstraintCenterHours:      true,
		ConstraintStaffChild:       true,
		ConstraintOnePlacePerTime:  true,
		ConstraintLunch:            true,
		ConstraintPTO:              true,
		ConstraintParentTraining:   true,
		ConstraintTeamMeeting:      true,
		ConstraintNapTime:          true,
		ConstraintSpeechTherapy:    true,
		ConstraintArrivalDeparture: true,
		ConstraintJuniorStaff:      false,
	}
}

// Config carries the two configuration maps of spec.md §6 plus the solver
// policy knobs of §4.6/§6.
type Config struct {
	ConstraintToggles    map[ConstraintName]bool
	RewardForRole        map[string]float64
	NoStaffPenalty       float64
	SolverBackend        string
	SolverMaxDuration    int // seconds; 0 means the solver's own default
	SolverRelativeMIPGap float64
}

func (c Config) isEnabled(name ConstraintName) bool {
	if c.ConstraintToggles == nil {
		return true
	}
	enabled, known := c.ConstraintToggles[name]
	return !known || enabled
}

// CenterHours is one row of the CenterHours table (spec.md §3), already
// day-filtered and time-normalized by the Input Normalizer.
type CenterHours struct {
	Day   string
	Open  int // half-hour index
	Close int // half-hour index
}

// StaffChildPair is one allowed (Child, Staff) pairing, canonical names.
type StaffChildPair struct {
	Child string
	Staff string
}

// AbsenceType enumerates the normalized Absences.Type values of spec.md §4.3.5.
type AbsenceType string

const (
	AbsencePTO            AbsenceType = "pto"
	AbsenceParentTraining AbsenceType = "parent training"
	AbsenceTeamMeeting    AbsenceType = "team meeting"
	AbsenceNap            AbsenceType = "nap"
	AbsenceSpeech         AbsenceType = "speech"
	AbsenceLateArrival    AbsenceType = "late arrival"
	AbsenceLeavesEarly    AbsenceType = "leaves early"
)

// Absence is one row of the Absences table (spec.md §3), canonical name
// and lowercased/trimmed Type, still carrying the raw Start/End so the
// Hard Constraint Layer can apply its own clamping/defaulting rules.
type Absence struct {
	Name  string
	Day   string // empty means "applies to every day" (I5)
	Type  AbsenceType
	Start RawTime
	End   RawTime
}

// RawTime is an unparsed time value as it arrived from the ingestion
// layer: a numeric half-hour, an "HH:MM[:SS]" string, or empty/missing.
// ParseTimeIndex (normalize.go) is the single place that turns this into
// a half-hour index, per spec.md §4.1.
type RawTime struct {
	Present    bool
	Numeric    float64
	HasNumeric bool
	Text       string
}

// Role is one row of the Roles table (spec.md §3).
type Role struct {
	Name string
	Role string
}

// roles in this set are allowed with every child (spec.md §3/§4.1).
var universalRoles = map[string]struct{}{
	"SBT": {},
	"TS":  {},
	"BS":  {},
}

// roles in this set make a staff member junior (spec.md glossary).
var juniorRoles = map[string]struct{}{
	"Tech": {},
	"SBT":  {},
}

// Inputs bundles the four primary tables plus the target weekday, exactly
// the inputs the Input Normalizer stage consumes.
type Inputs struct {
	Day         string
	CenterHours []CenterHours
	StaffChild  []StaffChildPair
	Absences    []Absence
	Roles       []Role
}

// VarKey is the (time block, child, staff) triple that keys the sparse
// decision-variable index (spec.md §3's INDEX_DF, §9's "sparse index").
type VarKey struct {
	Time  int
	Child string
	Staff string
}

// timeEntityKey buckets VarKeys by time block plus one name dimension
// (staff or child), used wherever a constraint or indicator sums over
// the other dimension.
type timeEntityKey struct {
	Time   int
	Entity string
}

// Model is the typed, explicit-field replacement for the source's
// mutating, dynamically-attributed Pyomo ConcreteModel (Design Notes
// §9): each pipeline stage populates exactly its own field.
type Model struct {
	Config Config

	Day        string
	TimeBlocks []int // TIME_BLOCKS, ascending, half-open [min,max)
	StaffChild []StaffChildPair
	Absences   []Absence
	Roles      map[string]string // canonical name -> role
	JStaff     []string
	SStaff     []string

	// Index is the sparse variable index (INDEX_DF): the sole iteration
	// spine for every stage after the Variable Index Builder.
	Index []VarKey

	// Fixed holds every VarKey fixed to zero by the Hard Constraint
	// Layer. A fixed key never gets an mip.Bool and is skipped by every
	// later stage — the Go-native equivalent of Pyomo's fix(0).
	Fixed map[VarKey]struct{}

	// MIP is the underlying solver model; X holds one mip.Bool per
	// non-fixed key in Index.
	MIP *mip.Model
	X   map[VarKey]mip.Bool

	// ZChild2Staff[t][c] and ZSwitch[t][s] are the linearizing indicator
	// variables of section 4.4.
	ZChild2Staff map[int]map[string]mip.Bool
	ZSwitch      map[int]map[string]mip.Bool
	ZNoStaff     map[int]map[string]mip.Bool // only built when Config.NoStaffPenalty != 0

	// centerHoursForDay is the day-filtered CenterHours rows handed from
	// the Input Normalizer to the Variable Index Builder; no later stage
	// reads it (CENTER_HOURS itself is not part of the frozen Model
	// contract downstream stages read).
	centerHoursForDay []CenterHours

	warnings []string
}

func (m *Model) isFixed(key VarKey) bool {
	_, fixed := m.Fixed[key]
	return fixed
}

// fix marks key as fixed to zero. Safe to call more than once per key.
func (m *Model) fix(key VarKey) {
	if m.Fixed == nil {
		m.Fixed = map[VarKey]struct{}{}
	}
	m.Fixed[key] = struct{}{}
}

func (m *Model) warn(message string) {
	m.warnings = append(m.warnings, message)
}

// Warnings returns every SolutionWarning-class message logged during the
// build, in emission order.
func (m *Model) Warnings() []string {
	return m.warnings
}

func isJuniorRole(role string) bool {
	_, junior := juniorRoles[role]
	return junior
}

func isUniversalRole(role string) bool {
	_, universal := universalRoles[role]
	return universal
}

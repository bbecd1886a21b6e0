package core

import (
	"sort"
	"strconv"
	"strings"
)

// CanonicalName strips leading/trailing whitespace, then removes every
// ASCII space and underscore, so "Jane Doe" and " Jane_Doe " both
// collapse to "JaneDoe"; letter case is kept, so "jane_doe" becomes
// "janedoe" (spec.md I2, original_source setup.py _clean_names).
func CanonicalName(name string) string {
	trimmed := strings.TrimSpace(name)
	var builder strings.Builder
	builder.Grow(len(trimmed))
	for _, r := range trimmed {
		if r == ' ' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// ParseTimeIndex maps a raw time value to a half-hour index, per
// spec.md §4.1. When t is absent it returns fallback unchanged.
func ParseTimeIndex(t RawTime, fallback int) int {
	if !t.Present {
		return fallback
	}
	if t.HasNumeric {
		return int(t.Numeric*2 + 0.5)
	}
	text := strings.TrimSpace(t.Text)
	if text == "" {
		return fallback
	}
	if numeric, err := strconv.ParseFloat(text, 64); err == nil {
		return int(numeric*2 + 0.5)
	}
	parts := strings.SplitN(text, ":", 3)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fallback
	}
	minute := 0
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return hour*2 + minute/30
}

// IndexToTime is the inverse of ParseTimeIndex's "HH:MM" rendering
// (spec.md §4.7, P7): hour = idx/2, minute = (idx%2)*30.
func IndexToTime(index int) string {
	hour := index / 2
	minute := (index % 2) * 30
	return twoDigits(hour) + ":" + twoDigits(minute)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// normalize is the Input Normalizer stage (spec.md §4.1). It canonicalizes
// names, filters CenterHours/Absences to the selected day, widens
// staff-child eligibility with universal-role holders, and runs the
// staff-in-roles sense check (I3).
func normalize(in Inputs, cfg Config) (*Model, error) {
	model := &Model{
		Config: cfg,
		Day:    in.Day,
	}

	roleByName := make(map[string]string, len(in.Roles))
	for _, role := range in.Roles {
		roleByName[CanonicalName(role.Name)] = strings.TrimSpace(role.Role)
	}
	model.Roles = roleByName

	var dayHours []CenterHours
	for _, row := range in.CenterHours {
		if row.Day == in.Day {
			dayHours = append(dayHours, row)
		}
	}

	staffChild := make([]StaffChildPair, 0, len(in.StaffChild))
	seenPairs := map[StaffChildPair]struct{}{}
	childrenSeen := map[string]struct{}{}
	for _, pair := range in.StaffChild {
		canonical := StaffChildPair{
			Child: CanonicalName(pair.Child),
			Staff: CanonicalName(pair.Staff),
		}
		if canonical.Child == "" || canonical.Staff == "" {
			continue
		}
		if _, dup := seenPairs[canonical]; dup {
			continue
		}
		seenPairs[canonical] = struct{}{}
		staffChild = append(staffChild, canonical)
		childrenSeen[canonical.Child] = struct{}{}
	}

	// §4.1 "StaffChild widening": staff holding roles in {SBT, TS, BS}
	// are appended as allowed for every child.
	var universalStaff []string
	for _, role := range in.Roles {
		if isUniversalRole(strings.TrimSpace(role.Role)) {
			universalStaff = append(universalStaff, CanonicalName(role.Name))
		}
	}
	sort.Strings(universalStaff)
	children := make([]string, 0, len(childrenSeen))
	for child := range childrenSeen {
		children = append(children, child)
	}
	sort.Strings(children)
	for _, staff := range universalStaff {
		for _, child := range children {
			pair := StaffChildPair{Child: child, Staff: staff}
			if _, dup := seenPairs[pair]; dup {
				continue
			}
			seenPairs[pair] = struct{}{}
			staffChild = append(staffChild, pair)
		}
	}

	// I3: every staff name in STAFF_CHILD must be present in Roles.
	var missing []string
	missingSeen := map[string]struct{}{}
	for _, pair := range staffChild {
		if _, known := roleByName[pair.Staff]; !known {
			if _, reported := missingSeen[pair.Staff]; !reported {
				missingSeen[pair.Staff] = struct{}{}
				missing = append(missing, pair.Staff)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &InputValidationError{MissingNames: missing}
	}

	var absences []Absence
	for _, row := range in.Absences {
		if row.Day != "" && row.Day != in.Day {
			continue
		}
		absences = append(absences, Absence{
			Name:  CanonicalName(row.Name),
			Day:   row.Day,
			Type:  AbsenceType(strings.ToLower(strings.TrimSpace(string(row.Type)))),
			Start: row.Start,
			End:   row.End,
		})
	}

	staffInStaffChild := map[string]struct{}{}
	for _, pair := range staffChild {
		staffInStaffChild[pair.Staff] = struct{}{}
	}

	var jstaff, sstaff []string
	for name, role := range roleByName {
		if _, present := staffInStaffChild[name]; !present {
			continue
		}
		if isJuniorRole(role) {
			jstaff = append(jstaff, name)
		} else {
			sstaff = append(sstaff, name)
		}
	}
	sort.Strings(jstaff)
	sort.Strings(sstaff)

	model.StaffChild = staffChild
	model.Absences = absences
	model.JStaff = jstaff
	model.SStaff = sstaff

	// Hand the day's hours to the Variable Index Builder through an
	// unexported field; no stage after §4.2 reads it.
	model.centerHoursForDay = dayHours

	return model, nil
}

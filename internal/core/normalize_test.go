package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Jane Doe", "JaneDoe"},
		{"underscore", "jane_doe", "janedoe"},
		{"mixed whitespace and underscore", "  Jane_ Doe  ", "JaneDoe"},
		{"already canonical", "janedoe", "janedoe"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanonicalName(tc.in))
		})
	}
}

func TestCanonicalName_Idempotent(t *testing.T) {
	// P2 of spec.md §8: canonicalization is a fixed point.
	names := []string{"Jane Doe", "bob_smith", " Ann  Lee "}
	for _, name := range names {
		once := CanonicalName(name)
		twice := CanonicalName(once)
		assert.Equal(t, once, twice)
	}
}

func TestParseTimeIndex(t *testing.T) {
	t.Run("absent falls back", func(t *testing.T) {
		assert.Equal(t, 7, ParseTimeIndex(RawTime{}, 7))
	})
	t.Run("numeric hours", func(t *testing.T) {
		assert.Equal(t, 18, ParseTimeIndex(RawTime{Present: true, HasNumeric: true, Numeric: 9}, 0))
	})
	t.Run("HH:MM text on the half hour", func(t *testing.T) {
		assert.Equal(t, 19, ParseTimeIndex(RawTime{Present: true, Text: "9:30"}, 0))
	})
	t.Run("HH:MM:SS text", func(t *testing.T) {
		assert.Equal(t, 19, ParseTimeIndex(RawTime{Present: true, Text: "09:30:00"}, 0))
	})
	t.Run("numeric text", func(t *testing.T) {
		assert.Equal(t, 18, ParseTimeIndex(RawTime{Present: true, Text: "9"}, 0))
	})
	t.Run("empty text falls back", func(t *testing.T) {
		assert.Equal(t, 3, ParseTimeIndex(RawTime{Present: true, Text: "  "}, 3))
	})
	t.Run("unparseable text falls back", func(t *testing.T) {
		assert.Equal(t, 3, ParseTimeIndex(RawTime{Present: true, Text: "noon"}, 3))
	})
}

func TestIndexToTime(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "00:00"},
		{1, "00:30"},
		{18, "09:00"},
		{19, "09:30"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IndexToTime(tc.index))
	}
}

func TestIndexToTime_InverseOfParseTimeIndex(t *testing.T) {
	// P7 of spec.md §8.
	for index := 0; index < 48; index++ {
		rendered := IndexToTime(index)
		assert.Equal(t, index, ParseTimeIndex(RawTime{Present: true, Text: rendered}, -1))
	}
}

func TestNormalize_WideningAndSenseCheck(t *testing.T) {
	in := Inputs{
		Day: "Monday",
		CenterHours: []CenterHours{
			{Day: "Monday", Open: 14, Close: 30},
			{Day: "Tuesday", Open: 0, Close: 48},
		},
		StaffChild: []StaffChildPair{
			{Child: "Ann Lee", Staff: "Bob Smith"},
			{Child: "ann_lee", Staff: "bob_smith"}, // duplicate after canonicalization
		},
		Roles: []Role{
			{Name: "Bob Smith", Role: "RBT"},
			{Name: "Cara Jones", Role: "SBT"}, // universal role, should widen to every child
		},
	}

	model, err := normalize(in, Config{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []StaffChildPair{
		{Child: "AnnLee", Staff: "BobSmith"},
		{Child: "AnnLee", Staff: "CaraJones"},
	}, model.StaffChild)
	assert.Equal(t, []CenterHours{{Day: "Monday", Open: 14, Close: 30}}, model.centerHoursForDay)
}

func TestNormalize_MissingRoleFailsWithAllOffenders(t *testing.T) {
	in := Inputs{
		Day: "Monday",
		StaffChild: []StaffChildPair{
			{Child: "Ann Lee", Staff: "Ghost One"},
			{Child: "Bob Smith", Staff: "Ghost Two"},
		},
		Roles: []Role{},
	}

	_, err := normalize(in, Config{})
	require.Error(t, err)

	var validationErr *InputValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"GhostOne", "GhostTwo"}, validationErr.MissingNames)
}

func TestNormalize_AbsencesFilteredByDay(t *testing.T) {
	in := Inputs{
		Day: "Monday",
		StaffChild: []StaffChildPair{
			{Child: "Ann Lee", Staff: "Bob Smith"},
		},
		Roles: []Role{{Name: "Bob Smith", Role: "RBT"}},
		Absences: []Absence{
			{Name: "Bob Smith", Day: "Monday", Type: "PTO"},
			{Name: "Bob Smith", Day: "Tuesday", Type: "PTO"},
			{Name: "Bob Smith", Day: "", Type: "Nap"}, // I5: empty day applies every day
		},
	}

	model, err := normalize(in, Config{})
	require.NoError(t, err)
	require.Len(t, model.Absences, 2)
	assert.Equal(t, AbsencePTO, model.Absences[0].Type)
	assert.Equal(t, AbsenceNap, model.Absences[1].Type)
}

func TestNormalize_JStaffSStaffSplit(t *testing.T) {
	in := Inputs{
		Day: "Monday",
		StaffChild: []StaffChildPair{
			{Child: "Ann Lee", Staff: "Junior One"},
			{Child: "Ann Lee", Staff: "Senior One"},
		},
		Roles: []Role{
			{Name: "Junior One", Role: "Tech"},
			{Name: "Senior One", Role: "RBT"},
			{Name: "Unused Staff", Role: "Tech"}, // not in STAFF_CHILD, must be excluded
		},
	}

	model, err := normalize(in, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"JuniorOne"}, model.JStaff)
	assert.Equal(t, []string{"SeniorOne"}, model.SStaff)
}

package ingest

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CenterScheduling/internal/core"
	"CenterScheduling/pkg/log"
)

// TestMain initializes the process-wide logger every decoder writes to;
// log.L panics without it.
func TestMain(m *testing.M) {
	if err := log.Init(false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestCenterHours(t *testing.T) {
	csv := "Day,Open,Close\nMonday,18,30\nTuesday,16,32\n"
	rows, err := CenterHours(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []core.CenterHours{
		{Day: "Monday", Open: 18, Close: 30},
		{Day: "Tuesday", Open: 16, Close: 32},
	}, rows)
}

func TestCenterHours_InvalidOpenIsAnError(t *testing.T) {
	csv := "Day,Open,Close\nMonday,nine,30\n"
	_, err := CenterHours(strings.NewReader(csv))
	require.Error(t, err)
}

func TestStaffChild(t *testing.T) {
	csv := "Child,Staff\nAnn Lee,Bob Smith\n"
	rows, err := StaffChild(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []core.StaffChildPair{{Child: "Ann Lee", Staff: "Bob Smith"}}, rows)
}

func TestRoles(t *testing.T) {
	csv := "Name,Role\nBob Smith,RBT\n"
	rows, err := Roles(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []core.Role{{Name: "Bob Smith", Role: "RBT"}}, rows)
}

func TestAbsences(t *testing.T) {
	csv := "Name,Day,Type,Start,End\nBob Smith,Monday,pto,9,9.5\nCara Jones,Monday,nap,,\n"
	rows, err := Absences(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Bob Smith", rows[0].Name)
	assert.Equal(t, core.AbsenceType("pto"), rows[0].Type)
	assert.True(t, rows[0].Start.Present)
	assert.True(t, rows[0].Start.HasNumeric)
	assert.Equal(t, 9.0, rows[0].Start.Numeric)

	assert.False(t, rows[1].Start.Present)
	assert.False(t, rows[1].End.Present)
}

func TestAbsences_HHMMStartIsKeptAsText(t *testing.T) {
	csv := "Name,Day,Type,Start,End\nBob Smith,Monday,pto,09:00,09:30\n"
	rows, err := Absences(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Start.HasNumeric)
	assert.Equal(t, "09:00", rows[0].Start.Text)
}

func TestResolveColumns_MissingColumnYieldsNegativeIndex(t *testing.T) {
	cols := resolveColumns([]string{"Day", "Open"}, "Day", "Open", "Close")
	assert.Equal(t, 0, cols["Day"].index)
	assert.Equal(t, 1, cols["Open"].index)
	assert.Equal(t, -1, cols["Close"].index)
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_EmptyTimeBlocksYieldsEmptyRows(t *testing.T) {
	model := &Model{Day: "Monday"}
	result := materialize(model, &Solution{Status: StatusOptimal})
	assert.Equal(t, "Monday", result.Day)
	assert.Empty(t, result.Rows)
}

func TestMaterialize_AssignsBestScoringStaffPerBlock(t *testing.T) {
	in := Inputs{
		Day:         "Monday",
		CenterHours: []CenterHours{{Day: "Monday", Open: 0, Close: 1}},
		StaffChild: []StaffChildPair{
			{Child: "Ann Lee", Staff: "Bob Smith"},
			{Child: "Ann Lee", Staff: "Cara Jones"},
		},
		Roles: []Role{
			{Name: "Bob Smith", Role: "RBT"},
			{Name: "Cara Jones", Role: "RBT"},
		},
	}
	// A reward below the double-coverage penalty (-1.0 per indicator,
	// objective.go) makes a single assignment strictly better than
	// assigning both staff to the same child at once.
	model := buildForIndicators(t, in, Config{RewardForRole: map[string]float64{"RBT": 0.5}})
	require.NoError(t, addIndicators(model))
	require.NoError(t, buildObjective(model))

	solution, err := solve(model)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, solution.Status)

	result := materialize(model, solution)
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, "00:00", row.TimeBlock)
	assert.Len(t, row.Staff, 1)
	for _, child := range row.Staff {
		assert.Equal(t, "AnnLee", child)
	}
}

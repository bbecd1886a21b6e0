package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVariables_EmptyCenterHoursYieldsEmptyIndex(t *testing.T) {
	model := &Model{}
	require.NoError(t, buildVariables(model))
	assert.Nil(t, model.TimeBlocks)
	assert.Nil(t, model.Index)
}

func TestBuildVariables_TimeBlocksSpanMinMax(t *testing.T) {
	model := &Model{
		centerHoursForDay: []CenterHours{
			{Day: "Monday", Open: 14, Close: 30},
			{Day: "Monday", Open: 12, Close: 20}, // a second row widens the span
		},
	}
	require.NoError(t, buildVariables(model))
	require.Len(t, model.TimeBlocks, 18)
	assert.Equal(t, 12, model.TimeBlocks[0])
	assert.Equal(t, 29, model.TimeBlocks[len(model.TimeBlocks)-1])
}

func TestBuildVariables_CartesianIndexIsSparseAndDeduped(t *testing.T) {
	model := &Model{
		centerHoursForDay: []CenterHours{{Day: "Monday", Open: 0, Close: 2}},
		StaffChild: []StaffChildPair{
			{Child: "B", Staff: "Y"},
			{Child: "A", Staff: "X"},
			{Child: "A", Staff: "X"}, // duplicate, must not double the index
		},
	}
	require.NoError(t, buildVariables(model))

	// P1 of spec.md §8: the index only ever contains allowed (c,s) pairs,
	// never an arbitrary cross product over all known names.
	assert.Equal(t, []VarKey{
		{Time: 0, Child: "A", Staff: "X"},
		{Time: 0, Child: "B", Staff: "Y"},
		{Time: 1, Child: "A", Staff: "X"},
		{Time: 1, Child: "B", Staff: "Y"},
	}, model.Index)
}

func TestBuildVariables_DeterministicOrder(t *testing.T) {
	model1 := &Model{
		centerHoursForDay: []CenterHours{{Day: "Monday", Open: 0, Close: 1}},
		StaffChild: []StaffChildPair{
			{Child: "Z", Staff: "A"},
			{Child: "A", Staff: "Z"},
		},
	}
	model2 := &Model{
		centerHoursForDay: []CenterHours{{Day: "Monday", Open: 0, Close: 1}},
		StaffChild: []StaffChildPair{
			{Child: "A", Staff: "Z"},
			{Child: "Z", Staff: "A"},
		},
	}
	require.NoError(t, buildVariables(model1))
	require.NoError(t, buildVariables(model2))
	assert.Equal(t, model1.Index, model2.Index)
}

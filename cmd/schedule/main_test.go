package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CenterScheduling/internal/core"
)

func TestClassifyBuildError(t *testing.T) {
	t.Run("input validation error maps to exitInputValidation", func(t *testing.T) {
		err := classifyBuildError("Monday", &core.InputValidationError{MissingNames: []string{"GhostOne"}})

		var withCode *exitError
		require.ErrorAs(t, err, &withCode)
		assert.Equal(t, exitInputValidation, withCode.code)
	})

	t.Run("infeasible solve maps to exitInfeasible", func(t *testing.T) {
		err := classifyBuildError("Tuesday", &core.SolverInfeasible{Day: "Tuesday"})

		var withCode *exitError
		require.ErrorAs(t, err, &withCode)
		assert.Equal(t, exitInfeasible, withCode.code)
	})

	t.Run("solver error maps to exitSolverError", func(t *testing.T) {
		err := classifyBuildError("Wednesday", &core.SolverError{Day: "Wednesday", Err: errors.New("backend crashed")})

		var withCode *exitError
		require.ErrorAs(t, err, &withCode)
		assert.Equal(t, exitSolverError, withCode.code)
	})

	t.Run("unrecognized error also maps to exitSolverError", func(t *testing.T) {
		err := classifyBuildError("Thursday", errors.New("something unexpected"))

		var withCode *exitError
		require.ErrorAs(t, err, &withCode)
		assert.Equal(t, exitSolverError, withCode.code)
	})
}

func TestExitCodeFor(t *testing.T) {
	t.Run("exitError unwraps to its own code", func(t *testing.T) {
		err := &exitError{code: exitInfeasible, err: errors.New("no feasible schedule")}
		assert.Equal(t, exitInfeasible, exitCodeFor(err))
	})

	t.Run("wrapped exitError still resolves via errors.As", func(t *testing.T) {
		inner := &exitError{code: exitInputValidation, err: errors.New("missing roles")}
		wrapped := errors.Join(errors.New("day Monday"), inner)
		assert.Equal(t, exitInputValidation, exitCodeFor(wrapped))
	})

	t.Run("plain error falls back to exitSolverError", func(t *testing.T) {
		assert.Equal(t, exitSolverError, exitCodeFor(errors.New("unclassified failure")))
	})
}

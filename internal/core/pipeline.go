package core

import (
	"go.uber.org/zap"

	"CenterScheduling/pkg/log"
)

// Outcome is everything Build hands back to a caller: the materialized
// result, the solver's termination status, and any SolutionWarning-class
// messages accumulated along the way.
type Outcome struct {
	Result   *Result
	Status   Status
	Warnings []string
}

// Build runs the seven pipeline stages of spec.md §2 in their documented
// order over a fresh Model, single-threaded, for one day. It never
// mutates in or cfg. An empty TIME_BLOCKS or empty STAFF_CHILD (the
// ModelBuildError cases of spec.md §7) short-circuits before the solver
// is invoked and yields a trivially-optimal empty result with a
// warning, rather than a propagated error — this is scenario 3 of
// spec.md §8 ("center closed masks everything").
func Build(in Inputs, cfg Config) (*Outcome, error) {
	log.L().Info("pipeline_start", zap.String("day", in.Day))

	model, err := normalize(in, cfg)
	if err != nil {
		return nil, err
	}

	if err := buildVariables(model); err != nil {
		return nil, err
	}

	if len(model.TimeBlocks) == 0 || len(model.Index) == 0 {
		reason := "STAFF_CHILD is empty"
		if len(model.TimeBlocks) == 0 {
			reason = "TIME_BLOCKS is empty"
		}
		model.warn(reason + ": skipping constraints, indicators, objective, and solve")
		log.L().Warn("pipeline_trivial", zap.String("day", in.Day), zap.String("reason", reason))
		return &Outcome{
			Result:   &Result{Day: in.Day},
			Status:   StatusOptimal,
			Warnings: model.Warnings(),
		}, nil
	}

	if err := applyHardConstraints(model); err != nil {
		return nil, err
	}
	if err := addIndicators(model); err != nil {
		return nil, err
	}
	if err := buildObjective(model); err != nil {
		return nil, err
	}

	solution, err := solve(model)
	if solution == nil {
		return nil, err
	}

	// Only a proven optimal/feasible solution has meaningful variable
	// values to read; mirrors the nextmv template's format() guard
	// (`IsOptimal() || IsSubOptimal()`) and root main.go's identical
	// check before either one calls .Value().
	result := &Result{Day: in.Day}
	if solution.Status == StatusOptimal || solution.Status == StatusFeasible {
		result = materialize(model, solution)
	}
	log.L().Info("pipeline_done", zap.String("day", in.Day), zap.String("status", string(solution.Status)))

	return &Outcome{
		Result:   result,
		Status:   solution.Status,
		Warnings: model.Warnings(),
	}, err
}

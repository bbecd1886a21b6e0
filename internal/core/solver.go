package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nextmv-io/sdk/mip"
	"go.uber.org/zap"

	"CenterScheduling/pkg/log"
)

// defaultSolverBackend is spec.md §4.6's default identifier.
const defaultSolverBackend = "cbc"

var solverProviders = map[string]mip.SolverProvider{
	"cbc":   mip.CBC,
	"highs": mip.Highs,
	"glpk":  mip.CBC, // nextmv's SDK ships no dedicated GLPK provider; CBC is the nearest open-source fallback.
}

// Solution is the raw, unmaterialized solver outcome: status plus a
// value reader over the model's variables.
type Solution struct {
	Status   Status
	Solution mip.Solution
}

// solve is the Solver Driver (spec.md §4.6). It never retries and never
// attempts to repair an infeasible model.
func solve(model *Model) (*Solution, error) {
	backendName := model.Config.SolverBackend
	if backendName == "" {
		backendName = defaultSolverBackend
	}
	provider, known := solverProviders[backendName]
	if !known {
		provider = solverProviders[defaultSolverBackend]
	}

	applySolverPathOverride(backendName)

	solver, err := mip.NewSolver(provider, *model.MIP)
	if err != nil {
		return nil, &SolverError{Day: model.Day, Err: err}
	}

	options := mip.NewSolveOptions()
	if model.Config.SolverMaxDuration > 0 {
		if err := options.SetMaximumDuration(time.Duration(model.Config.SolverMaxDuration) * time.Second); err != nil {
			return nil, &SolverError{Day: model.Day, Err: err}
		}
	}
	gap := model.Config.SolverRelativeMIPGap
	if gap == 0 {
		gap = 0.01
	}
	if err := options.SetMIPGapRelative(gap); err != nil {
		return nil, &SolverError{Day: model.Day, Err: err}
	}

	log.L().Info("solve_start", zap.String("day", model.Day), zap.String("backend", backendName), zap.Int("variables", len(model.X)))

	solution, err := solver.Solve(options)
	if err != nil {
		return nil, &SolverError{Day: model.Day, Err: err}
	}

	status := classifyStatus(solution)
	log.L().Info("solve_done", zap.String("day", model.Day), zap.String("status", string(status)))

	if status == StatusInfeasible || status == StatusUnbounded {
		return &Solution{Status: status, Solution: solution}, &SolverInfeasible{Day: model.Day}
	}

	return &Solution{Status: status, Solution: solution}, nil
}

func classifyStatus(solution mip.Solution) Status {
	switch {
	case solution.IsOptimal():
		return StatusOptimal
	case solution.IsSubOptimal():
		return StatusFeasible
	default:
		return StatusInfeasible
	}
}

// applySolverPathOverride honors spec.md §6's SOLVER_PATH env var by
// forwarding it to the backend-specific environment variable the
// underlying executable-based provider looks for.
func applySolverPathOverride(backendName string) {
	path := os.Getenv("SOLVER_PATH")
	if path == "" {
		return
	}
	_ = os.Setenv(fmt.Sprintf("%s_PATH", strings.ToUpper(backendName)), path)
}

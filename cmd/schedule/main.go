// Command schedule builds the weekly staffing schedule: one core.Build
// per weekday, run with bounded concurrency, concatenated into a
// single report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"CenterScheduling/internal/config"
	"CenterScheduling/internal/core"
	"CenterScheduling/internal/ingest"
	"CenterScheduling/internal/report"
	"CenterScheduling/pkg/log"
)

// Exit statuses, spec.md §6.
const (
	exitOptimal           = 0
	exitInfeasible        = 1
	exitSolverError       = 2
	exitInputValidation   = 3
	maxConcurrentWeekdays = 5
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var (
	flagCenterHoursPath string
	flagStaffChildPath  string
	flagAbsencesPath    string
	flagRolesPath       string
	flagOutputFormat    string
	flagOutputPath      string
	flagProduction      bool
)

func main() {
	root := newRootCommand()
	err := root.Execute()
	log.Sync()
	if err != nil {
		os.Exit(exitCodeFor(err))
	}
	os.Exit(exitOptimal)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build the weekly center staffing schedule",
		RunE:  runSchedule,
	}
	cmd.Flags().StringVar(&flagCenterHoursPath, "center-hours", "center_hours.csv", "CenterHours CSV path")
	cmd.Flags().StringVar(&flagStaffChildPath, "staff-child", "staff_child.csv", "StaffChild CSV path")
	cmd.Flags().StringVar(&flagAbsencesPath, "absences", "absences.csv", "Absences CSV path")
	cmd.Flags().StringVar(&flagRolesPath, "roles", "roles.csv", "Roles CSV path")
	cmd.Flags().StringVar(&flagOutputFormat, "format", "json", "Output format: json or csv")
	cmd.Flags().StringVar(&flagOutputPath, "out", "", "Output path (default: stdout)")
	cmd.Flags().BoolVar(&flagProduction, "production", false, "Use zap's production logging encoder")
	return cmd
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if err := log.Init(flagProduction); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	centerHours, staffChild, absences, roles, err := loadInputs()
	if err != nil {
		return &exitError{code: exitInputValidation, err: err}
	}

	outcomes, err := buildWeek(cmd.Context(), centerHours, staffChild, absences, roles, appConfig.Core)
	if err != nil {
		return err
	}

	return writeReport(outcomes)
}

func loadInputs() (centerHours []core.CenterHours, staffChild []core.StaffChildPair, absences []core.Absence, roles []core.Role, err error) {
	if centerHours, err = loadCSV(flagCenterHoursPath, ingest.CenterHours); err != nil {
		return nil, nil, nil, nil, err
	}
	if staffChild, err = loadCSV(flagStaffChildPath, ingest.StaffChild); err != nil {
		return nil, nil, nil, nil, err
	}
	if absences, err = loadCSV(flagAbsencesPath, ingest.Absences); err != nil {
		return nil, nil, nil, nil, err
	}
	if roles, err = loadCSV(flagRolesPath, ingest.Roles); err != nil {
		return nil, nil, nil, nil, err
	}
	return centerHours, staffChild, absences, roles, nil
}

func loadCSV[T any](path string, decode func(*os.File) (T, error)) (T, error) {
	var zero T
	file, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer file.Close()
	return decode(file)
}

// buildWeek runs core.Build for every weekday concurrently, bounded to
// maxConcurrentWeekdays in flight at once (spec.md §5).
func buildWeek(
	ctx context.Context,
	centerHours []core.CenterHours,
	staffChild []core.StaffChildPair,
	absences []core.Absence,
	roles []core.Role,
	cfg core.Config,
) ([]*core.Outcome, error) {
	outcomes := make([]*core.Outcome, len(weekdays))

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentWeekdays)

	for i, day := range weekdays {
		i, day := i, day
		group.Go(func() error {
			in := core.Inputs{
				Day:         day,
				CenterHours: centerHours,
				StaffChild:  staffChild,
				Absences:    absences,
				Roles:       roles,
			}
			outcome, err := core.Build(in, cfg)
			if err != nil {
				return classifyBuildError(day, err)
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func classifyBuildError(day string, err error) error {
	var validationErr *core.InputValidationError
	var infeasibleErr *core.SolverInfeasible
	var solverErr *core.SolverError
	switch {
	case errors.As(err, &validationErr):
		return &exitError{code: exitInputValidation, err: fmt.Errorf("day %s: %w", day, err)}
	case errors.As(err, &infeasibleErr):
		return &exitError{code: exitInfeasible, err: err}
	case errors.As(err, &solverErr):
		return &exitError{code: exitSolverError, err: err}
	default:
		return &exitError{code: exitSolverError, err: err}
	}
}

func writeReport(outcomes []*core.Outcome) error {
	out := os.Stdout
	if flagOutputPath != "" {
		file, err := os.Create(flagOutputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		for _, warning := range outcome.Warnings {
			log.L().Warn("schedule_warning", zap.String("day", outcome.Result.Day), zap.String("message", warning))
		}
		switch flagOutputFormat {
		case "csv":
			if err := report.CSV(out, outcome.Result); err != nil {
				return err
			}
		default:
			encoded, err := report.JSON(outcome.Result)
			if err != nil {
				return err
			}
			if _, err := out.Write(append(encoded, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}

// exitError carries the spec.md §6 exit status alongside the
// underlying error so main can translate it without string matching.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var withCode *exitError
	if errors.As(err, &withCode) {
		fmt.Fprintln(os.Stderr, withCode.err)
		return withCode.code
	}
	fmt.Fprintln(os.Stderr, err)
	return exitSolverError
}

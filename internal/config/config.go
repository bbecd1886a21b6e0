// Package config loads the ambient run configuration (solver policy,
// constraint toggles, role rewards) from the environment, the way the
// retrieval pack's felixgeelhaar-orbita loads its own Config: a single
// Load that reads a .env file if present, then falls back to defaults
// for every unset variable.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"CenterScheduling/internal/core"
)

// Config is the process-wide configuration cmd/schedule assembles
// before calling core.Build for each weekday.
type Config struct {
	Core core.Config

	// SolverPathOverride, when set, is forwarded to the backend
	// executable's own *_PATH environment variable (spec.md §6).
	SolverPathOverride string
}

// Load reads a .env file if one exists in the working directory (a
// missing file is not an error), then assembles Config from the
// environment, defaulting every unset value.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Core: core.Config{
			ConstraintToggles:    loadConstraintToggles(),
			RewardForRole:        loadRewardForRole(),
			NoStaffPenalty:       getFloatEnv("NO_STAFF_PENALTY", 0),
			SolverBackend:        getEnv("SOLVER_BACKEND", "cbc"),
			SolverMaxDuration:    getIntEnv("SOLVER_MAX_DURATION_SECONDS", 0),
			SolverRelativeMIPGap: getFloatEnv("SOLVER_RELATIVE_MIP_GAP", 0.01),
		},
		SolverPathOverride: os.Getenv("SOLVER_PATH"),
	}
	return cfg, nil
}

// loadConstraintToggles starts from core.DefaultConstraintToggles and
// flips any entry named in CONSTRAINT_DISABLE / CONSTRAINT_ENABLE, a
// comma-separated list of constraint names (e.g. "junior_staff").
func loadConstraintToggles() map[core.ConstraintName]bool {
	toggles := core.DefaultConstraintToggles()
	for _, name := range splitCSV(os.Getenv("CONSTRAINT_DISABLE")) {
		toggles[core.ConstraintName(name)] = false
	}
	for _, name := range splitCSV(os.Getenv("CONSTRAINT_ENABLE")) {
		toggles[core.ConstraintName(name)] = true
	}
	return toggles
}

// loadRewardForRole reads REWARD_FOR_ROLE, a comma-separated
// "role:weight" list, e.g. "RBT:1,BCBA:2", skipping malformed items.
// When no valid item is found it returns {"RBT": 1}.
func loadRewardForRole() map[string]float64 {
	rewards := map[string]float64{}
	for _, pair := range splitCSV(os.Getenv("REWARD_FOR_ROLE")) {
		role, weight, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil {
			continue
		}
		rewards[strings.TrimSpace(role)] = value
	}
	if len(rewards) == 0 {
		rewards["RBT"] = 1
	}
	return rewards
}

func splitCSV(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package core

import (
	"sort"
	"strings"
)

// buildObjective is the Objective Builder (spec.md §4.5): a weighted sum
// of role-tagged child-staff hours, minus the double-coverage and
// switch-penalty indicators (and the no-staff penalty when configured).
func buildObjective(model *Model) error {
	model.MIP.Objective().SetMaximize()

	roles := make([]string, 0, len(model.Config.RewardForRole))
	for role := range model.Config.RewardForRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		reward := model.Config.RewardForRole[role]
		for _, key := range model.Index {
			variable, exists := model.X[key]
			if !exists {
				continue
			}
			if !roleMatches(model.Roles[key.Staff], role) {
				continue
			}
			model.MIP.Objective().NewTerm(reward, variable)
		}
	}

	for _, perChild := range model.ZChild2Staff {
		for _, indicator := range perChild {
			model.MIP.Objective().NewTerm(-1.0, indicator)
		}
	}
	for _, perStaff := range model.ZSwitch {
		for _, indicator := range perStaff {
			model.MIP.Objective().NewTerm(-0.1, indicator)
		}
	}
	if model.Config.NoStaffPenalty != 0 {
		for _, perChild := range model.ZNoStaff {
			for _, indicator := range perChild {
				model.MIP.Objective().NewTerm(-model.Config.NoStaffPenalty, indicator)
			}
		}
	}
	return nil
}

func roleMatches(staffRole, configuredRole string) bool {
	return strings.EqualFold(staffRole, configuredRole)
}

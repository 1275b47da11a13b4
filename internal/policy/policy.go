// Package policy is the static role → capability table.
//
// It holds no state and performs no I/O. The only variable input is the
// Standard User daily quota, which callers read from system settings and
// pass in.
package policy

import (
	"slices"

	"github.com/MKhiriev/crimewatch-access/models"
)

var baseActions = []models.Action{
	models.ActionLogin,
	models.ActionPredict,
	models.ActionPlotMap,
	models.ActionGenerateReport,
	models.ActionViewMap,
}

type entry struct {
	actions   []models.Action
	unlimited bool
	// fixedLimit applies when unlimited is false and the role does not
	// read its limit from settings.
	fixedLimit   int
	fromSettings bool
}

var table = map[models.Role]entry{
	models.RoleAdmin: {
		actions:   append(slices.Clone(baseActions), models.ActionManageUsers, models.ActionManageSettings, models.ActionViewAudit),
		unlimited: true,
	},
	models.RoleDataAnalyst: {
		actions:   append(slices.Clone(baseActions), models.ActionViewAudit),
		unlimited: true,
	},
	models.RoleStandardUser: {
		actions:      slices.Clone(baseActions),
		fromSettings: true,
	},
	models.RoleGuest: {
		actions:    []models.Action{models.ActionLogin, models.ActionViewMap},
		fixedLimit: 0,
	},
}

// metered lists the actions that consume the daily quota.
var metered = map[models.Action]bool{
	models.ActionPredict: true,
}

// PermittedActions returns a copy of the actions role may perform. Unknown
// roles get nothing.
func PermittedActions(role models.Role) []models.Action {
	e, ok := table[role]
	if !ok {
		return nil
	}
	return slices.Clone(e.actions)
}

// IsPermitted reports whether role may perform action.
func IsPermitted(role models.Role, action models.Action) bool {
	e, ok := table[role]
	if !ok {
		return false
	}
	return slices.Contains(e.actions, action)
}

// DailyQuota returns the daily limit of metered actions for role.
// standardUserQuota is the current value of standard_user_daily_quota; a
// negative value is treated as zero.
func DailyQuota(role models.Role, standardUserQuota int) models.Quota {
	e, ok := table[role]
	if !ok {
		return models.Quota{}
	}
	switch {
	case e.unlimited:
		return models.Quota{Unlimited: true}
	case e.fromSettings:
		return models.Quota{Limit: max(standardUserQuota, 0)}
	default:
		return models.Quota{Limit: e.fixedLimit}
	}
}

// IsMetered reports whether action consumes the daily quota.
func IsMetered(action models.Action) bool {
	return metered[action]
}

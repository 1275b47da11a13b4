package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/crimewatch-access/models"
)

func TestIsPermitted(t *testing.T) {
	tests := []struct {
		role    models.Role
		allowed []models.Action
		denied  []models.Action
	}{
		{
			role: models.RoleAdmin,
			allowed: []models.Action{
				models.ActionLogin, models.ActionPredict, models.ActionPlotMap, models.ActionGenerateReport,
				models.ActionViewMap, models.ActionManageUsers, models.ActionManageSettings, models.ActionViewAudit,
			},
		},
		{
			role: models.RoleDataAnalyst,
			allowed: []models.Action{
				models.ActionLogin, models.ActionPredict, models.ActionPlotMap, models.ActionGenerateReport,
				models.ActionViewMap, models.ActionViewAudit,
			},
			denied: []models.Action{models.ActionManageUsers, models.ActionManageSettings},
		},
		{
			role: models.RoleStandardUser,
			allowed: []models.Action{
				models.ActionLogin, models.ActionPredict, models.ActionPlotMap, models.ActionGenerateReport, models.ActionViewMap,
			},
			denied: []models.Action{models.ActionManageUsers, models.ActionManageSettings, models.ActionViewAudit},
		},
		{
			role:    models.RoleGuest,
			allowed: []models.Action{models.ActionLogin, models.ActionViewMap},
			denied: []models.Action{
				models.ActionPredict, models.ActionPlotMap, models.ActionGenerateReport,
				models.ActionManageUsers, models.ActionManageSettings, models.ActionViewAudit,
			},
		},
		{
			role:   models.Role("Superuser"),
			denied: []models.Action{models.ActionLogin, models.ActionViewMap},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, a := range tt.allowed {
				assert.True(t, IsPermitted(tt.role, a), a)
			}
			for _, a := range tt.denied {
				assert.False(t, IsPermitted(tt.role, a), a)
			}
			assert.ElementsMatch(t, tt.allowed, PermittedActions(tt.role))
		})
	}
}

func TestPermittedActions_ReturnsCopy(t *testing.T) {
	actions := PermittedActions(models.RoleStandardUser)
	actions[0] = models.ActionManageUsers

	assert.False(t, IsPermitted(models.RoleStandardUser, models.ActionManageUsers))
}

func TestDailyQuota(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		setting int
		want    models.Quota
	}{
		{name: "admin unlimited", role: models.RoleAdmin, setting: 10, want: models.Quota{Unlimited: true}},
		{name: "analyst unlimited", role: models.RoleDataAnalyst, setting: 10, want: models.Quota{Unlimited: true}},
		{name: "standard default", role: models.RoleStandardUser, setting: 10, want: models.Quota{Limit: 10}},
		{name: "standard follows setting", role: models.RoleStandardUser, setting: 3, want: models.Quota{Limit: 3}},
		{name: "standard negative clamps", role: models.RoleStandardUser, setting: -1, want: models.Quota{Limit: 0}},
		{name: "guest zero", role: models.RoleGuest, setting: 10, want: models.Quota{Limit: 0}},
		{name: "unknown zero", role: models.Role("x"), setting: 10, want: models.Quota{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyQuota(tt.role, tt.setting))
		})
	}
}

func TestIsMetered(t *testing.T) {
	assert.True(t, IsMetered(models.ActionPredict))
	for _, a := range []models.Action{
		models.ActionLogin, models.ActionPlotMap, models.ActionGenerateReport, models.ActionViewMap,
		models.ActionManageUsers, models.ActionManageSettings, models.ActionViewAudit,
	} {
		assert.False(t, IsMetered(a), a)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role names the capability set of a principal. The string values are the
// ones persisted in the users table and must not change.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDataAnalyst  Role = "Data Analyst"
	RoleStandardUser Role = "Standard User"

	// RoleGuest is never persisted: a guest has no backing users row.
	RoleGuest Role = "Guest"
)

// Valid reports whether r is one of the roles a users row may carry.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDataAnalyst, RoleStandardUser:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Action is a privileged operation a principal may attempt.
type Action string

const (
	ActionLogin          Action = "Login"
	ActionPredict        Action = "Predict"
	ActionPlotMap        Action = "PlotMap"
	ActionGenerateReport Action = "GenerateReport"
	ActionViewMap        Action = "ViewMap"
	ActionManageUsers    Action = "ManageUsers"
	ActionManageSettings Action = "ManageSettings"
	ActionViewAudit      Action = "ViewAudit"
)

// ParseAction maps a wire value to a known Action.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionLogin, ActionPredict, ActionPlotMap, ActionGenerateReport,
		ActionViewMap, ActionManageUsers, ActionManageSettings, ActionViewAudit:
		return a, true
	}
	return "", false
}

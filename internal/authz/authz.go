// Package authz is the single decision point for permission checks.
// Every mutating operation resolves a Caller from server-side state and
// asks Decide before touching the database; nothing else grants access.
package authz

import (
	"errors"

	"github.com/coachtui/crewcommand/internal/models"
)

// ErrForbidden is the only denial the engine produces. Callers must not
// dress it up with detail that would reveal why a resource was denied.
var ErrForbidden = errors.New("permission denied")

type Action string

const (
	ActionCreateTask       Action = "create_task"
	ActionEditTask         Action = "edit_task"
	ActionAssignWorker     Action = "assign_worker"
	ActionApproveRequest   Action = "approve_request"
	ActionRequestReassign  Action = "request_reassign"
	ActionClockHours       Action = "clock_hours"
	ActionViewSchedule     Action = "view_schedule"
	ActionManageWorkers    Action = "manage_workers"
	ActionMoveWorkerSite   Action = "move_worker_site"
	ActionManageJobSites   Action = "manage_job_sites"
	ActionAssignUserToSite Action = "assign_user_to_site"
	ActionManageUsers      Action = "manage_users"
)

// Actions lists every known action, for exhaustive iteration in tests.
var Actions = []Action{
	ActionCreateTask,
	ActionEditTask,
	ActionAssignWorker,
	ActionApproveRequest,
	ActionRequestReassign,
	ActionClockHours,
	ActionViewSchedule,
	ActionManageWorkers,
	ActionMoveWorkerSite,
	ActionManageJobSites,
	ActionAssignUserToSite,
	ActionManageUsers,
}

// Caller is the authenticated identity a request acts as. It is built
// from user_profiles and job_site_assignments on every request; claims or
// payload fields never feed it.
type Caller struct {
	UserID         uint64
	OrganizationID uint64
	BaseRole       models.BaseRole
	SiteRoles      map[uint64]models.SiteRole
}

// Resource identifies what an action targets. A nil JobSiteID means the
// resource is organization-level (unassigned worker, siteless task).
type Resource struct {
	OrganizationID uint64
	JobSiteID      *uint64
}

// SiteResource is a convenience constructor for site-scoped targets.
func SiteResource(orgID, siteID uint64) Resource {
	return Resource{OrganizationID: orgID, JobSiteID: &siteID}
}

// OrgResource is a convenience constructor for organization-level targets.
func OrgResource(orgID uint64) Resource {
	return Resource{OrganizationID: orgID}
}

// adminOnly actions span resources a single site role cannot vouch for,
// so no site role ever authorizes them.
var adminOnly = map[Action]bool{
	ActionMoveWorkerSite:   true,
	ActionManageJobSites:   true,
	ActionAssignUserToSite: true,
	ActionManageUsers:      true,
}

var siteRoleAllowlist = map[Action]map[models.SiteRole]bool{
	ActionCreateTask: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
	},
	ActionEditTask: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
	},
	ActionAssignWorker: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
	},
	ActionApproveRequest: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
	},
	ActionManageWorkers: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
	},
	ActionRequestReassign: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
		models.SiteRoleForeman:        true,
	},
	ActionClockHours: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineerAsSupt: true,
		models.SiteRoleForeman:        true,
	},
	ActionViewSchedule: {
		models.SiteRoleSuperintendent: true,
		models.SiteRoleEngineer:       true,
		models.SiteRoleEngineerAsSupt: true,
		models.SiteRoleForeman:        true,
		models.SiteRoleWorker:         true,
	},
}

// Decide reports whether the caller may perform action on target.
// Precedence: tenant isolation, admin override, admin-only actions,
// site-role allowlist. Site roles never transfer between sites.
func Decide(caller Caller, action Action, target Resource) error {
	// Cross-tenant isolation is checked before any role logic.
	if caller.OrganizationID != target.OrganizationID {
		return ErrForbidden
	}

	if caller.BaseRole == models.BaseRoleAdmin {
		return nil
	}

	if adminOnly[action] {
		return ErrForbidden
	}

	// Organization-level resources have no site role to consult.
	if target.JobSiteID == nil {
		return ErrForbidden
	}

	role, assigned := caller.SiteRoles[*target.JobSiteID]
	if !assigned {
		return ErrForbidden
	}

	allowed, known := siteRoleAllowlist[action]
	if !known || !allowed[role] {
		return ErrForbidden
	}

	return nil
}

// IsSelf reports whether the caller is the given user. Self-referential
// reads (own timesheet) are permitted independent of role.
func (c Caller) IsSelf(userID uint64) bool {
	return c.UserID == userID
}

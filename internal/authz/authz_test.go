package authz

import (
	"fmt"
	"testing"

	"github.com/coachtui/crewcommand/internal/models"
	"github.com/stretchr/testify/assert"
)

var baseRoles = []models.BaseRole{
	models.BaseRoleAdmin,
	models.BaseRoleSuperintendent,
	models.BaseRoleEngineer,
	models.BaseRoleForeman,
	models.BaseRoleWorker,
}

var siteRoles = []models.SiteRole{
	models.SiteRoleSuperintendent,
	models.SiteRoleEngineer,
	models.SiteRoleEngineerAsSupt,
	models.SiteRoleForeman,
	models.SiteRoleWorker,
}

// expectedSiteGrant encodes the whitelist independently of the production
// table so the two implementations check each other.
func expectedSiteGrant(action Action, role models.SiteRole) bool {
	supt := role == models.SiteRoleSuperintendent || role == models.SiteRoleEngineerAsSupt
	switch action {
	case ActionCreateTask, ActionEditTask, ActionAssignWorker, ActionApproveRequest, ActionManageWorkers:
		return supt
	case ActionClockHours, ActionRequestReassign:
		return supt || role == models.SiteRoleForeman
	case ActionViewSchedule:
		return true
	case ActionMoveWorkerSite, ActionManageJobSites, ActionAssignUserToSite, ActionManageUsers:
		return false
	}
	return false
}

func TestDecide_CrossTenantAlwaysDenied(t *testing.T) {
	const siteID = 7
	for _, base := range baseRoles {
		for _, site := range siteRoles {
			caller := Caller{
				UserID:         1,
				OrganizationID: 1,
				BaseRole:       base,
				SiteRoles:      map[uint64]models.SiteRole{siteID: site},
			}
			for _, action := range Actions {
				err := Decide(caller, action, SiteResource(2, siteID))
				assert.ErrorIs(t, err, ErrForbidden,
					"base=%s site=%s action=%s must be denied across tenants", base, site, action)

				err = Decide(caller, action, OrgResource(2))
				assert.ErrorIs(t, err, ErrForbidden)
			}
		}
	}
}

func TestDecide_AdminOverrideWithinOrganization(t *testing.T) {
	caller := Caller{UserID: 1, OrganizationID: 1, BaseRole: models.BaseRoleAdmin}
	for _, action := range Actions {
		assert.NoError(t, Decide(caller, action, SiteResource(1, 7)), "action=%s", action)
		assert.NoError(t, Decide(caller, action, OrgResource(1)), "action=%s", action)
	}
}

func TestDecide_SiteRoleTable(t *testing.T) {
	const siteID = 7
	for _, base := range baseRoles {
		if base == models.BaseRoleAdmin {
			continue
		}
		for _, site := range siteRoles {
			caller := Caller{
				UserID:         1,
				OrganizationID: 1,
				BaseRole:       base,
				SiteRoles:      map[uint64]models.SiteRole{siteID: site},
			}
			for _, action := range Actions {
				t.Run(fmt.Sprintf("%s/%s/%s", base, site, action), func(t *testing.T) {
					err := Decide(caller, action, SiteResource(1, siteID))
					if expectedSiteGrant(action, site) {
						assert.NoError(t, err)
					} else {
						assert.ErrorIs(t, err, ErrForbidden)
					}
				})
			}
		}
	}
}

func TestDecide_SiteRolesDoNotTransfer(t *testing.T) {
	// Superintendent on site 7, no assignment on site 8.
	caller := Caller{
		UserID:         1,
		OrganizationID: 1,
		BaseRole:       models.BaseRoleSuperintendent,
		SiteRoles:      map[uint64]models.SiteRole{7: models.SiteRoleSuperintendent},
	}
	for _, action := range Actions {
		err := Decide(caller, action, SiteResource(1, 8))
		assert.ErrorIs(t, err, ErrForbidden, "action=%s must not transfer to other sites", action)
	}
}

func TestDecide_OrgLevelResourceRequiresAdmin(t *testing.T) {
	for _, base := range baseRoles {
		if base == models.BaseRoleAdmin {
			continue
		}
		caller := Caller{
			UserID:         1,
			OrganizationID: 1,
			BaseRole:       base,
			SiteRoles:      map[uint64]models.SiteRole{7: models.SiteRoleSuperintendent},
		}
		for _, action := range Actions {
			err := Decide(caller, action, OrgResource(1))
			assert.ErrorIs(t, err, ErrForbidden, "base=%s action=%s", base, action)
		}
	}
}

func TestDecide_NoAssignmentDenied(t *testing.T) {
	caller := Caller{UserID: 1, OrganizationID: 1, BaseRole: models.BaseRoleForeman}
	for _, action := range Actions {
		assert.ErrorIs(t, Decide(caller, action, SiteResource(1, 7)), ErrForbidden)
	}
}

func TestDecide_AdminOnlyActionsIgnoreSiteRole(t *testing.T) {
	caller := Caller{
		UserID:         1,
		OrganizationID: 1,
		BaseRole:       models.BaseRoleSuperintendent,
		SiteRoles:      map[uint64]models.SiteRole{7: models.SiteRoleSuperintendent},
	}
	for _, action := range []Action{ActionMoveWorkerSite, ActionManageJobSites, ActionAssignUserToSite, ActionManageUsers} {
		assert.ErrorIs(t, Decide(caller, action, SiteResource(1, 7)), ErrForbidden)
	}
}

func TestIsSelf(t *testing.T) {
	caller := Caller{UserID: 42, OrganizationID: 1, BaseRole: models.BaseRoleWorker}
	assert.True(t, caller.IsSelf(42))
	assert.False(t, caller.IsSelf(43))
}

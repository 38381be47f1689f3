package services

import (
	"testing"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/stretchr/testify/require"
)

func TestJobSiteService_AssignUserDeactivatesPrior(t *testing.T) {
	env := setupServiceTestEnv(t)

	user := seedUser(t, env, "eng@example.com", models.BaseRoleEngineer)
	site := env.seedSite(t, "Downtown Tower")

	admin := orgAdmin()

	first, err := env.sites.AssignUserToSite(admin, AssignUserInput{
		UserID:    user.ID,
		JobSiteID: site.ID,
		Role:      models.SiteRoleEngineer,
		StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	require.True(t, first.IsActive)

	second, err := env.sites.AssignUserToSite(admin, AssignUserInput{
		UserID:    user.ID,
		JobSiteID: site.ID,
		Role:      models.SiteRoleEngineerAsSupt,
		StartDate: "2026-02-01",
	})
	require.NoError(t, err)

	// Exactly one active row per (user, site); the prior one is closed
	// out with an end date.
	var active []models.JobSiteAssignment
	require.NoError(t, env.db.Where("user_id = ? AND job_site_id = ? AND is_active = ?",
		user.ID, site.ID, true).Find(&active).Error)
	require.Len(t, active, 1)
	require.Equal(t, second.ID, active[0].ID)
	require.Equal(t, models.SiteRoleEngineerAsSupt, active[0].Role)

	var prior models.JobSiteAssignment
	require.NoError(t, env.db.First(&prior, first.ID).Error)
	require.False(t, prior.IsActive)
	require.NotNil(t, prior.EndDate)
	require.Equal(t, "2026-02-01", *prior.EndDate)
}

func TestJobSiteAssignment_InactiveRowPersistsInactive(t *testing.T) {
	env := setupServiceTestEnv(t)

	user := seedUser(t, env, "eng@example.com", models.BaseRoleEngineer)
	site := env.seedSite(t, "Downtown Tower")

	// A struct-based insert must not resurrect IsActive=false; a column
	// default would make gorm drop the zero value from the INSERT.
	closed := &models.JobSiteAssignment{
		OrganizationID: 1,
		UserID:         user.ID,
		JobSiteID:      site.ID,
		Role:           models.SiteRoleForeman,
		StartDate:      "2025-01-01",
		IsActive:       false,
	}
	require.NoError(t, env.db.Create(closed).Error)

	var got models.JobSiteAssignment
	require.NoError(t, env.db.First(&got, closed.ID).Error)
	require.False(t, got.IsActive)
}

func TestJobSiteService_AssignUserRequiresAdmin(t *testing.T) {
	env := setupServiceTestEnv(t)

	user := seedUser(t, env, "eng@example.com", models.BaseRoleEngineer)
	site := env.seedSite(t, "Downtown Tower")

	_, err := env.sites.AssignUserToSite(superintendentOn(site.ID), AssignUserInput{
		UserID:    user.ID,
		JobSiteID: site.ID,
		Role:      models.SiteRoleForeman,
		StartDate: "2026-01-01",
	})
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestJobSiteService_AssignUserRejectsBadRole(t *testing.T) {
	env := setupServiceTestEnv(t)

	user := seedUser(t, env, "eng@example.com", models.BaseRoleEngineer)
	site := env.seedSite(t, "Downtown Tower")

	_, err := env.sites.AssignUserToSite(orgAdmin(), AssignUserInput{
		UserID:    user.ID,
		JobSiteID: site.ID,
		Role:      models.SiteRole("boss"),
		StartDate: "2026-01-01",
	})
	require.ErrorIs(t, err, ErrInvalidSiteRole)
}

func TestJobSiteService_AssignUserCrossOrgLooksMissing(t *testing.T) {
	env := setupServiceTestEnv(t)

	site := env.seedSite(t, "Downtown Tower")

	outsider := &models.UserProfile{
		OrganizationID: 2,
		Email:          "other@example.com",
		Name:           "Other Org",
		BaseRole:       models.BaseRoleEngineer,
		PasswordHash:   "x",
	}
	require.NoError(t, env.db.Create(outsider).Error)

	_, err := env.sites.AssignUserToSite(orgAdmin(), AssignUserInput{
		UserID:    outsider.ID,
		JobSiteID: site.ID,
		Role:      models.SiteRoleForeman,
		StartDate: "2026-01-01",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestJobSiteService_CreateRequiresAdmin(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.sites.CreateJobSite(superintendentOn(), CreateJobSiteInput{
		Name:      "Harbor Bridge",
		StartDate: "2026-01-01",
	})
	require.ErrorIs(t, err, authz.ErrForbidden)

	site, err := env.sites.CreateJobSite(orgAdmin(), CreateJobSiteInput{
		Name:      "Harbor Bridge",
		StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, models.JobSiteStatusActive, site.Status)
}

package services

import (
	"testing"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/stretchr/testify/require"
)

func TestRequestService_ReviewDeny(t *testing.T) {
	env := setupServiceTestEnv(t)

	site := env.seedSite(t, "Downtown Tower")
	worker := env.seedWorker(t, "Jose Martinez", &site.ID)
	task := env.seedTask(t, "Concrete Pour", &site.ID)

	created, err := env.requests.CreateRequest(foremanOn(site.ID), worker.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusPending, created.Status)

	supt := superintendentOn(site.ID)
	denied, err := env.requests.Review(supt, created.ID, false)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusDenied, denied.Status)
	require.NotNil(t, denied.ReviewedBy)
	require.Equal(t, supt.UserID, *denied.ReviewedBy)
	require.NotNil(t, denied.ReviewedAt)
}

func TestRequestService_ReviewTwiceConflicts(t *testing.T) {
	env := setupServiceTestEnv(t)

	site := env.seedSite(t, "Downtown Tower")
	worker := env.seedWorker(t, "Jose Martinez", &site.ID)
	task := env.seedTask(t, "Concrete Pour", &site.ID)

	created, err := env.requests.CreateRequest(foremanOn(site.ID), worker.ID, task.ID)
	require.NoError(t, err)

	supt := superintendentOn(site.ID)
	_, err = env.requests.Review(supt, created.ID, true)
	require.NoError(t, err)

	_, err = env.requests.Review(supt, created.ID, false)
	require.ErrorIs(t, err, ErrRequestNotPending)

	var row models.AssignmentRequest
	require.NoError(t, env.db.First(&row, created.ID).Error)
	require.Equal(t, models.RequestStatusApproved, row.Status)
}

func TestRequestService_ForemanCannotApprove(t *testing.T) {
	env := setupServiceTestEnv(t)

	site := env.seedSite(t, "Downtown Tower")
	worker := env.seedWorker(t, "Jose Martinez", &site.ID)
	task := env.seedTask(t, "Concrete Pour", &site.ID)

	foreman := foremanOn(site.ID)
	created, err := env.requests.CreateRequest(foreman, worker.ID, task.ID)
	require.NoError(t, err)

	_, err = env.requests.Review(foreman, created.ID, true)
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestRequestService_ApproveLatestWithoutPending(t *testing.T) {
	env := setupServiceTestEnv(t)

	site := env.seedSite(t, "Downtown Tower")
	worker := env.seedWorker(t, "Jose Martinez", &site.ID)

	_, err := env.requests.ApproveLatestForWorker(superintendentOn(site.ID), worker.ID)
	require.ErrorIs(t, err, ErrNoPendingRequest)
}

package services

import (
	"testing"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPickByName(t *testing.T) {
	idx, err := pickByName("worker", "jose", []string{"Jose Martinez"})
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	_, err = pickByName("worker", "jose", nil)
	var notFound *ReferenceNotFoundError
	require.ErrorAs(t, err, &notFound)

	// A unique exact match wins over partial matches.
	idx, err = pickByName("worker", "Jose", []string{"Jose Martinez", "Jose"})
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	// Several partials with no exact match stay ambiguous.
	_, err = pickByName("worker", "jose", []string{"Jose Martinez", "Jose Garcia"})
	var ambiguous *AmbiguousReferenceError
	require.ErrorAs(t, err, &ambiguous)
	require.Len(t, ambiguous.Candidates, 2)

	// Two exact matches are still ambiguous.
	_, err = pickByName("worker", "Jose", []string{"Jose", "jose"})
	require.ErrorAs(t, err, &ambiguous)
}

// Records in another organization are invisible: resolution reports
// not-found rather than leaking their existence.
func TestResolverScopedToOrganization(t *testing.T) {
	env := setupServiceTestEnv(t)

	otherOrgWorker := &models.Worker{
		OrganizationID: 2,
		Name:           "Jose Martinez",
		Role:           models.WorkerRoleLaborer,
		Status:         models.WorkerStatusActive,
	}
	require.NoError(t, env.db.Create(otherOrgWorker).Error)

	_, err := resolveWorker(env.workerRepo, 1, "Jose")
	var notFound *ReferenceNotFoundError
	require.ErrorAs(t, err, &notFound)

	// The same applies to ID-based lookups.
	caller := authz.Caller{UserID: 1, OrganizationID: 1, BaseRole: models.BaseRoleAdmin}
	_, err = env.schedules.QueryWorkerDay(caller, otherOrgWorker.ID, "2026-03-01")
	require.ErrorIs(t, err, ErrWorkerNotFound)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, env serviceTestEnv, email string, role models.BaseRole) *models.UserProfile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.UserProfile{
		OrganizationID: 1,
		Email:          email,
		Name:           "Test User",
		BaseRole:       role,
		PasswordHash:   string(hash),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestAuthService_Login(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := NewAuthService(env.userRepo, nil, "test-secret")

	user := seedUser(t, env, "supt@example.com", models.BaseRoleSuperintendent)

	profile, token, err := authService.Login(context.Background(), "supt@example.com", "supersecret")
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.ID)
	require.NotEmpty(t, token)

	claims, err := authService.ParseToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	caller, err := authService.ResolveCaller(context.Background(), claims)
	require.NoError(t, err)
	require.Equal(t, user.ID, caller.UserID)
	require.EqualValues(t, 1, caller.OrganizationID)
	require.Equal(t, models.BaseRoleSuperintendent, caller.BaseRole)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := NewAuthService(env.userRepo, nil, "test-secret")

	seedUser(t, env, "supt@example.com", models.BaseRoleSuperintendent)

	_, _, err := authService.Login(context.Background(), "supt@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login(context.Background(), "nobody@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ParseTokenRejectsForgery(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := NewAuthService(env.userRepo, nil, "test-secret")
	otherService := NewAuthService(env.userRepo, nil, "other-secret")

	seedUser(t, env, "supt@example.com", models.BaseRoleSuperintendent)

	_, token, err := otherService.Login(context.Background(), "supt@example.com", "supersecret")
	require.NoError(t, err)

	_, err = authService.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = authService.ParseToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

// memoryTokenStore stands in for the redis allow-list.
type memoryTokenStore struct {
	issued map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{issued: map[string]bool{}}
}

func (s *memoryTokenStore) Save(_ context.Context, jti string, _ time.Duration) error {
	s.issued[jti] = true
	return nil
}

func (s *memoryTokenStore) Valid(_ context.Context, jti string) (bool, error) {
	return s.issued[jti], nil
}

func (s *memoryTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.issued, jti)
	return nil
}

func TestAuthService_LogoutRevokedTokenRejected(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := &AuthService{
		userRepo:  env.userRepo,
		tokens:    newMemoryTokenStore(),
		jwtSecret: []byte("test-secret"),
	}

	seedUser(t, env, "supt@example.com", models.BaseRoleSuperintendent)

	_, token, err := authService.Login(context.Background(), "supt@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(context.Background(), token))

	// The token is off the allow-list: logging out again fails, and the
	// caller can no longer be resolved.
	err = authService.Logout(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)

	claims, err := authService.ParseToken(token)
	require.NoError(t, err)
	_, err = authService.ResolveCaller(context.Background(), claims)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_CreateUser(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := NewAuthService(env.userRepo, nil, "test-secret")

	created, err := authService.CreateUser(orgAdmin(), CreateUserInput{
		Email:    "foreman@example.com",
		Name:     "Pat Lee",
		Password: "longenough",
		BaseRole: models.BaseRoleForeman,
	})
	require.NoError(t, err)
	require.Equal(t, models.BaseRoleForeman, created.BaseRole)
	require.EqualValues(t, 1, created.OrganizationID)

	// The stored hash verifies against the chosen password.
	_, _, err = authService.Login(context.Background(), "foreman@example.com", "longenough")
	require.NoError(t, err)

	_, err = authService.CreateUser(orgAdmin(), CreateUserInput{
		Email:    "short@example.com",
		Name:     "Short",
		Password: "2short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = authService.CreateUser(superintendentOn(), CreateUserInput{
		Email:    "nope@example.com",
		Name:     "Nope",
		Password: "longenough",
	})
	require.ErrorIs(t, err, authz.ErrForbidden)
}

func TestAuthService_CallerSiteRoles(t *testing.T) {
	env := setupServiceTestEnv(t)
	authService := NewAuthService(env.userRepo, nil, "test-secret")

	user := seedUser(t, env, "eng@example.com", models.BaseRoleEngineer)
	site := env.seedSite(t, "Downtown Tower")

	require.NoError(t, env.db.Create(&models.JobSiteAssignment{
		OrganizationID: 1,
		UserID:         user.ID,
		JobSiteID:      site.ID,
		Role:           models.SiteRoleEngineerAsSupt,
		StartDate:      "2026-01-01",
		IsActive:       true,
	}).Error)

	// An inactive assignment on another site must not grant anything.
	other := env.seedSite(t, "Harbor Bridge")
	require.NoError(t, env.db.Create(&models.JobSiteAssignment{
		OrganizationID: 1,
		UserID:         user.ID,
		JobSiteID:      other.ID,
		Role:           models.SiteRoleSuperintendent,
		StartDate:      "2025-01-01",
		IsActive:       false,
	}).Error)

	caller, err := authService.BuildCaller(user.ID)
	require.NoError(t, err)
	require.Equal(t, models.SiteRoleEngineerAsSupt, caller.SiteRoles[site.ID])
	_, hasOther := caller.SiteRoles[other.ID]
	require.False(t, hasOther)
}

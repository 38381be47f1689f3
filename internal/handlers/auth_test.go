package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coachtui/crewcommand/internal/middleware"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.UserProfile{},
		&models.JobSiteAssignment{},
		&models.JobSite{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, nil, "test-secret")
	handler := NewAuthHandler(authService)
	middleware.Init(authService)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func (env authTestEnv) seedUser(t *testing.T, email string) *models.UserProfile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.UserProfile{
		OrganizationID: 1,
		Email:          email,
		Name:           "Dana Ops",
		BaseRole:       models.BaseRoleSuperintendent,
		PasswordHash:   string(hash),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.seedUser(t, "dana@example.com")

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "dana@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	require.Equal(t, "dana@example.com", response.User.Email)
}

func TestAuthHandler_LoginBadPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.seedUser(t, "dana@example.com")

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	body, err := json.Marshal(map[string]string{
		"email":    "dana@example.com",
		"password": "wrong",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_MeThroughMiddleware(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.seedUser(t, "dana@example.com")

	_, token, err := env.authService.Login(context.Background(), "dana@example.com", "supersecret")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/auth/me", middleware.RequireAuth(), env.handler.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User struct {
			ID    uint64 `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.User.ID)
	require.Equal(t, "dana@example.com", response.User.Email)
}

func TestAuthHandler_MeWithoutToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.GET("/api/auth/me", middleware.RequireAuth(), env.handler.Me)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/constants"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidToken       = errors.New("invalid token")
)

// tokenStore is the issued-token allow-list. *TokenStore implements it
// over redis.
type tokenStore interface {
	Save(ctx context.Context, jti string, ttl time.Duration) error
	Valid(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

// AuthService issues and revokes bearer tokens and resolves callers.
// Tokens carry only the subject and a jti; organization and roles are
// re-read from the database on every request, never from claims.
type AuthService struct {
	userRepo  repository.UserRepository
	tokens    tokenStore
	jwtSecret []byte
}

// NewAuthService creates a new AuthService. A nil store disables
// revocation tracking.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenStore, jwtSecret string) *AuthService {
	s := &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
	if tokens != nil {
		s.tokens = tokens
	}
	return s
}

// CreateUserInput represents input for provisioning a user profile.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	BaseRole models.BaseRole
}

// CreateUser provisions a profile in the caller's organization. There is
// no self-signup; admins create accounts for their crew leads.
func (s *AuthService) CreateUser(caller authz.Caller, input CreateUserInput) (*models.UserProfile, error) {
	if err := authz.Decide(caller, authz.ActionManageUsers, authz.OrgResource(caller.OrganizationID)); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.BaseRole
	if role == "" {
		role = models.BaseRoleWorker
	}

	profile := &models.UserProfile{
		OrganizationID: caller.OrganizationID,
		Email:          input.Email,
		Name:           input.Name,
		BaseRole:       role,
		PasswordHash:   string(hash),
	}
	if err := s.userRepo.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return profile, nil
}

// Login verifies credentials and returns the profile plus a signed
// bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	profile, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	ttl := time.Duration(constants.TokenTTLHours) * time.Hour
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(profile.ID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	if s.tokens != nil {
		if err := s.tokens.Save(ctx, claims.ID, ttl); err != nil {
			return nil, "", fmt.Errorf("failed to store token: %w", err)
		}
	}

	return profile, signed, nil
}

// Logout revokes the presented token.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return err
	}
	if s.tokens != nil {
		valid, err := s.tokens.Valid(ctx, claims.ID)
		if err != nil {
			return fmt.Errorf("failed to check token: %w", err)
		}
		if !valid {
			return ErrInvalidToken
		}
		return s.tokens.Revoke(ctx, claims.ID)
	}
	return nil
}

// ParseToken verifies the signature and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ResolveCaller turns verified claims into an authorization Caller. The
// profile row and active site assignments are fetched fresh; nothing in
// the token beyond the subject is trusted.
func (s *AuthService) ResolveCaller(ctx context.Context, claims *jwt.RegisteredClaims) (authz.Caller, error) {
	if s.tokens != nil {
		valid, err := s.tokens.Valid(ctx, claims.ID)
		if err != nil {
			return authz.Caller{}, fmt.Errorf("failed to check token: %w", err)
		}
		if !valid {
			return authz.Caller{}, ErrInvalidToken
		}
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return authz.Caller{}, ErrInvalidToken
	}

	return s.BuildCaller(userID)
}

// BuildCaller loads a user's organization, base role and active site
// roles from the database.
func (s *AuthService) BuildCaller(userID uint64) (authz.Caller, error) {
	profile, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authz.Caller{}, ErrUserNotFound
		}
		return authz.Caller{}, fmt.Errorf("failed to load profile: %w", err)
	}

	assignments, err := s.userRepo.ListActiveSiteAssignments(userID)
	if err != nil {
		return authz.Caller{}, fmt.Errorf("failed to load site assignments: %w", err)
	}

	siteRoles := make(map[uint64]models.SiteRole, len(assignments))
	for _, a := range assignments {
		siteRoles[a.JobSiteID] = a.Role
	}

	return authz.Caller{
		UserID:         profile.ID,
		OrganizationID: profile.OrganizationID,
		BaseRole:       profile.BaseRole,
		SiteRoles:      siteRoles,
	}, nil
}

// GetProfile retrieves a profile by ID.
func (s *AuthService) GetProfile(id uint64) (*models.UserProfile, error) {
	profile, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return profile, nil
}

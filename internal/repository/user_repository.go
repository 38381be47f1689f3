package repository

import (
	"github.com/coachtui/crewcommand/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user profile
func (r *GormUserRepository) Create(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

// FindByID finds a profile by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByEmail finds a profile by email
func (r *GormUserRepository) FindByEmail(email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates a profile
func (r *GormUserRepository) Update(profile *models.UserProfile) error {
	return r.db.Save(profile).Error
}

// ListActiveSiteAssignments lists a user's active job site assignments
func (r *GormUserRepository) ListActiveSiteAssignments(userID uint64) ([]models.JobSiteAssignment, error) {
	var assignments []models.JobSiteAssignment
	if err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

package repository

import (
	"strings"

	"github.com/coachtui/crewcommand/internal/models"
	"gorm.io/gorm"
)

// GormJobSiteRepository is a GORM implementation of JobSiteRepository
type GormJobSiteRepository struct {
	db *gorm.DB
}

// NewJobSiteRepository creates a new JobSiteRepository
func NewJobSiteRepository(db *gorm.DB) JobSiteRepository {
	return &GormJobSiteRepository{db: db}
}

// Create creates a new job site
func (r *GormJobSiteRepository) Create(site *models.JobSite) error {
	return r.db.Create(site).Error
}

// FindByID finds a job site by ID within an organization
func (r *GormJobSiteRepository) FindByID(organizationID, id uint64) (*models.JobSite, error) {
	var site models.JobSite
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// List lists an organization's job sites
func (r *GormJobSiteRepository) List(organizationID uint64) ([]models.JobSite, error) {
	var sites []models.JobSite
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// SearchByName finds job sites matching the query within an organization
func (r *GormJobSiteRepository) SearchByName(organizationID uint64, query string) ([]models.JobSite, error) {
	var sites []models.JobSite
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	if err := r.db.Where("organization_id = ? AND LOWER(name) LIKE ?", organizationID, pattern).
		Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

// Update updates a job site
func (r *GormJobSiteRepository) Update(site *models.JobSite) error {
	return r.db.Save(site).Error
}

// AssignUser activates a site assignment. Any existing active assignment
// for the same (user, site) is deactivated and end-dated first, in the
// same transaction, so at most one row per pair stays active.
func (r *GormJobSiteRepository) AssignUser(assignment *models.JobSiteAssignment, endDate string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.JobSiteAssignment{}).
			Where("user_id = ? AND job_site_id = ? AND is_active = ?",
				assignment.UserID, assignment.JobSiteID, true).
			Updates(map[string]interface{}{
				"is_active": false,
				"end_date":  endDate,
			}).Error
		if err != nil {
			return err
		}

		assignment.IsActive = true
		return tx.Create(assignment).Error
	})
}

// ListAssignments lists a site's assignments
func (r *GormJobSiteRepository) ListAssignments(organizationID, jobSiteID uint64) ([]models.JobSiteAssignment, error) {
	var assignments []models.JobSiteAssignment
	if err := r.db.Preload("User").
		Where("organization_id = ? AND job_site_id = ?", organizationID, jobSiteID).
		Order("created_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

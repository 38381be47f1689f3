package repository

import (
	"strings"

	"github.com/coachtui/crewcommand/internal/models"
	"gorm.io/gorm"
)

// GormWorkerRepository is a GORM implementation of WorkerRepository
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository creates a new WorkerRepository
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Create creates a new worker
func (r *GormWorkerRepository) Create(worker *models.Worker) error {
	return r.db.Create(worker).Error
}

// FindByID finds a worker by ID within an organization
func (r *GormWorkerRepository) FindByID(organizationID, id uint64) (*models.Worker, error) {
	var worker models.Worker
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&worker, id).Error; err != nil {
		return nil, err
	}
	return &worker, nil
}

// List lists an organization's workers, optionally filtered by job site
func (r *GormWorkerRepository) List(organizationID uint64, jobSiteID *uint64) ([]models.Worker, error) {
	query := r.db.Where("organization_id = ?", organizationID)
	if jobSiteID != nil {
		query = query.Where("job_site_id = ?", *jobSiteID)
	}

	var workers []models.Worker
	if err := query.Order("name ASC").Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// SearchByName finds workers matching the query within an organization
func (r *GormWorkerRepository) SearchByName(organizationID uint64, query string) ([]models.Worker, error) {
	var workers []models.Worker
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	if err := r.db.Where("organization_id = ? AND LOWER(name) LIKE ?", organizationID, pattern).
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// Update updates a worker
func (r *GormWorkerRepository) Update(worker *models.Worker) error {
	return r.db.Save(worker).Error
}

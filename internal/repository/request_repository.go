package repository

import (
	"github.com/coachtui/crewcommand/internal/models"
	"gorm.io/gorm"
)

// GormRequestRepository is a GORM implementation of RequestRepository
type GormRequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &GormRequestRepository{db: db}
}

// Create creates a request
func (r *GormRequestRepository) Create(request *models.AssignmentRequest) error {
	return r.db.Create(request).Error
}

// FindByID finds a request by ID within an organization
func (r *GormRequestRepository) FindByID(organizationID, id uint64) (*models.AssignmentRequest, error) {
	var request models.AssignmentRequest
	if err := r.db.Where("organization_id = ?", organizationID).
		Preload("Worker").Preload("Task").
		First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// LatestPendingForWorker returns the worker's most recent pending request
func (r *GormRequestRepository) LatestPendingForWorker(organizationID, workerID uint64) (*models.AssignmentRequest, error) {
	var request models.AssignmentRequest
	if err := r.db.Where("organization_id = ? AND worker_id = ? AND status = ?",
		organizationID, workerID, models.RequestStatusPending).
		Preload("Task").
		Order("created_at DESC").
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPending lists an organization's pending requests, oldest first
func (r *GormRequestRepository) ListPending(organizationID uint64) ([]models.AssignmentRequest, error) {
	var requests []models.AssignmentRequest
	if err := r.db.Where("organization_id = ? AND status = ?",
		organizationID, models.RequestStatusPending).
		Preload("Worker").Preload("Task").
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Update updates a request
func (r *GormRequestRepository) Update(request *models.AssignmentRequest) error {
	return r.db.Save(request).Error
}

package repository

import (
	"github.com/coachtui/crewcommand/internal/models"
	"gorm.io/gorm"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates an assignment
func (r *GormAssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// FindByID finds an assignment by ID within an organization
func (r *GormAssignmentRepository) FindByID(organizationID, id uint64) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.Where("organization_id = ?", organizationID).
		Preload("Task").Preload("Worker").
		First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindForWorkerOnDate finds a worker's assignment for one date
func (r *GormAssignmentRepository) FindForWorkerOnDate(organizationID, workerID uint64, date string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.Where("organization_id = ? AND worker_id = ? AND assigned_date = ?",
		organizationID, workerID, date).
		Preload("Task").Preload("Task.JobSite").
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListForWorker lists a worker's assignments, newest date first
func (r *GormAssignmentRepository) ListForWorker(organizationID, workerID uint64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := r.db.Where("organization_id = ? AND worker_id = ?", organizationID, workerID).
		Preload("Task").
		Order("assigned_date DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Supersede replaces the worker's assignment for the date. The old rows
// are deleted, not archived; their identity is not preserved.
func (r *GormAssignmentRepository) Supersede(assignment *models.Assignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("organization_id = ? AND worker_id = ? AND assigned_date = ?",
			assignment.OrganizationID, assignment.WorkerID, assignment.AssignedDate).
			Delete(&models.Assignment{}).Error
		if err != nil {
			return err
		}

		return tx.Create(assignment).Error
	})
}

// Update updates an assignment
func (r *GormAssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

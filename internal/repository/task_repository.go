package repository

import (
	"strings"

	"github.com/coachtui/crewcommand/internal/database"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID within an organization
func (r *GormTaskRepository) FindByID(organizationID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("organization_id = ?", organizationID).
		Preload("JobSite").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).
		Where("tasks.organization_id = ?", filter.OrganizationID)

	if filter.JobSiteID != nil {
		query = query.Where("tasks.job_site_id = ?", *filter.JobSiteID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var tasks []models.Task
	if err := listQuery.Preload("JobSite").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// SearchByName finds tasks matching the query within an organization
func (r *GormTaskRepository) SearchByName(organizationID uint64, query string) ([]models.Task, error) {
	var tasks []models.Task
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	if err := r.db.Where("organization_id = ? AND LOWER(name) LIKE ?", organizationID, pattern).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

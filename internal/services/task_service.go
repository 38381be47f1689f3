package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNameRequired = errors.New("task name is required")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
	siteRepo repository.JobSiteRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, siteRepo repository.JobSiteRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		siteRepo: siteRepo,
	}
}

func taskResource(task *models.Task) authz.Resource {
	return authz.Resource{OrganizationID: task.OrganizationID, JobSiteID: task.JobSiteID}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name               string
	Location           string
	JobSiteID          *uint64
	StartDate          string
	EndDate            string
	RequiredOperators  int
	RequiredLaborers   int
	RequiredCarpenters int
	RequiredMasons     int
}

// CreateTask creates a task with planned status. Headcounts default to
// zero; a task without a site is organization-level and admin-only.
func (s *TaskService) CreateTask(caller authz.Caller, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}

	if input.JobSiteID != nil {
		if _, err := s.siteRepo.FindByID(caller.OrganizationID, *input.JobSiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrJobSiteNotFound
			}
			return nil, fmt.Errorf("failed to find job site: %w", err)
		}
	}

	resource := authz.Resource{OrganizationID: caller.OrganizationID, JobSiteID: input.JobSiteID}
	if err := authz.Decide(caller, authz.ActionCreateTask, resource); err != nil {
		return nil, err
	}

	task := &models.Task{
		OrganizationID:     caller.OrganizationID,
		JobSiteID:          input.JobSiteID,
		Name:               input.Name,
		Location:           input.Location,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		RequiredOperators:  input.RequiredOperators,
		RequiredLaborers:   input.RequiredLaborers,
		RequiredCarpenters: input.RequiredCarpenters,
		RequiredMasons:     input.RequiredMasons,
		Status:             models.TaskStatusPlanned,
		CreatedBy:          caller.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update
type UpdateTaskInput struct {
	Name               *string
	Location           *string
	Status             *models.TaskStatus
	StartDate          *string
	EndDate            *string
	RequiredOperators  *int
	RequiredLaborers   *int
	RequiredCarpenters *int
	RequiredMasons     *int
}

// UpdateTask applies a partial update to a task.
func (s *TaskService) UpdateTask(caller authz.Caller, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(caller.OrganizationID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionEditTask, taskResource(task)); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = *input.Name
	}
	if input.Location != nil {
		task.Location = *input.Location
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.StartDate != nil {
		task.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		task.EndDate = *input.EndDate
	}
	if input.RequiredOperators != nil {
		task.RequiredOperators = *input.RequiredOperators
	}
	if input.RequiredLaborers != nil {
		task.RequiredLaborers = *input.RequiredLaborers
	}
	if input.RequiredCarpenters != nil {
		task.RequiredCarpenters = *input.RequiredCarpenters
	}
	if input.RequiredMasons != nil {
		task.RequiredMasons = *input.RequiredMasons
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// GetTask returns a task in the caller's organization.
func (s *TaskService) GetTask(caller authz.Caller, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(caller.OrganizationID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks lists tasks in the caller's organization.
func (s *TaskService) ListTasks(caller authz.Caller, jobSiteID *uint64, status *models.TaskStatus, page, pageSize int) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		OrganizationID: caller.OrganizationID,
		JobSiteID:      jobSiteID,
		Status:         status,
		Page:           page,
		PageSize:       pageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

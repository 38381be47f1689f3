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
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrWorkerNameRequired = errors.New("worker name is required")
)

// WorkerService handles worker roster business logic.
type WorkerService struct {
	workerRepo repository.WorkerRepository
	siteRepo   repository.JobSiteRepository
}

// NewWorkerService creates a new WorkerService.
func NewWorkerService(workerRepo repository.WorkerRepository, siteRepo repository.JobSiteRepository) *WorkerService {
	return &WorkerService{
		workerRepo: workerRepo,
		siteRepo:   siteRepo,
	}
}

// workerResource maps a worker to its authorization target: the worker's
// site if assigned, otherwise organization-level.
func workerResource(orgID uint64, jobSiteID *uint64) authz.Resource {
	if jobSiteID != nil {
		return authz.SiteResource(orgID, *jobSiteID)
	}
	return authz.OrgResource(orgID)
}

// CreateWorkerInput represents input for creating a worker
type CreateWorkerInput struct {
	Name      string
	Role      models.WorkerRole
	Skills    []string
	JobSiteID *uint64
}

// CreateWorker adds a worker to the roster.
func (s *WorkerService) CreateWorker(caller authz.Caller, input CreateWorkerInput) (*models.Worker, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrWorkerNameRequired
	}

	if input.JobSiteID != nil {
		if _, err := s.siteRepo.FindByID(caller.OrganizationID, *input.JobSiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrJobSiteNotFound
			}
			return nil, fmt.Errorf("failed to find job site: %w", err)
		}
	}

	if err := authz.Decide(caller, authz.ActionManageWorkers, workerResource(caller.OrganizationID, input.JobSiteID)); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.WorkerRoleLaborer
	}

	worker := &models.Worker{
		OrganizationID: caller.OrganizationID,
		Name:           input.Name,
		Role:           role,
		Skills:         input.Skills,
		Status:         models.WorkerStatusActive,
		JobSiteID:      input.JobSiteID,
	}

	if err := s.workerRepo.Create(worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return worker, nil
}

// UpdateWorkerInput represents a partial worker update
type UpdateWorkerInput struct {
	Name   *string
	Role   *models.WorkerRole
	Skills []string
	Status *models.WorkerStatus
}

// UpdateWorker applies a partial update to a worker.
func (s *WorkerService) UpdateWorker(caller authz.Caller, workerID uint64, input UpdateWorkerInput) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(caller.OrganizationID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionManageWorkers, workerResource(caller.OrganizationID, worker.JobSiteID)); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrWorkerNameRequired
		}
		worker.Name = *input.Name
	}
	if input.Role != nil {
		worker.Role = *input.Role
	}
	if input.Skills != nil {
		worker.Skills = input.Skills
	}
	if input.Status != nil {
		worker.Status = *input.Status
	}

	if err := s.workerRepo.Update(worker); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	return worker, nil
}

// MoveWorkerToSite changes a worker's home job site. The operation spans
// two sites, so it is admin-only regardless of site roles.
func (s *WorkerService) MoveWorkerToSite(caller authz.Caller, workerID uint64, jobSiteID *uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(caller.OrganizationID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionMoveWorkerSite, authz.OrgResource(caller.OrganizationID)); err != nil {
		return nil, err
	}

	if jobSiteID != nil {
		if _, err := s.siteRepo.FindByID(caller.OrganizationID, *jobSiteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrJobSiteNotFound
			}
			return nil, fmt.Errorf("failed to find job site: %w", err)
		}
	}

	worker.JobSiteID = jobSiteID
	if err := s.workerRepo.Update(worker); err != nil {
		return nil, fmt.Errorf("failed to move worker: %w", err)
	}

	return worker, nil
}

// ListWorkers lists the organization's workers, optionally by site.
func (s *WorkerService) ListWorkers(caller authz.Caller, jobSiteID *uint64) ([]models.Worker, error) {
	workers, err := s.workerRepo.List(caller.OrganizationID, jobSiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

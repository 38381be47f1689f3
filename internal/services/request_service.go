package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrRequestNotPending = errors.New("request has already been reviewed")
	ErrNoPendingRequest  = errors.New("no pending request for worker")
)

// RequestService handles reassignment requests and their review.
type RequestService struct {
	requestRepo repository.RequestRepository
	workerRepo  repository.WorkerRepository
	taskRepo    repository.TaskRepository
}

// NewRequestService creates a new RequestService.
func NewRequestService(requestRepo repository.RequestRepository, workerRepo repository.WorkerRepository, taskRepo repository.TaskRepository) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		workerRepo:  workerRepo,
		taskRepo:    taskRepo,
	}
}

// CreateRequest files a reassignment proposal for later review.
func (s *RequestService) CreateRequest(caller authz.Caller, workerID, taskID uint64) (*models.AssignmentRequest, error) {
	if _, err := s.workerRepo.FindByID(caller.OrganizationID, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	task, err := s.taskRepo.FindByID(caller.OrganizationID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionRequestReassign, taskResource(task)); err != nil {
		return nil, err
	}

	request := &models.AssignmentRequest{
		OrganizationID: caller.OrganizationID,
		WorkerID:       workerID,
		TaskID:         task.ID,
		RequestedBy:    caller.UserID,
		Status:         models.RequestStatusPending,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

// Review approves or denies a pending request. The decision is recorded;
// an approval does not itself move the worker.
func (s *RequestService) Review(caller authz.Caller, requestID uint64, approve bool) (*models.AssignmentRequest, error) {
	request, err := s.requestRepo.FindByID(caller.OrganizationID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionApproveRequest, taskResource(&request.Task)); err != nil {
		return nil, err
	}

	if request.Status != models.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	if approve {
		request.Status = models.RequestStatusApproved
	} else {
		request.Status = models.RequestStatusDenied
	}
	now := time.Now()
	request.ReviewedBy = &caller.UserID
	request.ReviewedAt = &now

	if err := s.requestRepo.Update(request); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	return request, nil
}

// ApproveLatestForWorker approves the worker's most recent pending
// request. Used when the request is referenced by worker name rather
// than by ID.
func (s *RequestService) ApproveLatestForWorker(caller authz.Caller, workerID uint64) (*models.AssignmentRequest, error) {
	request, err := s.requestRepo.LatestPendingForWorker(caller.OrganizationID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPendingRequest
		}
		return nil, fmt.Errorf("failed to find pending request: %w", err)
	}
	return s.Review(caller, request.ID, true)
}

// ListPending lists the organization's pending requests.
func (s *RequestService) ListPending(caller authz.Caller) ([]models.AssignmentRequest, error) {
	if err := authz.Decide(caller, authz.ActionViewSchedule, authz.OrgResource(caller.OrganizationID)); err != nil {
		// Org-level viewing is admin territory; site leads see their
		// own sites' requests through the worker-scoped endpoints.
		return nil, err
	}

	requests, err := s.requestRepo.ListPending(caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

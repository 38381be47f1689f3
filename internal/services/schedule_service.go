package services

import (
	"errors"
	"fmt"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoDatesResolved         = errors.New("no dates to schedule")
	ErrNothingToUpdate         = errors.New("no timesheet fields to update")
	ErrInvalidAssignmentStatus = errors.New("invalid assignment status")
)

var validAssignmentStatuses = map[models.AssignmentStatus]bool{
	models.AssignmentStatusAssigned:   true,
	models.AssignmentStatusCompleted:  true,
	models.AssignmentStatusReassigned: true,
}

// ScheduleService handles daily assignments and timesheets.
type ScheduleService struct {
	assignRepo repository.AssignmentRepository
	taskRepo   repository.TaskRepository
	workerRepo repository.WorkerRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(assignRepo repository.AssignmentRepository, taskRepo repository.TaskRepository, workerRepo repository.WorkerRepository) *ScheduleService {
	return &ScheduleService{
		assignRepo: assignRepo,
		taskRepo:   taskRepo,
		workerRepo: workerRepo,
	}
}

// DateFailure records why one date of a multi-date operation failed.
type DateFailure struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ReassignResult reports per-date outcomes. Dates are processed
// independently and in order; a failure partway through does not roll
// back earlier dates, so both lists are always reported.
type ReassignResult struct {
	Worker    string        `json:"worker"`
	Task      string        `json:"task"`
	Succeeded []string      `json:"succeeded"`
	Failed    []DateFailure `json:"failed,omitempty"`
}

// ReassignWorker moves a worker to a task for each date. Any existing
// assignment on a date is superseded: deleted and replaced, last write
// wins per (worker, date).
func (s *ScheduleService) ReassignWorker(caller authz.Caller, workerID, taskID uint64, dates []string) (*ReassignResult, error) {
	if len(dates) == 0 {
		return nil, ErrNoDatesResolved
	}

	worker, err := s.workerRepo.FindByID(caller.OrganizationID, workerID)
	if err != nil {
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

	if err := authz.Decide(caller, authz.ActionAssignWorker, taskResource(task)); err != nil {
		return nil, err
	}

	result := &ReassignResult{Worker: worker.Name, Task: task.Name}
	for _, date := range dates {
		assignment := &models.Assignment{
			OrganizationID: caller.OrganizationID,
			TaskID:         task.ID,
			WorkerID:       worker.ID,
			AssignedDate:   date,
			Status:         models.AssignmentStatusAssigned,
			AssignedBy:     caller.UserID,
		}

		if err := s.assignRepo.Supersede(assignment); err != nil {
			result.Failed = append(result.Failed, DateFailure{Date: date, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, date)
	}

	return result, nil
}

// WorkerDay describes where a worker is scheduled on one date.
type WorkerDay struct {
	Worker   string `json:"worker"`
	Date     string `json:"date"`
	Task     string `json:"task"`
	Location string `json:"location"`
	JobSite  string `json:"job_site,omitempty"`
}

// QueryWorkerDay returns a worker's assignment for a date. A missing
// assignment is an error naming the worker and date, not an empty
// success; the absence is the information to surface.
func (s *ScheduleService) QueryWorkerDay(caller authz.Caller, workerID uint64, date string) (*WorkerDay, error) {
	worker, err := s.workerRepo.FindByID(caller.OrganizationID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	assignment, err := s.assignRepo.FindForWorkerOnDate(caller.OrganizationID, worker.ID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NoAssignmentError{WorkerName: worker.Name, Date: date}
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionViewSchedule, taskResource(&assignment.Task)); err != nil {
		return nil, err
	}

	day := &WorkerDay{
		Worker:   worker.Name,
		Date:     date,
		Task:     assignment.Task.Name,
		Location: assignment.Task.Location,
	}
	if assignment.Task.JobSite != nil {
		day.JobSite = assignment.Task.JobSite.Name
	}
	return day, nil
}

// TimesheetInput represents a partial timesheet update; only present
// fields are written.
type TimesheetInput struct {
	Hours  *float64
	Status *models.AssignmentStatus
}

// UpdateTimesheet updates hours/status on a worker's assignment for a
// date.
func (s *ScheduleService) UpdateTimesheet(caller authz.Caller, workerID uint64, date string, input TimesheetInput) (*models.Assignment, error) {
	if input.Hours == nil && input.Status == nil {
		return nil, ErrNothingToUpdate
	}
	if input.Status != nil && !validAssignmentStatuses[*input.Status] {
		return nil, ErrInvalidAssignmentStatus
	}

	worker, err := s.workerRepo.FindByID(caller.OrganizationID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	assignment, err := s.assignRepo.FindForWorkerOnDate(caller.OrganizationID, worker.ID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NoAssignmentError{WorkerName: worker.Name, Date: date}
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionClockHours, taskResource(&assignment.Task)); err != nil {
		return nil, err
	}

	if input.Hours != nil {
		assignment.HoursWorked = input.Hours
	}
	if input.Status != nil {
		assignment.Status = *input.Status
	}

	if err := s.assignRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update timesheet: %w", err)
	}

	return assignment, nil
}

// ListWorkerTimesheet lists a worker's assignments. A user linked to the
// worker record may read their own timesheet regardless of role.
func (s *ScheduleService) ListWorkerTimesheet(caller authz.Caller, workerID uint64) ([]models.Assignment, error) {
	worker, err := s.workerRepo.FindByID(caller.OrganizationID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	selfRead := worker.UserID != nil && caller.IsSelf(*worker.UserID)
	if !selfRead {
		if err := authz.Decide(caller, authz.ActionViewSchedule, workerResource(caller.OrganizationID, worker.JobSiteID)); err != nil {
			return nil, err
		}
	}

	assignments, err := s.assignRepo.ListForWorker(caller.OrganizationID, worker.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet: %w", err)
	}
	return assignments, nil
}

package repository

import (
	"github.com/coachtui/crewcommand/internal/models"
)

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	// Create creates a new user profile
	Create(profile *models.UserProfile) error

	// FindByID finds a profile by ID
	FindByID(id uint64) (*models.UserProfile, error)

	// FindByEmail finds a profile by email
	FindByEmail(email string) (*models.UserProfile, error)

	// Update updates a profile
	Update(profile *models.UserProfile) error

	// ListActiveSiteAssignments lists a user's active job site assignments
	ListActiveSiteAssignments(userID uint64) ([]models.JobSiteAssignment, error)
}

// JobSiteRepository defines the interface for job site data access
type JobSiteRepository interface {
	// Create creates a new job site
	Create(site *models.JobSite) error

	// FindByID finds a job site by ID within an organization
	FindByID(organizationID, id uint64) (*models.JobSite, error)

	// List lists an organization's job sites
	List(organizationID uint64) ([]models.JobSite, error)

	// SearchByName finds job sites whose name matches the query,
	// case-insensitive substring, scoped to the organization
	SearchByName(organizationID uint64, query string) ([]models.JobSite, error)

	// Update updates a job site
	Update(site *models.JobSite) error

	// AssignUser activates a site assignment, deactivating any existing
	// active assignment for the same (user, site) in one transaction
	AssignUser(assignment *models.JobSiteAssignment, endDate string) error

	// ListAssignments lists a site's assignments (active and inactive)
	ListAssignments(organizationID, jobSiteID uint64) ([]models.JobSiteAssignment, error)
}

// WorkerRepository defines the interface for worker data access
type WorkerRepository interface {
	// Create creates a new worker
	Create(worker *models.Worker) error

	// FindByID finds a worker by ID within an organization
	FindByID(organizationID, id uint64) (*models.Worker, error)

	// List lists an organization's workers, optionally by job site
	List(organizationID uint64, jobSiteID *uint64) ([]models.Worker, error)

	// SearchByName finds workers whose name matches the query,
	// case-insensitive substring, scoped to the organization
	SearchByName(organizationID uint64, query string) ([]models.Worker, error)

	// Update updates a worker
	Update(worker *models.Worker) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationID uint64
	JobSiteID      *uint64
	Status         *models.TaskStatus
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID within an organization
	FindByID(organizationID, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// SearchByName finds tasks whose name matches the query,
	// case-insensitive substring, scoped to the organization
	SearchByName(organizationID uint64, query string) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error
}

// AssignmentRepository defines the interface for daily assignment access
type AssignmentRepository interface {
	// Create creates an assignment
	Create(assignment *models.Assignment) error

	// FindByID finds an assignment by ID within an organization
	FindByID(organizationID, id uint64) (*models.Assignment, error)

	// FindForWorkerOnDate finds a worker's assignment for one date
	FindForWorkerOnDate(organizationID, workerID uint64, date string) (*models.Assignment, error)

	// ListForWorker lists a worker's assignments, newest date first
	ListForWorker(organizationID, workerID uint64) ([]models.Assignment, error)

	// Supersede deletes any assignment rows for (worker, date) and
	// inserts the replacement in one transaction (last write wins)
	Supersede(assignment *models.Assignment) error

	// Update updates an assignment
	Update(assignment *models.Assignment) error
}

// RequestRepository defines the interface for reassignment requests
type RequestRepository interface {
	// Create creates a request
	Create(request *models.AssignmentRequest) error

	// FindByID finds a request by ID within an organization
	FindByID(organizationID, id uint64) (*models.AssignmentRequest, error)

	// LatestPendingForWorker returns the worker's most recent pending
	// request (created_at tie-break)
	LatestPendingForWorker(organizationID, workerID uint64) (*models.AssignmentRequest, error)

	// ListPending lists an organization's pending requests
	ListPending(organizationID uint64) ([]models.AssignmentRequest, error)

	// Update updates a request
	Update(request *models.AssignmentRequest) error
}

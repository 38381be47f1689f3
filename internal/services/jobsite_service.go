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
	ErrJobSiteNotFound     = errors.New("job site not found")
	ErrJobSiteNameRequired = errors.New("job site name is required")
	ErrStartDateRequired   = errors.New("start date is required")
	ErrInvalidSiteRole     = errors.New("invalid site role")
)

var validSiteRoles = map[models.SiteRole]bool{
	models.SiteRoleSuperintendent: true,
	models.SiteRoleEngineer:       true,
	models.SiteRoleEngineerAsSupt: true,
	models.SiteRoleForeman:        true,
	models.SiteRoleWorker:         true,
}

// JobSiteService handles job site and site-assignment business logic.
type JobSiteService struct {
	siteRepo repository.JobSiteRepository
	userRepo repository.UserRepository
}

// NewJobSiteService creates a new JobSiteService.
func NewJobSiteService(siteRepo repository.JobSiteRepository, userRepo repository.UserRepository) *JobSiteService {
	return &JobSiteService{
		siteRepo: siteRepo,
		userRepo: userRepo,
	}
}

// CreateJobSiteInput represents input for creating a job site
type CreateJobSiteInput struct {
	Name      string
	Address   string
	StartDate string
	EndDate   string
}

// CreateJobSite creates a job site. Job sites are organization-level
// resources, so only admins pass the check.
func (s *JobSiteService) CreateJobSite(caller authz.Caller, input CreateJobSiteInput) (*models.JobSite, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrJobSiteNameRequired
	}

	if err := authz.Decide(caller, authz.ActionManageJobSites, authz.OrgResource(caller.OrganizationID)); err != nil {
		return nil, err
	}

	site := &models.JobSite{
		OrganizationID: caller.OrganizationID,
		Name:           input.Name,
		Address:        input.Address,
		Status:         models.JobSiteStatusActive,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}

	if err := s.siteRepo.Create(site); err != nil {
		return nil, fmt.Errorf("failed to create job site: %w", err)
	}

	return site, nil
}

// UpdateJobSiteInput represents a partial job site update
type UpdateJobSiteInput struct {
	Name      *string
	Address   *string
	Status    *models.JobSiteStatus
	StartDate *string
	EndDate   *string
}

// UpdateJobSite applies a partial update to a job site.
func (s *JobSiteService) UpdateJobSite(caller authz.Caller, siteID uint64, input UpdateJobSiteInput) (*models.JobSite, error) {
	site, err := s.siteRepo.FindByID(caller.OrganizationID, siteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobSiteNotFound
		}
		return nil, fmt.Errorf("failed to find job site: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionManageJobSites, authz.OrgResource(caller.OrganizationID)); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrJobSiteNameRequired
		}
		site.Name = *input.Name
	}
	if input.Address != nil {
		site.Address = *input.Address
	}
	if input.Status != nil {
		site.Status = *input.Status
	}
	if input.StartDate != nil {
		site.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		site.EndDate = *input.EndDate
	}

	if err := s.siteRepo.Update(site); err != nil {
		return nil, fmt.Errorf("failed to update job site: %w", err)
	}

	return site, nil
}

// ListJobSites lists the caller's organization's job sites.
func (s *JobSiteService) ListJobSites(caller authz.Caller) ([]models.JobSite, error) {
	sites, err := s.siteRepo.List(caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job sites: %w", err)
	}
	return sites, nil
}

// AssignUserInput represents input for a site role assignment
type AssignUserInput struct {
	UserID    uint64
	JobSiteID uint64
	Role      models.SiteRole
	StartDate string
}

// AssignUserToSite grants a user a role on a site. Any existing active
// assignment for the pair is deactivated in the same transaction, so at
// most one stays active.
func (s *JobSiteService) AssignUserToSite(caller authz.Caller, input AssignUserInput) (*models.JobSiteAssignment, error) {
	if !validSiteRoles[input.Role] {
		return nil, ErrInvalidSiteRole
	}
	if strings.TrimSpace(input.StartDate) == "" {
		return nil, ErrStartDateRequired
	}

	if err := authz.Decide(caller, authz.ActionAssignUserToSite, authz.OrgResource(caller.OrganizationID)); err != nil {
		return nil, err
	}

	// Both ends must be in the caller's organization; a mismatch looks
	// identical to a missing record.
	target, err := s.userRepo.FindByID(input.UserID)
	if err != nil || target.OrganizationID != caller.OrganizationID {
		return nil, ErrUserNotFound
	}

	if _, err := s.siteRepo.FindByID(caller.OrganizationID, input.JobSiteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobSiteNotFound
		}
		return nil, fmt.Errorf("failed to find job site: %w", err)
	}

	assignment := &models.JobSiteAssignment{
		OrganizationID: caller.OrganizationID,
		UserID:         input.UserID,
		JobSiteID:      input.JobSiteID,
		Role:           input.Role,
		StartDate:      input.StartDate,
	}

	if err := s.siteRepo.AssignUser(assignment, input.StartDate); err != nil {
		return nil, fmt.Errorf("failed to assign user to site: %w", err)
	}

	return assignment, nil
}

// ListSiteAssignments lists a site's role assignments.
func (s *JobSiteService) ListSiteAssignments(caller authz.Caller, siteID uint64) ([]models.JobSiteAssignment, error) {
	if _, err := s.siteRepo.FindByID(caller.OrganizationID, siteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobSiteNotFound
		}
		return nil, fmt.Errorf("failed to find job site: %w", err)
	}

	if err := authz.Decide(caller, authz.ActionViewSchedule, authz.SiteResource(caller.OrganizationID, siteID)); err != nil {
		return nil, err
	}

	assignments, err := s.siteRepo.ListAssignments(caller.OrganizationID, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list site assignments: %w", err)
	}
	return assignments, nil
}

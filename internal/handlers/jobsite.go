package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-gonic/gin"
)

type JobSiteHandler struct {
	siteService *services.JobSiteService
}

func NewJobSiteHandler(siteService *services.JobSiteService) *JobSiteHandler {
	return &JobSiteHandler{siteService: siteService}
}

type createJobSiteRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateJobSite creates a job site in the caller's organization.
func (h *JobSiteHandler) CreateJobSite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req createJobSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Job site name is required")
		return
	}

	site, err := h.siteService.CreateJobSite(caller, services.CreateJobSiteInput{
		Name:      req.Name,
		Address:   req.Address,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job_site": site})
}

// ListJobSites lists the caller's organization's job sites.
func (h *JobSiteHandler) ListJobSites(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	sites, err := h.siteService.ListJobSites(caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_sites": sites})
}

type updateJobSiteRequest struct {
	Name      *string              `json:"name"`
	Address   *string              `json:"address"`
	Status    *models.JobSiteStatus `json:"status"`
	StartDate *string              `json:"start_date"`
	EndDate   *string              `json:"end_date"`
}

// UpdateJobSite applies a partial update to a job site.
func (h *JobSiteHandler) UpdateJobSite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	siteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid job site ID")
		return
	}

	var req updateJobSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body")
		return
	}

	site, err := h.siteService.UpdateJobSite(caller, siteID, services.UpdateJobSiteInput{
		Name:      req.Name,
		Address:   req.Address,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"job_site": site})
}

type assignUserRequest struct {
	UserID    uint64          `json:"user_id" binding:"required"`
	Role      models.SiteRole `json:"role" binding:"required"`
	StartDate string          `json:"start_date" binding:"required"`
}

// AssignUser grants a user a role on the job site.
func (h *JobSiteHandler) AssignUser(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	siteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid job site ID")
		return
	}

	var req assignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "user_id, role and start_date are required")
		return
	}

	assignment, err := h.siteService.AssignUserToSite(caller, services.AssignUserInput{
		UserID:    req.UserID,
		JobSiteID: siteID,
		Role:      req.Role,
		StartDate: req.StartDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

// ListAssignments lists a job site's role assignments.
func (h *JobSiteHandler) ListAssignments(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	siteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid job site ID")
		return
	}

	assignments, err := h.siteService.ListSiteAssignments(caller, siteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

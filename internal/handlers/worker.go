package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	workerService *services.WorkerService
}

func NewWorkerHandler(workerService *services.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

type createWorkerRequest struct {
	Name      string            `json:"name" binding:"required"`
	Role      models.WorkerRole `json:"role"`
	Skills    []string          `json:"skills"`
	JobSiteID *uint64           `json:"job_site_id"`
}

// CreateWorker adds a worker to the roster.
func (h *WorkerHandler) CreateWorker(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req createWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Worker name is required")
		return
	}

	worker, err := h.workerService.CreateWorker(caller, services.CreateWorkerInput{
		Name:      req.Name,
		Role:      req.Role,
		Skills:    req.Skills,
		JobSiteID: req.JobSiteID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"worker": worker})
}

// ListWorkers lists workers, optionally filtered by job site.
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var jobSiteID *uint64
	if raw := c.Query("job_site_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errors.BadRequest(c, "Invalid job_site_id")
			return
		}
		jobSiteID = &id
	}

	workers, err := h.workerService.ListWorkers(caller, jobSiteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

type updateWorkerRequest struct {
	Name   *string              `json:"name"`
	Role   *models.WorkerRole   `json:"role"`
	Skills []string             `json:"skills"`
	Status *models.WorkerStatus `json:"status"`
}

// UpdateWorker applies a partial update to a worker.
func (h *WorkerHandler) UpdateWorker(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	workerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid worker ID")
		return
	}

	var req updateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.workerService.UpdateWorker(caller, workerID, services.UpdateWorkerInput{
		Name:   req.Name,
		Role:   req.Role,
		Skills: req.Skills,
		Status: req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

type moveWorkerRequest struct {
	JobSiteID *uint64 `json:"job_site_id"`
}

// MoveWorker changes a worker's home job site.
func (h *WorkerHandler) MoveWorker(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	workerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid worker ID")
		return
	}

	var req moveWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body")
		return
	}

	worker, err := h.workerService.MoveWorkerToSite(caller, workerID, req.JobSiteID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

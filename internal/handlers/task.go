package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/coachtui/crewcommand/internal/utils"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Name               string  `json:"name" binding:"required"`
	Location           string  `json:"location"`
	JobSiteID          *uint64 `json:"job_site_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	RequiredOperators  int     `json:"required_operators"`
	RequiredLaborers   int     `json:"required_laborers"`
	RequiredCarpenters int     `json:"required_carpenters"`
	RequiredMasons     int     `json:"required_masons"`
}

// CreateTask creates a task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Task name is required")
		return
	}

	task, err := h.taskService.CreateTask(caller, services.CreateTaskInput{
		Name:               req.Name,
		Location:           req.Location,
		JobSiteID:          req.JobSiteID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		RequiredOperators:  req.RequiredOperators,
		RequiredLaborers:   req.RequiredLaborers,
		RequiredCarpenters: req.RequiredCarpenters,
		RequiredMasons:     req.RequiredMasons,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTask returns one task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(caller, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// ListTasks lists tasks with optional job site and status filters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
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

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		status = &s
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListTasks(caller, jobSiteID, status, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

type updateTaskRequest struct {
	Name               *string            `json:"name"`
	Location           *string            `json:"location"`
	Status             *models.TaskStatus `json:"status"`
	StartDate          *string            `json:"start_date"`
	EndDate            *string            `json:"end_date"`
	RequiredOperators  *int               `json:"required_operators"`
	RequiredLaborers   *int               `json:"required_laborers"`
	RequiredCarpenters *int               `json:"required_carpenters"`
	RequiredMasons     *int               `json:"required_masons"`
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid task ID")
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(caller, taskID, services.UpdateTaskInput{
		Name:               req.Name,
		Location:           req.Location,
		Status:             req.Status,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		RequiredOperators:  req.RequiredOperators,
		RequiredLaborers:   req.RequiredLaborers,
		RequiredCarpenters: req.RequiredCarpenters,
		RequiredMasons:     req.RequiredMasons,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

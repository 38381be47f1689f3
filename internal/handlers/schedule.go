package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

type reassignRequest struct {
	WorkerID uint64   `json:"worker_id" binding:"required"`
	TaskID   uint64   `json:"task_id" binding:"required"`
	Dates    []string `json:"dates" binding:"required,min=1"`
}

// Reassign moves a worker to a task on the given dates, superseding any
// existing assignments on those dates.
func (h *ScheduleHandler) Reassign(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "worker_id, task_id and dates are required")
		return
	}

	result, err := h.scheduleService.ReassignWorker(caller, req.WorkerID, req.TaskID, req.Dates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetWorkerDay returns where a worker is scheduled on a date.
func (h *ScheduleHandler) GetWorkerDay(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	workerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid worker ID")
		return
	}

	date := c.Query("date")
	if date == "" {
		errors.BadRequest(c, "date query parameter is required")
		return
	}

	day, err := h.scheduleService.QueryWorkerDay(caller, workerID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": day})
}

type timesheetRequest struct {
	Date   string                   `json:"date" binding:"required"`
	Hours  *float64                 `json:"hours"`
	Status *models.AssignmentStatus `json:"status"`
}

// UpdateTimesheet records hours or status on a worker's assignment.
func (h *ScheduleHandler) UpdateTimesheet(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	workerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid worker ID")
		return
	}

	var req timesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "date is required")
		return
	}

	assignment, err := h.scheduleService.UpdateTimesheet(caller, workerID, req.Date, services.TimesheetInput{
		Hours:  req.Hours,
		Status: req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

// ListTimesheet lists a worker's assignments, newest first.
func (h *ScheduleHandler) ListTimesheet(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	workerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid worker ID")
		return
	}

	assignments, err := h.scheduleService.ListWorkerTimesheet(caller, workerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

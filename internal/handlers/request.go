package handlers

import (
	"net/http"
	"strconv"

	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService *services.RequestService
}

func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

type createRequestRequest struct {
	WorkerID uint64 `json:"worker_id" binding:"required"`
	TaskID   uint64 `json:"task_id" binding:"required"`
}

// CreateRequest files a reassignment proposal.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "worker_id and task_id are required")
		return
	}

	request, err := h.requestService.CreateRequest(caller, req.WorkerID, req.TaskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

type reviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// ReviewRequest approves or denies a pending request.
func (h *RequestHandler) ReviewRequest(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errors.BadRequest(c, "Invalid request ID")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "approve is required")
		return
	}

	request, err := h.requestService.Review(caller, requestID, *req.Approve)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// ListPending lists the organization's pending requests.
func (h *RequestHandler) ListPending(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListPending(caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

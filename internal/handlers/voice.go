package handlers

import (
	"net/http"

	"github.com/coachtui/crewcommand/internal/errors"
	"github.com/coachtui/crewcommand/internal/services"
	"github.com/coachtui/crewcommand/internal/voice"
	"github.com/gin-gonic/gin"
)

type VoiceHandler struct {
	parser       services.IntentParser
	voiceService *services.VoiceService
}

func NewVoiceHandler(parser services.IntentParser, voiceService *services.VoiceService) *VoiceHandler {
	return &VoiceHandler{
		parser:       parser,
		voiceService: voiceService,
	}
}

type parseRequest struct {
	Transcript string `json:"transcript" binding:"required"`
	ClientDate string `json:"client_date" binding:"required"`
}

// Parse turns a transcript into a structured intent. Nothing is
// executed here; the client shows the summary and calls Execute once
// the user confirms.
func (h *VoiceHandler) Parse(c *gin.Context) {
	if _, ok := requireCaller(c); !ok {
		return
	}

	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "transcript and client_date are required")
		return
	}

	if _, err := voice.ParseAnchor(req.ClientDate); err != nil {
		errors.BadRequest(c, err.Error())
		return
	}

	intent, err := h.parser.ParseCommand(c.Request.Context(), req.Transcript, req.ClientDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Clarifications send the session back to listening; everything
	// else waits on the user's confirmation screen.
	state := voice.StateAwaitingConfirmation
	if intent.Action == voice.ActionClarify {
		state = voice.StateListening
	}

	c.JSON(http.StatusOK, gin.H{"intent": intent, "state": state})
}

type executeRequest struct {
	Intent     *voice.Intent `json:"intent" binding:"required"`
	ClientDate string        `json:"client_date" binding:"required"`
	Confirmed  bool          `json:"confirmed"`
	State      voice.State   `json:"state"`
}

// Execute runs a confirmed intent under the caller's permissions.
func (h *VoiceHandler) Execute(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, "intent and client_date are required")
		return
	}

	// Clients that report their session state must be in one that can
	// legally move to executing.
	if req.State != "" && !req.State.CanTransition(voice.StateExecuting) {
		errors.Conflict(c, "session cannot execute from state "+string(req.State))
		return
	}

	result, err := h.voiceService.Execute(caller, req.Intent, req.ClientDate, req.Confirmed)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "state": voice.StateCompleted})
}

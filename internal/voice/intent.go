// Package voice defines the structured intent contract between the
// language model and the executor, plus the helpers both sides share.
package voice

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Action string

const (
	ActionReassignWorker  Action = "reassign_worker"
	ActionCreateTask      Action = "create_task"
	ActionQueryInfo       Action = "query_info"
	ActionUpdateTimesheet Action = "update_timesheet"
	ActionApproveRequest  Action = "approve_request"
	ActionClarify         Action = "clarify"
)

var validActions = map[Action]bool{
	ActionReassignWorker:  true,
	ActionCreateTask:      true,
	ActionQueryInfo:       true,
	ActionUpdateTimesheet: true,
	ActionApproveRequest:  true,
	ActionClarify:         true,
}

// IntentData is the action-specific payload. Names are the partial
// spoken forms; the executor resolves them against the caller's
// organization.
type IntentData struct {
	WorkerName  string   `json:"worker_name,omitempty"`
	TaskName    string   `json:"task_name,omitempty"`
	ToTaskName  string   `json:"to_task_name,omitempty"`
	JobSiteName string   `json:"job_site_name,omitempty"`
	Dates       []string `json:"dates,omitempty"`
	Date        string   `json:"date,omitempty"`
	Location    string   `json:"location,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Status      string   `json:"status,omitempty"`
	QueryType   string   `json:"query_type,omitempty"`

	RequiredOperators  *int `json:"required_operators,omitempty"`
	RequiredLaborers   *int `json:"required_laborers,omitempty"`
	RequiredCarpenters *int `json:"required_carpenters,omitempty"`
	RequiredMasons     *int `json:"required_masons,omitempty"`
}

// Intent is the fixed output contract of the interpreter.
type Intent struct {
	Action            Action     `json:"action"`
	Confidence        float64    `json:"confidence"`
	Data              IntentData `json:"data"`
	Summary           string     `json:"summary"`
	NeedsConfirmation bool       `json:"needs_confirmation"`
	Question          string     `json:"question,omitempty"`
	Options           []string   `json:"options,omitempty"`
}

// ParseError reports model output that does not satisfy the contract.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "intent parse error: " + e.Reason
}

// StripCodeFences removes markdown fence delimiters the model sometimes
// wraps around its JSON reply.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (which may carry a language tag).
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeIntent strips incidental formatting, decodes, and validates the
// model output. Non-conforming output fails with ParseError, never with a
// silent default.
func DecodeIntent(raw string) (*Intent, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, &ParseError{Reason: "empty response"}
	}

	var intent Intent
	if err := json.Unmarshal([]byte(cleaned), &intent); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if err := intent.Validate(); err != nil {
		return nil, err
	}

	return &intent, nil
}

// Validate checks the structural rules of the contract.
func (i *Intent) Validate() error {
	if !validActions[i.Action] {
		return &ParseError{Reason: fmt.Sprintf("unknown action %q", i.Action)}
	}
	if i.Confidence < 0 || i.Confidence > 1 {
		return &ParseError{Reason: fmt.Sprintf("confidence %v outside [0,1]", i.Confidence)}
	}

	if i.Action == ActionClarify {
		if strings.TrimSpace(i.Question) == "" {
			return &ParseError{Reason: "clarify intent missing question"}
		}
		if len(i.Options) == 0 {
			return &ParseError{Reason: "clarify intent missing options"}
		}
		return nil
	}

	if strings.TrimSpace(i.Summary) == "" {
		return &ParseError{Reason: "intent missing summary"}
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coachtui/crewcommand/internal/authz"
	"github.com/coachtui/crewcommand/internal/models"
	"github.com/coachtui/crewcommand/internal/repository"
	"github.com/coachtui/crewcommand/internal/voice"
)

var (
	ErrClarifyNotExecutable  = errors.New("clarification intents cannot be executed")
	ErrConfirmationRequired  = errors.New("intent requires confirmation before execution")
	ErrUnknownIntentAction   = errors.New("unknown intent action")
	ErrWorkerNameMissing     = errors.New("intent is missing a worker name")
	ErrTargetTaskNameMissing = errors.New("intent is missing a destination task")
)

// ExecutionResult is the outcome of one executed intent.
type ExecutionResult struct {
	Action  voice.Action `json:"action"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
}

// VoiceService executes confirmed intents. All mutations go through the
// regular services, so voice commands carry exactly the caller's
// permissions and nothing more.
type VoiceService struct {
	workerRepo repository.WorkerRepository
	taskRepo   repository.TaskRepository
	siteRepo   repository.JobSiteRepository
	schedules  *ScheduleService
	tasks      *TaskService
	requests   *RequestService
}

// NewVoiceService creates a new VoiceService.
func NewVoiceService(
	workerRepo repository.WorkerRepository,
	taskRepo repository.TaskRepository,
	siteRepo repository.JobSiteRepository,
	schedules *ScheduleService,
	tasks *TaskService,
	requests *RequestService,
) *VoiceService {
	return &VoiceService{
		workerRepo: workerRepo,
		taskRepo:   taskRepo,
		siteRepo:   siteRepo,
		schedules:  schedules,
		tasks:      tasks,
		requests:   requests,
	}
}

// Execute runs a parsed intent on behalf of the caller. clientDate
// anchors relative dates; confirmed acknowledges the summary shown to
// the user. Intents flagged needs_confirmation are rejected until
// confirmed is true, server side, regardless of what the client sends.
func (s *VoiceService) Execute(caller authz.Caller, intent *voice.Intent, clientDate string, confirmed bool) (*ExecutionResult, error) {
	if intent.Action == voice.ActionClarify {
		return nil, ErrClarifyNotExecutable
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	if intent.NeedsConfirmation && !confirmed {
		return nil, ErrConfirmationRequired
	}

	anchor, err := voice.ParseAnchor(clientDate)
	if err != nil {
		return nil, &voice.ParseError{Reason: err.Error()}
	}

	switch intent.Action {
	case voice.ActionReassignWorker:
		return s.executeReassign(caller, intent, anchor)
	case voice.ActionCreateTask:
		return s.executeCreateTask(caller, intent, anchor)
	case voice.ActionQueryInfo:
		return s.executeQuery(caller, intent, anchor)
	case voice.ActionUpdateTimesheet:
		return s.executeTimesheet(caller, intent, anchor)
	case voice.ActionApproveRequest:
		return s.executeApprove(caller, intent)
	default:
		return nil, ErrUnknownIntentAction
	}
}

// dateTokens merges the plural and singular date fields of the intent.
func dateTokens(data voice.IntentData) []string {
	tokens := data.Dates
	if len(tokens) == 0 && data.Date != "" {
		tokens = []string{data.Date}
	}
	return tokens
}

func (s *VoiceService) executeReassign(caller authz.Caller, intent *voice.Intent, anchor time.Time) (*ExecutionResult, error) {
	if intent.Data.WorkerName == "" {
		return nil, ErrWorkerNameMissing
	}
	target := intent.Data.ToTaskName
	if target == "" {
		target = intent.Data.TaskName
	}
	if target == "" {
		return nil, ErrTargetTaskNameMissing
	}

	worker, err := resolveWorker(s.workerRepo, caller.OrganizationID, intent.Data.WorkerName)
	if err != nil {
		return nil, err
	}
	task, err := resolveTask(s.taskRepo, caller.OrganizationID, target)
	if err != nil {
		return nil, err
	}

	tokens := dateTokens(intent.Data)
	if len(tokens) == 0 {
		// An unspecified date on a reassignment means the next day.
		tokens = []string{"tomorrow"}
	}
	dates, err := voice.ResolveDates(tokens, anchor)
	if err != nil {
		return nil, &voice.ParseError{Reason: err.Error()}
	}

	result, err := s.schedules.ReassignWorker(caller, worker.ID, task.ID, dates)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Moved %s to %s on %s", result.Worker, result.Task, strings.Join(result.Succeeded, ", "))
	if len(result.Succeeded) == 0 {
		msg = fmt.Sprintf("Could not move %s to %s", result.Worker, result.Task)
	}
	return &ExecutionResult{Action: intent.Action, Message: msg, Data: result}, nil
}

func (s *VoiceService) executeCreateTask(caller authz.Caller, intent *voice.Intent, anchor time.Time) (*ExecutionResult, error) {
	if intent.Data.TaskName == "" {
		return nil, ErrTaskNameRequired
	}

	var jobSiteID *uint64
	if intent.Data.JobSiteName != "" {
		site, err := resolveJobSite(s.siteRepo, caller.OrganizationID, intent.Data.JobSiteName)
		if err != nil {
			return nil, err
		}
		jobSiteID = &site.ID
	}

	tokens := dateTokens(intent.Data)
	if len(tokens) == 0 {
		tokens = []string{"tomorrow"}
	}
	dates, err := voice.ResolveDates(tokens, anchor)
	if err != nil {
		return nil, &voice.ParseError{Reason: err.Error()}
	}

	input := CreateTaskInput{
		Name:      intent.Data.TaskName,
		Location:  intent.Data.Location,
		JobSiteID: jobSiteID,
		StartDate: dates[0],
		EndDate:   dates[len(dates)-1],
	}
	if intent.Data.RequiredOperators != nil {
		input.RequiredOperators = *intent.Data.RequiredOperators
	}
	if intent.Data.RequiredLaborers != nil {
		input.RequiredLaborers = *intent.Data.RequiredLaborers
	}
	if intent.Data.RequiredCarpenters != nil {
		input.RequiredCarpenters = *intent.Data.RequiredCarpenters
	}
	if intent.Data.RequiredMasons != nil {
		input.RequiredMasons = *intent.Data.RequiredMasons
	}

	task, err := s.tasks.CreateTask(caller, input)
	if err != nil {
		return nil, err
	}

	return &ExecutionResult{
		Action:  intent.Action,
		Message: fmt.Sprintf("Created task %s starting %s", task.Name, task.StartDate),
		Data:    task,
	}, nil
}

func (s *VoiceService) executeQuery(caller authz.Caller, intent *voice.Intent, anchor time.Time) (*ExecutionResult, error) {
	if intent.Data.WorkerName == "" {
		return nil, ErrWorkerNameMissing
	}

	worker, err := resolveWorker(s.workerRepo, caller.OrganizationID, intent.Data.WorkerName)
	if err != nil {
		return nil, err
	}

	tokens := dateTokens(intent.Data)
	if len(tokens) == 0 {
		tokens = []string{"today"}
	}
	dates, err := voice.ResolveDates(tokens, anchor)
	if err != nil {
		return nil, &voice.ParseError{Reason: err.Error()}
	}

	day, err := s.schedules.QueryWorkerDay(caller, worker.ID, dates[0])
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("%s is on %s at %s on %s", day.Worker, day.Task, day.Location, day.Date)
	if day.Location == "" {
		msg = fmt.Sprintf("%s is on %s on %s", day.Worker, day.Task, day.Date)
	}
	return &ExecutionResult{Action: intent.Action, Message: msg, Data: day}, nil
}

func (s *VoiceService) executeTimesheet(caller authz.Caller, intent *voice.Intent, anchor time.Time) (*ExecutionResult, error) {
	if intent.Data.WorkerName == "" {
		return nil, ErrWorkerNameMissing
	}

	worker, err := resolveWorker(s.workerRepo, caller.OrganizationID, intent.Data.WorkerName)
	if err != nil {
		return nil, err
	}

	tokens := dateTokens(intent.Data)
	if len(tokens) == 0 {
		tokens = []string{"today"}
	}
	dates, err := voice.ResolveDates(tokens, anchor)
	if err != nil {
		return nil, &voice.ParseError{Reason: err.Error()}
	}

	input := TimesheetInput{Hours: intent.Data.Hours}
	if intent.Data.Status != "" {
		status := models.AssignmentStatus(intent.Data.Status)
		input.Status = &status
	}

	assignment, err := s.schedules.UpdateTimesheet(caller, worker.ID, dates[0], input)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Updated %s's timesheet for %s", worker.Name, assignment.AssignedDate)
	if assignment.HoursWorked != nil {
		msg = fmt.Sprintf("Logged %.1f hours for %s on %s", *assignment.HoursWorked, worker.Name, assignment.AssignedDate)
	}
	return &ExecutionResult{Action: intent.Action, Message: msg, Data: assignment}, nil
}

func (s *VoiceService) executeApprove(caller authz.Caller, intent *voice.Intent) (*ExecutionResult, error) {
	if intent.Data.WorkerName == "" {
		return nil, ErrWorkerNameMissing
	}

	worker, err := resolveWorker(s.workerRepo, caller.OrganizationID, intent.Data.WorkerName)
	if err != nil {
		return nil, err
	}

	request, err := s.requests.ApproveLatestForWorker(caller, worker.ID)
	if err != nil {
		return nil, err
	}

	return &ExecutionResult{
		Action:  intent.Action,
		Message: fmt.Sprintf("Approved the reassignment request for %s", worker.Name),
		Data:    request,
	}, nil
}

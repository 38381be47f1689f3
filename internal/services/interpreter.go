package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coachtui/crewcommand/internal/constants"
	"github.com/coachtui/crewcommand/internal/voice"
	"github.com/sashabaranov/go-openai"
)

// ErrLanguageService marks failures of the language model backend, as
// opposed to failures of the transcript itself.
var ErrLanguageService = errors.New("language service unavailable")

// IntentParser turns a raw transcript into a structured intent.
type IntentParser interface {
	ParseCommand(ctx context.Context, transcript, clientDate string) (*voice.Intent, error)
}

// OpenAIInterpreter parses voice transcripts using OpenAI chat models.
type OpenAIInterpreter struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIInterpreter creates an interpreter. An empty API key leaves
// the client nil and ParseCommand returns ErrLanguageService.
func NewOpenAIInterpreter(apiKey, model string, timeout time.Duration) *OpenAIInterpreter {
	s := &OpenAIInterpreter{
		model:   model,
		timeout: timeout,
	}
	if model == "" {
		s.model = openai.GPT4o
	}
	if timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// ParseCommand extracts a structured intent from a spoken construction
// command. The model does entity extraction only; names and dates come
// back as the caller said them and are resolved against the database
// later.
func (s *OpenAIInterpreter) ParseCommand(ctx context.Context, transcript, clientDate string) (*voice.Intent, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: OpenAI client not initialized", ErrLanguageService)
	}

	prompt := fmt.Sprintf(`You are a scheduling assistant for a construction company. Parse the voice command below into a JSON intent.

Today's date (user's local date): %s

Voice command:
%s

Return ONLY a JSON object in this exact format:
{
  "action": "reassign_worker" | "create_task" | "query_info" | "update_timesheet" | "approve_request" | "clarify",
  "confidence": 0.0 to 1.0,
  "data": {
    "worker_name": "name as spoken, or omit",
    "task_name": "task mentioned, or omit",
    "to_task_name": "destination task for reassignments, or omit",
    "job_site_name": "job site mentioned, or omit",
    "dates": ["date expressions as spoken, e.g. \"tomorrow\", \"friday\", \"2026-03-02\""],
    "location": "location for a new task, or omit",
    "hours": numeric hours worked, or omit,
    "status": "assignment status mentioned, or omit",
    "query_type": "what is being asked, e.g. \"worker_location\", or omit",
    "required_operators": number, "required_laborers": number, "required_carpenters": number, "required_masons": number (for create_task, omit when unspecified)
  },
  "summary": "one plain sentence describing what will happen",
  "needs_confirmation": true for anything that changes data,
  "question": "only for clarify: what to ask the user",
  "options": ["only for clarify: the choices to offer"]
}

Rules:
- Keep names and dates EXACTLY as spoken. Do not resolve "tomorrow" or "Jose" yourself.
- If the command is ambiguous or you are less than 70%% sure what was meant, use action "clarify" with a question and options.
- reassign_worker, create_task, update_timesheet and approve_request always need confirmation; query_info does not.
- Return the JSON only, no explanations or markdown.`, clientDate, transcript)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.1,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLanguageService, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrLanguageService)
	}

	intent, err := voice.DecodeIntent(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	// Low-confidence intents degrade to a clarification even when the
	// model did not volunteer one.
	if intent.Action != voice.ActionClarify && intent.Confidence < constants.MinIntentConfidence {
		return &voice.Intent{
			Action:     voice.ActionClarify,
			Confidence: intent.Confidence,
			Question:   "I didn't quite catch that. Could you repeat the command?",
			Options:    []string{intent.Summary},
		}, nil
	}

	return intent, nil
}

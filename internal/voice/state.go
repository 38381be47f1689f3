package voice

// State models the voice session lifecycle. The client drives the
// machine; the server validates reported transitions on session events.
type State string

const (
	StateIdle                 State = "idle"
	StateListening            State = "listening"
	StateTranscribed          State = "transcribed"
	StateParsing              State = "parsing"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateExecuting            State = "executing"
	StateCompleted            State = "completed"
	StateError                State = "error"
	StateCancelled            State = "cancelled"
)

var transitions = map[State][]State{
	StateIdle:                 {StateListening},
	StateListening:            {StateTranscribed, StateCancelled},
	StateTranscribed:          {StateParsing},
	StateParsing:              {StateAwaitingConfirmation},
	StateAwaitingConfirmation: {StateExecuting, StateCancelled},
	StateExecuting:            {StateCompleted},
	StateError:                {StateIdle},
	StateCompleted:            {StateIdle},
}

// CanTransition reports whether moving from s to next is legal. Error is
// reachable from every non-terminal state; Cancelled only from Listening
// and AwaitingConfirmation.
func (s State) CanTransition(next State) bool {
	if next == StateError {
		return s != StateCancelled && s != StateError
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the session can make no further progress
// without starting over.
func (s State) Terminal() bool {
	return s == StateCancelled
}

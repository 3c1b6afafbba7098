package miso

// Response modes supported by the workflow engine.
const (
	// ModeBlocking asks for a single JSON document.
	ModeBlocking = "blocking"
	// ModeStreaming asks for a server-sent-event stream.
	ModeStreaming = "streaming"
)

// Run statuses reported inside the blocking-mode envelope.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusRunning   = "running"
)

// SSE event names carrying briefing payloads.
const (
	// EventWorkflowFinished carries the authoritative final outputs.
	EventWorkflowFinished = "workflow_finished"
	// EventIterationCompleted carries provisional outputs that later events
	// overwrite.
	EventIterationCompleted = "iteration_completed"
)

// Request is the body of a workflow run call. Inputs is owned by the
// workflow and forwarded verbatim; the pipeline never inspects it.
type Request struct {
	Inputs map[string]any `json:"inputs"`
	Mode   string         `json:"mode"`
	User   string         `json:"user"`
}

// runEnvelope is the blocking-mode response wrapper.
type runEnvelope struct {
	Data *runData `json:"data"`
}

// runData is the run outcome inside the envelope. Outputs is kept untyped:
// its shape varies by workflow version and the unwrapper deals with it.
type runData struct {
	Status  string         `json:"status"`
	Outputs map[string]any `json:"outputs"`
	Error   string         `json:"error"`
}

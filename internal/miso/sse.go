package miso

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Scanner buffer bounds for stream frames; briefing payloads have been seen
// in the hundreds of kilobytes.
const (
	streamBufferInitial = 64 * 1024
	streamBufferMax     = 4 * 1024 * 1024
)

// streamFrame is one decoded data: payload. The engine nests the run data
// one level down, but older versions put outputs at the top, so both spots
// are checked.
type streamFrame struct {
	Event   string         `json:"event"`
	Data    *frameData     `json:"data"`
	Outputs map[string]any `json:"outputs"`
}

type frameData struct {
	Outputs map[string]any `json:"outputs"`
}

// decodeStream reads server-sent-event framing until the body closes and
// returns the outputs of the latest workflow_finished event. When none
// arrived, the latest event of any type that carried outputs is used
// instead; provisional iteration_completed payloads land there. Malformed
// frames are skipped.
func decodeStream(r io.Reader) (map[string]any, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, streamBufferInitial), streamBufferMax)

	var finished, fallback map[string]any
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			continue
		}
		outputs := frame.outputs()
		if outputs == nil {
			continue
		}
		if frame.Event == EventWorkflowFinished {
			finished = outputs
		} else {
			fallback = outputs
		}
	}

	if err := scanner.Err(); err != nil && finished == nil && fallback == nil {
		return nil, &NetworkError{Cause: err}
	}
	if finished != nil {
		return finished, nil
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, &WorkflowError{Status: "unknown", Message: "stream ended without a workflow_finished event"}
}

func (f *streamFrame) outputs() map[string]any {
	if f.Data != nil && len(f.Data.Outputs) > 0 {
		return f.Data.Outputs
	}
	if len(f.Outputs) > 0 {
		return f.Outputs
	}
	return nil
}

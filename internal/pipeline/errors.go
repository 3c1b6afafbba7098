package pipeline

import "fmt"

// EmptyResultError reports that the refresh itself succeeded but no
// displayable item remained after unwrapping, normalization, and recency
// filtering. Callers show a "no data" state for it, distinct from transport
// failures.
type EmptyResultError struct {
	Reason string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no news items collected: %s", e.Reason)
}

// Package news defines the canonical news item model and the per-item
// normalization, classification, and ranking stages of the briefing pipeline.
package news

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder values used when an upstream record omits a field.
const (
	// UnknownSource is the publisher name used when none can be determined.
	UnknownSource = "알 수 없음"
	// DefaultCategory is the fallback category outside the fixed taxonomy.
	DefaultCategory = "기타"
	// MissingURL is the sentinel link for records without a URL.
	MissingURL = "#"
)

// Item is the canonical, display-ready news entry produced by the pipeline.
// IDs are unique within a single refresh only; nothing is persisted across
// refreshes.
type Item struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"publishedAt"`
	Category       string    `json:"category"`
	RelevanceScore int       `json:"relevanceScore"`
	URL            string    `json:"url"`
}

// RawItem is one unvalidated record as decoded from the upstream payload.
// Field names vary between workflow versions, so values are looked up by
// alias lists rather than struct tags.
type RawItem map[string]any

// FirstString returns the first non-empty string value among the given keys.
func (r RawItem) FirstString(keys ...string) string {
	for _, key := range keys {
		if s, ok := r[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// FirstNumber returns the first numeric value among the given keys. JSON
// decoding yields float64 for all numbers; string-encoded numbers are
// accepted as well since some workflow versions quote the score.
func (r RawItem) FirstNumber(keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

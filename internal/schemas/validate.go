// Package schemas provides JSON Schema validation for decoded briefing
// records. Validation is advisory: the pipeline records the findings as
// diagnostics and keeps going, because the normalizer can repair every field
// the schema flags.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/news"
)

// recordsSchema describes an array of raw briefing records as the workflow
// emits them. Every field is optional upstream; the bounds on score mirror
// the pipeline's relevance-score invariant.
const recordsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "title":    {"type": "string", "minLength": 1},
      "category": {"type": "string"},
      "press":    {"type": "string"},
      "source":   {"type": "string"},
      "date":     {"type": "string"},
      "pub_date": {"type": "string"},
      "score":    {"type": "number", "minimum": 0, "maximum": 100},
      "url":      {"type": "string"},
      "link":     {"type": "string"},
      "summary":  {"type": "string"}
    }
  }
}`

// FieldError is a single validation finding at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema finding for one batch of records.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("briefing records failed schema validation:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateRecords checks a batch of raw records against the briefing schema.
// Returns a *ValidationError with every finding, or nil when the batch is
// clean. A schema that fails to load is a programming error and is reported
// as a plain error.
func ValidateRecords(records []news.RawItem) error {
	if len(records) == 0 {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(recordsSchema),
		gojsonschema.NewGoLoader(records),
	)
	if err != nil {
		return fmt.Errorf("failed to run briefing schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

package unwrap

import (
	"sort"
	"strings"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/news"
)

// briefingKey is the canonical array field inside a decoded briefing object.
const briefingKey = "news_briefing"

// newsHints are substrings that mark a raw string value as news-bearing
// during key discovery, most specific first.
var newsHints = []string{briefingKey, "briefing", "뉴스"}

// Unwrap extracts raw news records from a workflow outputs mapping. It never
// fails: keys are tried in discovery order and the first one yielding records
// wins, values that cannot be interpreted contribute nothing, and an empty
// result is a valid answer that the pipeline surfaces as a no-data outcome.
func Unwrap(outputs map[string]any) []news.RawItem {
	if len(outputs) == 0 {
		return nil
	}
	for _, key := range candidateKeys(outputs) {
		if records := Records(outputs[key]); len(records) > 0 {
			return records
		}
	}
	return nil
}

// candidateKeys orders the outputs keys by discovery priority: a key named
// result, then keys whose raw string value looks news-bearing, then the rest.
// Within each tier keys are sorted so the walk is deterministic.
func candidateKeys(outputs map[string]any) []string {
	keys := make([]string, 0, len(outputs))
	for key := range outputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ordered := make([]string, 0, len(keys))
	taken := make(map[string]bool, len(keys))

	if _, ok := outputs["result"]; ok {
		ordered = append(ordered, "result")
		taken["result"] = true
	}
	for _, key := range keys {
		if taken[key] {
			continue
		}
		if s, ok := outputs[key].(string); ok && containsNewsHint(s) {
			ordered = append(ordered, key)
			taken[key] = true
		}
	}
	for _, key := range keys {
		if !taken[key] {
			ordered = append(ordered, key)
		}
	}
	return ordered
}

func containsNewsHint(s string) bool {
	for _, hint := range newsHints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}

// Records decodes one outputs value and extracts its news records, whatever
// shape it arrived in.
func Records(v any) []news.RawItem {
	payload := Decode(v)
	switch payload.Kind {
	case KindObject:
		return recordsFromObject(payload.Obj)
	case KindArray:
		return recordsFromArray(payload.Arr)
	default:
		return nil
	}
}

// recordsFromObject reads the news_briefing array of a decoded object, or
// falls back to its first array-valued field when the canonical key is
// missing. Field order is made deterministic by sorting keys.
func recordsFromObject(obj map[string]any) []news.RawItem {
	if arr, ok := obj[briefingKey].([]any); ok {
		return recordsFromArray(arr)
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if arr, ok := obj[key].([]any); ok && len(arr) > 0 {
			if records := recordsFromArray(arr); len(records) > 0 {
				return records
			}
		}
	}
	return nil
}

// recordsFromArray flattens an array that holds either record objects
// directly or per-category strings, each a JSON array of records.
func recordsFromArray(arr []any) []news.RawItem {
	var records []news.RawItem
	for _, element := range arr {
		switch t := element.(type) {
		case map[string]any:
			records = append(records, news.RawItem(t))
		case string:
			records = append(records, recordsFromCategoryElement(t)...)
		}
	}
	return records
}

// recordsFromCategoryElement parses one per-category string. Blank elements
// and empty-array literals are skipped silently; a malformed element is
// dropped without failing the rest of the batch.
func recordsFromCategoryElement(s string) []news.RawItem {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "[]" {
		return nil
	}
	payload := Decode(trimmed)
	if payload.Kind != KindArray {
		return nil
	}
	var records []news.RawItem
	for _, element := range payload.Arr {
		if obj, ok := element.(map[string]any); ok {
			records = append(records, news.RawItem(obj))
		}
	}
	return records
}

package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Date layouts accepted from upstream, tried in order. Bare dates get a
// midnight time appended and "date time" pairs get a T separator before
// parsing, matching how the workflow formats them.
const dateTimeLayout = "2006-01-02T15:04:05"

// titleSourceSeparator splits "<title> - <press>" style titles when no
// explicit press field is present.
const titleSourceSeparator = " - "

// Normalize converts one raw upstream record into a canonical Item. It never
// fails: missing or malformed fields fall back to defaults, and fallbackIndex
// distinguishes placeholder titles within one refresh. now is the ingestion
// time used when the record carries no parsable date.
func Normalize(raw RawItem, fallbackIndex int, now time.Time) Item {
	title := raw.FirstString("title")
	if title == "" {
		title = fmt.Sprintf("제목 없음 %d", fallbackIndex+1)
	}

	source := raw.FirstString("press", "source")
	if source == "" {
		title, source = SplitTitleSource(title)
	}

	hint := CategoryHint(raw)
	category := Categorize(title, hint)

	var score int
	if v, ok := raw.FirstNumber("score"); ok {
		score = ClampScore(int(v))
	} else {
		score = RelevanceScore(title)
	}

	summary := raw.FirstString("summary")
	if summary == "" {
		summary = fmt.Sprintf("%s 관련 뉴스입니다.", category)
	}

	url := raw.FirstString("url", "link")
	if url == "" {
		url = MissingURL
	}

	return Item{
		ID:             uuid.NewString(),
		Title:          title,
		Summary:        summary,
		Source:         source,
		PublishedAt:    ParsePublishedAt(raw.FirstString("date", "pub_date"), now),
		Category:       category,
		RelevanceScore: score,
		URL:            url,
	}
}

// SplitTitleSource splits a "<title> - <press>" title at the last separator
// occurrence. Titles without the separator keep their text and get the
// unknown-source placeholder.
func SplitTitleSource(title string) (string, string) {
	idx := strings.LastIndex(title, titleSourceSeparator)
	if idx <= 0 {
		return title, UnknownSource
	}
	cleaned := strings.TrimSpace(title[:idx])
	source := strings.TrimSpace(title[idx+len(titleSourceSeparator):])
	if cleaned == "" || source == "" {
		return title, UnknownSource
	}
	return cleaned, source
}

// CategoryHint extracts the upstream category hint from a record: the
// category field with enclosing brackets stripped, or the prefix of an id
// shaped "<category>-<n>". Returns "" when the record carries neither.
func CategoryHint(raw RawItem) string {
	if category := raw.FirstString("category"); category != "" {
		category = strings.ReplaceAll(category, "[", "")
		category = strings.ReplaceAll(category, "]", "")
		return strings.TrimSpace(category)
	}
	if id := raw.FirstString("id"); id != "" {
		if idx := strings.Index(id, "-"); idx > 0 {
			return id[:idx]
		}
	}
	return ""
}

// ParsePublishedAt parses an upstream date string. A bare date is read as
// local midnight and a "date time" pair as a local timestamp; anything else
// falls back to the ingestion time.
func ParsePublishedAt(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}
	candidate := value
	switch {
	case len(candidate) == len("2006-01-02"):
		candidate += "T00:00:00"
	case strings.Contains(candidate, " "):
		candidate = strings.Replace(candidate, " ", "T", 1)
	}
	if ts, err := time.ParseInLocation(dateTimeLayout, candidate, time.Local); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return now
}

package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ingestedAt = time.Date(2025, 9, 17, 9, 30, 0, 0, time.Local)

func TestNormalizeFullRecord(t *testing.T) {
	raw := RawItem{
		"score":    float64(95),
		"category": "[발전]",
		"date":     "2025-09-17",
		"press":    "X",
		"title":    "T1",
		"url":      "u1",
	}

	item := Normalize(raw, 0, ingestedAt)

	assert.Equal(t, "T1", item.Title)
	assert.Equal(t, "발전", item.Category)
	assert.Equal(t, 95, item.RelevanceScore)
	assert.Equal(t, "X", item.Source)
	assert.Equal(t, "u1", item.URL)
	assert.Equal(t, "발전 관련 뉴스입니다.", item.Summary)
	assert.Equal(t, time.Date(2025, 9, 17, 0, 0, 0, 0, time.Local), item.PublishedAt)
	assert.NotEmpty(t, item.ID)
}

func TestNormalizeTitleSourceSplit(t *testing.T) {
	raw := RawItem{
		"id":    "SMR-1",
		"title": "A - Press",
		"link":  "u",
	}

	item := Normalize(raw, 0, ingestedAt)

	assert.Equal(t, "A", item.Title)
	assert.Equal(t, "Press", item.Source)
	assert.Equal(t, "SMR", item.Category)
	assert.Equal(t, "u", item.URL)
	assert.Equal(t, ingestedAt, item.PublishedAt)
}

func TestNormalizeDefaults(t *testing.T) {
	item := Normalize(RawItem{}, 2, ingestedAt)

	assert.Equal(t, "제목 없음 3", item.Title)
	assert.Equal(t, UnknownSource, item.Source)
	assert.Equal(t, DefaultCategory, item.Category)
	assert.Equal(t, MissingURL, item.URL)
	assert.Equal(t, ingestedAt, item.PublishedAt)
	assert.Equal(t, 70, item.RelevanceScore)
}

func TestNormalizeExplicitPressKeepsTitle(t *testing.T) {
	// An explicit press field means the title is used verbatim even when it
	// contains the separator pattern.
	raw := RawItem{
		"title": "계약 체결 - 상보",
		"press": "전기신문",
	}

	item := Normalize(raw, 0, ingestedAt)

	assert.Equal(t, "계약 체결 - 상보", item.Title)
	assert.Equal(t, "전기신문", item.Source)
}

func TestNormalizeStringScore(t *testing.T) {
	item := Normalize(RawItem{"title": "T", "score": "88"}, 0, ingestedAt)
	assert.Equal(t, 88, item.RelevanceScore)
}

func TestNormalizeOutOfRangeScoreClamped(t *testing.T) {
	item := Normalize(RawItem{"title": "T", "score": float64(250)}, 0, ingestedAt)
	assert.Equal(t, 100, item.RelevanceScore)
}

func TestNormalizeUpstreamSummaryKept(t *testing.T) {
	item := Normalize(RawItem{"title": "T", "summary": "요약문"}, 0, ingestedAt)
	assert.Equal(t, "요약문", item.Summary)
}

func TestSplitTitleSource(t *testing.T) {
	tests := []struct {
		name           string
		title          string
		expectedTitle  string
		expectedSource string
	}{
		{"simple split", "A - Press", "A", "Press"},
		{"last separator wins", "A - B - Press", "A - B", "Press"},
		{"no separator", "제목만", "제목만", UnknownSource},
		{"hyphen without spaces is kept", "K-배터리 전망", "K-배터리 전망", UnknownSource},
		{"leading separator is kept", " - Press", " - Press", UnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, source := SplitTitleSource(tt.title)
			assert.Equal(t, tt.expectedTitle, title)
			assert.Equal(t, tt.expectedSource, source)
		})
	}
}

func TestCategoryHint(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawItem
		expected string
	}{
		{"brackets stripped", RawItem{"category": "[발전]"}, "발전"},
		{"plain category", RawItem{"category": "전력"}, "전력"},
		{"id prefix", RawItem{"id": "SMR-3"}, "SMR"},
		{"category beats id", RawItem{"category": "[원전]", "id": "SMR-3"}, "원전"},
		{"id without dash gives nothing", RawItem{"id": "17"}, ""},
		{"empty record", RawItem{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryHint(tt.raw))
		})
	}
}

func TestParsePublishedAt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{"bare date gets midnight", "2025-09-17", time.Date(2025, 9, 17, 0, 0, 0, 0, time.Local)},
		{"date time pair", "2025-09-17 14:05:00", time.Date(2025, 9, 17, 14, 5, 0, 0, time.Local)},
		{"already T separated", "2025-09-17T06:00:00", time.Date(2025, 9, 17, 6, 0, 0, 0, time.Local)},
		{"unparsable falls back", "yesterday", ingestedAt},
		{"empty falls back", "", ingestedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePublishedAt(tt.value, ingestedAt))
		})
	}
}

func TestNormalizeIDsUniqueWithinRefresh(t *testing.T) {
	first := Normalize(RawItem{"title": "A"}, 0, ingestedAt)
	second := Normalize(RawItem{"title": "B"}, 1, ingestedAt)
	require.NotEqual(t, first.ID, second.ID)
}

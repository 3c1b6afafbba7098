package unwrap

import (
	"regexp"
	"strings"
)

// fencePattern matches a markdown code fence with an optional language tag,
// capturing the inner text. The workflow usually emits ```json but bare
// fences appear as well.
var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\r?\n(.*?)\r?\n?```")

// ExtractFence returns the inner text of the first fenced code block in s.
// When s carries fence markers that do not form a complete block, extraction
// reports false and the caller treats the markers as literal text.
func ExtractFence(s string) (string, bool) {
	if !strings.Contains(s, "```") {
		return "", false
	}
	match := fencePattern.FindStringSubmatch(s)
	if match == nil {
		return "", false
	}
	inner := strings.TrimSpace(match[1])
	if inner == "" {
		return "", false
	}
	return inner, true
}

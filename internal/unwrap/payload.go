// Package unwrap turns the arbitrarily shaped outputs mapping of a workflow
// run into a flat list of raw news records. The workflow is not consistent
// about shapes: the payload may arrive as an object, an array, a JSON-encoded
// string (sometimes encoded more than once), or fenced inside a markdown code
// block. Every value is first decoded into a tagged Payload and the shape
// strategies then dispatch on the tag.
package unwrap

import (
	"encoding/json"
)

// Kind tags the decoded form of an outputs value.
type Kind int

const (
	// KindString is opaque text that could not be decoded any further.
	KindString Kind = iota
	// KindObject is a decoded JSON object.
	KindObject
	// KindArray is a decoded JSON array.
	KindArray
)

// Payload is the tagged result of decoding one outputs value. Exactly one of
// Str, Obj, or Arr is meaningful, selected by Kind.
type Payload struct {
	Kind Kind
	Str  string
	Obj  map[string]any
	Arr  []any
}

// maxDecodeDepth bounds how many layers of JSON string encoding are peeled
// off before a value is treated as opaque text. The workflow has been seen
// quoting its own JSON output up to twice.
const maxDecodeDepth = 3

// Decode classifies a raw outputs value. Strings are decoded recursively:
// fenced code blocks are unwrapped and JSON-encoded strings are parsed up to
// maxDecodeDepth times, so a five-level-deep encoding degrades to opaque text
// instead of looping.
func Decode(v any) Payload {
	switch t := v.(type) {
	case string:
		return decodeString(t)
	case map[string]any:
		return Payload{Kind: KindObject, Obj: t}
	case []any:
		return Payload{Kind: KindArray, Arr: t}
	case json.RawMessage:
		return decodeString(string(t))
	default:
		return Payload{Kind: KindString}
	}
}

func decodeString(s string) Payload {
	text := s
	for depth := 0; depth < maxDecodeDepth; depth++ {
		if inner, ok := ExtractFence(text); ok {
			text = inner
		}
		var decoded any
		if err := json.Unmarshal([]byte(text), &decoded); err != nil {
			return Payload{Kind: KindString, Str: text}
		}
		switch t := decoded.(type) {
		case string:
			// The payload was JSON-encoded one more time; peel and retry.
			text = t
		case map[string]any:
			return Payload{Kind: KindObject, Obj: t}
		case []any:
			return Payload{Kind: KindArray, Arr: t}
		default:
			return Payload{Kind: KindString, Str: text}
		}
	}
	return Payload{Kind: KindString, Str: text}
}

package gen

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
)

// StripFences removes a wrapping markdown code fence, if any.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Decoded carries either a parsed value or a structured failure.
// Generation output that fails to parse is data, not an exception:
// callers inspect Err and fall back deterministically.
type Decoded[T any] struct {
	Value T
	Err   error
}

func (d Decoded[T]) Ok() bool {
	return d.Err == nil
}

// Decode strips code fences and unmarshals the blob into T.
func Decode[T any](raw string) Decoded[T] {
	var out Decoded[T]
	out.Err = json.Unmarshal([]byte(StripFences(raw)), &out.Value)
	return out
}

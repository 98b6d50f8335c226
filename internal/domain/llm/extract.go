package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the first well-formed JSON object out of a noisy text
// blob. Models frequently wrap their JSON in markdown fences or prose, so
// everything outside the first '{' and the last '}' is discarded before
// parsing. Returns false when no parsable object exists; this is a
// formatting failure the caller degrades on, never a reason to retry the
// completion call.
func ExtractJSON(raw string, target any) bool {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return false
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), target); err != nil {
		return false
	}
	return true
}

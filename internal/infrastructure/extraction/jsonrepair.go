package extraction

import (
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON object found in response")

// ExtractJSON pulls the first JSON object out of model output that may be
// wrapped in markdown fences or surrounded by prose: strip code fences, then
// slice from the first '{' to the last '}'.
func ExtractJSON(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrNoJSON
	}

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

package extraction

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"title":"Engineer"}`, `{"title":"Engineer"}`},
		{"fenced", "```json\n{\"title\":\"Engineer\"}\n```", `{"title":"Engineer"}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `Sure, here you go: {"a":1} hope that helps`, `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"leading whitespace", "  \n {\"a\":1}", `{"a":1}`},
	}

	for _, c := range cases {
		got, err := ExtractJSON(c.in)
		if err != nil {
			t.Errorf("%s: unexpected err: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, in := range []string{"", "no json here", "```\nplain text\n```", "}{"} {
		if _, err := ExtractJSON(in); !errors.Is(err, ErrNoJSON) {
			t.Errorf("ExtractJSON(%q): expected ErrNoJSON, got %v", in, err)
		}
	}
}

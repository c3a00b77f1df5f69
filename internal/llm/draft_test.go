package llm

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Draft
	}{
		{
			name: "plain JSON",
			raw:  `{"title":"v1.2.0","changes":["Add export"],"impact":["Faster"],"risks":["None"]}`,
			want: Draft{Title: "v1.2.0", Changes: []string{"Add export"}, Impact: []string{"Faster"}, Risks: []string{"None"}},
		},
		{
			name: "json fenced block with prose",
			raw:  "Here you go:\n```json\n{\"title\":\"Spring release\",\"changes\":[\"a\"],\"impact\":[],\"risks\":[]}\n```\nThanks",
			want: Draft{Title: "Spring release", Changes: []string{"a"}, Impact: []string{}, Risks: []string{}},
		},
		{
			name: "untagged fence",
			raw:  "```\n{\"title\":\"T\",\"changes\":[],\"impact\":[\"i\"],\"risks\":[]}\n```",
			want: Draft{Title: "T", Changes: []string{}, Impact: []string{"i"}, Risks: []string{}},
		},
		{
			name: "missing title and lists",
			raw:  `{}`,
			want: Draft{Title: DefaultTitle, Changes: []string{}, Impact: []string{}, Risks: []string{}},
		},
		{
			name: "non-string title",
			raw:  `{"title":42}`,
			want: Draft{Title: DefaultTitle, Changes: []string{}, Impact: []string{}, Risks: []string{}},
		},
		{
			name: "list elements trimmed and filtered",
			raw:  `{"title":"  T  ","changes":["  one ", "", "   ", 5, null, "two"],"impact":"not a list","risks":[{"x":1}]}`,
			want: Draft{Title: "T", Changes: []string{"one", "two"}, Impact: []string{}, Risks: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDraft(tt.raw)
			if err != nil {
				t.Fatalf("ParseDraft() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDraft() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDraft_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"empty", "", ErrEmptyResponse},
		{"whitespace", "  \n\t", ErrEmptyResponse},
		{"prose", "Sorry, I cannot help with that.", ErrInvalidJSON},
		{"broken fence", "```json\n{\"title\": \n```", ErrInvalidJSON},
		{"array", `["a","b"]`, ErrNotObject},
		{"string", `"hello"`, ErrNotObject},
		{"null", `null`, ErrNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDraft(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseDraft() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDraft_InvalidJSONPreview(t *testing.T) {
	raw := "not json " + strings.Repeat("x", 500)

	_, err := ParseDraft(raw)
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("ParseDraft() error = %v, want ErrInvalidJSON", err)
	}

	msg := err.Error()
	if !strings.HasPrefix(msg, "LLM did not return valid JSON. Raw: not json ") {
		t.Errorf("unexpected message prefix: %q", msg)
	}
	wantLen := len("LLM did not return valid JSON. Raw: ") + 200
	if len(msg) != wantLen {
		t.Errorf("message length = %d, want %d", len(msg), wantLen)
	}
}

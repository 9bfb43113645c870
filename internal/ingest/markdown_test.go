package ingest

import (
	"strings"
	"testing"
)

func TestMarkdownStripper_Strip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string // substrings that must appear
		exclude []string // substrings that must not appear
	}{
		{
			name:    "headings and paragraphs",
			content: "# Title\n\nSome paragraph text.\n\n## Section\n\nMore text here.",
			want:    []string{"Title", "Some paragraph text.", "Section", "More text here."},
			exclude: []string{"#"},
		},
		{
			name:    "emphasis unwrapped",
			content: "This is **bold** and *italic* text.",
			want:    []string{"This is bold and italic text."},
			exclude: []string{"*"},
		},
		{
			name:    "list items on own lines",
			content: "- first item\n- second item\n",
			want:    []string{"first item\nsecond item"},
			exclude: []string{"-"},
		},
		{
			name:    "table rows piped",
			content: "| Question | Answer |\n|---|---|\n| How fast? | Very fast |\n",
			want:    []string{"Question | Answer", "How fast? | Very fast"},
		},
		{
			name:    "code block kept",
			content: "Example:\n\n```\ncurl -X POST /api\n```\n",
			want:    []string{"curl -X POST /api"},
			exclude: []string{"```"},
		},
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
	}

	s := NewMarkdownStripper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Strip([]byte(tt.content))
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Strip() = %q, missing %q", got, want)
				}
			}
			for _, excl := range tt.exclude {
				if strings.Contains(got, excl) {
					t.Errorf("Strip() = %q, should not contain %q", got, excl)
				}
			}
		})
	}
}

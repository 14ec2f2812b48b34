package pipeline

import (
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		allowRaw     bool
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "heading gets an id",
			input:        "# Results",
			wantContains: []string{"<h1", `id="results"`, "Results</h1>"},
		},
		{
			name:         "GFM table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>a</th>", "<td>1</td>"},
		},
		{
			name:         "fenced code is highlighted with classes",
			input:        "```python\nprint(1)\n```",
			wantContains: []string{"<pre", `class="chroma"`, "print"},
		},
		{
			name:         "XHTML void tags",
			input:        "![plot](plot.png)",
			wantContains: []string{`<img src="plot.png" alt="plot" />`},
		},
		{
			name:         "raw HTML dropped by default",
			input:        "<div>raw</div>",
			wantContains: []string{"raw HTML omitted"},
			wantNot:      []string{"<div>raw</div>"},
		},
		{
			name:         "raw HTML kept when allowed",
			allowRaw:     true,
			input:        "<div>raw</div>",
			wantContains: []string{"<div>raw</div>"},
		},
		{
			name:         "CRLF normalized",
			input:        "line one\r\n\r\nline two",
			wantContains: []string{"<p>line one</p>", "<p>line two</p>"},
			wantNot:      []string{"\r"},
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGoldmarkConverter(tt.allowRaw).ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q\ngot: %s", want, got)
				}
			}
			for _, unwanted := range tt.wantNot {
				if strings.Contains(got, unwanted) {
					t.Errorf("ToHTML() should not contain %q\ngot: %s", unwanted, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_EmptyIsEmpty(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter(false).ToHTML("")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if got != "" {
		t.Errorf("ToHTML(\"\") = %q, want empty", got)
	}
}

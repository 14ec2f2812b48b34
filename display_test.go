package nbrender

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayPriority(t *testing.T) {
	t.Parallel()

	want := []string{"png", "jpeg", "svg", "html", "latex", "javascript", "text"}
	if diff := cmp.Diff(want, DisplayPriority()); diff != "" {
		t.Errorf("DisplayPriority() mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayPriority_ReturnsCopy(t *testing.T) {
	t.Parallel()

	got := DisplayPriority()
	got[0] = "mutated"
	if DisplayPriority()[0] != FormatPNG {
		t.Error("mutating the returned slice changed the priority order")
	}
}

func TestDisplayRenderers_CoverPriority(t *testing.T) {
	t.Parallel()

	for _, format := range displayPriority {
		if displayRenderers[format] == nil {
			t.Errorf("no renderer for format %q", format)
		}
	}
	if len(displayRenderers) != len(displayPriority) {
		t.Errorf("%d renderers for %d formats", len(displayRenderers), len(displayPriority))
	}
}

func TestResolveFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rec       OutputRecord
		sanitized bool
		want      string
		wantOK    bool
	}{
		{
			name:   "text only",
			rec:    OutputRecord{Text: Lines{"t"}},
			want:   FormatText,
			wantOK: true,
		},
		{
			name:   "svg over html",
			rec:    OutputRecord{Data: map[string]Lines{"html": {"h"}, "svg": {"s"}}},
			want:   FormatSVG,
			wantOK: true,
		},
		{
			name:   "jpeg over latex and text",
			rec:    OutputRecord{Text: Lines{"t"}, Data: map[string]Lines{"latex": {"l"}, "jpeg": {"j"}}},
			want:   FormatJPEG,
			wantOK: true,
		},
		{
			name:   "javascript over text",
			rec:    OutputRecord{Text: Lines{"t"}, Data: map[string]Lines{"javascript": {"j"}}},
			want:   FormatJavaScript,
			wantOK: true,
		},
		{
			name:   "empty png falls through to text",
			rec:    OutputRecord{Text: Lines{"t"}, Data: map[string]Lines{"png": {""}}},
			want:   FormatText,
			wantOK: true,
		},
		{
			name:   "empty text is absent",
			rec:    OutputRecord{Text: Lines{"", ""}},
			wantOK: false,
		},
		{
			name:      "javascript skipped when sanitized",
			rec:       OutputRecord{Text: Lines{"t"}, Data: map[string]Lines{"javascript": {"j"}}},
			sanitized: true,
			want:      FormatText,
			wantOK:    true,
		},
		{
			name:   "unknown formats only",
			rec:    OutputRecord{Data: map[string]Lines{"pdf": {"p"}}},
			wantOK: false,
		},
		{
			name:   "empty record",
			rec:    OutputRecord{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var opts []Option
			if tt.sanitized {
				opts = append(opts, WithSanitizer(Identity))
			}
			got, _, ok := NewRenderer(opts...).resolveFormat(&tt.rec)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("resolveFormat() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

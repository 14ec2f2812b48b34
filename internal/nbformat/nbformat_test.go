package nbformat

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-nbrender"
)

func intPtr(n int) *int { return &n }

const v4Notebook = `{
  "metadata": {
    "kernelspec": {"name": "python3", "language": "python", "display_name": "Python 3"},
    "language_info": {"name": "python", "version": "3.12"}
  },
  "nbformat": 4,
  "nbformat_minor": 5,
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Title\n", "text"]},
    {
      "cell_type": "code",
      "execution_count": 2,
      "metadata": {},
      "source": "x = 1",
      "outputs": [
        {"output_type": "stream", "name": "stdout", "text": ["a\n"]},
        {
          "output_type": "execute_result",
          "execution_count": 2.0,
          "metadata": {},
          "data": {"text/plain": ["1"], "image/png": "iVBOR", "application/json": {"a": 1}}
        },
        {"output_type": "error", "ename": "ValueError", "evalue": "bad", "traceback": ["line1", "line2"]}
      ]
    },
    {"cell_type": "raw", "metadata": {}, "source": []}
  ]
}`

func TestDecode_V4(t *testing.T) {
	t.Parallel()

	got, err := Decode([]byte(v4Notebook))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := &nbrender.NotebookRecord{
		Metadata: nbrender.Metadata{Language: "python"},
		NBFormat: V3,
		Worksheets: []nbrender.WorksheetRecord{{Cells: []nbrender.CellRecord{
			{CellType: "markdown", Source: nbrender.Lines{"# Title\n", "text"}},
			{
				CellType:     "code",
				Input:        nbrender.Lines{"x = 1"},
				PromptNumber: intPtr(2),
				Outputs: []nbrender.OutputRecord{
					{OutputType: "stream", Stream: "stdout", Text: nbrender.Lines{"a\n"}},
					{
						OutputType:   "pyout",
						PromptNumber: intPtr(2),
						Text:         nbrender.Lines{"1"},
						Data:         map[string]nbrender.Lines{"png": {"iVBOR"}},
					},
					{
						OutputType: "pyerr",
						Ename:      "ValueError",
						Evalue:     "bad",
						Traceback:  nbrender.Lines{"line1\n", "line2"},
					},
				},
			},
			{CellType: "raw", Source: nbrender.Lines{}},
		}}},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_V4LanguageFallback(t *testing.T) {
	t.Parallel()

	data := `{"nbformat": 4, "metadata": {"language_info": {"name": "julia"}}, "cells": []}`
	got, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Metadata.Language != "julia" {
		t.Errorf("Language = %q, want %q", got.Metadata.Language, "julia")
	}
}

func TestDecode_V4RendersLikeV3(t *testing.T) {
	t.Parallel()

	rec, err := Decode([]byte(v4Notebook))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	nb, err := nbrender.Parse(rec)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := nbrender.NewRenderer().RenderString(nb)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}

	wantContains := []string{
		`<code data-language="python" class="lang-python">x = 1</code>`,
		`data-prompt-number="2"`,
		`src="data:image/png;base64,iVBOR"`,
		`<pre class="nb-pyerr">line1`,
		`<pre class="nb-cell nb-raw-cell"></pre>`,
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\ngot: %s", want, got)
		}
	}
}

func TestDecode_V3(t *testing.T) {
	t.Parallel()

	data := `{
	  "metadata": {"name": "old"},
	  "nbformat": 3,
	  "nbformat_minor": 0,
	  "worksheets": [{"cells": [{"cell_type": "heading", "level": 2, "source": "H"}]}]
	}`
	got, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := &nbrender.NotebookRecord{
		Metadata: nbrender.Metadata{Name: "old"},
		NBFormat: 3,
		Worksheets: []nbrender.WorksheetRecord{{Cells: []nbrender.CellRecord{
			{CellType: "heading", Level: 2, Source: nbrender.Lines{"H"}},
		}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty", data: "", wantErr: ErrEmptyInput},
		{name: "not json", data: "{", wantErr: nbrender.ErrMalformedNotebook},
		{name: "version 2", data: `{"nbformat": 2}`, wantErr: ErrUnsupportedVersion},
		{name: "version 5", data: `{"nbformat": 5}`, wantErr: ErrUnsupportedVersion},
		{name: "v4 cells missing", data: `{"nbformat": 4}`, wantErr: nbrender.ErrMissingCells},
		{name: "v4 fractional count", data: `{"nbformat": 4, "cells": [{"cell_type": "code", "source": "", "execution_count": 1.5}]}`, wantErr: nbrender.ErrMalformedNotebook},
		{name: "v4 bad source", data: `{"nbformat": 4, "cells": [{"cell_type": "code", "source": 3}]}`, wantErr: nbrender.ErrMalformedNotebook},
		{name: "v3 bad text", data: `{"nbformat": 3, "worksheets": [{"cells": [{"cell_type": "code", "outputs": [{"output_type": "stream", "text": 1}]}]}]}`, wantErr: nbrender.ErrMalformedNotebook},
		{
			name:    "v4 bad mime payload",
			data:    `{"nbformat": 4, "cells": [{"cell_type": "code", "source": "", "outputs": [{"output_type": "display_data", "data": {"text/html": 1}}]}]}`,
			wantErr: nbrender.ErrMalformedNotebook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	orig := MaxInputSize
	defer func() { MaxInputSize = orig }()
	MaxInputSize = 8

	_, err := Decode([]byte(`{"nbformat": 3}`))
	if !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("Decode() error = %v, want ErrInputTooLarge", err)
	}
}

func TestTracebackLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want nbrender.Lines
	}{
		{name: "empty", in: []string{}, want: nbrender.Lines{}},
		{name: "single", in: []string{"a"}, want: nbrender.Lines{"a"}},
		{name: "joined with breaks", in: []string{"a", "b", "c"}, want: nbrender.Lines{"a\n", "b\n", "c"}},
		{name: "existing break kept", in: []string{"a\n", "b"}, want: nbrender.Lines{"a\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, tracebackLines(tt.in)); diff != "" {
				t.Errorf("tracebackLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

package nbrender

import "testing"

func intPtr(n int) *int { return &n }

// codeCell builds a code cell record.
func codeCell(input Lines, outputs ...OutputRecord) CellRecord {
	return CellRecord{CellType: string(CellCode), Input: input, Outputs: outputs}
}

func stream(name string, text ...string) OutputRecord {
	return OutputRecord{OutputType: string(OutputStream), Stream: name, Text: text}
}

// oneSheet wraps cells in a single-worksheet notebook record.
func oneSheet(cells ...CellRecord) *NotebookRecord {
	if cells == nil {
		cells = []CellRecord{}
	}
	return &NotebookRecord{Worksheets: []WorksheetRecord{{Cells: cells}}}
}

func mustParse(t *testing.T, raw *NotebookRecord) *Notebook {
	t.Helper()
	nb, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return nb
}

func mustRenderString(t *testing.T, r *Renderer, raw *NotebookRecord) string {
	t.Helper()
	got, err := r.RenderString(mustParse(t, raw))
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	return got
}

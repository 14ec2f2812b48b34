package nbrender

import "fmt"

// CellType discriminates notebook cells.
type CellType string

// Cell types.
const (
	CellMarkdown CellType = "markdown"
	CellHeading  CellType = "heading"
	CellCode     CellType = "code"
	CellRaw      CellType = "raw"
)

// OutputType discriminates code cell outputs.
type OutputType string

// Output types.
const (
	OutputDisplayData OutputType = "display_data"
	OutputPyout       OutputType = "pyout"
	OutputPyerr       OutputType = "pyerr"
	OutputStream      OutputType = "stream"
)

// defaultStream is the stream name assumed when a record omits it.
const defaultStream = "stdout"

// Notebook is the root of the document model.
// It is immutable once built by Parse.
type Notebook struct {
	raw        *NotebookRecord
	title      string
	worksheets []*Worksheet
}

// Parse builds the document model for raw. Stream outputs are coalesced
// during construction.
// Returns ErrNilNotebook for a nil record and an error wrapping
// ErrMalformedNotebook when worksheets or cells are missing.
func Parse(raw *NotebookRecord) (*Notebook, error) {
	if raw == nil {
		return nil, ErrNilNotebook
	}
	if raw.Worksheets == nil {
		return nil, ErrMissingWorksheets
	}

	nb := &Notebook{
		raw:        raw,
		title:      raw.Metadata.Title,
		worksheets: make([]*Worksheet, 0, len(raw.Worksheets)),
	}
	if nb.title == "" {
		nb.title = raw.Metadata.Name
	}

	for i := range raw.Worksheets {
		ws, err := newWorksheet(&raw.Worksheets[i], nb)
		if err != nil {
			return nil, fmt.Errorf("worksheet %d: %w", i, err)
		}
		nb.worksheets = append(nb.worksheets, ws)
	}
	return nb, nil
}

// Raw returns the source record.
func (n *Notebook) Raw() *NotebookRecord { return n.raw }

// Metadata returns the notebook metadata.
func (n *Notebook) Metadata() Metadata { return n.raw.Metadata }

// Title returns metadata.title, falling back to metadata.name.
func (n *Notebook) Title() string { return n.title }

// Worksheets returns the worksheets in document order.
func (n *Notebook) Worksheets() []*Worksheet { return n.worksheets }

// Sheet returns the first worksheet, or nil if there is none.
func (n *Notebook) Sheet() *Worksheet {
	if len(n.worksheets) == 0 {
		return nil
	}
	return n.worksheets[0]
}

// Worksheet is an ordered sequence of cells.
type Worksheet struct {
	raw      *WorksheetRecord
	notebook *Notebook
	cells    []*Cell
}

func newWorksheet(raw *WorksheetRecord, nb *Notebook) (*Worksheet, error) {
	if raw.Cells == nil {
		return nil, ErrMissingCells
	}

	ws := &Worksheet{
		raw:      raw,
		notebook: nb,
		cells:    make([]*Cell, 0, len(raw.Cells)),
	}
	for i := range raw.Cells {
		ws.cells = append(ws.cells, newCell(&raw.Cells[i], ws))
	}
	return ws, nil
}

// Raw returns the source record.
func (w *Worksheet) Raw() *WorksheetRecord { return w.raw }

// Notebook returns the owning notebook.
func (w *Worksheet) Notebook() *Notebook { return w.notebook }

// Cells returns the cells in document order.
func (w *Worksheet) Cells() []*Cell { return w.cells }

// Cell is one markdown, heading, raw or code cell.
// Input and Outputs are set only for code cells.
type Cell struct {
	raw       *CellRecord
	worksheet *Worksheet
	typ       CellType
	input     *Input
	outputs   []*Output
}

func newCell(raw *CellRecord, ws *Worksheet) *Cell {
	c := &Cell{
		raw:       raw,
		worksheet: ws,
		typ:       CellType(raw.CellType),
	}
	if c.typ != CellCode {
		return c
	}

	c.input = &Input{raw: raw.Input, cell: c}
	outputs := make([]*Output, 0, len(raw.Outputs))
	for i := range raw.Outputs {
		outputs = append(outputs, newOutput(&raw.Outputs[i], c))
	}
	c.outputs = CoalesceStreams(outputs)
	return c
}

// Raw returns the source record.
func (c *Cell) Raw() *CellRecord { return c.raw }

// Worksheet returns the owning worksheet.
func (c *Cell) Worksheet() *Worksheet { return c.worksheet }

// Type returns the cell type as written in the record.
func (c *Cell) Type() CellType { return c.typ }

// Input returns the code input, or nil for non-code cells.
func (c *Cell) Input() *Input { return c.input }

// Outputs returns the coalesced outputs, or nil for non-code cells.
func (c *Cell) Outputs() []*Output { return c.outputs }

// Language returns the notebook language, falling back to the cell's own.
func (c *Cell) Language() string {
	if lang := c.worksheet.notebook.raw.Metadata.Language; lang != "" {
		return lang
	}
	return c.raw.Language
}

// PromptNumber returns the execution counter and whether it is present
// and non-zero.
func (c *Cell) PromptNumber() (int, bool) {
	if c.raw.PromptNumber == nil || *c.raw.PromptNumber == 0 {
		return 0, false
	}
	return *c.raw.PromptNumber, true
}

// Input is the source of a code cell.
type Input struct {
	raw  Lines
	cell *Cell
}

// Raw returns the source fragments.
func (i *Input) Raw() Lines { return i.raw }

// Cell returns the owning cell.
func (i *Input) Cell() *Cell { return i.cell }

// Source returns the concatenated source.
func (i *Input) Source() string { return i.raw.String() }

// Output is one execution result of a code cell.
type Output struct {
	raw  *OutputRecord
	typ  OutputType
	cell *Cell
}

func newOutput(raw *OutputRecord, c *Cell) *Output {
	return &Output{raw: raw, typ: OutputType(raw.OutputType), cell: c}
}

// Raw returns the source record. For coalesced streams this is a merged
// copy, never the caller's record.
func (o *Output) Raw() *OutputRecord { return o.raw }

// Type returns the output type as written in the record.
func (o *Output) Type() OutputType { return o.typ }

// Cell returns the owning cell.
func (o *Output) Cell() *Cell { return o.cell }

// streamName returns the stream class name, defaulting to stdout. Coalescing
// compares the raw names instead.
func (o *Output) streamName() string {
	if o.raw.Stream == "" {
		return defaultStream
	}
	return o.raw.Stream
}

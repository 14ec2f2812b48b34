// Package nbformat decodes notebook files into the nbformat 3 record shape
// the renderer consumes. nbformat 4 documents are upgraded on the fly.
package nbformat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-nbrender"
)

// Supported major versions.
const (
	V3 = 3
	V4 = 4
)

// MaxInputSize limits notebook input to prevent memory exhaustion (default 64MB).
var MaxInputSize = 64 << 20

// Sentinel errors for decoding.
var (
	ErrEmptyInput         = errors.New("nbformat: empty input")
	ErrInputTooLarge      = errors.New("nbformat: input exceeds maximum size")
	ErrUnsupportedVersion = errors.New("nbformat: unsupported version")
)

// mimeFormats maps nbformat 4 mime bundle keys to display format names.
var mimeFormats = map[string]string{
	"image/png":              nbrender.FormatPNG,
	"image/jpeg":             nbrender.FormatJPEG,
	"image/svg+xml":          nbrender.FormatSVG,
	"text/html":              nbrender.FormatHTML,
	"text/latex":             nbrender.FormatLaTeX,
	"application/javascript": nbrender.FormatJavaScript,
	"text/plain":             nbrender.FormatText,
}

// outputTypes maps renamed nbformat 4 output types.
var outputTypes = map[string]nbrender.OutputType{
	"execute_result": nbrender.OutputPyout,
	"error":          nbrender.OutputPyerr,
}

// Decode parses a notebook document. A document without an nbformat field
// is read as version 3.
// JSON errors wrap nbrender.ErrMalformedNotebook.
func Decode(data []byte) (*nbrender.NotebookRecord, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	var header struct {
		NBFormat int `json:"nbformat"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, malformed(err)
	}

	switch header.NBFormat {
	case 0, V3:
		var rec nbrender.NotebookRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, malformed(err)
		}
		return &rec, nil
	case V4:
		var doc notebookV4
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, malformed(err)
		}
		return doc.upgrade()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.NBFormat)
	}
}

func malformed(err error) error {
	if errors.Is(err, nbrender.ErrMalformedNotebook) {
		return err
	}
	return fmt.Errorf("%w: %v", nbrender.ErrMalformedNotebook, err)
}

type notebookV4 struct {
	Metadata struct {
		Title      string `json:"title"`
		Kernelspec struct {
			Language string `json:"language"`
		} `json:"kernelspec"`
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
	} `json:"metadata"`
	Cells []cellV4 `json:"cells"`
}

type cellV4 struct {
	CellType       string            `json:"cell_type"`
	Source         nbrender.Lines    `json:"source"`
	ExecutionCount *nbrender.Counter `json:"execution_count"`
	Outputs        []outputV4        `json:"outputs"`
}

type outputV4 struct {
	OutputType     string                     `json:"output_type"`
	Name           string                     `json:"name"`
	Text           nbrender.Lines             `json:"text"`
	Data           map[string]json.RawMessage `json:"data"`
	ExecutionCount *nbrender.Counter          `json:"execution_count"`
	Ename          string                     `json:"ename"`
	Evalue         string                     `json:"evalue"`
	Traceback      []string                   `json:"traceback"`
}

// upgrade converts a version 4 document into a single-worksheet record.
func (d *notebookV4) upgrade() (*nbrender.NotebookRecord, error) {
	if d.Cells == nil {
		return nil, nbrender.ErrMissingCells
	}

	rec := &nbrender.NotebookRecord{
		Metadata: nbrender.Metadata{
			Title:    d.Metadata.Title,
			Language: d.Metadata.Kernelspec.Language,
		},
		NBFormat: V3,
	}
	if rec.Metadata.Language == "" {
		rec.Metadata.Language = d.Metadata.LanguageInfo.Name
	}

	cells := make([]nbrender.CellRecord, 0, len(d.Cells))
	for i, c := range d.Cells {
		cell, err := c.upgrade()
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells = append(cells, cell)
	}
	rec.Worksheets = []nbrender.WorksheetRecord{{Cells: cells}}
	return rec, nil
}

func (c *cellV4) upgrade() (nbrender.CellRecord, error) {
	if c.CellType != string(nbrender.CellCode) {
		return nbrender.CellRecord{CellType: c.CellType, Source: c.Source}, nil
	}

	cell := nbrender.CellRecord{
		CellType:     c.CellType,
		Input:        c.Source,
		PromptNumber: c.ExecutionCount.Int(),
		Outputs:      make([]nbrender.OutputRecord, 0, len(c.Outputs)),
	}
	for i, o := range c.Outputs {
		out, err := o.upgrade()
		if err != nil {
			return nbrender.CellRecord{}, fmt.Errorf("output %d: %w", i, err)
		}
		cell.Outputs = append(cell.Outputs, out)
	}
	return cell, nil
}

func (o *outputV4) upgrade() (nbrender.OutputRecord, error) {
	out := nbrender.OutputRecord{
		OutputType:   o.OutputType,
		Stream:       o.Name,
		Text:         o.Text,
		Ename:        o.Ename,
		Evalue:       o.Evalue,
		PromptNumber: o.ExecutionCount.Int(),
	}
	if t, ok := outputTypes[o.OutputType]; ok {
		out.OutputType = string(t)
	}
	if o.Traceback != nil {
		out.Traceback = tracebackLines(o.Traceback)
	}

	for mime, raw := range o.Data {
		format, ok := mimeFormats[mime]
		if !ok {
			continue
		}
		var payload nbrender.Lines
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nbrender.OutputRecord{}, fmt.Errorf("%s: %w", mime, err)
		}
		if format == nbrender.FormatText {
			out.Text = payload
			continue
		}
		if out.Data == nil {
			out.Data = make(map[string]nbrender.Lines)
		}
		out.Data[format] = payload
	}
	return out, nil
}

// tracebackLines restores the line breaks version 4 leaves out of
// traceback entries, since fragments are joined without separators.
func tracebackLines(tb []string) nbrender.Lines {
	lines := make(nbrender.Lines, len(tb))
	for i, line := range tb {
		if i < len(tb)-1 && !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		lines[i] = line
	}
	return lines
}

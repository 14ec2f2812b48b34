package nbrender

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Lines is a sequence of text fragments joined without separators.
// In JSON it may be written as a single string or an array of strings.
type Lines []string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (l *Lines) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Lines{s}
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: expected string or array of strings", ErrMalformedNotebook)
	}
	if parts == nil {
		parts = []string{}
	}
	*l = parts
	return nil
}

// String concatenates the fragments.
func (l Lines) String() string {
	return strings.Join(l, "")
}

// Counter is an execution counter as written in JSON. Any number with an
// integral value is accepted, so 3 and 3.0 both decode to 3.
type Counter int

// UnmarshalJSON decodes a JSON number, rejecting fractional values.
func (c *Counter) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: prompt number: %v", ErrMalformedNotebook, err)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%w: prompt number %v is not an integer", ErrMalformedNotebook, f)
	}
	*c = Counter(f)
	return nil
}

// Int returns the counter as an *int, nil when c is nil.
func (c *Counter) Int() *int {
	if c == nil {
		return nil
	}
	n := int(*c)
	return &n
}

// NotebookRecord is a parsed notebook document.
type NotebookRecord struct {
	Metadata      Metadata          `json:"metadata"`
	Worksheets    []WorksheetRecord `json:"worksheets"`
	NBFormat      int               `json:"nbformat,omitempty"`
	NBFormatMinor int               `json:"nbformat_minor,omitempty"`
}

// Metadata holds the notebook-level fields the renderer reads.
type Metadata struct {
	Title    string `json:"title,omitempty"`
	Name     string `json:"name,omitempty"`
	Language string `json:"language,omitempty"`
}

// WorksheetRecord is one worksheet of a notebook record.
type WorksheetRecord struct {
	Cells []CellRecord `json:"cells"`
}

// CellRecord is one cell of a worksheet record.
type CellRecord struct {
	CellType     string         `json:"cell_type"`
	Source       Lines          `json:"source,omitempty"`
	Level        int            `json:"level,omitempty"`
	Input        Lines          `json:"input,omitempty"`
	Outputs      []OutputRecord `json:"outputs,omitempty"`
	PromptNumber *int           `json:"prompt_number,omitempty"`
	Language     string         `json:"language,omitempty"`
}

// UnmarshalJSON decodes the cell, reading prompt_number as a Counter.
func (c *CellRecord) UnmarshalJSON(data []byte) error {
	type plain CellRecord
	aux := struct {
		*plain
		PromptNumber *Counter `json:"prompt_number"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.PromptNumber = aux.PromptNumber.Int()
	return nil
}

// OutputRecord is one execution result of a code cell.
//
// Display payloads (png, jpeg, svg, html, latex, javascript, ...) are stored
// in Data keyed by format name. The "text" key serves both as the stream
// text and as the plain-text display format, so it lives in Text.
type OutputRecord struct {
	OutputType   string
	Stream       string
	Text         Lines
	Traceback    Lines
	Ename        string
	Evalue       string
	PromptNumber *int
	Data         map[string]Lines
}

// outputFields are the OutputRecord keys that are not display formats.
var outputFields = map[string]bool{
	"output_type":   true,
	"stream":        true,
	"text":          true,
	"traceback":     true,
	"ename":         true,
	"evalue":        true,
	"prompt_number": true,
	"metadata":      true,
}

// UnmarshalJSON decodes the fixed fields and collects every other key whose
// value is text as a display format.
func (o *OutputRecord) UnmarshalJSON(data []byte) error {
	var fixed struct {
		OutputType   string   `json:"output_type"`
		Stream       string   `json:"stream"`
		Text         Lines    `json:"text"`
		Traceback    Lines    `json:"traceback"`
		Ename        string   `json:"ename"`
		Evalue       string   `json:"evalue"`
		PromptNumber *Counter `json:"prompt_number"`
	}
	if err := json.Unmarshal(data, &fixed); err != nil {
		return fmt.Errorf("%w: output: %v", ErrMalformedNotebook, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: output: %v", ErrMalformedNotebook, err)
	}

	*o = OutputRecord{
		OutputType:   fixed.OutputType,
		Stream:       fixed.Stream,
		Text:         fixed.Text,
		Traceback:    fixed.Traceback,
		Ename:        fixed.Ename,
		Evalue:       fixed.Evalue,
		PromptNumber: fixed.PromptNumber.Int(),
	}

	for key, raw := range fields {
		if outputFields[key] {
			continue
		}
		var payload Lines
		if err := json.Unmarshal(raw, &payload); err != nil {
			// Non-text values (nested metadata and the like) are not formats.
			continue
		}
		if payload == nil {
			continue
		}
		if o.Data == nil {
			o.Data = make(map[string]Lines)
		}
		o.Data[key] = payload
	}
	return nil
}

// Payload returns the display payload for format and whether it is present.
// A payload whose fragments join to the empty string counts as absent.
func (o *OutputRecord) Payload(format string) (Lines, bool) {
	payload := o.Data[format]
	if format == FormatText {
		payload = o.Text
	}
	if payload.String() == "" {
		return nil, false
	}
	return payload, true
}

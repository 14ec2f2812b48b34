package nbrender

import (
	"errors"
	"fmt"
)

// Sentinel errors for construction.
var (
	ErrNilNotebook       = errors.New("notebook record cannot be nil")
	ErrMalformedNotebook = errors.New("malformed notebook")
	ErrMissingWorksheets = fmt.Errorf("%w: worksheets missing", ErrMalformedNotebook)
	ErrMissingCells      = fmt.Errorf("%w: cells missing", ErrMalformedNotebook)
)

// Sentinel errors for rendering.
var (
	ErrUnknownCellType   = errors.New("unknown cell type")
	ErrUnknownOutputType = errors.New("unknown output type")
	ErrRenderPanic       = errors.New("internal error while rendering")
	ErrNotSerializable   = errors.New("host document cannot serialize elements")
)

// noIndex marks a RenderError location that does not apply.
const noIndex = -1

// RenderError locates a cell or output that failed to render.
// Output is -1 when the whole cell failed.
type RenderError struct {
	Worksheet int
	Cell      int
	Output    int
	Err       error
}

func (e *RenderError) Error() string {
	if e.Output == noIndex {
		return fmt.Sprintf("worksheet %d, cell %d: %v", e.Worksheet, e.Cell, e.Err)
	}
	return fmt.Sprintf("worksheet %d, cell %d, output %d: %v", e.Worksheet, e.Cell, e.Output, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Package plan turns a user's compare-page selections into a downloadable
// plan summary: Format builds a Document, Renderer turns it into PDF bytes.
package plan

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidDocument is returned when Render is given nothing to draw.
	ErrInvalidDocument = errors.New("plan: invalid document")
	// ErrRender wraps any failure of the PDF backend.
	ErrRender = errors.New("plan: render failed")
	// ErrInvalidCode is returned by DecodeSelection.
	ErrInvalidCode = errors.New("plan: invalid share code")
)

// Placeholder stands in for any selection field that was not provided.
const Placeholder = "N/A"

const (
	Title    = "Insurance Finder — Your Plan"
	Notice   = "Informational tool only. Not an insurance provider. No guaranteed pricing."
	Tagline  = "Built to help you choose with confidence."
	Summary  = "Summary"
	Steps    = "Recommended Next Steps"
	bulletCh = "• "
)

// NextSteps is the fixed advice printed on every plan. It does not depend on
// the selection.
var NextSteps = []string{
	"Compare at least 3 quotes (same deductibles & limits).",
	"Ask about discounts: bundling / telematics / good student.",
	"Higher liability can protect your savings in a crash.",
	"If financed/leased: you usually need comp + collision.",
}

// Selection is the raw compare-page input. Fields are free-form and may be
// empty; nothing here is validated.
type Selection struct {
	State     string `json:"state,omitempty"`
	Age       string `json:"age,omitempty"`
	Ownership string `json:"ownership,omitempty"`
	History   string `json:"history,omitempty"`
	Goal      string `json:"goal,omitempty"`
}

// Trimmed returns the selection with surrounding whitespace removed.
func (s Selection) Trimmed() Selection {
	return Selection{
		State:     strings.TrimSpace(s.State),
		Age:       strings.TrimSpace(s.Age),
		Ownership: strings.TrimSpace(s.Ownership),
		History:   strings.TrimSpace(s.History),
		Goal:      strings.TrimSpace(s.Goal),
	}
}

type FontSize float64

const (
	SizeTitle   FontSize = 22
	SizeHeading FontSize = 16
	SizeBody    FontSize = 14
	SizeSmall   FontSize = 11
)

type Color int

const (
	ColorInk Color = iota
	ColorMuted
)

// RGB returns the 0..255 components for the renderer.
func (c Color) RGB() (r, g, b int) {
	switch c {
	case ColorMuted:
		return 64, 77, 102
	default:
		return 0, 0, 0
	}
}

// Block is one line of the document. A block with a Label and a Value is
// drawn as "Label: Value"; a block with only a Label is drawn as is.
// GapAfter is extra vertical space below the line, in points.
type Block struct {
	Label    string
	Value    string
	Size     FontSize
	Color    Color
	GapAfter float64
}

// Text is the string the renderer draws for the block.
func (b Block) Text() string {
	if b.Value == "" {
		return b.Label
	}
	return b.Label + ": " + b.Value
}

// Document is an ordered list of blocks. It is not modified after Format
// returns.
type Document struct {
	Blocks []Block
}

// Lines returns the drawn text of every block, in order.
func (d *Document) Lines() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.Blocks))
	for i, b := range d.Blocks {
		out[i] = b.Text()
	}
	return out
}

func (d *Document) validate() error {
	if d == nil || len(d.Blocks) == 0 {
		return ErrInvalidDocument
	}
	return nil
}

// Format lays out the plan summary for sel. steps replaces NextSteps when
// non-empty. The confidence score is not part of the document.
func Format(sel Selection, steps []string) *Document {
	if len(steps) == 0 {
		steps = NextSteps
	}
	sel = sel.Trimmed()

	blocks := []Block{
		{Label: Title, Size: SizeTitle, GapAfter: 6},
		{Label: Notice, Size: SizeSmall, Color: ColorMuted, GapAfter: 20},
		{Label: Summary, Size: SizeHeading, GapAfter: 8},
		field("State", sel.State),
		field("Age band", sel.Age),
		field("Ownership", sel.Ownership),
		field("Driving history", sel.History),
		field("Goal", sel.Goal),
	}
	blocks[len(blocks)-1].GapAfter = 18

	blocks = append(blocks, Block{Label: Steps, Size: SizeHeading, GapAfter: 8})
	for _, s := range steps {
		blocks = append(blocks, Block{Label: bulletCh + s, Size: SizeBody})
	}
	blocks[len(blocks)-1].GapAfter = 24

	blocks = append(blocks, Block{Label: Tagline, Size: SizeSmall, Color: ColorMuted})
	return &Document{Blocks: blocks}
}

func field(label, value string) Block {
	if value == "" {
		value = Placeholder
	}
	return Block{Label: label, Value: value, Size: SizeBody}
}

package plan

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
)

// Page geometry in points.
const (
	pageWidth    = 600.0
	pageHeight   = 750.0
	marginLeft   = 50.0
	startY       = 700.0
	bottomMargin = 50.0
	lineStep     = 26.0
)

// Renderer draws a Document as a single-column PDF. The zero value is usable.
type Renderer struct {
	// SelfCheck re-opens the generated bytes and requires at least one page.
	SelfCheck bool
}

// Render returns the complete PDF for doc. On error no partial output is
// returned.
func (r Renderer) Render(doc *Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	f.SetAutoPageBreak(false, 0)
	f.SetTitle("Insurance Finder plan", true)
	f.SetCreator("insurancefinder", true)
	tr := f.UnicodeTranslatorFromDescriptor("")

	f.AddPage()
	y := startY
	for _, b := range doc.Blocks {
		if y < bottomMargin {
			f.AddPage()
			y = startY
		}
		f.SetFont("Helvetica", "", float64(b.Size))
		f.SetTextColor(b.Color.RGB())
		// y counts up from the bottom edge; gofpdf measures from the top.
		f.Text(marginLeft, pageHeight-y, tr(b.Text()))
		y -= lineStep + b.GapAfter
	}

	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	out := buf.Bytes()

	if r.SelfCheck {
		if err := checkPDF(out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return out, nil
}

// checkPDF parses data back and requires at least one page.
func checkPDF(data []byte) error {
	if mime := http.DetectContentType(data); mime != "application/pdf" {
		return fmt.Errorf("unexpected content type %q", mime)
	}
	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	if rd.NumPage() < 1 {
		return fmt.Errorf("document has no pages")
	}
	return nil
}

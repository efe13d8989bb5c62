package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
)

// Title is the heading printed at the top of every report.
const Title = "CNG Maintenance & Safety Report"

const (
	fontFamily = "Arial"
	titleSize  = 16
	bodySize   = 12
	cellWidth  = 200
	cellHeight = 10
)

var _ core.ReportRenderer = (*Renderer)(nil)

// Renderer lays out report content on a single A4 page.
type Renderer struct {
	compress bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCompression toggles page stream compression. It is on by default.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) { r.compress = enabled }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{compress: true}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Lines returns the body lines of the report in print order, before
// transcoding.
func Lines(c model.ReportContent) []string {
	lines := []string{
		"Vehicle: " + c.Vehicle,
		"Date: " + c.Date.Format(model.ReportDateLayout),
		"Maintenance Status: " + c.MaintenanceMessage,
	}
	if c.PredictedKm != nil {
		lines = append(lines, fmt.Sprintf("Predicted Next Service: %d KM", *c.PredictedKm))
	}
	return append(lines, "Safety Risk Assessment: "+c.RiskMessage)
}

// Render produces a complete PDF document for c.
func (r *Renderer) Render(c model.ReportContent) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(c.Date)
	pdf.SetModificationDate(c.Date)
	pdf.SetTitle(Title, true)
	pdf.SetCreator("cngcare", false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.CellFormat(cellWidth, cellHeight, Latin1(Title), "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "", bodySize)
	for _, line := range Lines(c) {
		pdf.CellFormat(cellWidth, cellHeight, Latin1(line), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Latin1 encodes s as ISO-8859-1, silently dropping runes outside it.
// The result holds one byte per kept rune, as the core PDF fonts expect.
func Latin1(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			out = append(out, b)
		}
	}
	return string(out)
}

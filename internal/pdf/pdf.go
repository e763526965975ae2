// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf renders a parsed KKP document as a paginated PDF using the
// fpdf core fonts.
//
// Known limitations: justified paragraphs rely on the engine's word
// spacing and can be switched to left alignment with
// DocumentConfig.PDFDegradeJustify; characters outside Windows-1252 are
// replaced with '?' (see Unencodable); table rows are printed as
// pipe-joined lines, not as table cells.
package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// ContentType is the MIME type of rendered output.
const ContentType = "application/pdf"

// Layout in millimetres.
const (
	marginLeft     = 20.0
	marginTop      = 15.0
	marginRight    = 20.0
	pageBreak      = 15.0
	lineHeight     = 6.0
	letterheadLine = 5.0
	labelWidth     = 50.0
	colonWidth     = 5.0
	bulletWidth    = 6.0
	headingGap     = 3.0
	blankGap       = 3.0
)

// bullet is U+2022 in Windows-1252.
const bullet = "\x95"

// fixedDate is stamped into every document so output does not depend on
// the clock.
var fixedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var alignCodes = map[types.Alignment]string{
	types.AlignLeft:    "L",
	types.AlignCenter:  "C",
	types.AlignRight:   "R",
	types.AlignJustify: "J",
}

// Renderer writes PDF documents.
type Renderer struct {
	cfg      types.DocumentConfig
	family   string
	compress bool
}

// New returns a Renderer for the given layout. Zero fields take defaults.
func New(cfg types.DocumentConfig) *Renderer {
	cfg = cfg.WithDefaults()
	return &Renderer{cfg: cfg, family: coreFamily(cfg.FontFamily), compress: true}
}

// Name identifies the output format.
func (r *Renderer) Name() string { return "pdf" }

// Extension is the file extension of rendered output.
func (r *Renderer) Extension() string { return ".pdf" }

// ContentType is the MIME type of rendered output.
func (r *Renderer) ContentType() string { return ContentType }

// Render writes doc as a PDF to w.
func (r *Renderer) Render(w io.Writer, doc *types.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(fixedDate)
	pdf.SetModificationDate(fixedDate)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, pageBreak)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(r.family, "B", r.cfg.TitleFontSize)
		for _, line := range r.cfg.Letterhead {
			txt, _ := encode(line)
			pdf.CellFormat(0, letterheadLine, txt, "", 1, "C", false, 0, "")
		}
		pdf.Ln(10)
	})

	pdf.AddPage()
	pdf.SetFont(r.family, "", r.cfg.FontSize)

	for _, b := range doc.Blocks {
		r.block(pdf, b)
		if pdf.Err() {
			break
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// block draws one block and leaves the regular body font selected.
func (r *Renderer) block(pdf *fpdf.Fpdf, b types.Block) {
	size := r.cfg.FontSize
	defer pdf.SetFont(r.family, "", size)

	switch b.Kind {
	case types.BlockHeading:
		txt, _ := encode(b.Text)
		pdf.Ln(headingGap)
		pdf.SetFont(r.family, "B", size)
		pdf.MultiCell(0, lineHeight, txt, "", r.align(b.Alignment, types.AlignLeft), false)

	case types.BlockLabeledField:
		label, _ := encode(b.Label)
		value, _ := encode(b.Value)
		pdf.SetFont(r.family, "B", size)
		pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
		pdf.SetFont(r.family, "", size)
		pdf.CellFormat(colonWidth, lineHeight, ":", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, lineHeight, value, "", "L", false)

	case types.BlockBulletItem:
		txt, _ := encode(b.Text)
		pdf.CellFormat(bulletWidth, lineHeight, bullet, "", 0, "L", false, 0, "")
		pdf.SetFont(r.family, style(b.Emphasis), size)
		pdf.MultiCell(0, lineHeight, txt, "", r.align(b.Alignment, types.AlignLeft), false)

	case types.BlockTableMarker:
		txt, _ := encode(b.Text)
		pdf.SetFont(r.family, style(b.Emphasis), size)
		pdf.MultiCell(0, lineHeight, txt, "", "L", false)

	case types.BlockParagraph:
		txt, _ := encode(b.Text)
		pdf.SetFont(r.family, style(b.Emphasis), size)
		pdf.MultiCell(0, lineHeight, txt, "", r.align(b.Alignment, types.AlignJustify), false)

	default: // types.BlockBlank
		pdf.Ln(blankGap)
	}
}

func (r *Renderer) align(a, fallback types.Alignment) string {
	code, ok := alignCodes[a]
	if !ok {
		code = alignCodes[fallback]
	}
	if code == "J" && r.cfg.PDFDegradeJustify {
		return "L"
	}
	return code
}

func style(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// coreFamily maps a configured font name to one of the fpdf core families.
func coreFamily(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasPrefix(n, "times"):
		return "Times"
	case strings.HasPrefix(n, "courier"):
		return "Courier"
	default:
		return "Arial"
	}
}

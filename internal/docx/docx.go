// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders a parsed KKP document as a WordprocessingML (.docx)
// package. The output is deterministic: the same Document always produces
// the same bytes.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// ContentType is the MIME type of the rendered package.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Layout constants, in twentieths of a point.
const (
	labelTabPos    = 2835 // 5 cm: colon column of labeled fields
	valueTabPos    = 3119 // 5.5 cm: value column of labeled fields
	headingBefore  = 240
	headingAfter   = 40
	a4Width        = 11906
	a4Height       = 16838
	marginTwips    = 1440
	headerFooterTw = 708
)

var jcValues = map[types.Alignment]string{
	types.AlignLeft:    "left",
	types.AlignCenter:  "center",
	types.AlignRight:   "right",
	types.AlignJustify: "both",
}

// Renderer writes .docx packages.
type Renderer struct {
	cfg types.DocumentConfig
}

// New returns a Renderer for the given layout. Zero fields take defaults.
func New(cfg types.DocumentConfig) *Renderer {
	return &Renderer{cfg: cfg.WithDefaults()}
}

// Name identifies the output format.
func (r *Renderer) Name() string { return "docx" }

// Extension is the file extension of rendered output.
func (r *Renderer) Extension() string { return ".docx" }

// ContentType is the MIME type of rendered output.
func (r *Renderer) ContentType() string { return ContentType }

// Render writes doc as a .docx package to w.
func (r *Renderer) Render(w io.Writer, doc *types.Document) error {
	body, err := r.documentXML(doc)
	if err != nil {
		return fmt.Errorf("building document.xml: %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", body},
		{"word/styles.xml", r.stylesXML()},
		{"word/numbering.xml", []byte(numberingXML)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		// No Modified time: the archive must not depend on the clock.
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("adding %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing docx archive: %w", err)
	}
	return nil
}

func (r *Renderer) documentXML(doc *types.Document) ([]byte, error) {
	d := document{
		NSW: nsW,
		Body: body{
			SectPr: sectPr{
				PgSz: pgSz{W: a4Width, H: a4Height},
				PgMar: pgMar{
					Top: marginTwips, Right: marginTwips, Bottom: marginTwips, Left: marginTwips,
					Header: headerFooterTw, Footer: headerFooterTw,
				},
			},
		},
	}

	d.Body.Paragraphs = append(d.Body.Paragraphs, r.letterhead(), paragraph{})
	for _, b := range doc.Blocks {
		d.Body.Paragraphs = append(d.Body.Paragraphs, r.paragraphFor(b))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) letterhead() paragraph {
	size := halfPoints(r.cfg.TitleFontSize)
	p := paragraph{Props: &paragraphProps{Jc: &val{"center"}}}
	for i, line := range r.cfg.Letterhead {
		ru := textRun(line, true, size)
		if i > 0 {
			ru.Break = &empty{}
		}
		p.Runs = append(p.Runs, ru)
	}
	return p
}

// paragraphFor maps one block to one paragraph.
func (r *Renderer) paragraphFor(b types.Block) paragraph {
	size := halfPoints(r.cfg.FontSize)

	switch b.Kind {
	case types.BlockHeading:
		return paragraph{
			Props: &paragraphProps{
				Spacing: &spacing{Before: headingBefore, After: headingAfter},
				Jc:      &val{jc(b.Alignment, types.AlignLeft)},
			},
			Runs: []run{textRun(b.Text, true, size)},
		}

	case types.BlockLabeledField:
		return paragraph{
			Props: &paragraphProps{
				Tabs: &tabs{Tabs: []tab{
					{Val: "left", Pos: labelTabPos},
					{Val: "left", Pos: valueTabPos},
				}},
				Ind: &ind{Left: valueTabPos, Hanging: valueTabPos},
				Jc:  &val{"left"},
			},
			Runs: []run{
				textRun(b.Label, true, size),
				{Tab: &empty{}},
				textRun(":", false, size),
				{Tab: &empty{}},
				textRun(b.Value, false, size),
			},
		}

	case types.BlockBulletItem:
		return paragraph{
			Props: &paragraphProps{
				Style: &val{"ListBullet"},
				NumPr: &numPr{Ilvl: val{"0"}, NumID: val{"1"}},
				Jc:    &val{jc(b.Alignment, types.AlignLeft)},
			},
			Runs: []run{textRun(b.Text, b.Emphasis, size)},
		}

	case types.BlockTableMarker:
		return paragraph{
			Props: &paragraphProps{Jc: &val{"left"}},
			Runs:  []run{textRun(b.Text, b.Emphasis, size)},
		}

	case types.BlockParagraph:
		return paragraph{
			Props: &paragraphProps{Jc: &val{jc(b.Alignment, types.AlignJustify)}},
			Runs:  []run{textRun(b.Text, b.Emphasis, size)},
		}

	default: // types.BlockBlank
		return paragraph{}
	}
}

func textRun(s string, bold bool, size string) run {
	ru := run{
		Props: &runProps{Size: &val{size}, SizeCs: &val{size}},
		Text:  &text{Space: "preserve", Value: s},
	}
	if bold {
		ru.Props.Bold = &empty{}
	}
	return ru
}

func jc(a, fallback types.Alignment) string {
	if v, ok := jcValues[a]; ok {
		return v
	}
	return jcValues[fallback]
}

// halfPoints converts a point size to the w:sz unit.
func halfPoints(pt float64) string {
	return strconv.Itoa(int(math.Round(pt * 2)))
}

func (r *Renderer) stylesXML() []byte {
	var font bytes.Buffer
	xml.EscapeText(&font, []byte(r.cfg.FontFamily))
	size, _ := strconv.Atoi(halfPoints(r.cfg.FontSize))
	return []byte(fmt.Sprintf(stylesXMLFormat, font.String(), size))
}

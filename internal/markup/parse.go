// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"fmt"
	"strings"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// Parse converts marked-up draft text into a Document. It is a pure
// function of the grammar and the text: one pass, one block per non-marker
// line, in input order. Parse never fails; lines that do not conform are
// degraded to plain paragraphs and reported in Document.Diagnostics.
func Parse(g *Grammar, text string) *types.Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	doc := &types.Document{}
	if text == "" {
		return doc
	}

	var state State
	var headerOpened, tableOpened int
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1

		l, next := g.Classify(state, raw)
		switch l.Directive {
		case DirectiveHeaderStart:
			headerOpened = lineNo
		case DirectiveTableStart:
			tableOpened = lineNo
		}
		state = next

		if l.Directive != DirectiveNone {
			continue
		}

		b := l.Block
		b.Line = lineNo
		doc.Blocks = append(doc.Blocks, b)

		if l.Degraded {
			doc.Diagnostics = append(doc.Diagnostics, types.Diagnostic{
				Kind:    types.DiagMalformedMarkup,
				Line:    lineNo,
				Message: l.Reason + "; rendered as a paragraph",
			})
		}
	}

	if state.InHeader {
		doc.Diagnostics = append(doc.Diagnostics, types.Diagnostic{
			Kind:    types.DiagUnterminated,
			Line:    headerOpened,
			Message: fmt.Sprintf("%s without %s", g.HeaderStart, g.HeaderEnd),
		})
	}
	if state.InTable {
		doc.Diagnostics = append(doc.Diagnostics, types.Diagnostic{
			Kind:    types.DiagUnterminated,
			Line:    tableOpened,
			Message: fmt.Sprintf("%s without %s", g.TableStart, g.TableEnd),
		})
	}

	doc.Diagnostics = append(doc.Diagnostics, Check(g, doc)...)
	return doc
}

// Check reports required sections missing from a parsed document and a
// document with no labeled fields at all. The generated text is never
// trusted to follow the grammar exactly.
func Check(g *Grammar, doc *types.Document) []types.Diagnostic {
	var diags []types.Diagnostic

	if doc.Count(types.BlockLabeledField) == 0 {
		diags = append(diags, types.Diagnostic{
			Kind:    types.DiagMissingSection,
			Message: "no header fields found",
		})
	}

	headings := make(map[string]bool)
	for _, b := range doc.Blocks {
		if b.Kind == types.BlockHeading {
			headings[normalizeHeading(b.Text)] = true
		}
	}
	for _, want := range g.RequiredSections {
		if !headings[normalizeHeading(want)] {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagMissingSection,
				Message: fmt.Sprintf("missing section %q", want),
			})
		}
	}
	return diags
}

func normalizeHeading(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":")
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// Directive is a structural marker that changes parser state or is
// discarded. Directive lines never produce a block.
type Directive string

const (
	DirectiveNone        Directive = ""
	DirectiveHeaderStart Directive = "header_start"
	DirectiveHeaderEnd   Directive = "header_end"
	DirectiveTableStart  Directive = "table_start"
	DirectiveTableEnd    Directive = "table_end"
	DirectiveIgnored     Directive = "ignored"
)

// State is the parser state carried from one line to the next.
type State struct {
	InHeader bool
	InTable  bool
}

// Line is the classification of one source line. Exactly one of Directive
// or Block.Kind is set.
type Line struct {
	Directive Directive
	Block     types.Block

	// Degraded is set when the line was expected to match a pattern, did
	// not, and fell back to a plain paragraph.
	Degraded bool
	Reason   string
}

var (
	// alignPattern matches [align:x]text[/align].
	alignPattern = regexp.MustCompile(`(?i)^\[align:(left|center|right|justify)\](.*)\[/align\]$`)

	// alignTagPattern matches any opening or closing align tag.
	alignTagPattern = regexp.MustCompile(`(?i)\[/?align[^\]]*\]`)

	// numberedFieldPattern matches "<n>. label : value". The label stops at
	// the first colon.
	numberedFieldPattern = regexp.MustCompile(`^(\d+\.[^:]*?)\s*:\s*(.*)$`)
)

// Classify assigns one source line to a directive or a block kind and
// returns the state for the next line. It never fails: lines matching no
// pattern become justified paragraphs.
func (g *Grammar) Classify(state State, raw string) (Line, State) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Line{Block: types.Block{Kind: types.BlockBlank}}, state
	}

	if d := g.directive(line); d != DirectiveNone {
		next := state
		switch d {
		case DirectiveHeaderStart:
			next.InHeader = true
		case DirectiveHeaderEnd:
			next.InHeader = false
		case DirectiveTableStart:
			next.InTable = true
		case DirectiveTableEnd:
			next.InTable = false
		}
		return Line{Directive: d}, next
	}

	if state.InTable && g.TableSeparator != "" && strings.Contains(line, g.TableSeparator) {
		return Line{Block: g.tableRow(line)}, state
	}

	if strings.HasPrefix(strings.ToLower(line), "[align:") {
		if m := alignPattern.FindStringSubmatch(line); m != nil {
			align, _ := types.ParseAlignment(strings.ToLower(m[1]))
			b := g.paragraph(m[2])
			b.Alignment = align
			return Line{Block: b}, state
		}
		return Line{
			Block:    g.paragraph(alignTagPattern.ReplaceAllString(line, "")),
			Degraded: true,
			Reason:   "unrecognized align tag",
		}, state
	}

	if state.InHeader {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			return Line{
				Block:    g.paragraph(line),
				Degraded: true,
				Reason:   "header line without a colon",
			}, state
		}
		return Line{Block: g.field(label, value)}, state
	}

	if g.NumberedFields {
		if m := numberedFieldPattern.FindStringSubmatch(line); m != nil {
			return Line{Block: g.field(m[1], m[2])}, state
		}
	}

	// Bullets win over headings: "- BELUM ADA SLA" is a list item.
	for _, prefix := range g.BulletPrefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			rest = strings.TrimSpace(rest)
			return Line{Block: types.Block{
				Kind:      types.BlockBulletItem,
				Text:      g.strip(rest),
				Alignment: types.AlignLeft,
				Emphasis:  strings.Contains(rest, g.BoldMarker),
			}}, state
		}
	}

	if g.isHeading(line) {
		return Line{Block: types.Block{
			Kind:      types.BlockHeading,
			Text:      g.strip(line),
			Alignment: types.AlignLeft,
			Emphasis:  true,
		}}, state
	}

	return Line{Block: g.paragraph(line)}, state
}

// directive reports which structural marker, if any, the line carries.
func (g *Grammar) directive(line string) Directive {
	switch {
	case strings.Contains(line, g.HeaderStart):
		return DirectiveHeaderStart
	case strings.Contains(line, g.HeaderEnd):
		return DirectiveHeaderEnd
	case g.TableStart != "" && strings.Contains(line, g.TableStart):
		return DirectiveTableStart
	case g.TableEnd != "" && strings.Contains(line, g.TableEnd):
		return DirectiveTableEnd
	}
	for _, m := range g.Ignored {
		if m != "" && strings.Contains(line, m) {
			return DirectiveIgnored
		}
	}
	return DirectiveNone
}

// isHeading reports whether line is wrapped in bold markers or is an
// all-uppercase line shorter than HeadingMaxLength.
func (g *Grammar) isHeading(line string) bool {
	m := g.BoldMarker
	if len(line) > 2*len(m) && strings.HasPrefix(line, m) && strings.HasSuffix(line, m) {
		return strings.TrimSpace(g.strip(line)) != ""
	}
	if g.HeadingMaxLength == 0 || utf8.RuneCountInString(line) >= g.HeadingMaxLength {
		return false
	}
	return isUpper(line)
}

// isUpper reports whether s has at least one cased letter and no lowercase
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func (g *Grammar) paragraph(text string) types.Block {
	text = strings.TrimSpace(text)
	clean := g.strip(text)
	if clean == "" {
		// Nothing left once markers are removed, e.g. "****".
		return types.Block{Kind: types.BlockBlank}
	}
	return types.Block{
		Kind:      types.BlockParagraph,
		Text:      clean,
		Alignment: types.AlignJustify,
		Emphasis:  strings.Contains(text, g.BoldMarker),
	}
}

func (g *Grammar) field(label, value string) types.Block {
	label = g.strip(label)
	value = g.strip(value)
	return types.Block{
		Kind:      types.BlockLabeledField,
		Text:      label + " : " + value,
		Alignment: types.AlignLeft,
		Label:     label,
		Value:     value,
	}
}

func (g *Grammar) tableRow(line string) types.Block {
	parts := strings.Split(line, g.TableSeparator)
	// Leading and trailing separators produce empty edge cells.
	if len(parts) > 1 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = g.strip(p)
	}
	return types.Block{
		Kind:      types.BlockTableMarker,
		Text:      strings.Join(cells, " | "),
		Alignment: types.AlignLeft,
		Cells:     cells,
	}
}

// strip removes bold markers and surrounding whitespace.
func (g *Grammar) strip(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, g.BoldMarker, ""))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DiagnosticKind names a recovered, non-fatal condition found while
// transcoding a draft.
type DiagnosticKind string

const (
	// DiagMalformedMarkup marks a line that matched no pattern it was
	// expected to match and was degraded to a plain paragraph.
	DiagMalformedMarkup DiagnosticKind = "malformed_markup"

	// DiagMissingSection marks a required section heading absent from the draft.
	DiagMissingSection DiagnosticKind = "missing_section"

	// DiagUnterminated marks a header or table region left open at end of input.
	DiagUnterminated DiagnosticKind = "unterminated_region"

	// DiagEncoding marks characters the PDF font encoding cannot represent.
	DiagEncoding DiagnosticKind = "encoding"
)

// Diagnostic records one recovered condition.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Line    int            `json:"line,omitempty" yaml:"line,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

// Document is the parsed form of one draft. Both renderers consume the same
// Document; neither mutates it.
type Document struct {
	Blocks      []Block      `json:"blocks" yaml:"blocks"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Count returns the number of blocks of the given kind.
func (d *Document) Count(kind BlockKind) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

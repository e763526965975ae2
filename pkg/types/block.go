// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BlockKind classifies one parsed line of marked-up draft text.
type BlockKind string

const (
	BlockHeading      BlockKind = "heading"
	BlockLabeledField BlockKind = "labeled_field"
	BlockParagraph    BlockKind = "paragraph"
	BlockBulletItem   BlockKind = "bullet_item"
	BlockTableMarker  BlockKind = "table_marker"
	BlockBlank        BlockKind = "blank"
)

// BlockKinds lists every kind in declaration order.
var BlockKinds = []BlockKind{
	BlockHeading,
	BlockLabeledField,
	BlockParagraph,
	BlockBulletItem,
	BlockTableMarker,
	BlockBlank,
}

// Alignment is the horizontal alignment of a rendered paragraph.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// ParseAlignment maps an [align:...] tag value to an Alignment. The second
// result is false for values outside left|center|right|justify.
func ParseAlignment(s string) (Alignment, bool) {
	switch Alignment(s) {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return Alignment(s), true
	}
	return "", false
}

// Block is the structural unit produced by the transcoder. Exactly one Block
// is produced per content line, in input order.
type Block struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind BlockKind `json:"kind" yaml:"kind"`

	// Text is the cleaned content with formatting markers stripped. Empty for
	// Blank blocks.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Alignment defaults to justify for body paragraphs and left for headings.
	Alignment Alignment `json:"alignment,omitempty" yaml:"alignment,omitempty"`

	// Emphasis renders the block bold.
	Emphasis bool `json:"emphasis,omitempty" yaml:"emphasis,omitempty"`

	// Label is the text before the first colon (LabeledField only).
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Value is the text after the first colon (LabeledField only).
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// Cells holds the pipe-separated cells of a table row (TableMarker only).
	Cells []string `json:"cells,omitempty" yaml:"cells,omitempty"`

	// Line is the 1-based source line the block came from.
	Line int `json:"line" yaml:"line"`
}

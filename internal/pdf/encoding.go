// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// placeholder replaces characters the core fonts cannot show.
const placeholder = '?'

// encode converts UTF-8 text to the Windows-1252 byte string the PDF core
// fonts expect. Text is NFC-normalized first so decomposed accents survive.
// It returns the number of characters replaced with the placeholder.
func encode(s string) (string, int) {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	replaced := 0
	for _, r := range s {
		if r == '\t' {
			b.WriteByte(' ')
			continue
		}
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok || c < 0x20 || c == 0x7f {
			b.WriteByte(placeholder)
			replaced++
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), replaced
}

// Unencodable reports every block whose text would lose characters in the
// PDF rendering. The render itself still succeeds.
func Unencodable(doc *types.Document) []types.Diagnostic {
	var diags []types.Diagnostic
	for _, b := range doc.Blocks {
		n := 0
		for _, s := range blockStrings(b) {
			_, r := encode(s)
			n += r
		}
		if n > 0 {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagEncoding,
				Line:    b.Line,
				Message: fmt.Sprintf("%d character(s) replaced with %q in PDF", n, placeholder),
			})
		}
	}
	return diags
}

func blockStrings(b types.Block) []string {
	if b.Kind == types.BlockLabeledField {
		return []string{b.Label, b.Value}
	}
	return []string{b.Text}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup parses the KKP marker grammar into a block model.
//
// The grammar is data: every structural marker, bullet prefix and heading
// heuristic is read from a Grammar value, so drifted variants of the
// generated text are handled by configuration instead of new code. The
// built-in grammar is embedded from grammar.yaml.
package markup

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

//go:embed grammar.yaml
var defaultGrammarYAML []byte

// Grammar enumerates the markers recognized by the parser.
type Grammar struct {
	HeaderStart string `json:"header_start" yaml:"header_start"`
	HeaderEnd   string `json:"header_end" yaml:"header_end"`
	TableStart  string `json:"table_start" yaml:"table_start"`
	TableEnd    string `json:"table_end" yaml:"table_end"`

	// Ignored markers are consumed without producing a block.
	Ignored []string `json:"ignored" yaml:"ignored"`

	BoldMarker     string   `json:"bold_marker" yaml:"bold_marker"`
	BulletPrefixes []string `json:"bullet_prefixes" yaml:"bullet_prefixes"`
	TableSeparator string   `json:"table_separator" yaml:"table_separator"`

	// HeadingMaxLength bounds the all-uppercase heading heuristic (in runes).
	HeadingMaxLength int `json:"heading_max_length" yaml:"heading_max_length"`

	// NumberedFields treats "<n>. label : value" lines outside the header
	// region as labeled fields.
	NumberedFields bool `json:"numbered_fields" yaml:"numbered_fields"`

	// RequiredSections are headings a conforming draft must contain.
	RequiredSections []string `json:"required_sections" yaml:"required_sections"`
}

// DefaultGrammar returns a fresh copy of the built-in grammar.
func DefaultGrammar() *Grammar {
	g, err := parseGrammar(defaultGrammarYAML)
	if err != nil {
		panic(fmt.Sprintf("markup: embedded grammar: %v", err))
	}
	return g
}

// LoadGrammar reads a grammar file. An empty path returns the default
// grammar. Fields omitted from the file keep their default values.
func LoadGrammar(path string) (*Grammar, error) {
	if path == "" {
		return DefaultGrammar(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar: %w", err)
	}
	g := DefaultGrammar()
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parsing grammar %s: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("grammar %s: %w", path, err)
	}
	return g, nil
}

func parseGrammar(data []byte) (*Grammar, error) {
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Validate reports grammars the parser cannot work with.
func (g *Grammar) Validate() error {
	if g.HeaderStart == "" || g.HeaderEnd == "" {
		return fmt.Errorf("header_start and header_end are required")
	}
	if g.HeaderStart == g.HeaderEnd {
		return fmt.Errorf("header_start and header_end must differ")
	}
	if (g.TableStart == "") != (g.TableEnd == "") {
		return fmt.Errorf("table_start and table_end must be set together")
	}
	if g.BoldMarker == "" {
		return fmt.Errorf("bold_marker is required")
	}
	if g.HeadingMaxLength < 0 {
		return fmt.Errorf("heading_max_length must not be negative")
	}
	return nil
}

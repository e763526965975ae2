package types

import "time"

// AIConfig holds settings for the generation call.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. It is never written
	// back to disk.
	APIKey string `json:"-" yaml:"-"`

	// Timeout bounds the generation call. Zero leaves the service default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// BaseURL overrides the provider endpoint (used by tests and proxies).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// PromptConfig holds settings for the prompt assembler.
type PromptConfig struct {
	// InstructionFile replaces the built-in instruction text when set.
	InstructionFile string `json:"instruction_file,omitempty" yaml:"instruction_file,omitempty"`
}

// MarkupConfig holds settings for the marker transcoder.
type MarkupConfig struct {
	// GrammarFile replaces the built-in marker grammar when set.
	GrammarFile string `json:"grammar_file,omitempty" yaml:"grammar_file,omitempty"`
}

// DocumentConfig holds layout settings shared by the Word and PDF renderers.
type DocumentConfig struct {
	// Letterhead lines are printed bold and centered above the content.
	Letterhead []string `json:"letterhead" yaml:"letterhead"`

	// FontFamily is the body font (default "Arial").
	FontFamily string `json:"font_family" yaml:"font_family"`

	// FontSize is the body font size in points (default 11).
	FontSize float64 `json:"font_size" yaml:"font_size"`

	// TitleFontSize is the letterhead font size in points (default 12).
	TitleFontSize float64 `json:"title_font_size" yaml:"title_font_size"`

	// PDFDegradeJustify renders justified paragraphs left-aligned in the PDF,
	// for viewers where the engine's word spacing looks wrong.
	PDFDegradeJustify bool `json:"pdf_degrade_justify" yaml:"pdf_degrade_justify"`
}

// ServerConfig holds settings for the HTTP front end.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// LogConfig selects the structured logger configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is structured (JSON) or console.
	Format string `json:"format" yaml:"format"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	AI       AIConfig       `json:"ai" yaml:"ai"`
	Prompt   PromptConfig   `json:"prompt" yaml:"prompt"`
	Markup   MarkupConfig   `json:"markup" yaml:"markup"`
	Document DocumentConfig `json:"document" yaml:"document"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// DefaultLetterhead is printed when no letterhead is configured.
var DefaultLetterhead = []string{
	"PT AGRINAS PANGAN NUSANTARA (PERSERO)",
	"INTERNAL AUDIT (IA)",
}

// WithDefaults returns a copy of c with zero fields filled in.
func (c DocumentConfig) WithDefaults() DocumentConfig {
	if len(c.Letterhead) == 0 {
		c.Letterhead = append([]string(nil), DefaultLetterhead...)
	}
	if c.FontFamily == "" {
		c.FontFamily = "Arial"
	}
	if c.FontSize <= 0 {
		c.FontSize = 11
	}
	if c.TitleFontSize <= 0 {
		c.TitleFontSize = 12
	}
	return c
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kkp wires the prompt assembler, the generation client and the
// marker transcoder into the two user actions: drafting a working paper
// from findings and rendering a draft into Word and PDF artifacts.
package kkp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/kkp-generator/internal/docx"
	"github.com/pdiddy/kkp-generator/internal/generate"
	"github.com/pdiddy/kkp-generator/internal/markup"
	"github.com/pdiddy/kkp-generator/internal/pdf"
	"github.com/pdiddy/kkp-generator/internal/prompt"
	"github.com/pdiddy/kkp-generator/pkg/types"
)

// ErrEmptyFindings is returned by Draft when there is nothing to send.
var ErrEmptyFindings = errors.New("findings are empty")

// ErrEmptyDraft is returned by Render when the draft has no content.
var ErrEmptyDraft = errors.New("draft is empty")

// ErrUnknownFormat is returned for an output format with no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer turns a parsed document into one output format.
type Renderer interface {
	Name() string
	Extension() string
	ContentType() string
	Render(w io.Writer, doc *types.Document) error
}

// GeneratorFactory builds a Generator for one call. It is replaced in tests.
type GeneratorFactory func(ctx context.Context, cfg types.AIConfig) (generate.Generator, error)

// Artifacts holds both rendered documents and what the parser recovered from.
type Artifacts struct {
	Document    *types.Document
	Docx        []byte
	PDF         []byte
	Diagnostics []types.Diagnostic
}

// Service runs the draft and render actions. A Service holds no per-request
// state; WithAI returns a copy bound to another credential or model.
type Service struct {
	ai           types.AIConfig
	newGenerator GeneratorFactory
	assembler    *prompt.Assembler
	grammar      *markup.Grammar
	word         Renderer
	pdf          Renderer
	logger       *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithGeneratorFactory replaces generate.New.
func WithGeneratorFactory(f GeneratorFactory) Option {
	return func(s *Service) { s.newGenerator = f }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a Service from configuration, loading the instruction and
// grammar overrides it names.
func New(cfg types.AppConfig, opts ...Option) (*Service, error) {
	assembler, err := prompt.FromFile(cfg.Prompt.InstructionFile)
	if err != nil {
		return nil, fmt.Errorf("loading instruction: %w", err)
	}
	grammar, err := markup.LoadGrammar(cfg.Markup.GrammarFile)
	if err != nil {
		return nil, fmt.Errorf("loading grammar: %w", err)
	}

	ai := cfg.AI
	if ai.Model == "" {
		ai.Model = generate.DefaultModel
	}

	s := &Service{
		ai:           ai,
		newGenerator: generate.New,
		assembler:    assembler,
		grammar:      grammar,
		word:         docx.New(cfg.Document),
		pdf:          pdf.New(cfg.Document),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WithAI returns a copy of s that generates with ai. Empty fields keep the
// values s was built with.
func (s *Service) WithAI(ai types.AIConfig) *Service {
	c := *s
	if ai.Model != "" {
		c.ai.Model = ai.Model
	}
	if ai.APIKey != "" {
		c.ai.APIKey = ai.APIKey
	}
	if ai.Timeout > 0 {
		c.ai.Timeout = ai.Timeout
	}
	if ai.BaseURL != "" {
		c.ai.BaseURL = ai.BaseURL
	}
	return &c
}

// Model is the model identifier Draft will call.
func (s *Service) Model() string { return s.ai.Model }

// Draft sends findings to the configured model and returns the marked-up
// draft. Errors wrap one of the generate sentinels, or ErrEmptyFindings.
func (s *Service) Draft(ctx context.Context, findings string) (string, error) {
	if strings.TrimSpace(findings) == "" {
		return "", ErrEmptyFindings
	}

	text, err := s.assembler.Assemble(findings)
	if err != nil {
		return "", fmt.Errorf("assembling prompt: %w", err)
	}

	gen, err := s.newGenerator(ctx, s.ai)
	if err != nil {
		s.logger.Warn("generator unavailable", zap.String("model", s.ai.Model), zap.Error(err))
		return "", err
	}

	if !generate.IsListed(s.ai.Model) {
		s.logger.Warn("model outside the allow-list", zap.String("model", s.ai.Model))
	}

	start := time.Now()
	draft, err := gen.Generate(ctx, text)
	if err != nil {
		s.logger.Warn("generation failed",
			zap.String("model", s.ai.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	s.logger.Info("draft generated",
		zap.String("model", s.ai.Model),
		zap.Int("prompt_bytes", len(text)),
		zap.Int("draft_bytes", len(draft)),
		zap.Duration("elapsed", time.Since(start)))
	return draft, nil
}

// Parse turns a draft into blocks with conformance diagnostics.
func (s *Service) Parse(draft string) *types.Document {
	return markup.Parse(s.grammar, draft)
}

// Render parses draft once and renders it in both formats. Recovered
// problems are returned as diagnostics, never as errors.
func (s *Service) Render(draft string) (*Artifacts, error) {
	if strings.TrimSpace(draft) == "" {
		return nil, ErrEmptyDraft
	}

	doc := s.Parse(draft)
	doc.Diagnostics = append(doc.Diagnostics, pdf.Unencodable(doc)...)

	word, err := renderTo(s.word, doc)
	if err != nil {
		return nil, err
	}
	paged, err := renderTo(s.pdf, doc)
	if err != nil {
		return nil, err
	}

	for _, d := range doc.Diagnostics {
		s.logger.Debug("markup diagnostic",
			zap.String("kind", string(d.Kind)),
			zap.Int("line", d.Line),
			zap.String("message", d.Message))
	}
	s.logger.Info("draft rendered",
		zap.Int("blocks", len(doc.Blocks)),
		zap.Int("diagnostics", len(doc.Diagnostics)),
		zap.Int("docx_bytes", len(word)),
		zap.Int("pdf_bytes", len(paged)))

	return &Artifacts{
		Document:    doc,
		Docx:        word,
		PDF:         paged,
		Diagnostics: doc.Diagnostics,
	}, nil
}

// RenderOne renders draft in a single format, "docx" or "pdf".
func (s *Service) RenderOne(draft, format string) ([]byte, Renderer, error) {
	r, err := s.Renderer(format)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(draft) == "" {
		return nil, nil, ErrEmptyDraft
	}
	data, err := renderTo(r, s.Parse(draft))
	if err != nil {
		return nil, nil, err
	}
	return data, r, nil
}

// Renderer returns the renderer registered under name.
func (s *Service) Renderer(name string) (Renderer, error) {
	for _, r := range []Renderer{s.word, s.pdf} {
		if r.Name() == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

func renderTo(r Renderer, doc *types.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", r.Name(), err)
	}
	return buf.Bytes(), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kkp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/kkp-generator/internal/generate"
	"github.com/pdiddy/kkp-generator/pkg/types"
)

// fakeGenerator records the prompt and returns a canned reply.
type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func sampleDraft(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "sample_draft.txt"))
	require.NoError(t, err)
	return string(data)
}

func newService(t *testing.T, gen generate.Generator, opts ...Option) (*Service, *types.AIConfig) {
	t.Helper()
	var seen types.AIConfig
	factory := func(_ context.Context, cfg types.AIConfig) (generate.Generator, error) {
		seen = cfg
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: no API key", generate.ErrCredential)
		}
		return gen, nil
	}
	opts = append([]Option{WithGeneratorFactory(factory)}, opts...)
	s, err := New(types.AppConfig{AI: types.AIConfig{APIKey: "key"}}, opts...)
	require.NoError(t, err)
	return s, &seen
}

func TestDraft(t *testing.T) {
	gen := &fakeGenerator{reply: "[HEADER_START]\n1. No. KKP: 01\n[HEADER_END]"}
	s, seen := newService(t, gen)

	draft, err := s.Draft(context.Background(), "Tidak ada SLA.")
	require.NoError(t, err)
	assert.Equal(t, gen.reply, draft)
	assert.Contains(t, gen.prompt, "DATA MENTAH USER:\nTidak ada SLA.")
	assert.Equal(t, generate.DefaultModel, seen.Model)
}

func TestDraftRejectsEmptyFindings(t *testing.T) {
	gen := &fakeGenerator{reply: "x"}
	s, _ := newService(t, gen)

	for _, findings := range []string{"", "   \n\t"} {
		_, err := s.Draft(context.Background(), findings)
		assert.ErrorIs(t, err, ErrEmptyFindings)
	}
	assert.Empty(t, gen.prompt, "generator must not be called")
}

func TestDraftPropagatesClassifiedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"credential", fmt.Errorf("%w: status 401", generate.ErrCredential), generate.ErrCredential},
		{"model", fmt.Errorf("%w: status 404", generate.ErrModelUnavailable), generate.ErrModelUnavailable},
		{"service", fmt.Errorf("%w: status 500", generate.ErrService), generate.ErrService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newService(t, &fakeGenerator{err: tt.err})
			_, err := s.Draft(context.Background(), "temuan")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDraftWithoutKey(t *testing.T) {
	s, _ := newService(t, &fakeGenerator{reply: "x"})
	s.ai.APIKey = ""

	_, err := s.Draft(context.Background(), "temuan")
	assert.ErrorIs(t, err, generate.ErrCredential)
}

func TestWithAI(t *testing.T) {
	s, seen := newService(t, &fakeGenerator{reply: "x"})

	other := s.WithAI(types.AIConfig{Model: "gemini-1.5-pro", APIKey: "other"})
	_, err := other.Draft(context.Background(), "temuan")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", seen.Model)
	assert.Equal(t, "other", seen.APIKey)

	// The original is untouched.
	assert.Equal(t, generate.DefaultModel, s.Model())

	// Empty fields keep the configured values.
	same := s.WithAI(types.AIConfig{})
	assert.Equal(t, generate.DefaultModel, same.Model())
}

func TestRender(t *testing.T) {
	s, _ := newService(t, &fakeGenerator{})

	art, err := s.Render(sampleDraft(t))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(art.Docx, []byte("PK")))
	assert.True(t, bytes.HasPrefix(art.PDF, []byte("%PDF-")))
	assert.Empty(t, art.Diagnostics)
	assert.Equal(t, 6, art.Document.Count(types.BlockLabeledField))
	assert.Equal(t, 7, art.Document.Count(types.BlockHeading))
}

func TestRenderIsDeterministic(t *testing.T) {
	s, _ := newService(t, &fakeGenerator{})
	draft := sampleDraft(t)

	first, err := s.Render(draft)
	require.NoError(t, err)
	second, err := s.Render(draft)
	require.NoError(t, err)

	assert.Equal(t, first.Docx, second.Docx)
	assert.Equal(t, first.PDF, second.PDF)
}

func TestRenderRecoversFromMalformedDraft(t *testing.T) {
	s, _ := newService(t, &fakeGenerator{})

	art, err := s.Render("[HEADER_START]\nbaris tanpa titik dua\nCatatan \U0001F600\n")
	require.NoError(t, err)
	require.NotEmpty(t, art.Docx)
	require.NotEmpty(t, art.PDF)

	kinds := map[types.DiagnosticKind]int{}
	for _, d := range art.Diagnostics {
		kinds[d.Kind]++
	}
	assert.Positive(t, kinds[types.DiagMalformedMarkup])
	assert.Positive(t, kinds[types.DiagUnterminated])
	assert.Positive(t, kinds[types.DiagMissingSection])
	assert.Equal(t, 1, kinds[types.DiagEncoding])
}

func TestRenderRejectsEmptyDraft(t *testing.T) {
	s, _ := newService(t, &fakeGenerator{})
	_, err := s.Render(" \n ")
	assert.ErrorIs(t, err, ErrEmptyDraft)
}

func TestRenderOne(t *testing.T) {
	s, _ := newService(t, &fakeGenerator{})
	draft := sampleDraft(t)

	all, err := s.Render(draft)
	require.NoError(t, err)

	data, r, err := s.RenderOne(draft, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", r.ContentType())
	assert.Equal(t, all.PDF, data)

	data, r, err = s.RenderOne(draft, "docx")
	require.NoError(t, err)
	assert.Equal(t, ".docx", r.Extension())
	assert.Equal(t, all.Docx, data)

	_, _, err = s.RenderOne(draft, "odt")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, _, err = s.RenderOne("", "pdf")
	assert.ErrorIs(t, err, ErrEmptyDraft)
}

func TestNewLoadsOverrides(t *testing.T) {
	dir := t.TempDir()
	instr := filepath.Join(dir, "instruction.txt")
	require.NoError(t, os.WriteFile(instr, []byte("Instruksi khusus."), 0o644))

	gen := &fakeGenerator{reply: "x"}
	factory := func(context.Context, types.AIConfig) (generate.Generator, error) { return gen, nil }
	s, err := New(types.AppConfig{Prompt: types.PromptConfig{InstructionFile: instr}}, WithGeneratorFactory(factory))
	require.NoError(t, err)

	_, err = s.Draft(context.Background(), "temuan")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gen.prompt, "Instruksi khusus."))

	_, err = New(types.AppConfig{Markup: types.MarkupConfig{GrammarFile: filepath.Join(dir, "missing.yaml")}})
	assert.Error(t, err)
}

func TestServiceLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, _ := newService(t, &fakeGenerator{reply: "x"}, WithLogger(zap.New(core)))

	_, err := s.Draft(context.Background(), "temuan")
	require.NoError(t, err)
	_, err = s.Render(sampleDraft(t))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("draft generated").Len())
	assert.Equal(t, 1, logs.FilterMessage("draft rendered").Len())
	assert.Zero(t, logs.FilterMessage("model outside the allow-list").Len())

	failing, _ := newService(t, &fakeGenerator{err: errors.New("boom")}, WithLogger(zap.New(core)))
	_, err = failing.Draft(context.Background(), "temuan")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("generation failed").Len())
}

func TestDraftWarnsOnUnlistedModel(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, _ := newService(t, &fakeGenerator{reply: "x"}, WithLogger(zap.New(core)))

	_, err := s.WithAI(types.AIConfig{Model: "claude-sonnet-4-5"}).Draft(context.Background(), "temuan")
	require.NoError(t, err)

	warned := logs.FilterMessage("model outside the allow-list").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "claude-sonnet-4-5", warned[0].ContextMap()["model"])
}

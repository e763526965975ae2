// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/kkp-generator/internal/generate"
	"github.com/pdiddy/kkp-generator/internal/kkp"
	"github.com/pdiddy/kkp-generator/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubGenerator answers every prompt with reply or err.
type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

// captured records the configuration of the last generator built.
type captured struct {
	cfg types.AIConfig
}

func newTestServer(t *testing.T, gen stubGenerator, stored map[string]string, opts ...ServerOption) (*Server, *captured) {
	t.Helper()
	c := &captured{}
	factory := func(_ context.Context, cfg types.AIConfig) (generate.Generator, error) {
		c.cfg = cfg
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: no API key", generate.ErrCredential)
		}
		return gen, nil
	}
	svc, err := kkp.New(types.AppConfig{}, kkp.WithGeneratorFactory(factory))
	require.NoError(t, err)
	return NewServer(svc, stored, nil, opts...), c
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleDraft(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "sample_draft.txt"))
	require.NoError(t, err)
	return string(data)
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, stubGenerator{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `type="password"`)
	assert.Contains(t, body, `<option value="gemini-2.5-flash" selected>`)
	assert.Contains(t, body, `name="findings"`)
	assert.NotContains(t, body, "Unduh Word")
}

func TestGenerate(t *testing.T) {
	draft := "[HEADER_START]\n1. No. KKP: 01\n[HEADER_END]\n**URAIAN PEMERIKSAAN**\nIsi & catatan"
	s, c := newTestServer(t, stubGenerator{reply: draft}, nil)

	rec := postForm(t, s.Handler(), "/generate", url.Values{
		"api_key":  {"form-key"},
		"model":    {"gemini-1.5-pro"},
		"findings": {"Tidak ada SLA."},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Isi &amp; catatan")
	assert.Contains(t, body, "Unduh Word")
	assert.Contains(t, body, "Unduh PDF")
	// Missing sections are reported but the draft is still offered.
	assert.Contains(t, body, "Catatan format")
	assert.Equal(t, "form-key", c.cfg.APIKey)
	assert.Equal(t, "gemini-1.5-pro", c.cfg.Model)
}

func TestGenerateUsesStoredKeyAndCustomModel(t *testing.T) {
	s, c := newTestServer(t, stubGenerator{reply: sampleDraft(t)}, map[string]string{
		"anthropic-api-key": "stored-key",
	})

	rec := postForm(t, s.Handler(), "/generate", url.Values{
		"model":        {"custom"},
		"custom_model": {"claude-sonnet-4-5"},
		"findings":     {"temuan"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stored-key", c.cfg.APIKey)
	assert.Equal(t, "claude-sonnet-4-5", c.cfg.Model)
	assert.NotContains(t, rec.Body.String(), "Catatan format")
}

func TestGenerateKeyPrecedence(t *testing.T) {
	stored := map[string]string{"gemini-api-key": "stored-key"}
	tests := []struct {
		name    string
		flagKey string
		formKey string
		want    string
	}{
		{"form wins", "flag-key", "form-key", "form-key"},
		{"flag beats stored", "flag-key", "", "flag-key"},
		{"stored as last resort", "", "", "stored-key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, c := newTestServer(t, stubGenerator{reply: sampleDraft(t)}, stored, WithAPIKey(tt.flagKey))
			rec := postForm(t, s.Handler(), "/generate", url.Values{
				"api_key":  {tt.formKey},
				"findings": {"temuan"},
			})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, c.cfg.APIKey)
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		gen      stubGenerator
		form     url.Values
		wantCode int
		wantMsg  string
	}{
		{
			name:     "empty findings",
			form:     url.Values{"api_key": {"k"}, "findings": {"  "}},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Mohon isi data temuan",
		},
		{
			name:     "missing key",
			form:     url.Values{"findings": {"temuan"}},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "API key belum diisi",
		},
		{
			name:     "unknown model",
			form:     url.Values{"api_key": {"k"}, "model": {"custom"}, "custom_model": {"gpt-4"}, "findings": {"temuan"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Model AI tidak dikenal",
		},
		{
			name:     "service failure",
			gen:      stubGenerator{err: fmt.Errorf("%w: status 503: overloaded", generate.ErrService)},
			form:     url.Values{"api_key": {"k"}, "findings": {"temuan"}},
			wantCode: http.StatusBadGateway,
			wantMsg:  "Terjadi kesalahan AI: status 503: overloaded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.gen, nil)
			rec := postForm(t, s.Handler(), "/generate", tt.form)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.NotContains(t, rec.Body.String(), "Unduh Word")
		})
	}
}

func TestDownload(t *testing.T) {
	s, _ := newTestServer(t, stubGenerator{}, nil)
	draft := sampleDraft(t)

	tests := []struct {
		format      string
		contentType string
		filename    string
		magic       []byte
	}{
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "KKP_Final_Rapi.docx", []byte("PK")},
		{"pdf", "application/pdf", "KKP_Final_Rapi.pdf", []byte("%PDF-")},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := postForm(t, s.Handler(), "/download/"+tt.format, url.Values{"draft": {draft}})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.filename+`"`, rec.Header().Get("Content-Disposition"))
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), tt.magic))
		})
	}
}

func TestDownloadErrors(t *testing.T) {
	s, _ := newTestServer(t, stubGenerator{}, nil)

	rec := postForm(t, s.Handler(), "/download/pdf", url.Values{"draft": {""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Draft kosong")

	rec = postForm(t, s.Handler(), "/download/odt", url.Values{"draft": {"isi"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, stubGenerator{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, stubGenerator{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.ListenAndServe(ctx, "127.0.0.1:0"))
}

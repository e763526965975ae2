// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the single-page front end: the auditor posts findings,
// edits the generated draft in the page and downloads it as Word or PDF.
// The draft travels with each request; the server keeps no state.
package web

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/kkp-generator/internal/generate"
	"github.com/pdiddy/kkp-generator/internal/kkp"
	"github.com/pdiddy/kkp-generator/internal/pdf"
	"github.com/pdiddy/kkp-generator/internal/secrets"
	"github.com/pdiddy/kkp-generator/pkg/types"
)

// DownloadName is the base file name offered for both artifacts.
const DownloadName = "KKP_Final_Rapi"

// customModel is the select value that defers to the free-text model field.
const customModel = "custom"

const shutdownTimeout = 5 * time.Second

//go:embed page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// page is the data rendered into pageTmpl.
type page struct {
	Models       []string
	Model        string
	Custom       bool
	CustomModel  string
	HasStoredKey bool
	Findings     string
	Draft        string
	Diagnostics  []types.Diagnostic
	Error        string
}

// Server handles the front-end routes.
type Server struct {
	svc     *kkp.Service
	secrets map[string]string
	apiKey  string
	logger  *zap.Logger
}

// ServerOption customizes a Server.
type ServerOption func(*Server)

// WithAPIKey sets the key used when the form leaves the API key blank. It
// takes precedence over stored keys.
func WithAPIKey(key string) ServerOption {
	return func(s *Server) { s.apiKey = strings.TrimSpace(key) }
}

// NewServer returns a Server. Keys in stored are used when the form leaves
// the API key blank.
func NewServer(svc *kkp.Service, stored map[string]string, logger *zap.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{svc: svc, secrets: stored, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /download/{format}", s.handleDownload)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	s.logger.Info("listening", zap.String("addr", addr))

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("serving %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) newPage() page {
	return page{
		Models:       generate.Models,
		Model:        s.svc.Model(),
		HasStoredKey: len(s.secrets) > 0 || s.apiKey != "",
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.newPage())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	p := s.newPage()
	p.Findings = r.FormValue("findings")
	model := strings.TrimSpace(r.FormValue("model"))
	if model == customModel {
		p.Custom = true
		p.CustomModel = strings.TrimSpace(r.FormValue("custom_model"))
		model = p.CustomModel
	}
	if model != "" {
		p.Model = model
	}

	if strings.TrimSpace(p.Findings) == "" {
		p.Error = "Mohon isi data temuan terlebih dahulu."
		s.render(w, http.StatusBadRequest, p)
		return
	}

	provider, err := generate.ProviderFor(p.Model)
	if err != nil {
		p.Error = generate.UserMessage(err)
		s.render(w, http.StatusBadRequest, p)
		return
	}
	explicit := strings.TrimSpace(r.FormValue("api_key"))
	if explicit == "" {
		explicit = s.apiKey
	}
	key := secrets.Lookup(s.secrets, generate.SecretName(provider), explicit)

	draft, err := s.svc.WithAI(types.AIConfig{Model: p.Model, APIKey: key}).Draft(r.Context(), p.Findings)
	if err != nil {
		s.logger.Warn("generate request failed", zap.String("model", p.Model), zap.Error(err))
		p.Error = generate.UserMessage(err)
		s.render(w, statusFor(err), p)
		return
	}

	doc := s.svc.Parse(draft)
	p.Draft = draft
	p.Diagnostics = append(doc.Diagnostics, pdf.Unencodable(doc)...)
	s.render(w, http.StatusOK, p)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	draft := r.FormValue("draft")

	data, renderer, err := s.svc.RenderOne(draft, format)
	switch {
	case errors.Is(err, kkp.ErrEmptyDraft):
		p := s.newPage()
		p.Error = "Draft kosong, tidak ada yang dapat diunduh."
		s.render(w, http.StatusBadRequest, p)
		return
	case errors.Is(err, kkp.ErrUnknownFormat):
		http.NotFound(w, r)
		return
	case err != nil:
		s.logger.Error("render failed", zap.String("format", format), zap.Error(err))
		p := s.newPage()
		p.Draft = draft
		p.Error = "Gagal membuat dokumen: " + err.Error()
		s.render(w, http.StatusInternalServerError, p)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, DownloadName, renderer.Extension()))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("writing download", zap.Error(err))
	}
}

// render executes the page into a buffer first so a template failure never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, generate.ErrCredential):
		return http.StatusUnauthorized
	case errors.Is(err, generate.ErrModelUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, kkp.ErrEmptyFindings):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

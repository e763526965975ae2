// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate sends an assembled prompt to a hosted text-generation
// model and returns the raw marked-up draft.
//
// Each call is one synchronous request: no retries, no partial results.
// Failures are classified into ErrCredential, ErrModelUnavailable and
// ErrService so the caller can show a single message.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// Generator produces draft text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider identifies the API family serving a model.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Models is the allow-list offered to the auditor. Other identifiers are
// accepted when they belong to a known provider family.
var Models = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-2.0-flash-exp",
	"gemini-2.5-flash",
	"gemini-3-flash-preview",
	"gemini-3-pro-preview",
}

// secretNames maps providers to their key file in the secrets directory.
var secretNames = map[Provider]string{
	ProviderGemini:    "gemini-api-key",
	ProviderAnthropic: "anthropic-api-key",
}

// SecretName returns the secrets file holding the API key for p.
func SecretName(p Provider) string {
	return secretNames[p]
}

// ProviderFor resolves the provider family for a model identifier.
func ProviderFor(model string) (Provider, error) {
	m := strings.ToLower(strings.TrimSpace(model))
	m = strings.TrimPrefix(m, "models/")
	switch {
	case m == "":
		return "", fmt.Errorf("%w: no model selected", ErrModelUnavailable)
	case strings.HasPrefix(m, "gemini-"):
		return ProviderGemini, nil
	case strings.HasPrefix(m, "claude-"):
		return ProviderAnthropic, nil
	}
	return "", fmt.Errorf("%w: unknown model %q", ErrModelUnavailable, model)
}

// IsListed reports whether model is in the allow-list.
func IsListed(model string) bool {
	for _, m := range Models {
		if m == model {
			return true
		}
	}
	return false
}

// New returns the Generator serving cfg.Model.
func New(ctx context.Context, cfg types.AIConfig) (Generator, error) {
	p, err := ProviderFor(cfg.Model)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: no API key for %s", ErrCredential, p)
	}
	switch p {
	case ProviderAnthropic:
		return NewClaudeBackend(cfg), nil
	default:
		return NewGeminiBackend(ctx, cfg)
	}
}

// withTimeout bounds ctx when a timeout is configured.
func withTimeout(ctx context.Context, cfg types.AIConfig) (context.Context, context.CancelFunc) {
	if cfg.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Timeout)
	}
	return ctx, func() {}
}

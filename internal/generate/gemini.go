// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	client *genai.Client
	cfg    types.AIConfig
}

// NewGeminiBackend creates a Gemini client for cfg.Model.
func NewGeminiBackend(ctx context.Context, cfg types.AIConfig) (*GeminiBackend, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required", ErrCredential)
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%w: creating Gemini client: %v", ErrService, err)
	}
	return &GeminiBackend{client: client, cfg: cfg}, nil
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.cfg)
	defer cancel()

	model := strings.TrimSpace(g.cfg.Model)
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: Gemini returned no text for %s", ErrService, model)
	}
	return text, nil
}

// classifyGeminiError maps SDK errors to the sentinel taxonomy.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classifyStatus(apiErrPtr.Code, apiErrPtr.Message)
	}
	return transportError(err)
}

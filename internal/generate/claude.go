// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// claudeAPIURL is the Claude Messages endpoint. Package-level var for test
// substitution; AIConfig.BaseURL takes precedence.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// claudeMaxTokens bounds the draft length. A full KKP fits well inside it.
const claudeMaxTokens = 8192

// ClaudeBackend calls the Claude Messages API for claude-* models.
type ClaudeBackend struct {
	APIKey string
	Model  string
	URL    string
	Client *http.Client
	cfg    types.AIConfig
}

// NewClaudeBackend returns a backend for cfg.Model.
func NewClaudeBackend(cfg types.AIConfig) *ClaudeBackend {
	url := claudeAPIURL
	if cfg.BaseURL != "" {
		url = strings.TrimRight(cfg.BaseURL, "/") + "/v1/messages"
	}
	return &ClaudeBackend{
		APIKey: cfg.APIKey,
		Model:  strings.TrimSpace(cfg.Model),
		URL:    url,
		cfg:    cfg,
	}
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// claudeError is the error body returned with non-200 responses.
type claudeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends prompt as one user message and concatenates the text blocks
// of the reply.
func (c *ClaudeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: Anthropic API key is required", ErrCredential)
	}

	ctx, cancel := withTimeout(ctx, c.cfg)
	defer cancel()

	bodyBytes, err := json.Marshal(claudeRequest{
		Model:     c.Model,
		MaxTokens: claudeMaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", ErrService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		detail := strings.TrimSpace(string(body))
		var ce claudeError
		if json.Unmarshal(body, &ce) == nil && ce.Error.Message != "" {
			detail = ce.Error.Message
		}
		return "", classifyStatus(resp.StatusCode, detail)
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("%w: decoding Claude response: %v", ErrService, err)
	}

	var b strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no text content in Claude API response", ErrService)
	}
	return b.String(), nil
}

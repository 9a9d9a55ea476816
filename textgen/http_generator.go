// Package textgen talks to an external text generation endpoint.
package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

var ErrEmptyResponse = errors.New("text generator returned an empty response")

// HTTPGenerator posts {"prompt": ...} and reads {"text": ...} (or
// {"description": ...}) back. The API key, if any, goes in a Bearer header.
type HTTPGenerator struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPGenerator(url, apiKey string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPGenerator{url: url, apiKey: apiKey, client: client}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("text generator request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read text generator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text generator responded %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode text generator response: %w", err)
	}
	text := out.Text
	if text == "" {
		text = out.Description
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Package openaichat talks to OpenAI-compatible chat completion endpoints.
// GPT-4, DeepSeek and Llama deployments all expose the same wire contract,
// differing only in base URL and model name.
package openaichat

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

const (
	defaultTimeout = 120 * time.Second
	maxTokens      = 2000
	temperature    = 0.1
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client issues chat completion requests against a single endpoint and model.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	modelName  string
}

func NewClient(baseURL, apiKey, model string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("chat api base url is required")
	}
	if apiKey = strings.TrimSpace(apiKey); apiKey == "" {
		return nil, errors.New("chat api key is required")
	}
	if model = strings.TrimSpace(model); model == "" {
		return nil, errors.New("chat model name is required")
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		modelName:  model,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the
// first choice's content.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.modelName,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}

	if len(decoded.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("chat completion returned empty content")
	}

	return content, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

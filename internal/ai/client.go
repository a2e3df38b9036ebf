package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1200
	defaultTimeout     = 90 * time.Second
)

// Config describes how a completion client should be initialised.
type Config struct {
	Provider    Provider
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client offers a thin wrapper around an OpenAI-compatible Chat Completions API.
type Client struct {
	provider    Provider
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

// Request is one prompt sent to the provider.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// NewClient builds a Client for the configured provider. Absent and
// placeholder keys are rejected with ErrMissingCredential.
func NewClient(cfg Config) (*Client, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}
	defaults, ok := providerDefaults[provider]
	if !ok {
		return nil, fmt.Errorf("ai: unknown provider %q", provider)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if IsPlaceholderKey(apiKey) {
		return nil, fmt.Errorf("ai: %s: %w", provider, ErrMissingCredential)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaults.model
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaults.baseURL
	}

	temp := cfg.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		provider:    provider,
		apiKey:      apiKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temp,
		httpClient:  httpClient,
	}, nil
}

// Provider returns the provider this client talks to.
func (c *Client) Provider() Provider {
	return c.provider
}

// Model returns the model used for completions.
func (c *Client) Model() string {
	return c.model
}

// Complete sends a single chat completion request and returns the text of the
// first choice. It never retries.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("ai: prompt must not be empty")
	}

	messages := make([]chatMessage, 0, 2)
	if system := strings.TrimSpace(req.System); system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	temperature := req.Temperature
	if temperature <= 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return c.performChatCompletion(ctx, chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

func (c *Client) performChatCompletion(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: call %s: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", newStatusError(c.provider, resp)
	}

	var responseData struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&responseData); err != nil {
		return "", fmt.Errorf("ai: decode response: %w: %v", ErrMalformedResponse, err)
	}

	if len(responseData.Choices) == 0 {
		return "", fmt.Errorf("ai: %s returned no choices: %w", c.provider, ErrEmptyResponse)
	}

	content := strings.TrimSpace(responseData.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("ai: %s returned blank content: %w", c.provider, ErrEmptyResponse)
	}
	return content, nil
}

// Package openai wraps the OpenAI-compatible chat completions API used to
// turn natural-language infrastructure requests into Terraform source.
//
// Every method performs exactly one request. A failed or empty response is
// returned to the caller as-is; there is no retry, so a single failure
// aborts whatever pipeline invoked it.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI endpoint used when no override is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

const (
	// EnvAPIKey is the environment variable holding the API credential.
	EnvAPIKey = "OPENAI_API_KEY"

	// EnvBaseURL overrides the API endpoint, for OpenAI-compatible gateways.
	EnvBaseURL = "OPENAI_BASE_URL"
)

const (
	synthesisSystemPrompt = "You are an expert in writing Terraform code."
	analysisSystemPrompt  = "You analyze code changes for infrastructure."

	synthesisMaxTokens = 800
	analysisMaxTokens  = 600
	temperature        = 0.2
)

// Config holds client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration // zero means no client-side timeout
}

// Client calls the chat completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient builds a client from the environment: OPENAI_API_KEY for the
// credential, OPENAI_BASE_URL for a non-default endpoint.
func NewClient(model string) (*Client, error) {
	key, err := RequireAPIKey()
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(Config{APIKey: key, BaseURL: BaseURLFromEnv(), Model: model}), nil
}

// NewClientWithConfig builds a client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// RequireAPIKey reads and validates the generation-service credential from
// the environment. The sk- format check only applies when talking to the
// default OpenAI endpoint; compatible gateways issue their own key formats.
func RequireAPIKey() (string, error) {
	key := os.Getenv(EnvAPIKey)
	if strings.TrimSpace(key) == "" {
		return "", ErrNoAPIKey
	}
	if BaseURLFromEnv() == DefaultBaseURL && !strings.HasPrefix(key, "sk-") {
		return "", fmt.Errorf("%s is not in the expected sk- format", EnvAPIKey)
	}
	return key, nil
}

// BaseURLFromEnv returns the configured endpoint, falling back to the
// default OpenAI endpoint.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultBaseURL
}

// ChangeRecipe describes one infrastructure change derived from a set of
// version-control changes.
type ChangeRecipe struct {
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	Details      string `json:"details"`
}

// Generate translates one natural-language infrastructure request into
// Terraform source. Markdown code fences around the reply are stripped.
func (c *Client) Generate(ctx context.Context, command string) (string, error) {
	prompt := fmt.Sprintf(
		"Using the following infrastructure request:\n%s\nGenerate Terraform code snippets to implement it.\nEnsure the code is valid Terraform syntax.",
		command,
	)

	reply, err := c.complete(ctx, synthesisSystemPrompt, prompt, synthesisMaxTokens)
	if err != nil {
		return "", err
	}
	return stripCodeFences(reply), nil
}

// AnalyzeChanges asks the service to summarize version-control changes into
// structured infrastructure change recipes.
func (c *Client) AnalyzeChanges(ctx context.Context, changes []string) ([]ChangeRecipe, error) {
	prompt := fmt.Sprintf(
		"You are an AI that helps analyze code changes for infrastructure updates.\n"+
			"Given a list of file changes, output a JSON array of objects, each with:\n"+
			" - action: 'add', 'modify', or 'delete'\n"+
			" - resource_type: e.g., 'database', 'server', 'storage', 'network'\n"+
			" - details: brief description of the change\n"+
			"Respond with a valid JSON array.\n"+
			"Here are the changes:\n%s\n",
		strings.Join(changes, "\n"),
	)

	reply, err := c.complete(ctx, analysisSystemPrompt, prompt, analysisMaxTokens)
	if err != nil {
		return nil, err
	}

	var recipes []ChangeRecipe
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &recipes); err != nil {
		return nil, &UpstreamError{
			StatusCode: http.StatusOK,
			Body:       reply,
			Err:        fmt.Errorf("response is not a JSON recipe array: %w", err),
		}
	}
	return recipes, nil
}

// GenerateFromRecipes synthesizes Terraform source covering a whole set of
// change recipes in a single request.
func (c *Client) GenerateFromRecipes(ctx context.Context, recipes []ChangeRecipe) (string, error) {
	encoded, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode recipes: %w", err)
	}

	prompt := fmt.Sprintf(
		"Using the following infrastructure change description:\n%s\nGenerate Terraform code snippets to implement these changes.\nEnsure the code is valid Terraform syntax.",
		encoded,
	)

	reply, err := c.complete(ctx, synthesisSystemPrompt, prompt, synthesisMaxTokens)
	if err != nil {
		return "", err
	}
	return stripCodeFences(reply), nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// complete performs a single chat completion request.
func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if parsed.Error != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: parsed.Error.Message}
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// stripCodeFences removes a markdown fence wrapper from a reply. Models
// routinely wrap Terraform source in ```hcl blocks even when asked for
// plain output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]

	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if trimmed == "```" {
			lines = lines[:i]
		}
		break
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

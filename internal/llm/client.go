package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Request is one generation call
type Request struct {
	Prompt string
	Tier   ModelTier
	// JSON asks the provider for a JSON response body
	JSON bool
}

// Response is the raw text a model returned
type Response struct {
	Text  string
	Model string
	// Truncated is set when generation stopped at the output token limit
	Truncated bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate returns the model's raw text; callers are expected to tolerate malformed output
	Generate(ctx context.Context, req Request) (Response, error)
	// Close releases any resources held by the client
	Close() error
}

// APIError wraps a provider failure
type APIError struct {
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LLM call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LLM call failed: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate sends one prompt to the model for the request's tier
func (c *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return Response{}, fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	if c.config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return Response{}, &APIError{Message: modelName, Cause: err}
	}

	text, truncated, err := extractText(resp)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: text, Model: modelName, Truncated: truncated}, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractText joins the text parts of the first candidate.
// A response cut off at the token limit is returned as is.
func extractText(resp *genai.GenerateContentResponse) (string, bool, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false, fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", false, fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", false, fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), candidate.FinishReason == genai.FinishReasonMaxTokens, nil
}

// IsPermanent reports whether err will fail the same way on retry
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "api key not valid") || strings.Contains(msg, "permission denied")
}

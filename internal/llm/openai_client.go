// ABOUTME: OpenAI client for context-grounded generation and learning extraction
// ABOUTME: Sends the composed context document as the system message, with retries
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/brand-memory/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultTimeout bounds a single completion attempt
	DefaultTimeout = 30 * time.Second
)

// ErrMissingAPIKey is returned when no API key is configured
var ErrMissingAPIKey = errors.New("OpenAI API key is required")

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  DefaultChatModel,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
		Timeout:    DefaultTimeout,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	oaiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oaiConfig.BaseURL = config.BaseURL
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(oaiConfig),
		chatModel:  chatModel,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		timeout:    timeout,
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *OpenAIClient) GetClient() *openai.Client {
	return c.client
}

// Model returns the configured chat model
func (c *OpenAIClient) Model() string {
	return c.chatModel
}

// completeOnce runs a single system+user chat completion attempt
func (c *OpenAIClient) completeOnce(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Generate produces content for the prompt, grounded on the composed context document
func (c *OpenAIClient) Generate(ctx context.Context, document, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}
	var content string
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(int) error {
		var err error
		content, err = c.completeOnce(ctx, document, prompt, 0.7)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return strings.TrimSpace(content), nil
}

// LearningCandidate is one insight proposed by the model
type LearningCandidate struct {
	Category       string  `json:"category"`
	Insight        string  `json:"insight"`
	Recommendation string  `json:"recommendation"`
	Confidence     float64 `json:"confidence"`
	DataPoints     int     `json:"data_points"`
}

const extractLearningsPrompt = `You are a marketing analyst. Given a report on how a business's published content performed, extract plain-language learnings the business can act on.

For each learning, provide:
- category: one of "timing", "content", "platform", "audience", "campaign"
- insight: one sentence describing what happened
- recommendation: one sentence describing what to do next (may be empty)
- confidence: 0.0 to 1.0 (how strongly the report supports the insight)
- data_points: number of posts or campaigns the insight is based on (0 if unknown)

Return ONLY a JSON array of learning objects.
Example: [{"category": "timing", "insight": "Morning posts got twice the engagement", "recommendation": "Schedule posts before 9am", "confidence": 0.7, "data_points": 12}]

If the report supports no learnings, return an empty array: []`

// ExtractLearnings asks the model for learnings supported by an outcome report
func (c *OpenAIClient) ExtractLearnings(ctx context.Context, report string) ([]LearningCandidate, error) {
	var candidates []LearningCandidate

	userPrompt := fmt.Sprintf("Extract learnings from this performance report:\n\n%s", report)

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(int) error {
		content, err := c.completeOnce(ctx, extractLearningsPrompt, userPrompt, 0.2)
		if err != nil {
			return err
		}
		parsed, err := ParseLearningCandidates(content)
		if err != nil {
			return err
		}
		candidates = parsed
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract learnings: %w", err)
	}
	return candidates, nil
}

// ParseLearningCandidates decodes a model reply, tolerating a fenced code block
func ParseLearningCandidates(content string) ([]LearningCandidate, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	candidates := []LearningCandidate{}
	if err := json.Unmarshal([]byte(content), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return candidates, nil
}

package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	temperature    = 0.7
	maxTokens      = 1000
)

// ChatRequest is the chat completions payload. No streaming, no retries:
// one request, one story.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeneratedStory is the parsed model reply.
type GeneratedStory struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *resty.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		http:    resty.New().SetTimeout(60 * time.Second),
	}
}

// GenerateStory builds the Portuguese prompt for the child and story
// parameters, calls the chat completions endpoint and splits the reply
// into title and content.
func (c *Client) GenerateStory(ctx context.Context, params StoryParams) (*GeneratedStory, error) {
	if c.apiKey == "" {
		return nil, errors.New("openai api key not configured")
	}

	req := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(params)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	}

	var out ChatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if resp.IsError() {
		if out.Error != nil && out.Error.Message != "" {
			return nil, fmt.Errorf("openai: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("openai returned status %d", resp.StatusCode())
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, errors.New("openai returned an empty completion")
	}

	story := ParseStory(params.ChildName, out.Choices[0].Message.Content)
	return &story, nil
}

package local

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"texture-matcher/config"
	"texture-matcher/internal/core/texture"
	"texture-matcher/pkg/logger"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	DefaultBaseURL   = "http://localhost:11434/v1"
	DefaultModel     = "llama3.1:8b"
	DefaultMaxTokens = 256
	// Ollama ignores the key but the SDK always sends one.
	defaultAPIKey = "ollama"
)

var ErrEmptyResponse = errors.New("local: no choices returned")

type Config struct {
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Client matches through an OpenAI-compatible chat endpoint served locally.
type Client struct {
	sdk       openai.Client
	model     string
	maxTokens int
}

func New(cfg Config) (*Client, error) {
	cfg = withDefaults(cfg)
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("local: invalid base url %q", cfg.BaseURL)
	}

	// Retries are disabled; each match is attempted once.
	sdk := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)
	return &Client{sdk: sdk, model: cfg.Model, maxTokens: cfg.MaxTokens}, nil
}

func withDefaults(cfg Config) Config {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		cfg.APIKey = defaultAPIKey
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return cfg
}

// Model returns the model tag requests go to.
func (c *Client) Model() string {
	return c.model
}

// Match sends the prompt as a system message and the payload as a user
// message. Undecodable replies come back as a fallback result, not an error.
func (c *Client) Match(ctx context.Context, query string, candidates []texture.Candidate) (texture.Result, error) {
	payload, err := texture.NewRequest(query, candidates).Marshal()
	if err != nil {
		return texture.Result{}, fmt.Errorf("local: marshal request: %w", err)
	}

	req := chatRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   c.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: texture.SystemPrompt},
			{Role: "user", Content: string(payload)},
		},
	}

	start := time.Now()
	var out chatResponse
	if err := c.sdk.Post(ctx, "chat/completions", req, &out); err != nil {
		return texture.Result{}, fmt.Errorf("local: chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return texture.Result{}, ErrEmptyResponse
	}

	choice := out.Choices[0]
	result := texture.DecodeLenient(choice.Message.Content)

	log := logger.ForModule(config.ModuleLocal).WithFields(map[string]interface{}{
		"model":         c.model,
		"elapsed_ms":    time.Since(start).Milliseconds(),
		"finish_reason": choice.FinishReason,
	})
	if result.Status == texture.StatusError {
		log.WithField("raw", choice.Message.Content).Warn("local: reply is not valid result json")
	} else {
		log.Debug("local: response received")
	}
	return result, nil
}

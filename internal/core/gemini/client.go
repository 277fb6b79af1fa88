package gemini

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"texture-matcher/config"
	"texture-matcher/internal/core/texture"
	"texture-matcher/pkg/logger"

	"google.golang.org/genai"
)

// Models are the hosted models the matcher has been tried with. The first is the default.
var Models = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-2.0-pro-exp-02-05",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
}

var (
	ErrMissingAPIKey = errors.New("gemini: api key is empty")
	ErrUnknownModel  = errors.New("gemini: unknown model")
	ErrEmptyResponse = errors.New("gemini: empty response")
)

type Config struct {
	APIKey string
	Model  string
}

// contentGenerator is the part of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client matches through the Gemini API with a declared response schema.
type Client struct {
	models contentGenerator
	model  string
	config *genai.GenerateContentConfig
}

// New validates cfg and creates the SDK client. No request is sent.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	model, err := resolveModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newWithGenerator(sdk.Models, model), nil
}

func newWithGenerator(g contentGenerator, model string) *Client {
	return &Client{
		models: g,
		model:  model,
		config: generateConfig(),
	}
}

func resolveModel(model string) (string, error) {
	if model == "" {
		return Models[0], nil
	}
	if !slices.Contains(Models, model) {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownModel, model, strings.Join(Models, ", "))
	}
	return model, nil
}

func generateConfig() *genai.GenerateContentConfig {
	temperature := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(texture.SystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ResponseSchema(),
		Temperature:       &temperature,
	}
}

// ResponseSchema declares the answer shape the API must produce.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: texture.RequiredKeys,
		Properties: map[string]*genai.Schema{
			texture.KeyStatus:    {Type: genai.TypeString, Enum: texture.SchemaStatuses},
			texture.KeyChewiness: {Type: genai.TypeInteger},
			texture.KeyFirmness:  {Type: genai.TypeInteger},
			texture.KeyBestName:  {Type: genai.TypeString},
			texture.KeyTopNames:  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
	}
}

// Model returns the model name requests go to.
func (c *Client) Model() string {
	return c.model
}

// Match sends one GenerateContent call and decodes the schema-bound reply.
func (c *Client) Match(ctx context.Context, query string, candidates []texture.Candidate) (texture.Result, error) {
	payload, err := texture.NewRequest(query, candidates).Marshal()
	if err != nil {
		return texture.Result{}, fmt.Errorf("gemini: marshal request: %w", err)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(string(payload), genai.RoleUser)},
		c.config,
	)
	if err != nil {
		return texture.Result{}, fmt.Errorf("gemini: generate content: %w", err)
	}

	text := ""
	if resp != nil {
		text = resp.Text()
	}
	logger.ForModule(config.ModuleGemini).WithFields(map[string]interface{}{
		"model":      c.model,
		"elapsed_ms": time.Since(start).Milliseconds(),
		"bytes":      len(text),
	}).Debug("gemini: response received")

	if strings.TrimSpace(text) == "" {
		return texture.Result{}, ErrEmptyResponse
	}
	result, err := texture.Decode(text)
	if err != nil {
		return texture.Result{}, fmt.Errorf("gemini: decode response %q: %w", text, err)
	}
	return result, nil
}

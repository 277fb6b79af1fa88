package backend

import (
	"context"
	"errors"
	"fmt"

	"texture-matcher/config"
	"texture-matcher/internal/core/gemini"
	"texture-matcher/internal/core/local"
	"texture-matcher/internal/core/texture"
)

var ErrUnknownBackend = errors.New("unknown matcher backend")

// Info describes the selected backend for health output.
type Info struct {
	Backend string `json:"backend"`
	Model   string `json:"model"`
}

// New builds the matcher named by cfg.Matcher.Backend.
func New(ctx context.Context, cfg config.Config) (texture.Matcher, Info, error) {
	switch cfg.Matcher.Backend {
	case config.BackendGemini:
		c, err := gemini.New(ctx, gemini.Config{APIKey: cfg.Gemini.Key, Model: cfg.Gemini.Model})
		if err != nil {
			return nil, Info{}, err
		}
		return c, Info{Backend: config.BackendGemini, Model: c.Model()}, nil
	case config.BackendLocal:
		c, err := local.New(local.Config{
			BaseURL:   cfg.Local.BaseURL,
			Model:     cfg.Local.Model,
			APIKey:    cfg.Local.APIKey,
			MaxTokens: cfg.Local.MaxTokens,
		})
		if err != nil {
			return nil, Info{}, err
		}
		return c, Info{Backend: config.BackendLocal, Model: c.Model()}, nil
	default:
		return nil, Info{}, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Matcher.Backend)
	}
}

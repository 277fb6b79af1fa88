package match

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"texture-matcher/config"
	"texture-matcher/internal/core/texture"
	"texture-matcher/pkg/apperror"
	"texture-matcher/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// Request is the POST /match body. Candidates default to the catalog's.
type Request struct {
	Query      string              `json:"query"`
	Candidates []texture.Candidate `json:"candidates,omitempty"`
}

// Response is the match payload inside the success envelope.
type Response struct {
	texture.Result
	Violations []texture.Violation `json:"violations,omitempty"`
}

type Handler struct {
	matcher    texture.Matcher
	candidates []texture.Candidate
	timeout    time.Duration
}

func NewHandler(m texture.Matcher, candidates []texture.Candidate, timeout time.Duration) *Handler {
	return &Handler{matcher: m, candidates: candidates, timeout: timeout}
}

func (h *Handler) HandleMatch(c fiber.Ctx) error {
	var req Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleMatcher, c, status.MatchInvalidRequestBody, err.Error())
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return apperror.BadRequest(config.ModuleMatcher, c, status.MatchMissingQuery, "query is empty")
	}
	candidates := req.Candidates
	if candidates == nil {
		candidates = h.candidates
	}
	for _, cand := range candidates {
		if strings.TrimSpace(cand.Name) == "" {
			return apperror.BadRequest(config.ModuleMatcher, c, status.MatchInvalidCandidates, "candidate name is empty")
		}
	}

	ctx := c.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.matcher.Match(ctx, query, candidates)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperror.GatewayTimeout(config.ModuleMatcher, c, status.MatchBackendTimeout, err)
		}
		return apperror.BadGateway(config.ModuleMatcher, c, status.MatchBackendFailed, err)
	}

	return apperror.Success(config.ModuleMatcher, c, apperror.FiberSuccessMessage{
		Code:    status.OK,
		Message: "match ok",
		Data:    Response{Result: res, Violations: texture.Check(res, candidates)},
	})
}

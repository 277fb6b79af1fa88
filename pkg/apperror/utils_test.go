package apperror

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"texture-matcher/config"
	"texture-matcher/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "TM-1", Code(status.MatchMissingQuery))
	assert.Equal(t, "TM-1001", Code(status.MatchBackendFailed))
	assert.Equal(t, "TM-9000", Code(status.ErrorCodeInternal))
}

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c fiber.Ctx) error {
		return BadRequest(config.ModuleMatcher, c, status.MatchMissingQuery, "query is empty")
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return InternalError(config.ModuleMatcher, c, errors.New("boom"))
	})
	app.Get("/ok", func(c fiber.Ctx) error {
		return Success(config.ModuleMatcher, c, FiberSuccessMessage{Message: "fine", Data: 7})
	})

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/bad", fiber.StatusBadRequest, "TM-1"},
		{"/internal", fiber.StatusInternalServerError, "TM-9000"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
		require.NoError(t, err)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		assert.Equal(t, tc.code, body.ErrorCode, tc.path)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/ok", nil)
	req.Header.Set(fiber.HeaderXRequestID, "trace-9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var ok FiberSuccessMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.Equal(t, status.OK, ok.Code)
	assert.Equal(t, "trace-9", ok.TrackingID)
	assert.EqualValues(t, 7, ok.Data)
}

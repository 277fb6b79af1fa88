package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texture-matcher/config"
	"texture-matcher/internal/core/backend"
	"texture-matcher/internal/core/texture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMatcher struct {
	queries []string
}

func (s *stubMatcher) Match(_ context.Context, query string, _ []texture.Candidate) (texture.Result, error) {
	s.queries = append(s.queries, query)
	if query == "壊れた" {
		return texture.Result{}, errors.New("upstream 500")
	}
	return texture.Result{Status: texture.StatusOK, Chewiness: 4, Firmness: 4, BestName: "せんべい"}, nil
}

func useStub(t *testing.T) (*stubMatcher, *config.Config) {
	t.Helper()
	stub := &stubMatcher{}
	var seen config.Config
	prev := matcherFactory
	matcherFactory = func(_ context.Context, cfg config.Config) (texture.Matcher, backend.Info, error) {
		seen = cfg
		return stub, backend.Info{Backend: cfg.Matcher.Backend, Model: "stub"}, nil
	}
	t.Cleanup(func() { matcherFactory = prev })
	return stub, &seen
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(args ...string) (string, error) {
	return executeContext(context.Background(), args...)
}

func executeContext(ctx context.Context, args ...string) (string, error) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRun_ArgsOverrideCatalogQueries(t *testing.T) {
	stub, seen := useStub(t)
	cat := writeFile(t, "catalog.yaml", "candidates:\n  - name: せんべい\nqueries:\n  - 使われない\n")

	out, err := execute("run", "--backend", "local", "--catalog", cat, "--config", "", "おかき", "あられ")
	require.NoError(t, err)

	assert.Equal(t, []string{"おかき", "あられ"}, stub.queries)
	assert.Equal(t, config.BackendLocal, seen.Matcher.Backend)
	assert.Equal(t, cat, seen.Matcher.Catalog)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "おかき -> "))
}

func TestRun_CatalogQueries(t *testing.T) {
	stub, _ := useStub(t)
	cat := writeFile(t, "catalog.yaml", "queries:\n  - 茶碗蒸し\n  - 羊羹\n")

	_, err := execute("run", "--backend", "local", "--catalog", cat, "--config", "", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"茶碗蒸し", "羊羹"}, stub.queries)
}

func TestRun_FailedQueriesExitNonZero(t *testing.T) {
	stub, _ := useStub(t)

	out, err := execute("run", "--backend", "local", "--config", "", "壊れた", "おかき")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "壊れた -> error: upstream 500")
	assert.Len(t, stub.queries, 2)

	stub, _ = useStub(t)
	_, err = execute("run", "--backend", "local", "--config", "", "--stop-on-error", "壊れた", "おかき")
	require.Error(t, err)
	assert.Equal(t, []string{"壊れた"}, stub.queries)
}

func TestRun_UnknownFormatRejectedBeforeMatching(t *testing.T) {
	stub, _ := useStub(t)

	out, err := execute("run", "--backend", "local", "--config", "", "--format", "xml", "おかき", "あられ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
	assert.Empty(t, stub.queries, "matcher must not be called")
	assert.Empty(t, out)
}

func TestRun_CancelledContextStopsBatch(t *testing.T) {
	stub, _ := useStub(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := executeContext(ctx, "run", "--backend", "local", "--config", "", "おかき", "あられ")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stub.queries)
}

func TestRun_UnknownBackendRejected(t *testing.T) {
	useStub(t)
	_, err := execute("run", "--backend", "cloud", "--config", "", "x")
	require.Error(t, err)
}

func TestModels(t *testing.T) {
	out, err := execute("models", "--config", "")
	require.NoError(t, err)
	assert.Contains(t, out, "gemini-2.0-flash")
	assert.Contains(t, out, "gemini-1.5-pro")
}

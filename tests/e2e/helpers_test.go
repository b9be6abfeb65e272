//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/mental-clarity/internal/adapter/postgres/entry"
	"github.com/heartmarshall/mental-clarity/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mental-clarity/internal/adapter/provider/openai"
	"github.com/heartmarshall/mental-clarity/internal/auth"
	"github.com/heartmarshall/mental-clarity/internal/config"
	"github.com/heartmarshall/mental-clarity/internal/domain"
	"github.com/heartmarshall/mental-clarity/internal/observability"
	"github.com/heartmarshall/mental-clarity/internal/service/capture"
	"github.com/heartmarshall/mental-clarity/internal/transport/rest"
)

// testLogWriter routes server logs through t.Log.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// upstream is a fake chat completions endpoint.
type upstream struct {
	srv   *httptest.Server
	calls atomic.Int32
	fail  atomic.Bool
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		if u.fail.Load() {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"message":"quota exceeded"}}`)
			return
		}
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		last := ""
		if n := len(req.Messages); n > 0 {
			last = req.Messages[n-1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": "analysis of: " + last}}},
		})
	}))
	t.Cleanup(u.srv.Close)
	return u
}

type testServer struct {
	URL      string
	Client   *http.Client
	Token    string
	Upstream *upstream
	Service  *capture.Service
	Metrics  *observability.Collector
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// 1. Store on an isolated table.
	pool := testhelper.SetupTestDB(t)
	table := testhelper.NewEntriesTable(t, pool)

	// 2. Infrastructure.
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	metrics := observability.NewCollector("clarity")

	// 3. Gateways.
	up := newUpstream(t)
	repo := observability.InstrumentStore(entry.New(pool, table), "postgres", metrics)
	analyzer := observability.InstrumentAnalyzer(openai.NewProvider(config.AnalysisConfig{
		Provider:  domain.AnalysisProviderOpenAI,
		BaseURL:   up.srv.URL,
		APIKey:    "sk-test",
		MaxTokens: 800,
		Timeout:   10 * time.Second,
	}, logger), "openai", metrics)

	// 4. Orchestrator.
	svc := capture.NewService(logger, analyzer, repo, capture.WithOutcomeObserver(func(o capture.Outcome) {
		metrics.RecordSubmission(o.Err)
	}))
	t.Cleanup(svc.Wait)

	// 5. Tokens.
	jwtMgr := auth.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	token, err := jwtMgr.GenerateClientToken("e2e")
	require.NoError(t, err)

	// 6. Router.
	handler := rest.NewRouter(rest.RouterDeps{
		Health:   rest.NewHealthHandler(repo, "postgres", "e2e"),
		Analysis: rest.NewAnalysisHandler(analyzer, logger),
		Entries:  rest.NewEntryHandler(repo, svc, logger),
		Tokens:   jwtMgr,
		Metrics:  metrics,
		CORS:     config.CORSConfig{AllowedOrigins: "*"},
		Logger:   logger,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Token:    token,
		Upstream: up,
		Service:  svc,
		Metrics:  metrics,
	}
}

// do sends a JSON request, authenticated when token is non-empty, and
// decodes the JSON response into out when out is non-nil.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string, out any) int {
	t.Helper()

	var r io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

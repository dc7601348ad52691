package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/numbering/pkg/profile"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, profile.NewRegistry(), logger)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RatePerSecond = 0
	return cfg
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(requestIDHeader), 36)
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestCompare(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		left, right string
		relation    string
		rank        float64
		canFollow   bool
	}{
		{"5", "5.1", "less", 0.5, true},
		{"5.1", "5.2", "less", 1, false},
		{"5.2", "5.1", "greater", 0.5, false},
		{"а)", "б)", "less", 1, false},
		{"5", "IV", "uncomparable", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.left+" "+tt.right, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/compare", map[string]string{"left": tt.left, "right": tt.right})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp struct {
				Outcome struct {
					Relation  string  `json:"relation"`
					Rank      float64 `json:"rank"`
					CanFollow bool    `json:"can_follow"`
				} `json:"outcome"`
			}
			decode(t, w, &resp)
			assert.Equal(t, tt.relation, resp.Outcome.Relation)
			assert.InDelta(t, tt.rank, resp.Outcome.Rank, 1e-9)
			assert.Equal(t, tt.canFollow, resp.Outcome.CanFollow)
		})
	}
}

func TestCompareRejectsInput(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"not a number", map[string]string{"left": "abc", "right": "1"}, http.StatusUnprocessableEntity},
		{"trailing text", map[string]string{"left": "1", "right": "2 слова"}, http.StatusUnprocessableEntity},
		{"missing right", map[string]string{"left": "1"}, http.StatusBadRequest},
		{"unknown profile", map[string]string{"left": "1", "right": "2", "profile": "nope"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/compare", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp errorResponse
			decode(t, w, &resp)
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestParse(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := do(t, s, http.MethodPost, "/v1/parse", map[string]any{
		"text":         "1. Общие положения\nТекст\nа) первый\nб) второй\n",
		"disambiguate": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Numbers []struct {
			Line       int    `json:"line"`
			Raw        string `json:"raw"`
			Normalized string `json:"normalized"`
			Suffix     string `json:"suffix"`
			Levels     []struct {
				Candidates []struct {
					Kind string `json:"kind"`
				} `json:"candidates"`
			} `json:"levels"`
		} `json:"numbers"`
		Pruned int `json:"pruned"`
	}
	decode(t, w, &resp)

	require.Len(t, resp.Numbers, 3)
	assert.Equal(t, 1, resp.Numbers[0].Line)
	assert.Equal(t, "1.", resp.Numbers[0].Raw)
	assert.Equal(t, ".", resp.Numbers[0].Suffix)
	assert.Equal(t, 3, resp.Numbers[1].Line)
	assert.Equal(t, "а", resp.Numbers[1].Normalized)
	assert.Len(t, resp.Numbers[1].Levels[0].Candidates, 1)
	assert.Equal(t, "letter", resp.Numbers[1].Levels[0].Candidates[0].Kind)
	assert.Equal(t, 1, resp.Pruned)
}

func TestOutline(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := do(t, s, http.MethodPost, "/v1/outline", map[string]string{"text": "1. Один\n2. Два\n4. Четыре\n"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items []struct {
			Kind string `json:"kind"`
		} `json:"items"`
		Issues int `json:"issues"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "gap", resp.Items[2].Kind)
	assert.Equal(t, 1, resp.Issues)
}

func TestProfiles(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := do(t, s, http.MethodGet, "/v1/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profiles []profileSummary `json:"profiles"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Profiles, 1)
	assert.Equal(t, profile.DefaultName, resp.Profiles[0].Name)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RatePerSecond = 0.001
	cfg.Burst = 1
	s := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, s, http.MethodGet, "/healthz", nil).Code)
}

func TestBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	s := newTestServer(t, cfg)

	w := do(t, s, http.MethodPost, "/v1/outline", map[string]string{"text": strings.Repeat("1. ", 100)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRecovery(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := do(t, s, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errorResponse
	decode(t, w, &resp)
	assert.Equal(t, "internal server error", resp.Error)
}

func TestRunShutsDown(t *testing.T) {
	cfg := testConfig()
	cfg.Addr = "127.0.0.1:0"
	s := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

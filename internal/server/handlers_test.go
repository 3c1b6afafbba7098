package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/miso"
	"github.com/moobydog0324-a11y/GSENR-NEW/internal/server/ratelimit"
)

func briefingJSON(now time.Time) string {
	today := now.Format("2006-01-02")
	return fmt.Sprintf(
		`{"data":{"status":"succeeded","outputs":{"result":"{\"news_briefing\":[{\"title\":\"T1\",\"category\":\"[발전]\",\"score\":95,\"press\":\"X\",\"date\":\"%s\",\"url\":\"u1\"}]}"}}}`,
		today,
	)
}

func newTestServer(t *testing.T, upstream http.HandlerFunc) *Server {
	t.Helper()

	misoSrv := httptest.NewServer(upstream)
	t.Cleanup(misoSrv.Close)

	srv, err := New(Config{
		Port: 0,
		Transport: miso.Config{
			Endpoint:    misoSrv.URL,
			APIKey:      "app-test-key",
			Timeout:     5 * time.Second,
			MaxRetries:  1,
			BackoffBase: time.Millisecond,
		},
		RateLimit: &ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	return srv
}

func TestHandleCollectSuccess(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, briefingJSON(time.Now()))
	})

	req := httptest.NewRequest("POST", "/api/collect-news", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp collectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "T1", resp.Data[0].Title)
	assert.Equal(t, "발전", resp.Data[0].Category)
	assert.Contains(t, resp.Message, "1건")
}

func TestHandleCollectEmptyBodyUsesDefaults(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, briefingJSON(time.Now()))
	})

	req := httptest.NewRequest("POST", "/api/collect-news", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCollectNoNewsIsSuccess(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"status":"succeeded","outputs":{"result":"{\"note\":\"nothing\"}"}}}`)
	})

	req := httptest.NewRequest("POST", "/api/collect-news", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp collectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
	assert.Equal(t, "수집된 뉴스가 없습니다.", resp.Message)
}

func TestHandleCollectInvalidMode(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream should not be called for an invalid request")
	})

	req := httptest.NewRequest("POST", "/api/collect-news", strings.NewReader(`{"mode":"batch"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp collectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleCollectUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest("POST", "/api/collect-news", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp collectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestHandleCollectWorkflowFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"status":"failed","error":"upstream quota exhausted"}}`)
	})

	req := httptest.NewRequest("POST", "/api/collect-news", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream quota exhausted")
}

func TestHandleCollectStream(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, briefingJSON(time.Now()))
	})

	req := httptest.NewRequest("POST", "/api/collect-news/stream", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: progress")
	assert.Contains(t, body, "event: complete")
	assert.Contains(t, body, "T1")
}

func TestHandleCollectStreamUpstreamError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	req := httptest.NewRequest("POST", "/api/collect-news/stream", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "event: error")
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRateLimitExceeded(t *testing.T) {
	misoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, briefingJSON(time.Now()))
	}))
	t.Cleanup(misoSrv.Close)

	srv, err := New(Config{
		Transport: miso.Config{Endpoint: misoSrv.URL, APIKey: "app-test-key"},
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			Whitelist:     map[string]bool{},
			Blacklist:     map[string]bool{},
			Endpoints: []ratelimit.EndpointConfig{
				{Path: "/api/collect-news", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/collect-news", strings.NewReader("{}"))
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("POST", "/api/collect-news", strings.NewReader("{}"))
	req.RemoteAddr = "10.0.0.1:1234"
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")
}

func TestNewRejectsMissingTransportConfig(t *testing.T) {
	_, err := New(Config{Transport: miso.Config{Endpoint: "", APIKey: "k"}})
	var cfgErr *miso.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

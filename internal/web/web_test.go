package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusq/nextmcp/internal/analytics"
	"github.com/rusq/nextmcp/internal/mcp"
)

// newTestWeb returns the server's router wrapped in an httptest server, plus
// the tracker it records into.  mcpHandler may be nil, in which case a stub
// that echoes the client IP from the request context is mounted.
func newTestWeb(t *testing.T, mcpHandler http.Handler) (*httptest.Server, *analytics.Tracker) {
	t.Helper()
	if mcpHandler == nil {
		mcpHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}
	tracker := analytics.New(nil)
	srv := New(tracker, mcpHandler, nil)
	ts := httptest.NewServer(srv.srv.Handler)
	t.Cleanup(ts.Close)
	return ts, tracker
}

func getBody(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	ts, _ := newTestWeb(t, nil)

	code, body := getBody(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "ok", got["status"])
	assert.NotEmpty(t, got["uptime"])
}

func TestAnalytics_jsonShape(t *testing.T) {
	ts, tracker := newTestWeb(t, nil)
	tracker.RecordToolCall("list_notes", "1.2.3.4")

	code, body := getBody(t, ts.URL+"/analytics")
	assert.Equal(t, http.StatusOK, code)

	var got analytics.Summary
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 1, got.TotalToolCalls)
	// the request itself was tracked on its way in.
	assert.GreaterOrEqual(t, got.TotalRequests, 1)
	require.NotEmpty(t, got.Tools)
	assert.Equal(t, "list_notes", got.Tools[0].Name)
	assert.Len(t, got.Hours, 24)
}

func TestDashboard_renders(t *testing.T) {
	ts, tracker := newTestWeb(t, nil)
	tracker.RecordToolCall("create_note", "1.2.3.4")
	tracker.RecordRequest("GET", "/health", "1.2.3.4", "curl/8")

	code, body := getBody(t, ts.URL+"/analytics/dashboard")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "create_note")
	assert.Contains(t, string(body), "<html")
}

func TestTrack_recordsRequests(t *testing.T) {
	ts, tracker := newTestWeb(t, nil)

	for range 3 {
		code, _ := getBody(t, ts.URL+"/health")
		require.Equal(t, http.StatusOK, code)
	}

	s := tracker.Summarize()
	assert.GreaterOrEqual(t, s.TotalRequests, 3)
	var healthCount int
	for _, e := range s.Endpoints {
		if e.Name == "/health" {
			healthCount = e.Count
		}
	}
	assert.Equal(t, 3, healthCount)
}

func TestTrack_propagatesClientIP(t *testing.T) {
	var gotIP string
	stub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIP = mcp.ClientIP(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	ts, _ := newTestWeb(t, stub)

	code, _ := getBody(t, ts.URL+"/mcp")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, gotIP)
	assert.NotEqual(t, "local", gotIP, "HTTP requests must carry a real client address")
}

func TestMCPMounted(t *testing.T) {
	stub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	ts, tracker := newTestWeb(t, stub)

	code, _ := getBody(t, ts.URL+"/mcp")
	assert.Equal(t, http.StatusTeapot, code, "/mcp must be served by the mounted handler")

	s := tracker.Summarize()
	var mcpCount int
	for _, e := range s.Endpoints {
		if e.Name == "/mcp" {
			mcpCount = e.Count
		}
	}
	assert.Equal(t, 1, mcpCount, "MCP requests are tracked too")
}

func TestClientAddr(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:54321", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.1", "192.0.2.1"}, // no port: returned as is
	}
	for _, tt := range tests {
		t.Run(tt.remoteAddr, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			assert.Equal(t, tt.want, clientAddr(r))
		})
	}
}

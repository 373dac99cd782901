package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anyonedrive/internal/config"
	"anyonedrive/internal/logging"
	"anyonedrive/internal/testutil"
	"anyonedrive/pkg/blockio"
)

func newTestServer(t *testing.T) (*Server, *testutil.FakeOneDrive, *bytes.Buffer) {
	t.Helper()

	fake := testutil.NewFakeOneDrive(t, "s!servershare", testutil.SampleShare())
	cfg := &config.Config{
		APIURL:      fake.BaseURL(),
		ShareHost:   "1drv.ms",
		Port:        "0",
		BlockSize:   blockio.DefaultBlockSize,
		HTTPTimeout: 5 * time.Second,
	}

	var logs bytes.Buffer
	logger, err := logging.New(&logs, slog.LevelDebug, "json")
	require.NoError(t, err)

	return New(cfg, logger, "test"), fake, &logs
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := get(s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestServer_RequestLogging(t *testing.T) {
	s, _, logs := newTestServer(t)

	rec := get(s, "/health")
	requestID := rec.Header().Get(echo.HeaderXRequestID)

	assert.Contains(t, logs.String(), `"msg":"request"`)
	assert.Contains(t, logs.String(), `"path":"/health"`)
	assert.Contains(t, logs.String(), requestID)
}

func TestServer_BrowseAndMetrics(t *testing.T) {
	s, fake, _ := newTestServer(t)
	share := url.QueryEscape(fake.ShareURL())

	rec := get(s, "/storage/items?share_url="+share+"&path=Single%20folder&kind=files")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 5, strings.Count(rec.Body.String(), `"kind":"file"`))

	rec = get(s, "/content?share_url="+share+"&path=Single%20folder/photo-1.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 71495, rec.Body.Len())

	rec = get(s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	metrics := rec.Body.String()
	assert.Contains(t, metrics, `anyonedrive_api_requests_total{operation="list",status="success"}`)
	assert.Contains(t, metrics, `anyonedrive_api_requests_total{operation="download",status="success"} 1`)
	assert.Contains(t, metrics, "anyonedrive_bytes_streamed_total 71495")
}

func TestServer_Recover(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.echo.GET("/panic", func(c echo.Context) error { panic("boom") })

	rec := get(s, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_RunShutsDownOnCancel(t *testing.T) {
	s, _, _ := newTestServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s.addr = listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + s.addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunReportsListenErrors(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.addr = "256.0.0.1:bad"

	err := s.Run(context.Background())
	assert.Error(t, err)
}

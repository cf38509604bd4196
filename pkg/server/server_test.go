package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filestruct/filestruct/internal/models"
	"github.com/filestruct/filestruct/pkg/config"
	"github.com/filestruct/filestruct/pkg/server"
)

func setupTestServer(t *testing.T) *server.Server {
	cfg := &config.Config{
		Store: config.StoreConfig{
			Dir:      t.TempDir(),
			Filename: "file_structure.json",
		},
		Server: config.ServerConfig{
			Port:          8080,
			SessionAPIKey: "test-key",
		},
		Telemetry: config.TelemetryConfig{
			Enabled: false,
		},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv, err := server.New(cfg, logger)
	require.NoError(t, err, "Failed to create server")
	return srv
}

func authedRequest(t *testing.T, method, url string, payload interface{}) *http.Request {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("X-Session-API-Key", "test-key")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func do(srv *server.Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rr, req)
	return rr
}

func TestHandleAlive(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(srv, authedRequest(t, http.MethodGet, "/alive", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestAuthRequired(t *testing.T) {
	srv := setupTestServer(t)

	req, err := http.NewRequest(http.MethodGet, "/alive", nil)
	require.NoError(t, err)
	rr := do(srv, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestHandleServerInfo(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(srv, authedRequest(t, http.MethodGet, "/server_info", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.ServerInfoResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.Uptime, 0.0)
	assert.GreaterOrEqual(t, resp.IdleTime, 0.0)
	assert.GreaterOrEqual(t, resp.Resources.CPUCount, 1)
}

func TestStructureMutation(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("add top-level directory", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodPost, "/structure/directories",
			models.EntryRequest{Name: "docs"}))
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("duplicate directory conflicts", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodPost, "/structure/directories",
			models.EntryRequest{Name: "docs"}))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("add file with content", func(t *testing.T) {
		content := "hello"
		rr := do(srv, authedRequest(t, http.MethodPost, "/structure/files",
			models.EntryRequest{Path: "docs", Name: "readme", Content: &content}))
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("add file at missing path", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodPost, "/structure/files",
			models.EntryRequest{Path: "ghost", Name: "x"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid name is a client error", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodPost, "/structure/directories",
			models.EntryRequest{Name: "bad/name"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("structure reflects mutations", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodGet, "/structure", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"readme"`)
	})

	t.Run("list top-level directories", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodGet, "/structure/list", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string][]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []string{"docs"}, resp["directories"])
	})

	t.Run("remove file", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodDelete, "/structure/files",
			models.EntryRequest{Path: "docs", Name: "readme"}))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("remove missing file", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodDelete, "/structure/files",
			models.EntryRequest{Path: "docs", Name: "readme"}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("remove directory", func(t *testing.T) {
		rr := do(srv, authedRequest(t, http.MethodDelete, "/structure/directories",
			models.EntryRequest{Name: "docs"}))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestPersistenceEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	rr := do(srv, authedRequest(t, http.MethodPost, "/structure/directories",
		models.EntryRequest{Name: "docs"}))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = do(srv, authedRequest(t, http.MethodPost, "/save", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(srv, authedRequest(t, http.MethodPost, "/load", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(srv, authedRequest(t, http.MethodGet, "/structure", nil))
	assert.Contains(t, rr.Body.String(), `"docs"`)
}

func TestHandleReport(t *testing.T) {
	srv := setupTestServer(t)

	content := "hello"
	do(srv, authedRequest(t, http.MethodPost, "/structure/directories",
		models.EntryRequest{Name: "docs"}))
	do(srv, authedRequest(t, http.MethodPost, "/structure/files",
		models.EntryRequest{Path: "docs", Name: "readme", Content: &content}))

	rr := do(srv, authedRequest(t, http.MethodGet, "/report", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, rr.Body.String(), "docs/readme")
	assert.Contains(t, rr.Body.String(), "hello")
}

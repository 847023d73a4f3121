package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxitalk/server/internal/hub"
	"github.com/taxitalk/server/internal/repository"
	"github.com/taxitalk/server/internal/service"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ids := service.NewIdentityService(repository.NewInMemoryUserRepository(), time.Hour, log)
	signalingHub := hub.New(log)

	router := SetupRouter(
		NewAuthController(ids),
		NewHubController(signalingHub, ids, log),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	srv := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/auth/register", gin.H{
		"username": "driver42",
		"password": "sekret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "driver42", user["username"])

	resp, _ = postJSON(t, srv.URL+"/api/auth/register", gin.H{
		"username": "driver42",
		"password": "other-pass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = postJSON(t, srv.URL+"/api/auth/login", gin.H{
		"username": "driver42",
		"password": "sekret-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp, _ = postJSON(t, srv.URL+"/api/auth/login", gin.H{
		"username": "driver42",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	srv := setupTestServer(t)

	resp, _ := postJSON(t, srv.URL+"/api/auth/register", gin.H{"username": "driver42"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

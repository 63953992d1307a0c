package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/config"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/middleware"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/filestore"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	assets := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "25.png"), []byte("png-bytes"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "pokemons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "pokemons", "1.png"), []byte("bulba"), 0o644))

	pokemons, err := filestore.Open(filepath.Join(dir, "pokemons.json"))
	require.NoError(t, err)

	cfg := config.Config{
		Port:        "0",
		JWTSecret:   "secret",
		JWTIssuer:   "pokedex-api",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
		AssetsDir:   assets,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(Handler(cfg, logger, pokemons, memory.NewUserStore()))
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_EndToEnd(t *testing.T) {
	ts := newTestServer(t)

	body := `{"name":"Pikachu","type":["electric"],"base":{"hp":35},"image":"pikachu.png"}`
	resp, err := http.Post(ts.URL+"/api/pokemons", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	var created struct {
		Pokemon struct {
			ID int64 `json:"id"`
		} `json:"pokemon"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(1), created.Pokemon.ID)

	reg, err := json.Marshal(map[string]string{"username": "ash", "password": "pikapika"})
	require.NoError(t, err)
	resp, err = http.Post(ts.URL+"/api/register", "application/json", bytes.NewReader(reg))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	metrics, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `pokedex_http_requests_total{method="POST",path="POST /api/pokemons",status="201"} 1`)
}

func TestServer_ServesAssets(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/assets/25.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))

	resp, err = http.Get(ts.URL + "/assets/missing.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_AssetDirectoriesAreNotListed(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/assets/", "/assets/pokemons/", "/assets/pokemons"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.NotContains(t, string(body), "1.png", path)
	}

	resp, err := http.Get(ts.URL + "/assets/pokemons/1.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Preflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/pokemons", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

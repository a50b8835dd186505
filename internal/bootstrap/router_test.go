package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructtrack/constructtrack-backend/config"
	"github.com/constructtrack/constructtrack-backend/internal/generation"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/repository"
	"github.com/constructtrack/constructtrack-backend/internal/worktracking/service"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return BuildRouter(RouterDeps{
		ServiceName: "constructtrack",
		Version:     "test",
		Environment: "production",
		CORSOrigins: []string{"http://localhost:5173"},
		Workspace:   service.NewWorkspaceService(repository.NewMemorySnapshotStore()),
		Generator:   generation.NewClient(generation.Options{}),
	})
}

func TestBuildRouter_Health(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "memory", body["backend"])
}

func TestBuildRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	testRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildRouter_SessionAndGeneratorDisabled(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-User-Id", "foreman")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ownerId":"foreman"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/projects", jsonBody(`{"name":"Annex"}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Project struct {
			ID    string `json:"id"`
			Areas []any  `json:"areas"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/projects/"+created.Project.ID+"/areas", jsonBody(`{"name":"Hall"}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	var area struct {
		Area struct {
			ID string `json:"id"`
		} `json:"area"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &area))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		"/api/v1/projects/"+created.Project.ID+"/areas/"+area.Area.ID+"/generate/image", jsonBody(`{"prompt":"x"}`)))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestNewSnapshotStore(t *testing.T) {
	ctx := context.Background()

	st, err := NewSnapshotStore(ctx, &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}, StoreDeps{})
	require.NoError(t, err)
	assert.Equal(t, "memory", st.Name())

	_, err = NewSnapshotStore(ctx, &config.Config{Storage: config.StorageConfig{Backend: config.BackendPostgres}}, StoreDeps{})
	assert.Error(t, err)

	_, err = NewSnapshotStore(ctx, &config.Config{Storage: config.StorageConfig{Backend: "tape"}}, StoreDeps{})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	rdb, err := OpenRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer rdb.Close()
	st, err = NewSnapshotStore(ctx, &config.Config{Storage: config.StorageConfig{Backend: config.BackendRedis}}, StoreDeps{Redis: rdb})
	require.NoError(t, err)
	assert.Equal(t, "redis", st.Name())
}

func TestOpenRedis_Disabled(t *testing.T) {
	rdb, err := OpenRedis(context.Background(), config.RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

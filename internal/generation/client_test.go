package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

func newServer(t *testing.T, path string, reply func(w http.ResponseWriter, body map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, path, r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		reply(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSuggestItems_LenientEntries(t *testing.T) {
	srv := newServer(t, "/v1/items", func(w http.ResponseWriter, body map[string]any) {
		assert.Equal(t, "data:image/png;base64,AAAA", body["image"])
		assert.Len(t, body["categories"], len(domain.Categories))
		_, _ = w.Write([]byte(`{"items":[
			{"name":"Paint walls","category":"Interior"},
			{"name":"Fix tap","category":"Gardening"},
			{"category":"Civil"},
			42,
			{"name":7}
		]}`))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	got, err := c.SuggestItems(context.Background(), "data:image/png;base64,AAAA")

	require.NoError(t, err)
	assert.Equal(t, []domain.ItemProposal{
		{Name: "Paint walls", Category: domain.CategoryInterior},
		{Name: "Fix tap", Category: domain.CategoryOther},
		{Name: "", Category: domain.CategoryCivil},
		{Category: domain.CategoryOther},
		{Name: "", Category: domain.CategoryOther},
	}, got)
}

func TestSuggestSubTasks_DropsNonStrings(t *testing.T) {
	srv := newServer(t, "/v1/subtasks", func(w http.ResponseWriter, body map[string]any) {
		assert.Equal(t, "Install Kitchen Cabinets", body["name"])
		assert.Equal(t, "Interior", body["category"])
		_, _ = w.Write([]byte(`{"subtasks":["Measure and mark layout", 3, null, "Hang upper cabinets"]}`))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	got, err := c.SuggestSubTasks(context.Background(), "Install Kitchen Cabinets", domain.CategoryInterior)

	require.NoError(t, err)
	assert.Equal(t, []string{"Measure and mark layout", "Hang upper cabinets"}, got)
}

func TestGenerateImage(t *testing.T) {
	srv := newServer(t, "/v1/images", func(w http.ResponseWriter, body map[string]any) {
		assert.Equal(t, "a sunlit atrium", body["prompt"])
		_, _ = w.Write([]byte(`{"mimeType":"image/jpeg","data":"QUJD"}`))
	})
	c := NewClient(Options{BaseURL: srv.URL + "/"})

	got, err := c.GenerateImage(context.Background(), "a sunlit atrium")

	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,QUJD", got)
}

func TestGenerateImage_NoData(t *testing.T) {
	srv := newServer(t, "/v1/images", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{}`))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.GenerateImage(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrUpstream)
}

func TestDesignIdeas(t *testing.T) {
	srv := newServer(t, "/v1/ideas", func(w http.ResponseWriter, body map[string]any) {
		assert.Equal(t, "scandinavian", body["style"])
		_, _ = w.Write([]byte(`{"text":"## Color Palette\nWarm whites"}`))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	got, err := c.DesignIdeas(context.Background(), "https://img.example/room.png", "  scandinavian ")

	require.NoError(t, err)
	assert.Contains(t, got, "Color Palette")
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := newServer(t, "/v1/subtasks", func(w http.ResponseWriter, _ map[string]any) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.SuggestSubTasks(context.Background(), "x", domain.CategoryOther)

	require.ErrorIs(t, err, ErrUpstream)
	assert.ErrorContains(t, err, "model overloaded")
}

func TestBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"subtasks":[]}`))
	}))
	defer srv.Close()
	c := NewClient(Options{BaseURL: srv.URL, APIKey: "secret-key"})

	_, err := c.SuggestSubTasks(context.Background(), "x", domain.CategoryOther)

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", auth)
}

func TestDisabledClient(t *testing.T) {
	c := NewClient(Options{})

	assert.False(t, c.Enabled())
	_, err := c.GenerateImage(context.Background(), "x")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestRateLimitHonoursContext(t *testing.T) {
	srv := newServer(t, "/v1/subtasks", func(w http.ResponseWriter, _ map[string]any) {
		_, _ = w.Write([]byte(`{"subtasks":[]}`))
	})
	c := NewClient(Options{BaseURL: srv.URL, RPS: 0.01})

	_, err := c.SuggestSubTasks(context.Background(), "x", domain.CategoryOther)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.SuggestSubTasks(ctx, "x", domain.CategoryOther)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstream)
}

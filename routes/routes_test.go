package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/chessmate-central/handlers"
	"github.com/Dosada05/chessmate-central/metrics"
	"github.com/Dosada05/chessmate-central/middleware"
	"github.com/Dosada05/chessmate-central/services"
)

var testSecret = []byte("routes-secret")

// Сервисы не нужны: запросы обрываются в middleware или на разборе тела.
func newRouter(t *testing.T, opts Options) *chi.Mux {
	t.Helper()
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:         handlers.NewAuthHandler(nil, string(testSecret)),
		Tournament:   handlers.NewTournamentHandler(nil, nil),
		Registration: handlers.NewRegistrationHandler(nil),
		Blog:         handlers.NewBlogHandler(nil),
		Result:       handlers.NewResultHandler(nil),
		Upload:       handlers.NewUploadHandler(nil),
		WebSocket:    handlers.NewWebSocketHandler(context.Background(), nil, nil, nil),
	}, opts)
	return router
}

func do(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "203.0.113.7:5000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrganizerRoutesRequireToken(t *testing.T) {
	router := newRouter(t, Options{AuthEnabled: true, JWTSecret: testSecret, CORSAllowedOrigins: []string{"*"}})

	protected := []struct{ method, path string }{
		{http.MethodPost, "/api/tournaments"},
		{http.MethodPost, "/api/tournaments/describe"},
		{http.MethodPut, "/api/tournaments/t1"},
		{http.MethodDelete, "/api/tournaments/t1"},
		{http.MethodPut, "/api/registrations/r1"},
		{http.MethodDelete, "/api/registrations/r1"},
		{http.MethodPost, "/api/blog/posts"},
		{http.MethodPost, "/api/results/t1"},
		{http.MethodPost, "/api/results/t1/reconcile"},
		{http.MethodPut, "/api/results/t1/players/p1/rounds/0"},
	}
	for _, p := range protected {
		rec := do(router, p.method, p.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}

	token, err := middleware.NewToken(testSecret, services.RoleOrganizer, services.RoleOrganizer, time.Now(), time.Hour)
	require.NoError(t, err)

	// с токеном запрос доходит до обработчика и падает уже на пустом теле
	rec := do(router, http.MethodPut, "/api/results/t1/players/p1/rounds/0", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	viewer, err := middleware.NewToken(testSecret, "someone", "viewer", time.Now(), time.Hour)
	require.NoError(t, err)
	rec = do(router, http.MethodPost, "/api/tournaments", "{}", viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrganizerRoutesOpenWhenAuthDisabled(t *testing.T) {
	router := newRouter(t, Options{CORSAllowedOrigins: []string{"*"}})

	rec := do(router, http.MethodPost, "/api/tournaments", "not json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationIsRateLimited(t *testing.T) {
	router := newRouter(t, Options{
		CORSAllowedOrigins: []string{"*"},
		PublicLimiter:      middleware.NewIPRateLimiter(0.001, 1),
	})

	rec := do(router, http.MethodPost, "/api/registrations", "not json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPost, "/api/registrations", "not json", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banner.png"), []byte("png"), 0o644))

	m := metrics.New()
	router := newRouter(t, Options{CORSAllowedOrigins: []string{"*"}, Metrics: m, UploadDir: dir})

	rec := do(router, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/uploads/banner.png", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = do(router, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{route="/healthz",status="200"} 1`)

	rec = do(router, http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chessmate Central API")
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(t, Options{CORSAllowedOrigins: []string{"https://chessmate.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/tournaments", nil)
	req.Header.Set("Origin", "https://chessmate.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://chessmate.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

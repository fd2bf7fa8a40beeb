package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"user-records/internal/cache"
	"user-records/internal/database"
	"user-records/internal/handler/users"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, users.Deps{DB: &database.FakeDB{}, Cache: &cache.FakeCache{}}, Static{Root: "/uploads", Dir: t.TempDir()})

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodGet + " /api/users",
		http.MethodPost + " /api/users",
		http.MethodPut + " /api/users/update/:id",
		http.MethodDelete + " /api/users/:id",
		http.MethodGet + " /uploads*",
		http.MethodGet + " /swagger/*",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestSetupWithoutStatic(t *testing.T) {
	e := echo.New()
	Setup(e, users.Deps{DB: &database.FakeDB{}, Cache: cache.Nop{}}, Static{})
	for _, r := range e.Routes() {
		require.NotContains(t, r.Path, "/uploads")
	}
}

func TestStaticServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("PNG"), 0o644))

	e := echo.New()
	Setup(e, users.Deps{DB: &database.FakeDB{}, Cache: cache.Nop{}}, Static{Root: "/uploads", Dir: dir})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "PNG", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPingWithoutCache(t *testing.T) {
	e := echo.New()
	db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
	Setup(e, users.Deps{DB: db}, Static{})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

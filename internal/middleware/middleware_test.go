package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func TestRegister(t *testing.T) {
	orig := newRequestID
	t.Cleanup(func() { newRequestID = orig })
	newRequestID = func() string { return "rid-1" }
	log, logs := newObserved()

	e := echo.New()
	Register(e, Options{AllowOrigins: []string{"http://localhost:3000"}, BodyLimit: "1K"}, log)
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.POST("/echo", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/panic", func(echo.Context) error { panic("boom") })

	t.Run("request id and log line", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))
		require.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

		entries := logs.FilterMessage("http").All()
		require.NotEmpty(t, entries)
		last := entries[len(entries)-1].ContextMap()
		require.Equal(t, "/ok", last["uri"])
		require.Equal(t, "rid-1", last["req_id"])
		require.EqualValues(t, http.StatusOK, last["status"])
	})

	t.Run("body limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 2048)))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("recover", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestZapLoggerError(t *testing.T) {
	log, logs := newObserved()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ZapLogger(log)(func(echo.Context) error { return errors.New("fail") })
	require.Error(t, h(c))

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	require.Equal(t, "fail", entries[0].ContextMap()["error"])
}

func TestZapLoggerNilLogger(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NoError(t, ZapLogger(nil)(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c))
}

package users

import (
	"time"

	"user-records/internal/cache"
	"user-records/internal/database"
	"user-records/internal/upload"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Deps 收集 users handlers 共用的依賴
type Deps struct {
	DB       database.DB
	Sink     upload.Sink
	Cache    cache.Cache
	CacheTTL time.Duration
	Log      *zap.Logger
}

func (d Deps) cache() cache.Cache {
	if d.Cache == nil {
		return cache.Nop{}
	}
	return d.Cache
}

// logger 回傳帶 request id 的 logger
func (d Deps) logger(c echo.Context) *zap.Logger {
	l := d.Log
	if l == nil {
		l = zap.NewNop()
	}
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		l = l.With(zap.String("request_id", rid))
	}
	return l
}

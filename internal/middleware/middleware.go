package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Options 控制 Register 安裝的全域中介層
type Options struct {
	AllowOrigins []string
	BodyLimit    string
}

var newRequestID = uuid.NewString

// Register 依序安裝 Recover、RequestID、請求日誌、CORS 與 BodyLimit
func Register(e *echo.Echo, opts Options, log *zap.Logger) {
	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return newRequestID() },
	}))

	e.Use(ZapLogger(log))

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
	}))

	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}
}

// ZapLogger writes one structured line per request.
func ZapLogger(log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency:   true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Int64("latency_ms", v.Latency.Milliseconds()),
				zap.String("req_id", v.RequestID),
				zap.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				log.Error("http", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("http", fields...)
			return nil
		},
	})
}

package handler

import (
	"net/http"
	"time"

	"user-records/internal/api"
	"user-records/internal/cache"
	"user-records/internal/database"

	"github.com/labstack/echo/v4"
)

const pingKey = "health:ping"

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "database unhealthy"})
		}
		if err := c.Set(reqCtx, pingKey, "pong", time.Second).Err(); err != nil {
			return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "cache unhealthy"})
		}
		return ctx.JSON(http.StatusOK, api.MessageResponse{Message: "pong"})
	}
}

package router

import (
	"user-records/internal/cache"
	"user-records/internal/handler"
	"user-records/internal/handler/users"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Static 描述上傳檔案對外提供的位置
type Static struct {
	Root string // URL 前綴，例如 /uploads
	Dir  string // 本機目錄
}

// Setup 註冊所有路由
func Setup(e *echo.Echo, d users.Deps, static Static) {
	api := e.Group("/api")

	// 健康檢查；未設定 Redis 時與 users handler 一樣退回 Nop
	pingCache := d.Cache
	if pingCache == nil {
		pingCache = cache.Nop{}
	}
	api.GET("/ping", handler.PingHandler(d.DB, pingCache))

	// Users CRUD；更新路徑沿用既有前端的 /update/:id
	api.GET("/users", users.ListUsersHandler(d))
	api.POST("/users", users.CreateUserHandler(d))
	api.PUT("/users/update/:id", users.UpdateUserHandler(d))
	api.DELETE("/users/:id", users.DeleteUserHandler(d))

	if static.Root != "" {
		e.Static(static.Root, static.Dir)
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

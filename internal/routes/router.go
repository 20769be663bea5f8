// Package routes はroutingを行います。
package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"spicy-todo/backend/internal/handlers"
	"spicy-todo/backend/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(todoService *services.TodoService) *gin.Engine {
	r := gin.Default()

	// CORS対策 (許可オリジンは環境変数 CORS_ORIGINS で上書き可能)
	config := cors.DefaultConfig()
	config.AllowOrigins = corsOrigins()
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	config.ExposeHeaders = []string{"Content-Length", "Content-Disposition"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour
	r.Use(cors.New(config))

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService)

	// ルーティング
	r.GET("/", RootHandler)
	r.GET("/health", HealthHandler)

	api := r.Group("/api")
	{
		// CRUD
		api.GET("/todos", todoHandler.GetTodosHandler)
		api.POST("/todos", todoHandler.CreateTodoHandler)
		api.GET("/todos/:id", todoHandler.GetTodoByIDHandler)
		api.PUT("/todos/:id", todoHandler.UpdateTodoHandler)
		api.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)
		api.PATCH("/todos/:id/toggle", todoHandler.ToggleTodoHandler)

		// スヌーズ
		api.PATCH("/todos/:id/snooze", todoHandler.SnoozeTodoHandler)
		api.PATCH("/todos/:id/unsnooze", todoHandler.UnsnoozeTodoHandler)

		// 統計・リマインダー
		api.GET("/todos/stats/summary", todoHandler.GetStatsHandler)
		api.GET("/todos/reminders", todoHandler.GetRemindersHandler)

		// タグ・カテゴリ
		api.GET("/todos/tags", todoHandler.GetTagsHandler)
		api.GET("/todos/tags/:tag", todoHandler.GetByTagHandler)
		api.GET("/todos/categories", todoHandler.GetCategoriesHandler)
		api.GET("/todos/category/:category", todoHandler.GetByCategoryHandler)

		// 一括操作
		api.POST("/todos/bulk", todoHandler.BulkOperationHandler)
		api.DELETE("/todos/completed", todoHandler.ClearCompletedHandler)

		// インポート・エクスポート
		api.GET("/export/todos", todoHandler.ExportTodosHandler)
		api.POST("/import/todos", todoHandler.ImportTodosHandler)
	}

	return r
}

// RootHandler はサービスのバナーを返します。
func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Spicy Todo API - Go Backend",
		"version": "1.0.0",
		"docs":    "/api/todos",
	})
}

// HealthHandler はヘルスチェック用のエンドポイントです。
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "spicy-todo-backend",
	})
}

// corsOrigins は環境変数 CORS_ORIGINS (カンマ区切り) から許可オリジンを読み取ります。
func corsOrigins() []string {
	env := os.Getenv("CORS_ORIGINS")
	if env == "" {
		return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	origins := strings.Split(env, ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}
	return origins
}

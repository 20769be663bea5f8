package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"spicy-todo/backend/internal/repositories"
	"spicy-todo/backend/internal/routes"
	"spicy-todo/backend/internal/services"
)

func main() {
	// .envファイルの読み込み (存在しない場合は環境変数をそのまま使う)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// リポジトリ・サービスの初期化 (ストアはプロセス内メモリのみ)
	todoRepo := repositories.NewTodoRepository()
	todoService := services.NewTodoService(todoRepo)

	// 開発用サンプルデータの投入 (SEED_SAMPLE_DATA=false で無効化)
	if os.Getenv("SEED_SAMPLE_DATA") != "false" {
		todoService.SeedSampleData()
	}

	r := routes.SetupRouter(todoService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Spicy Todo API running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"spicy-todo/backend/internal/models"
	"spicy-todo/backend/internal/repositories"
	"spicy-todo/backend/internal/routes"
	"spicy-todo/backend/internal/services"
)

// SetupTestRouter はテスト用の空のストアとルーターをセットアップします。
// サンプルデータは投入しません (テストごとに独立した状態から始める)。
func SetupTestRouter(t *testing.T) (*repositories.TodoRepository, *services.TodoService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	todoRepo := repositories.NewTodoRepository()
	todoService := services.NewTodoService(todoRepo)
	router := routes.SetupRouter(todoService)
	return todoRepo, todoService, router
}

// PerformRequest はルーターに対してリクエストを実行し、レコーダーを返します。
// body が nil でない場合はJSONとしてシリアライズして送信します。
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// CreateTestTodo はAPI経由でテスト用のTodoを作成します。
func CreateTestTodo(t *testing.T, router *gin.Engine, input models.TodoCreate) *models.Todo {
	t.Helper()

	resp := PerformRequest(t, router, http.MethodPost, "/api/todos", input)
	require.Equal(t, http.StatusCreated, resp.Code, "Expected HTTP Status Code 201 Created")

	var created models.Todo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	return &created
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"spicy-todo/backend/internal/models"
	"spicy-todo/backend/internal/repositories"
	"spicy-todo/backend/internal/services"
)

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// respondError はサービス層の型付きエラーをHTTPステータスに変換します。
// ValidationError -> 400, ErrTodoNotFound -> 404
func respondError(c *gin.Context, err error) {
	var verr *repositories.ValidationError
	switch {
	case errors.Is(err, repositories.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// GetTodosHandler はフィルタ条件に合致するTodoリストを取得します。
// クエリパラメータ: filter (active/completed), search, priority
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	filter := c.Query("filter")
	search := c.Query("search")
	priority := c.Query("priority")

	todos := h.todoService.GetTodos(filter, search, priority)
	c.JSON(http.StatusOK, todos)
}

// GetTodoByIDHandler は指定IDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	todo, err := h.todoService.GetTodoByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var input models.TodoCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	todo, err := h.todoService.CreateTodo(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// UpdateTodoHandler はTodoを部分更新します。
// リクエストボディに存在しないフィールドは既存の値を保持します。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	var input models.TodoUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	if !h.todoService.DeleteTodo(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

// ToggleTodoHandler は完了状態を反転します。
func (h *TodoHandler) ToggleTodoHandler(c *gin.Context) {
	todo, err := h.todoService.ToggleTodo(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// GetStatsHandler は統計サマリーを取得します。
func (h *TodoHandler) GetStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.todoService.GetStats())
}

// ClearCompletedHandler は完了済みのTodoをすべて削除します。
func (h *TodoHandler) ClearCompletedHandler(c *gin.Context) {
	h.todoService.ClearCompleted()
	c.JSON(http.StatusOK, gin.H{"message": "Completed todos cleared"})
}

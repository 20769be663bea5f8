package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spicy-todo/backend/internal/models"
)

// SnoozeTodoHandler は指定時刻までTodoをスヌーズします。
func (h *TodoHandler) SnoozeTodoHandler(c *gin.Context) {
	var input models.SnoozeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	todo, err := h.todoService.SnoozeTodo(c.Param("id"), input.Until)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// UnsnoozeTodoHandler はスヌーズを解除します。
func (h *TodoHandler) UnsnoozeTodoHandler(c *gin.Context) {
	todo, err := h.todoService.UnsnoozeTodo(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// GetRemindersHandler は今後24時間以内のリマインダーを取得します。
func (h *TodoHandler) GetRemindersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.todoService.GetUpcomingReminders())
}

// GetByTagHandler は指定タグを持つTodoを取得します。
func (h *TodoHandler) GetByTagHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.todoService.GetByTag(c.Param("tag")))
}

// GetByCategoryHandler は指定カテゴリのTodoを取得します。
func (h *TodoHandler) GetByCategoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.todoService.GetByCategory(c.Param("category")))
}

// GetTagsHandler はすべてのユニークなタグを取得します。
func (h *TodoHandler) GetTagsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tags": h.todoService.GetAllTags()})
}

// GetCategoriesHandler はすべてのユニークなカテゴリを取得します。
func (h *TodoHandler) GetCategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.todoService.GetAllCategories()})
}

// BulkOperationHandler は複数のTodoに対する一括操作を実行します。
// operation: delete / complete / uncomplete / updatePriority
func (h *TodoHandler) BulkOperationHandler(c *gin.Context) {
	var input models.BulkOperation
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	var affected int
	switch input.Operation {
	case "delete":
		affected = h.todoService.BulkDelete(input.IDs)
	case "complete":
		affected = h.todoService.BulkComplete(input.IDs, true)
	case "uncomplete":
		affected = h.todoService.BulkComplete(input.IDs, false)
	case "updatePriority":
		priorityStr, _ := input.Data["priority"].(string)
		priority, ok := models.ParsePriority(priorityStr)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid priority required for updatePriority operation"})
			return
		}
		affected = h.todoService.BulkUpdatePriority(input.IDs, priority)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operation. Valid: delete, complete, uncomplete, updatePriority"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bulk operation completed", "affected": affected})
}

// ExportTodosHandler はTodoをJSON形式でエクスポートします。
func (h *TodoHandler) ExportTodosHandler(c *gin.Context) {
	var query models.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}
	if query.Format == "" {
		query.Format = "json"
	}
	if query.Filter == "" {
		query.Filter = "all"
	}

	result := h.todoService.ExportTodos(query.Filter)

	filename := "todos_" + query.Filter + "_" + result.ExportedAt[:10] + ".json"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, result)
}

// ImportTodosHandler はJSONからTodoを一括で取り込みます。
func (h *TodoHandler) ImportTodosHandler(c *gin.Context) {
	var input models.ImportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	if input.Mode == "" {
		input.Mode = "append"
	}
	if input.Mode != "append" && input.Mode != "replace" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode. Valid: append, replace"})
		return
	}

	c.JSON(http.StatusOK, h.todoService.ImportTodos(input.Todos, input.Mode))
}

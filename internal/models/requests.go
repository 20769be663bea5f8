package models

import "time"

// TodoCreate は作成リクエストの入力contractです。
// bindingタグ: Ginでのリクエストバリデーション用 (textは必須・1〜500文字)
type TodoCreate struct {
	Text         string   `json:"text" binding:"required,min=1,max=500"`
	Priority     string   `json:"priority"`
	Completed    bool     `json:"completed"`
	DueDate      *string  `json:"dueDate,omitempty"`
	ReminderTime *string  `json:"reminderTime,omitempty"`
	Recurrence   string   `json:"recurrenceRule"`
	Tags         []string `json:"tags,omitempty"`
	Category     *string  `json:"category,omitempty"`
}

// TodoUpdate は部分更新の入力contractです。
// 各フィールドはポインタで「未指定」と「値あり」を区別します。
// 未指定のフィールドは既存の値を保持します (フィールドのクリアはサポートしない)。
type TodoUpdate struct {
	Text         *string  `json:"text,omitempty" binding:"omitempty,min=1,max=500"`
	Priority     *string  `json:"priority,omitempty"`
	Completed    *bool    `json:"completed,omitempty"`
	DueDate      *string  `json:"dueDate,omitempty"`
	ReminderTime *string  `json:"reminderTime,omitempty"`
	Recurrence   *string  `json:"recurrenceRule,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Category     *string  `json:"category,omitempty"`
}

// SnoozeRequest はスヌーズリクエストの入力contractです。
type SnoozeRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

// BulkOperation は一括操作リクエストを表します。
// Operation: delete / complete / uncomplete / updatePriority
type BulkOperation struct {
	IDs       []string       `json:"ids" binding:"required"`
	Operation string         `json:"operation" binding:"required"`
	Data      map[string]any `json:"data,omitempty"`
}

// ExportQuery はエクスポート時のクエリパラメータを表します。
type ExportQuery struct {
	Format string `form:"format"`
	Filter string `form:"filter"`
}

// ImportRequest はインポートリクエストを表します。
// Mode: append (既存に追加) / replace (全置換)
type ImportRequest struct {
	Todos []TodoCreate `json:"todos" binding:"required"`
	Mode  string       `json:"mode"`
}

// ImportResult はインポート結果のレスポンスです。
type ImportResult struct {
	Message    string   `json:"message"`
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
	ImportedAt string   `json:"importedAt"`
}

// ExportResult はエクスポート結果のレスポンスです。
type ExportResult struct {
	Data       []*Todo `json:"data"`
	Format     string  `json:"format"`
	Count      int     `json:"count"`
	ExportedAt string  `json:"exportedAt"`
	Filter     string  `json:"filter"`
}

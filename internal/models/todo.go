package models

import "time"

// Priority はタスクの優先度を表します。
// JSONでは小文字の正規形 ("low" / "medium" / "high") のみを扱います。
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority は文字列を正規の優先度に変換します。
// 不正な値の場合は ok=false を返します (作成時はデフォルト値にフォールバック、
// 更新時は値を無視する、という判断は呼び出し側が行う)。
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// RecurrenceRule はタスクの繰り返しルールを表します。
type RecurrenceRule string

const (
	RecurrenceNone    RecurrenceRule = "none"
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
)

// ParseRecurrenceRule は文字列を正規の繰り返しルールに変換します。
func ParseRecurrenceRule(s string) (RecurrenceRule, bool) {
	switch r := RecurrenceRule(s); r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return r, true
	}
	return "", false
}

// Todo は ToDoタスクを表します。
// JSONタグ: クライアントとの通信用 (フィールド名はフロントエンドとの共通契約)
type Todo struct {
	// ID: UUID文字列 (作成時に採番され、以後変更されない)
	ID string `json:"id"`

	// Text: タスクの本文 (1〜500文字、境界でのみ検証する)
	Text string `json:"text"`

	// Priority: 優先度 (デフォルトは medium)
	Priority Priority `json:"priority"`

	// Completed: 完了状態
	Completed bool `json:"completed"`

	// DueDate: 期限日 "YYYY-MM-DD" (タイムゾーンなし、任意)
	DueDate *string `json:"dueDate,omitempty"`

	// ReminderTime: リマインダー時刻 "HH:MM" (任意)
	ReminderTime *string `json:"reminderTime,omitempty"`

	// RecurrenceRule: 繰り返しルール (デフォルトは none)
	RecurrenceRule RecurrenceRule `json:"recurrenceRule"`

	// SnoozedUntil: スヌーズ解除時刻 (任意)
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`

	// Tags / Category: 分類用のメタデータ (任意)
	Tags     []string `json:"tags,omitempty"`
	Category *string  `json:"category,omitempty"`

	// CreatedAt / UpdatedAt: UTCタイムスタンプ。
	// UpdatedAt はすべての変更操作で更新される (UpdatedAt >= CreatedAt が常に成立)。
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone はTodoのコピーを返します。
// ストアの内部状態への参照を呼び出し側に渡さないために使います。
func (t *Todo) Clone() *Todo {
	c := *t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return &c
}

// TodoStats は集計結果を表します。
// PriorityBreakdown は3つの優先度キーを常に含みます (該当なしは0)。
type TodoStats struct {
	Total             int            `json:"total"`
	Active            int            `json:"active"`
	Completed         int            `json:"completed"`
	CompletionRate    float64        `json:"completionRate"`
	PriorityBreakdown map[string]int `json:"priorityBreakdown"`
	OverdueCount      int            `json:"overdueCount"`
	DueTodayCount     int            `json:"dueTodayCount"`
	UpcomingCount     int            `json:"upcomingCount"`
}

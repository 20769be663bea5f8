package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"spicy-todo/backend/internal/models"
	"spicy-todo/backend/internal/repositories"
)

// dateLayout は期限日文字列のフォーマットです ("YYYY-MM-DD")。
const dateLayout = "2006-01-02"

// upcomingWindowDays は「近日中」と判定する日数です (明日から7日後まで)。
const upcomingWindowDays = 7

// TodoService はTodo関連のビジネスロジックを扱います。
// 変更操作はすべてリポジトリに委譲し、読み出し系は挿入順のスナップショットに
// 対する純粋関数 (FilterTodos / ComputeStats など) として計算します。
type TodoService struct {
	todoRepo *repositories.TodoRepository
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(todoRepo *repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

// CreateTodo は新しいTodoを作成します。
func (s *TodoService) CreateTodo(input models.TodoCreate) (*models.Todo, error) {
	return s.todoRepo.Create(input)
}

// GetTodos はフィルタ条件に合致するTodoを挿入順で返します。
func (s *TodoService) GetTodos(status, search, priority string) []*models.Todo {
	return FilterTodos(s.todoRepo.FindAll(), status, search, priority)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(id string) (*models.Todo, error) {
	return s.todoRepo.FindByID(id)
}

// UpdateTodo はTodoを部分更新します。
func (s *TodoService) UpdateTodo(id string, input models.TodoUpdate) (*models.Todo, error) {
	return s.todoRepo.Update(id, input)
}

// DeleteTodo はTodoを削除し、存在したかどうかを返します。
func (s *TodoService) DeleteTodo(id string) bool {
	return s.todoRepo.Delete(id)
}

// ToggleTodo は完了状態を反転します。
func (s *TodoService) ToggleTodo(id string) (*models.Todo, error) {
	return s.todoRepo.Toggle(id)
}

// ClearCompleted は完了済みのTodoをすべて削除します。
func (s *TodoService) ClearCompleted() int {
	return s.todoRepo.ClearCompleted()
}

// GetStats は現在のストア内容から統計を計算します。
func (s *TodoService) GetStats() models.TodoStats {
	return ComputeStats(s.todoRepo.FindAll(), time.Now().UTC())
}

// SnoozeTodo は指定時刻までTodoをスヌーズします。
func (s *TodoService) SnoozeTodo(id string, until time.Time) (*models.Todo, error) {
	return s.todoRepo.Snooze(id, until)
}

// UnsnoozeTodo はスヌーズを解除します。
func (s *TodoService) UnsnoozeTodo(id string) (*models.Todo, error) {
	return s.todoRepo.Unsnooze(id)
}

// FilterTodos はフィルタ条件を適用した純粋関数です。
// status: "active" (未完了のみ) / "completed" (完了のみ) / それ以外は絞り込みなし。
// priority: 正規形の小文字enum値との完全一致 (大文字小文字を区別する)。
// search: 本文に対する大文字小文字を区別しない部分一致。
// 各条件はANDで合成され、入力順 (=挿入順) を保持します。
func FilterTodos(todos []*models.Todo, status, search, priority string) []*models.Todo {
	result := make([]*models.Todo, 0, len(todos))
	searchLower := strings.ToLower(search)

	for _, t := range todos {
		if status == "active" && t.Completed {
			continue
		}
		if status == "completed" && !t.Completed {
			continue
		}
		if priority != "" && string(t.Priority) != priority {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), searchLower) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// ComputeStats はTodo一覧から統計を単一パスで計算する純粋関数です。
//
// 期限日の分類は「未完了かつ期限日がパース可能」なTodoのみが対象で、
// 不正な日付文字列はエラーにせず3つのカウントすべてから除外します。
// 「今日」は走査の開始時に一度だけ評価します (走査中の日付またぎを避けるため)。
// CompletionRate はテストの決定性のため小数第2位に丸めます。
func ComputeStats(todos []*models.Todo, now time.Time) models.TodoStats {
	stats := models.TodoStats{
		Total: len(todos),
		PriorityBreakdown: map[string]int{
			string(models.PriorityLow):    0,
			string(models.PriorityMedium): 0,
			string(models.PriorityHigh):   0,
		},
	}

	today := now.Format(dateLayout)
	upcomingLimit := now.AddDate(0, 0, upcomingWindowDays).Format(dateLayout)

	for _, t := range todos {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}

		stats.PriorityBreakdown[string(t.Priority)]++

		if t.Completed || t.DueDate == nil {
			continue
		}
		due := *t.DueDate
		if _, err := time.Parse(dateLayout, due); err != nil {
			continue
		}
		// "YYYY-MM-DD" 形式は辞書順比較がそのまま日付比較になる
		switch {
		case due < today:
			stats.OverdueCount++
		case due == today:
			stats.DueTodayCount++
		case due <= upcomingLimit:
			stats.UpcomingCount++
		}
	}

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}
	return stats
}

// GetUpcomingReminders は今後24時間以内にリマインダーが発火する未完了の
// Todoを返します。期限日とリマインダー時刻の両方を持つTodoのみが対象です。
func (s *TodoService) GetUpcomingReminders() []*models.Todo {
	now := time.Now()
	limit := now.Add(24 * time.Hour)

	result := make([]*models.Todo, 0)
	for _, t := range s.todoRepo.FindAll() {
		if t.Completed || t.DueDate == nil || t.ReminderTime == nil {
			continue
		}
		at, ok := reminderAt(*t.DueDate, *t.ReminderTime)
		if !ok {
			continue
		}
		if at.After(now) && at.Before(limit) {
			result = append(result, t)
		}
	}
	return result
}

// reminderAt は期限日 "YYYY-MM-DD" とリマインダー時刻 "HH:MM" から
// 発火時刻を組み立てます。どちらかがパースできない場合は ok=false。
func reminderAt(dueDate, reminderTime string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return time.Time{}, false
	}
	parts := strings.Split(reminderTime, ":")
	if len(parts) != 2 {
		return time.Time{}, false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.Local), true
}

// GetByTag は指定タグを持つTodoを挿入順で返します。
func (s *TodoService) GetByTag(tag string) []*models.Todo {
	result := make([]*models.Todo, 0)
	for _, t := range s.todoRepo.FindAll() {
		for _, tg := range t.Tags {
			if tg == tag {
				result = append(result, t)
				break
			}
		}
	}
	return result
}

// GetByCategory は指定カテゴリのTodoを挿入順で返します。
func (s *TodoService) GetByCategory(category string) []*models.Todo {
	result := make([]*models.Todo, 0)
	for _, t := range s.todoRepo.FindAll() {
		if t.Category != nil && *t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// GetAllTags はすべてのユニークなタグをソート済みで返します。
func (s *TodoService) GetAllTags() []string {
	set := make(map[string]struct{})
	for _, t := range s.todoRepo.FindAll() {
		for _, tg := range t.Tags {
			set[tg] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tg := range set {
		tags = append(tags, tg)
	}
	sort.Strings(tags)
	return tags
}

// GetAllCategories はすべてのユニークなカテゴリをソート済みで返します。
func (s *TodoService) GetAllCategories() []string {
	set := make(map[string]struct{})
	for _, t := range s.todoRepo.FindAll() {
		if t.Category != nil {
			set[*t.Category] = struct{}{}
		}
	}
	categories := make([]string, 0, len(set))
	for c := range set {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// BulkDelete は複数のTodoを一括削除します。
func (s *TodoService) BulkDelete(ids []string) int {
	return s.todoRepo.BulkDelete(ids)
}

// BulkComplete は複数のTodoの完了状態を一括で設定します。
func (s *TodoService) BulkComplete(ids []string, completed bool) int {
	return s.todoRepo.BulkComplete(ids, completed)
}

// BulkUpdatePriority は複数のTodoの優先度を一括で変更します。
func (s *TodoService) BulkUpdatePriority(ids []string, priority models.Priority) int {
	return s.todoRepo.BulkUpdatePriority(ids, priority)
}

// ExportTodos はフィルタ条件 (all / active / completed) に合致するTodoを
// エクスポート用の形に包んで返します。
func (s *TodoService) ExportTodos(filter string) models.ExportResult {
	status := ""
	if filter == "active" || filter == "completed" {
		status = filter
	}
	todos := FilterTodos(s.todoRepo.FindAll(), status, "", "")
	return models.ExportResult{
		Data:       todos,
		Format:     "json",
		Count:      len(todos),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Filter:     filter,
	}
}

// ImportTodos は複数のTodoを一括で取り込みます。
// mode: "append" (既存に追加) / "replace" (全置換)。
func (s *TodoService) ImportTodos(inputs []models.TodoCreate, mode string) models.ImportResult {
	imported, skipped, errs := s.todoRepo.Import(inputs, mode == "replace")
	return models.ImportResult{
		Message:    "Todos imported successfully",
		Imported:   imported,
		Skipped:    skipped,
		Errors:     errs,
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"spicy-todo/backend/internal/models"
)

// ErrTodoNotFound はTODOが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// ValidationError は入力値が不正な場合のエラーです。
// ハンドラー側で 400 Bad Request にマッピングされます。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// maxTextLength はTodo本文の最大文字数です。
const maxTextLength = 500

// TodoRepository はTodoのインメモリストアです。
//
// すべての変更操作はRWMutexで直列化され、コレクション全体の走査
// (FindAll / ClearCompleted / Import) は一貫したスナップショットを見ます。
// 読み出しは常にコピーを返し、内部状態への参照は外に出しません。
// orderスライスが挿入順を保持します (mapの反復順は不定のため)。
type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
	order []string
}

// NewTodoRepository は新しい空のTodoRepositoryを作成します。
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{
		todos: make(map[string]*models.Todo),
	}
}

// Create は新しいTodoを作成して挿入します。
// textが空または500文字を超える場合はValidationErrorを返します。
// priority / recurrenceRule の不正値はデフォルト値にフォールバックします。
func (r *TodoRepository) Create(input models.TodoCreate) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.createLocked(input, time.Now().UTC())
}

// createLocked はロック保持中の挿入処理本体です (Import や繰り返しの採番からも使う)。
func (r *TodoRepository) createLocked(input models.TodoCreate, now time.Time) (*models.Todo, error) {
	if err := validateText(input.Text); err != nil {
		return nil, err
	}

	priority := models.PriorityMedium
	if p, ok := models.ParsePriority(input.Priority); ok {
		priority = p
	}
	recurrence := models.RecurrenceNone
	if rec, ok := models.ParseRecurrenceRule(input.Recurrence); ok {
		recurrence = rec
	}

	t := &models.Todo{
		ID:             uuid.New().String(),
		Text:           input.Text,
		Priority:       priority,
		Completed:      input.Completed,
		DueDate:        input.DueDate,
		ReminderTime:   input.ReminderTime,
		RecurrenceRule: recurrence,
		Tags:           input.Tags,
		Category:       input.Category,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	r.todos[t.ID] = t
	r.order = append(r.order, t.ID)
	return t.Clone(), nil
}

// FindAll はすべてのTodoを挿入順のコピーで返します。
func (r *TodoRepository) FindAll() []*models.Todo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Todo, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.todos[id].Clone())
	}
	return result
}

// FindByID は指定されたIDのTodoを取得します。
func (r *TodoRepository) FindByID(id string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}
	return t.Clone(), nil
}

// Update は指定されたIDのTodoを部分更新します。
// 未指定 (nil) のフィールドは既存の値を保持します。
// バリデーションに失敗した場合、レコードは一切変更されません。
func (r *TodoRepository) Update(id string, input models.TodoUpdate) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	// 先に検証してから適用する (失敗した更新は状態を変えない)
	if input.Text != nil {
		if err := validateText(*input.Text); err != nil {
			return nil, err
		}
	}

	if input.Text != nil {
		t.Text = *input.Text
	}
	if input.Priority != nil {
		// 不正な優先度は無視して既存値を保持する
		if p, ok := models.ParsePriority(*input.Priority); ok {
			t.Priority = p
		}
	}
	if input.Completed != nil {
		t.Completed = *input.Completed
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	if input.ReminderTime != nil {
		t.ReminderTime = input.ReminderTime
	}
	if input.Recurrence != nil {
		if rec, ok := models.ParseRecurrenceRule(*input.Recurrence); ok {
			t.RecurrenceRule = rec
		}
	}
	if input.Tags != nil {
		t.Tags = input.Tags
	}
	if input.Category != nil {
		t.Category = input.Category
	}

	t.UpdatedAt = time.Now().UTC()
	return t.Clone(), nil
}

// Delete は指定されたIDのTodoを削除し、存在したかどうかを返します。
func (r *TodoRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.todos[id]; !exists {
		return false
	}
	r.removeLocked(id)
	return true
}

// Toggle は完了状態を反転します。
// 繰り返しルールを持つTodoが完了になった場合、次回分を採番します。
func (r *TodoRepository) Toggle(id string) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	now := time.Now().UTC()
	t.Completed = !t.Completed
	t.UpdatedAt = now

	if t.Completed && t.RecurrenceRule != models.RecurrenceNone {
		r.scheduleNextLocked(t, now)
	}

	return t.Clone(), nil
}

// ClearCompleted は完了済みのTodoをすべて削除し、削除件数を返します。
// 単一ロック内での一括走査なので、並行する読み手が途中状態を観測することはありません。
func (r *TodoRepository) ClearCompleted() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.order[:0]
	count := 0
	for _, id := range r.order {
		if r.todos[id].Completed {
			delete(r.todos, id)
			count++
			continue
		}
		remaining = append(remaining, id)
	}
	r.order = remaining
	return count
}

// Snooze は指定時刻までTodoをスヌーズします。
func (r *TodoRepository) Snooze(id string, until time.Time) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}
	t.SnoozedUntil = &until
	t.UpdatedAt = time.Now().UTC()
	return t.Clone(), nil
}

// Unsnooze はスヌーズを解除します。
func (r *TodoRepository) Unsnooze(id string) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}
	t.SnoozedUntil = nil
	t.UpdatedAt = time.Now().UTC()
	return t.Clone(), nil
}

// BulkDelete は複数のTodoを削除し、実際に削除できた件数を返します。
// 存在しないIDは黙ってスキップします。
func (r *TodoRepository) BulkDelete(ids []string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, id := range ids {
		if _, exists := r.todos[id]; exists {
			r.removeLocked(id)
			count++
		}
	}
	return count
}

// BulkComplete は複数のTodoの完了状態を一括で設定します。
// 完了への変更時、繰り返しルールを持つTodoは次回分を採番します。
func (r *TodoRepository) BulkComplete(ids []string, completed bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	count := 0
	for _, id := range ids {
		t, exists := r.todos[id]
		if !exists {
			continue
		}
		t.Completed = completed
		t.UpdatedAt = now
		if completed && t.RecurrenceRule != models.RecurrenceNone {
			r.scheduleNextLocked(t, now)
		}
		count++
	}
	return count
}

// BulkUpdatePriority は複数のTodoの優先度を一括で変更します。
func (r *TodoRepository) BulkUpdatePriority(ids []string, priority models.Priority) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	count := 0
	for _, id := range ids {
		if t, exists := r.todos[id]; exists {
			t.Priority = priority
			t.UpdatedAt = now
			count++
		}
	}
	return count
}

// Import は複数のTodoを一括で取り込みます。
// replace=true の場合は既存のTodoをすべて削除してから取り込みます。
// 全体が単一ロック内で行われるため、並行する読み手は途中状態を観測しません。
// バリデーションに失敗した項目はスキップされ、エラー文字列として報告されます。
func (r *TodoRepository) Import(inputs []models.TodoCreate, replace bool) (imported, skipped int, errs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if replace {
		r.todos = make(map[string]*models.Todo)
		r.order = nil
	}

	now := time.Now().UTC()
	errs = make([]string, 0)
	for i, input := range inputs {
		if _, err := r.createLocked(input, now); err != nil {
			skipped++
			errs = append(errs, fmt.Sprintf("todo %d: %v", i, err))
			continue
		}
		imported++
	}
	return imported, skipped, errs
}

// removeLocked はロック保持中にmapとorderの両方からTodoを取り除きます。
func (r *TodoRepository) removeLocked(id string) {
	delete(r.todos, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// scheduleNextLocked は繰り返しルールに従って次回分のTodoを採番します。
// 期限日がない、またはパースできない場合は何もしません。
func (r *TodoRepository) scheduleNextLocked(t *models.Todo, now time.Time) {
	if t.DueDate == nil {
		return
	}
	dueDate, err := time.Parse("2006-01-02", *t.DueDate)
	if err != nil {
		return
	}

	var next time.Time
	switch t.RecurrenceRule {
	case models.RecurrenceDaily:
		next = dueDate.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		next = dueDate.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		next = dueDate.AddDate(0, 1, 0)
	default:
		return
	}

	nextDue := next.Format("2006-01-02")
	nt := &models.Todo{
		ID:             uuid.New().String(),
		Text:           t.Text,
		Priority:       t.Priority,
		Completed:      false,
		DueDate:        &nextDue,
		ReminderTime:   t.ReminderTime,
		RecurrenceRule: t.RecurrenceRule,
		Tags:           append([]string(nil), t.Tags...),
		Category:       t.Category,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.todos[nt.ID] = nt
	r.order = append(r.order, nt.ID)
}

// validateText はTodo本文の長さ制約 (1〜500文字) を検証します。
func validateText(text string) error {
	if text == "" {
		return &ValidationError{Message: "text must not be empty"}
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return &ValidationError{Message: fmt.Sprintf("text must be at most %d characters", maxTextLength)}
	}
	return nil
}

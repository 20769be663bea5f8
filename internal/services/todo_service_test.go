package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spicy-todo/backend/internal/models"
	"spicy-todo/backend/internal/repositories"
)

func newTodo(text string, priority models.Priority, completed bool) *models.Todo {
	return &models.Todo{Text: text, Priority: priority, Completed: completed}
}

func newDueTodo(dueDate string, completed bool) *models.Todo {
	return &models.Todo{Text: "due", Priority: models.PriorityMedium, Completed: completed, DueDate: &dueDate}
}

func TestFilterTodos_Status(t *testing.T) {
	todos := []*models.Todo{
		newTodo("one", models.PriorityMedium, false),
		newTodo("two", models.PriorityMedium, true),
	}

	active := FilterTodos(todos, "active", "", "")
	require.Len(t, active, 1)
	assert.Equal(t, "one", active[0].Text)

	completed := FilterTodos(todos, "completed", "", "")
	require.Len(t, completed, 1)
	assert.Equal(t, "two", completed[0].Text)

	// 未知のstatusは絞り込みなし
	all := FilterTodos(todos, "everything", "", "")
	assert.Len(t, all, 2)
}

func TestFilterTodos_SearchIsCaseInsensitive(t *testing.T) {
	todos := []*models.Todo{
		newTodo("Buy milk", models.PriorityMedium, false),
		newTodo("Clean house", models.PriorityMedium, false),
	}

	result := FilterTodos(todos, "", "BUY", "")
	require.Len(t, result, 1)
	assert.Equal(t, "Buy milk", result[0].Text)
}

func TestFilterTodos_PriorityIsCaseSensitive(t *testing.T) {
	todos := []*models.Todo{
		newTodo("high prio", models.PriorityHigh, false),
		newTodo("low prio", models.PriorityLow, false),
	}

	result := FilterTodos(todos, "", "", "high")
	require.Len(t, result, 1)
	assert.Equal(t, "high prio", result[0].Text)

	// 正規形 (小文字) との完全一致のみ
	assert.Empty(t, FilterTodos(todos, "", "", "HIGH"))
}

func TestFilterTodos_ComposeWithAnd(t *testing.T) {
	todos := []*models.Todo{
		newTodo("Buy milk", models.PriorityMedium, false),
		newTodo("Buy eggs", models.PriorityMedium, true),
		newTodo("Clean", models.PriorityMedium, false),
	}

	result := FilterTodos(todos, "active", "buy", "")
	require.Len(t, result, 1)
	assert.Equal(t, "Buy milk", result[0].Text)
}

func TestFilterTodos_PreservesOrder(t *testing.T) {
	todos := []*models.Todo{
		newTodo("a", models.PriorityLow, false),
		newTodo("b", models.PriorityHigh, false),
		newTodo("c", models.PriorityLow, false),
	}

	result := FilterTodos(todos, "", "", "low")
	require.Len(t, result, 2)
	assert.Equal(t, "a", result[0].Text)
	assert.Equal(t, "c", result[1].Text)
}

func TestComputeStats_EmptyStore(t *testing.T) {
	stats := ComputeStats(nil, time.Now())

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, float64(0), stats.CompletionRate)
	// 3つの優先度キーは常に存在する
	assert.Equal(t, 0, stats.PriorityBreakdown["low"])
	assert.Equal(t, 0, stats.PriorityBreakdown["medium"])
	assert.Equal(t, 0, stats.PriorityBreakdown["high"])
	assert.Len(t, stats.PriorityBreakdown, 3)
}

func TestComputeStats_CountsAndBreakdown(t *testing.T) {
	todos := []*models.Todo{
		newTodo("h1", models.PriorityHigh, false),
		newTodo("h2", models.PriorityHigh, true),
		newTodo("m1", models.PriorityMedium, false),
		newTodo("l1", models.PriorityLow, true),
	}

	stats := ComputeStats(todos, time.Now())
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 50.0, stats.CompletionRate)
	assert.Equal(t, map[string]int{"high": 2, "medium": 1, "low": 1}, stats.PriorityBreakdown)
}

func TestComputeStats_CompletionRateRounding(t *testing.T) {
	todos := []*models.Todo{
		newTodo("a", models.PriorityMedium, true),
		newTodo("b", models.PriorityMedium, false),
		newTodo("c", models.PriorityMedium, false),
	}

	stats := ComputeStats(todos, time.Now())
	// 1/3 = 33.333... -> 小数第2位に丸める
	assert.Equal(t, 33.33, stats.CompletionRate)
}

func TestComputeStats_DueDateClassification(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(dateLayout)
	}

	todos := []*models.Todo{
		newDueTodo(day(-1), false), // 昨日 -> overdue
		newDueTodo(day(0), false),  // 今日 -> dueToday
		newDueTodo(day(7), false),  // ちょうど7日後 -> upcoming (境界を含む)
		newDueTodo(day(8), false),  // 8日後 -> どのカウントにも入らない
		newDueTodo(day(-1), true),  // 完了済みは対象外
	}

	stats := ComputeStats(todos, now)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, 1, stats.DueTodayCount)
	assert.Equal(t, 1, stats.UpcomingCount)
}

func TestComputeStats_MalformedDueDateIsExcluded(t *testing.T) {
	todos := []*models.Todo{
		newDueTodo("not-a-date", false),
		newDueTodo("2030/06/15", false),
	}

	stats := ComputeStats(todos, time.Now())
	// 不正な日付はエラーにせず、3つのカウントすべてから除外する
	assert.Equal(t, 0, stats.OverdueCount)
	assert.Equal(t, 0, stats.DueTodayCount)
	assert.Equal(t, 0, stats.UpcomingCount)
	assert.Equal(t, 2, stats.Total)
}

func setupService(t *testing.T) (*repositories.TodoRepository, *TodoService) {
	t.Helper()
	repo := repositories.NewTodoRepository()
	return repo, NewTodoService(repo)
}

func TestGetUpcomingReminders(t *testing.T) {
	_, svc := setupService(t)

	now := time.Now()
	today := now.Format(dateLayout)
	soon := now.Add(2 * time.Hour)
	soonDate := soon.Format(dateLayout)
	soonTime := soon.Format("15:04")
	farDate := now.AddDate(0, 0, 3).Format(dateLayout)

	// 2時間後に発火するリマインダー
	_, err := svc.CreateTodo(models.TodoCreate{Text: "soon", DueDate: &soonDate, ReminderTime: &soonTime})
	require.NoError(t, err)
	// 3日後 -> 24時間のウィンドウ外
	_, err = svc.CreateTodo(models.TodoCreate{Text: "far", DueDate: &farDate, ReminderTime: strPtr("12:00")})
	require.NoError(t, err)
	// 完了済みは対象外
	_, err = svc.CreateTodo(models.TodoCreate{Text: "done", Completed: true, DueDate: &soonDate, ReminderTime: &soonTime})
	require.NoError(t, err)
	// リマインダー時刻なしは対象外
	_, err = svc.CreateTodo(models.TodoCreate{Text: "no reminder", DueDate: &today})
	require.NoError(t, err)

	reminders := svc.GetUpcomingReminders()
	require.Len(t, reminders, 1)
	assert.Equal(t, "soon", reminders[0].Text)
}

func TestTagsAndCategories(t *testing.T) {
	_, svc := setupService(t)

	_, err := svc.CreateTodo(models.TodoCreate{Text: "a", Tags: []string{"work", "urgent"}, Category: strPtr("office")})
	require.NoError(t, err)
	_, err = svc.CreateTodo(models.TodoCreate{Text: "b", Tags: []string{"work"}, Category: strPtr("home")})
	require.NoError(t, err)
	_, err = svc.CreateTodo(models.TodoCreate{Text: "c"})
	require.NoError(t, err)

	byTag := svc.GetByTag("work")
	require.Len(t, byTag, 2)
	assert.Equal(t, "a", byTag[0].Text)

	byCategory := svc.GetByCategory("home")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "b", byCategory[0].Text)

	// ユニークかつソート済み
	assert.Equal(t, []string{"urgent", "work"}, svc.GetAllTags())
	assert.Equal(t, []string{"home", "office"}, svc.GetAllCategories())
}

func TestExportTodos(t *testing.T) {
	_, svc := setupService(t)

	_, err := svc.CreateTodo(models.TodoCreate{Text: "active one"})
	require.NoError(t, err)
	_, err = svc.CreateTodo(models.TodoCreate{Text: "done one", Completed: true})
	require.NoError(t, err)

	result := svc.ExportTodos("active")
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "active", result.Filter)
	assert.Equal(t, "json", result.Format)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "active one", result.Data[0].Text)

	all := svc.ExportTodos("all")
	assert.Equal(t, 2, all.Count)
}

func TestImportTodos(t *testing.T) {
	_, svc := setupService(t)

	_, err := svc.CreateTodo(models.TodoCreate{Text: "existing"})
	require.NoError(t, err)

	result := svc.ImportTodos([]models.TodoCreate{
		{Text: "new 1"},
		{Text: ""},
	}, "append")
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, svc.GetTodos("", "", ""), 2)

	result = svc.ImportTodos([]models.TodoCreate{{Text: "replacement"}}, "replace")
	assert.Equal(t, 1, result.Imported)
	todos := svc.GetTodos("", "", "")
	require.Len(t, todos, 1)
	assert.Equal(t, "replacement", todos[0].Text)
}

func TestSeedSampleData(t *testing.T) {
	_, svc := setupService(t)

	svc.SeedSampleData()
	todos := svc.GetTodos("", "", "")
	assert.Len(t, todos, 5)

	stats := svc.GetStats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Completed)
}

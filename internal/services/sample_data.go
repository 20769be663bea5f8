package services

import (
	"log"
	"time"

	"spicy-todo/backend/internal/models"
)

// SeedSampleData は開発用のサンプルTodoを投入します。
// 空のストアに対して起動時に一度だけ呼ばれる想定です。
func (s *TodoService) SeedSampleData() {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)
	nextWeek := now.AddDate(0, 0, 7).Format(dateLayout)

	samples := []models.TodoCreate{
		{
			Text:         "Learn Go programming language",
			Priority:     string(models.PriorityHigh),
			DueDate:      &tomorrow,
			ReminderTime: strPtr("09:00"),
		},
		{
			Text:         "Build a todo API with Gin framework",
			Priority:     string(models.PriorityHigh),
			Completed:    true,
			DueDate:      &yesterday,
			ReminderTime: strPtr("14:30"),
		},
		{
			Text:         "Add Docker support for deployment",
			Priority:     string(models.PriorityMedium),
			DueDate:      &nextWeek,
			ReminderTime: strPtr("16:00"),
		},
		{
			Text:     "Write unit tests for all endpoints",
			Priority: string(models.PriorityMedium),
		},
		{
			Text:     "Optimize in-memory store scans",
			Priority: string(models.PriorityLow),
		},
	}

	for _, input := range samples {
		if _, err := s.todoRepo.Create(input); err != nil {
			log.Printf("Failed to seed sample todo: %v", err)
		}
	}
}

func strPtr(s string) *string {
	return &s
}

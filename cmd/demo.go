package cmd

import "github.com/nibzard/tasktrack/internal/todo"

// seedDemo fills store with a few sample tasks dated relative to today.
func seedDemo(store *todo.Store) error {
	today := store.Today()
	tomorrow := today.AddDays(1)
	nextWeek := today.AddDays(7)

	samples := []todo.NewTask{
		{Title: "Review pull requests", Priority: todo.PriorityHigh, DueDate: &today},
		{Title: "Buy groceries", Description: "milk, bread, eggs", DueDate: &tomorrow},
		{Title: "Plan team offsite", Description: "book venue", Priority: todo.PriorityLow, DueDate: &nextWeek},
		{Title: "Renew passport", Priority: todo.PriorityMedium},
	}
	for _, in := range samples {
		if _, err := store.Create(in); err != nil {
			return err
		}
	}
	_, err := store.ToggleStatus(1)
	return err
}

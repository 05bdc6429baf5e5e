// Package todo holds the in-memory task model and the Store that owns it.
//
// A Store keeps tasks in insertion order and hands out copies, so the only
// way to change a task is through a Store method:
//
//	s := todo.NewStore()
//	t, err := s.Create(todo.NewTask{Title: "Buy milk", Priority: todo.PriorityHigh})
//	s.ToggleStatus(t.ID)
//	todo.Sort(s.Search(todo.Filter{Keyword: "milk"}), todo.SortByDueDate)
//
// # Identifiers
//
// IDs start at 1 and grow by one with every successful Create. Deleting a
// task never frees its ID.
//
// # Priority Range
//
//   - 1: High
//   - 2: Medium (default)
//   - 3: Low
//
// # Status Values
//
//   - "pending": Task is open (default)
//   - "completed": Task is done
//
// # Dates
//
// Due dates are calendar dates written as YYYY-MM-DD. Validated paths never
// store a date before the store's current day; a stored date can still fall
// behind as time passes, which is what makes a pending task overdue.
//
// # Updates
//
// Update validates every provided field before applying any of them. A
// failing field leaves the task exactly as it was.
package todo

package todo

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Filter narrows a search. Zero fields are not applied.
type Filter struct {
	Keyword  string
	Priority *Priority
	Status   *Status
}

// Search returns copies of the tasks matching every set field of f.
// Keyword matching folds case and checks the title and, when present, the
// description. Order is preserved.
func Search(tasks []Task, f Filter) []Task {
	var keyword string
	if strings.TrimSpace(f.Keyword) != "" {
		keyword = cases.Fold().String(f.Keyword)
	}

	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if keyword != "" && !matchesKeyword(t, keyword) {
			continue
		}
		if f.Priority != nil && t.Priority != *f.Priority {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

func matchesKeyword(t *Task, folded string) bool {
	fold := cases.Fold()
	if strings.Contains(fold.String(t.Title), folded) {
		return true
	}
	return t.Description != nil && strings.Contains(fold.String(*t.Description), folded)
}

// SortKey selects an ordering for Sort.
type SortKey string

const (
	SortByPriority  SortKey = "priority"
	SortByDueDate   SortKey = "due_date"
	SortByCreatedAt SortKey = "created_at"
)

// SortKeys lists the known orderings.
func SortKeys() []SortKey {
	return []SortKey{SortByPriority, SortByDueDate, SortByCreatedAt}
}

// ParseSortKey normalizes user text such as "Due-Date" to a SortKey. Blank
// text maps to SortByPriority. Unknown text is returned as-is, which Sort
// treats as "keep input order".
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch s {
	case "":
		return SortByPriority
	case "due", "duedate":
		return SortByDueDate
	case "created", "createdat":
		return SortByCreatedAt
	}
	return SortKey(s)
}

// Sort returns a new slice holding copies of tasks ordered by key:
//   - priority: High, Medium, Low; ties by lowest ID
//   - due_date: earliest first, undated tasks last; ties by lowest ID
//   - created_at: newest first; equal timestamps keep input order
//
// An empty key means priority. Any other key keeps input order.
func Sort(tasks []Task, by SortKey) []Task {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].clone()
	}

	switch by {
	case SortByPriority, "":
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Priority != out[j].Priority {
				return out[i].Priority < out[j].Priority
			}
			return out[i].ID < out[j].ID
		})
	case SortByDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			left, right := out[i].DueDate, out[j].DueDate
			switch {
			case left == nil && right == nil:
				return out[i].ID < out[j].ID
			case left == nil:
				return false
			case right == nil:
				return true
			}
			if c := left.Compare(*right); c != 0 {
				return c < 0
			}
			return out[i].ID < out[j].ID
		})
	case SortByCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// Summary holds aggregate counts over a set of tasks.
type Summary struct {
	Total      int              `json:"total"`
	Completed  int              `json:"completed"`
	Pending    int              `json:"pending"`
	Overdue    int              `json:"overdue"`
	ByPriority map[Priority]int `json:"by_priority"`
}

// AllCompleted returns true if there is at least one task and none is
// pending.
func (s Summary) AllCompleted() bool {
	return s.Completed > 0 && s.Pending == 0
}

// Summarize counts tasks by status, overdue state and priority.
func Summarize(tasks []Task, today Date) Summary {
	sum := Summary{
		Total: len(tasks),
		ByPriority: map[Priority]int{
			PriorityHigh:   0,
			PriorityMedium: 0,
			PriorityLow:    0,
		},
	}
	for i := range tasks {
		if tasks[i].Status == StatusCompleted {
			sum.Completed++
		}
		if tasks[i].IsOverdue(today) {
			sum.Overdue++
		}
		sum.ByPriority[tasks[i].Priority]++
	}
	sum.Pending = sum.Total - sum.Completed
	return sum
}

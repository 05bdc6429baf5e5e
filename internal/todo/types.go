package todo

import (
	"fmt"
	"time"
)

// Priority represents a task priority. Lower values sort first.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// String returns the display name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

// Priorities lists every priority from highest to lowest.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateLayout is the only accepted textual form of a Date.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero returns true for the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.Compare(o) > 0
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to,
// or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Task represents a single task in the store.
type Task struct {
	ID          int
	Title       string
	Description *string // nil when absent
	Priority    Priority
	DueDate     *Date // nil when absent
	Status      Status
	CreatedAt   time.Time
}

// IsOverdue returns true if the task is pending and its due date is before
// today.
func (t *Task) IsOverdue(today Date) bool {
	return t.Status == StatusPending &&
		t.DueDate != nil &&
		t.DueDate.Before(today)
}

// Toggle flips the status between pending and completed and returns the
// new status.
func (t *Task) Toggle() Status {
	if t.Status == StatusPending {
		t.Status = StatusCompleted
	} else {
		t.Status = StatusPending
	}
	return t.Status
}

// HasDescription returns true if the task carries a description.
func (t *Task) HasDescription() bool {
	return t.Description != nil
}

// clone returns a copy that shares no pointers with t.
func (t Task) clone() Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// NewTask holds the inputs for Store.Create.
type NewTask struct {
	Title       string
	Description string   // blank means no description
	Priority    Priority // zero means PriorityMedium
	DueDate     *Date
}

// Update holds the fields to change in Store.Update. A nil field is left
// unchanged.
type Update struct {
	Title *string
	// Description set to a blank string clears the description.
	Description *string
	Priority    *Priority
	DueDate     *Date
	// ClearDueDate removes the due date and takes precedence over DueDate.
	ClearDueDate bool
}

// IsZero returns true if the update changes nothing.
func (u Update) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil &&
		u.DueDate == nil && !u.ClearDueDate
}

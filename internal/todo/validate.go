package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest accepted title, in characters.
const MaxTitleLength = 200

var (
	ErrEmptyTitle        = errors.New("title is required")
	ErrTitleTooLong      = fmt.Errorf("title cannot exceed %d characters", MaxTitleLength)
	ErrInvalidPriority   = errors.New("invalid priority, must be High, Medium, or Low")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPastDate          = errors.New("due date cannot be in the past")
	ErrInvalidStatus     = errors.New("invalid status, must be pending or completed")
	ErrTaskNotFound      = errors.New("task not found")
)

// ValidationError represents a validation error with the offending field.
type ValidationError struct {
	Field string // task field name, e.g. "title"
	Err   error  // one of the Err* sentinels
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// ValidateTitle checks that title is not blank and not longer than
// MaxTitleLength characters. The length check applies to the text as given,
// before trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", ErrEmptyTitle)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return invalid("title", ErrTitleTooLong)
	}
	return nil
}

// ValidatePriority parses a priority name, ignoring case and surrounding
// whitespace.
func ValidatePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), p.String()) {
			return p, nil
		}
	}
	return 0, invalid("priority", ErrInvalidPriority)
}

// ValidateDueDate parses a YYYY-MM-DD due date. Blank input means no date
// and returns nil without error. Dates before today are rejected.
func ValidateDueDate(s string, today Date) (*Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, invalid("due_date", ErrInvalidDateFormat)
	}
	if err := checkDueDate(d, today); err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseStatus parses a status name, ignoring case and surrounding
// whitespace.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", invalid("status", ErrInvalidStatus)
	}
}

func checkDueDate(d, today Date) error {
	if d.Before(today) {
		return invalid("due_date", ErrPastDate)
	}
	return nil
}

func normalizeDescription(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

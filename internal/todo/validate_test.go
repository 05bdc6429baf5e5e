package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"simple", "Buy groceries", nil},
		{"exactly 200", strings.Repeat("a", 200), nil},
		{"201", strings.Repeat("a", 201), ErrTitleTooLong},
		{"empty", "", ErrEmptyTitle},
		{"whitespace", "  \t\n", ErrEmptyTitle},
		{"padding counts toward length", " " + strings.Repeat("a", 200), ErrTitleTooLong},
		{"multibyte runes", strings.Repeat("ü", 200), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateTitle: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := ValidateTitle("")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "title" {
		t.Errorf("Field: got %q, want title", ve.Field)
	}
	if err.Error() != "title: title is required" {
		t.Errorf("Error: got %q", err.Error())
	}
}

func TestValidatePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"High", PriorityHigh, false},
		{"high", PriorityHigh, false},
		{"MEDIUM", PriorityMedium, false},
		{" low ", PriorityLow, false},
		{"urgent", 0, true},
		{"", 0, true},
		{"1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidatePriority(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPriority) {
					t.Fatalf("got %v, want ErrInvalidPriority", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateDueDate(t *testing.T) {
	today := DateOf(fixedNow)

	tests := []struct {
		name    string
		in      string
		want    *Date
		wantErr error
	}{
		{"blank means no date", "", nil, nil},
		{"whitespace means no date", "   ", nil, nil},
		{"today", today.String(), &today, nil},
		{"future", "2030-12-31", &Date{2030, 12, 31}, nil},
		{"padded", " 2030-01-02 ", &Date{2030, 1, 2}, nil},
		{"yesterday", today.AddDays(-1).String(), nil, ErrPastDate},
		{"wrong separator", "2030/01/02", nil, ErrInvalidDateFormat},
		{"not a date", "tomorrow", nil, ErrInvalidDateFormat},
		{"impossible day", "2030-02-30", nil, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDueDate(tt.in, today)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateDueDate(%q): got err %v, want %v", tt.in, err, tt.wantErr)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("got %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("got %v, want %v", got, *tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if got, err := ParseStatus("Completed"); err != nil || got != StatusCompleted {
		t.Errorf("ParseStatus(Completed): got %q, %v", got, err)
	}
	if got, err := ParseStatus(" pending "); err != nil || got != StatusPending {
		t.Errorf("ParseStatus(pending): got %q, %v", got, err)
	}
	if _, err := ParseStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ParseStatus(done): got %v, want ErrInvalidStatus", err)
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	if err != nil {
		t.Fatal(err)
	}
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("AddDays(1): got %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Errorf("AddDays(2): got %s", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) {
		t.Error("Before/After disagree")
	}
	if d.Compare(d) != 0 {
		t.Error("Compare with self should be 0")
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Error("IsZero wrong")
	}
}

func TestPriorityString(t *testing.T) {
	if PriorityHigh.String() != "High" || PriorityMedium.String() != "Medium" || PriorityLow.String() != "Low" {
		t.Error("unexpected priority names")
	}
	if Priority(7).String() != "Priority(7)" {
		t.Errorf("unknown priority: got %q", Priority(7).String())
	}
}

package task

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical textual forms for stored dates and times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Priority is the urgency level of a task. Higher values sort first.
type Priority int

// Priority levels. The zero value means "unspecified" and is stored as Low.
const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// String returns the display label. Out-of-range values render as Low.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// Valid reports whether p is one of the three defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority accepts 1-3 or low/medium/high. Empty input means Low.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "1", "low", "l":
		return PriorityLow, nil
	case "2", "medium", "med", "m":
		return PriorityMedium, nil
	case "3", "high", "h":
		return PriorityHigh, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return 0, &ValidationError{Field: "priority", Reason: fmt.Sprintf("%d is out of range 1-3", n)}
	}
	return 0, &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q (use low, medium or high)", s)}
}

// Task is a single to-do item.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date,omitempty"` // YYYY-MM-DD or empty
	Time        string   `json:"time,omitempty"` // HH:MM or empty
	Priority    Priority `json:"priority"`
	HasAlarm    bool     `json:"has_alarm"`
}

// Normalize trims text fields and defaults an unspecified priority to Low.
func (t Task) Normalize() Task {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Date = strings.TrimSpace(t.Date)
	t.Time = strings.TrimSpace(t.Time)
	if t.Priority == 0 {
		t.Priority = PriorityLow
	}
	return t
}

// Validate checks the record invariants. It does not normalize.
func (t Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Reason: "title is required"}
	}
	if !t.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("%d is out of range 1-3", int(t.Priority))}
	}
	if t.Date != "" {
		if _, ok := ParseDate(t.Date); !ok {
			return &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", t.Date)}
		}
	}
	if t.Time != "" {
		if _, ok := ParseTime(t.Time); !ok {
			return &ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not a HH:MM time", t.Time)}
		}
	}
	return nil
}

// ParseDate parses a canonical date. Only the exact YYYY-MM-DD form is accepted.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ParseTime parses a canonical 24-hour time of day.
func ParseTime(s string) (time.Duration, bool) {
	if len(s) != len(TimeLayout) {
		return 0, false
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when an id does not reference a stored task.
	ErrNotFound = errors.New("not found")
	// ErrStorage matches any *StorageError via errors.Is.
	ErrStorage = errors.New("storage failure")
)

// ValidationError reports a record that violates a task invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a failure of the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func notFound(id int64) error {
	return fmt.Errorf("task %d: %w", id, ErrNotFound)
}

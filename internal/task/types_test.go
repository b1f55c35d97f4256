package task

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		task      Task
		wantField string
	}{
		{name: "minimal", task: Task{Title: "Buy milk", Priority: PriorityLow}},
		{name: "full", task: Task{Title: "Dentist", Description: "bring card", Date: "2024-02-29", Time: "23:59", Priority: PriorityHigh, HasAlarm: true}},
		{name: "empty title", task: Task{Priority: PriorityLow}, wantField: "title"},
		{name: "priority too high", task: Task{Title: "x", Priority: 4}, wantField: "priority"},
		{name: "priority unset", task: Task{Title: "x"}, wantField: "priority"},
		{name: "not a leap year", task: Task{Title: "x", Priority: PriorityLow, Date: "2023-02-29"}, wantField: "date"},
		{name: "short date", task: Task{Title: "x", Priority: PriorityLow, Date: "2024-1-5"}, wantField: "date"},
		{name: "hour out of range", task: Task{Title: "x", Priority: PriorityLow, Time: "24:00"}, wantField: "time"},
		{name: "twelve hour time", task: Task{Title: "x", Priority: PriorityLow, Time: "9:30 AM"}, wantField: "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("errors.Is(err, ErrValidation) = false")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Task{Title: "  Call mom ", Description: "\tabout dinner\n", Date: " 2024-05-01 "}.Normalize()

	if got.Title != "Call mom" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Description != "about dinner" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Date != "2024-05-01" {
		t.Errorf("Date = %q", got.Date)
	}
	if got.Priority != PriorityLow {
		t.Errorf("Priority = %v, want Low", got.Priority)
	}

	if p := (Task{Title: "x", Priority: PriorityHigh}).Normalize().Priority; p != PriorityHigh {
		t.Errorf("explicit priority overwritten: %v", p)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"", PriorityLow, false},
		{"1", PriorityLow, false},
		{"Low", PriorityLow, false},
		{"2", PriorityMedium, false},
		{"medium", PriorityMedium, false},
		{"3", PriorityHigh, false},
		{" HIGH ", PriorityHigh, false},
		{"h", PriorityHigh, false},
		{"0", 0, true},
		{"7", 0, true},
		{"urgent", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrValidation) {
			t.Errorf("ParsePriority(%q) error not a validation error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPriorityString(t *testing.T) {
	cases := map[Priority]string{
		PriorityLow:    "Low",
		PriorityMedium: "Medium",
		PriorityHigh:   "High",
		0:              "Low",
		9:              "Low",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("Priority(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Op: "insert task", Err: cause}

	if !errors.Is(err, ErrStorage) {
		t.Error("expected errors.Is(err, ErrStorage)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	if err.Error() != "failed to insert task: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}

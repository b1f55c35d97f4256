package task

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func ids(tasks []Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// captureLog redirects the default logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&buf))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  []int64
	}{
		{
			name: "dated before undated, earlier date first",
			tasks: []Task{
				{ID: 1, Title: "A", Date: "2024-01-02", Priority: PriorityLow},
				{ID: 2, Title: "B", Date: "2024-01-01", Priority: PriorityLow},
				{ID: 3, Title: "C", Priority: PriorityHigh},
			},
			want: []int64{2, 1, 3},
		},
		{
			name: "priority descending when date and time tie",
			tasks: []Task{
				{ID: 1, Title: "low", Date: "2024-06-01", Priority: PriorityLow},
				{ID: 2, Title: "high", Date: "2024-06-01", Priority: PriorityHigh},
			},
			want: []int64{2, 1},
		},
		{
			name: "identical keys keep input order",
			tasks: []Task{
				{ID: 5, Title: "first", Date: "2024-06-01", Time: "09:00", Priority: PriorityMedium},
				{ID: 3, Title: "second", Date: "2024-06-01", Time: "09:00", Priority: PriorityMedium},
				{ID: 4, Title: "third", Date: "2024-06-01", Time: "09:00", Priority: PriorityMedium},
			},
			want: []int64{5, 3, 4},
		},
		{
			name: "timed before untimed within a date",
			tasks: []Task{
				{ID: 1, Title: "untimed high", Date: "2024-06-01", Priority: PriorityHigh},
				{ID: 2, Title: "late", Date: "2024-06-01", Time: "18:30", Priority: PriorityLow},
				{ID: 3, Title: "early", Date: "2024-06-01", Time: "07:05", Priority: PriorityLow},
			},
			want: []int64{3, 2, 1},
		},
		{
			name: "undated task never beats a dated one regardless of time or priority",
			tasks: []Task{
				{ID: 1, Title: "undated", Time: "00:00", Priority: PriorityHigh},
				{ID: 2, Title: "dated", Date: "2030-12-31", Time: "23:59", Priority: PriorityLow},
			},
			want: []int64{2, 1},
		},
		{
			name: "both undated falls through to time then priority",
			tasks: []Task{
				{ID: 1, Title: "no time low", Priority: PriorityLow},
				{ID: 2, Title: "no time high", Priority: PriorityHigh},
				{ID: 3, Title: "timed", Time: "12:00", Priority: PriorityLow},
			},
			want: []int64{3, 2, 1},
		},
		{
			name: "calendar order across months and years",
			tasks: []Task{
				{ID: 1, Title: "a", Date: "2025-01-01"},
				{ID: 2, Title: "b", Date: "2024-12-31"},
				{ID: 3, Title: "c", Date: "2024-02-29"},
			},
			want: []int64{3, 2, 1},
		},
		{
			name:  "empty input",
			tasks: nil,
			want:  []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Sort(tt.tasks))
			if !equalIDs(got, tt.want) {
				t.Errorf("Sort() order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := []Task{
		{ID: 1, Title: "later", Date: "2024-01-02"},
		{ID: 2, Title: "earlier", Date: "2024-01-01"},
	}

	out := Sort(in)

	if in[0].ID != 1 || in[1].ID != 2 {
		t.Errorf("input reordered: %v", ids(in))
	}
	if out[0].ID != 2 {
		t.Errorf("expected sorted copy to start with 2, got %v", ids(out))
	}
}

func TestSortMalformedValuesOrderAsAbsent(t *testing.T) {
	buf := captureLog(t)

	tasks := []Task{
		{ID: 1, Title: "bad date", Date: "01/02/2024", Priority: PriorityHigh},
		{ID: 2, Title: "good date", Date: "2024-01-02", Priority: PriorityLow},
		{ID: 3, Title: "bad time", Date: "2024-01-02", Time: "25:99", Priority: PriorityHigh},
		{ID: 4, Title: "undated low", Priority: PriorityLow},
	}

	got := ids(Sort(tasks))
	// 3's time is treated as absent so it ties 2 on date and time and wins on
	// priority. 1 behaves as undated and beats 4 on priority.
	want := []int64{3, 2, 1, 4}
	if !equalIDs(got, want) {
		t.Errorf("Sort() order = %v, want %v", got, want)
	}

	output := buf.String()
	if !strings.Contains(output, "unparsable task date") {
		t.Errorf("expected warning about date, got %q", output)
	}
	if !strings.Contains(output, "unparsable task time") {
		t.Errorf("expected warning about time, got %q", output)
	}
}

func TestSortIsDeterministic(t *testing.T) {
	tasks := []Task{
		{ID: 1, Title: "x", Date: "garbage"},
		{ID: 2, Title: "y"},
		{ID: 3, Title: "z", Date: "2024-03-01", Time: "nope"},
		{ID: 4, Title: "w", Date: "2024-03-01"},
	}
	captureLog(t)

	first := ids(Sort(tasks))
	for i := 0; i < 10; i++ {
		if got := ids(Sort(tasks)); !equalIDs(got, first) {
			t.Fatalf("run %d: order %v differs from %v", i, got, first)
		}
	}
}

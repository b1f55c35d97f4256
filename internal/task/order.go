package task

import (
	"cmp"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// sortKey holds the parsed ordering keys of one task.
type sortKey struct {
	task    Task
	date    time.Time
	hasDate bool
	tod     time.Duration
	hasTime bool
}

// Sort returns tasks ordered for display: dated before undated and earlier
// dates first, then timed before untimed and earlier times first, then
// higher priority first. Ties keep their input order. The input slice is
// not modified.
//
// Dates or times that do not match the canonical form order as if absent;
// each such task is reported once per call on the default logger.
func Sort(tasks []Task) []Task {
	keys := make([]sortKey, len(tasks))
	for i, t := range tasks {
		keys[i] = keyFor(t)
	}

	slices.SortStableFunc(keys, compareKeys)

	out := make([]Task, len(keys))
	for i, k := range keys {
		out[i] = k.task
	}
	return out
}

func keyFor(t Task) sortKey {
	k := sortKey{task: t}
	if t.Date != "" {
		if d, ok := ParseDate(t.Date); ok {
			k.date, k.hasDate = d, true
		} else {
			log.Warn("unparsable task date, ordering as undated", "id", t.ID, "date", t.Date)
		}
	}
	if t.Time != "" {
		if tod, ok := ParseTime(t.Time); ok {
			k.tod, k.hasTime = tod, true
		} else {
			log.Warn("unparsable task time, ordering as untimed", "id", t.ID, "time", t.Time)
		}
	}
	return k
}

func compareKeys(a, b sortKey) int {
	if c := comparePresent(a.hasDate, b.hasDate); c != 0 {
		return c
	}
	if a.hasDate {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
	}

	if c := comparePresent(a.hasTime, b.hasTime); c != 0 {
		return c
	}
	if a.hasTime {
		if c := cmp.Compare(a.tod, b.tod); c != 0 {
			return c
		}
	}

	// descending
	return cmp.Compare(b.task.Priority, a.task.Priority)
}

// comparePresent orders present values before absent ones.
func comparePresent(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

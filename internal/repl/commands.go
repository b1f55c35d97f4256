package repl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notexe/todo/internal/task"
	"github.com/notexe/todo/internal/ui"
)

// clearValue entered at an edit prompt clears an optional field.
const clearValue = "-"

func (r *REPL) handleList() error {
	tasks, err := r.store.List()
	if err != nil {
		return err
	}
	r.displayTasks(task.Sort(tasks))
	return nil
}

func (r *REPL) handleAdd(args string) error {
	title := strings.TrimSpace(args)
	if title == "" {
		var err error
		if title, err = r.prompt("Title", ""); err != nil {
			return err
		}
	}

	t, err := r.collectFields(task.Task{Title: title}, false)
	if err != nil {
		return err
	}

	id, err := r.store.Create(t)
	if err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Task %d saved.", id))
	return r.handleList()
}

func (r *REPL) handleEdit(args string) error {
	id, err := parseID(args, "/edit")
	if err != nil {
		return err
	}

	current, err := r.store.Get(id)
	if err != nil {
		return err
	}

	title, err := r.prompt("Title", current.Title)
	if err != nil {
		return err
	}
	if title == "" {
		title = current.Title
	}
	current.Title = title

	t, err := r.collectFields(current, true)
	if err != nil {
		return err
	}

	if err := r.store.Update(id, t); err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Task %d updated.", id))
	return r.handleList()
}

func (r *REPL) handleShow(args string) error {
	id, err := parseID(args, "/show")
	if err != nil {
		return err
	}

	t, err := r.store.Get(id)
	if err != nil {
		return err
	}

	r.displayTask(t)
	return nil
}

func (r *REPL) handleDelete(args string) error {
	id, err := parseID(args, "/delete")
	if err != nil {
		return err
	}

	if err := r.store.Delete(id); err != nil {
		return err
	}

	r.displaySuccess(fmt.Sprintf("Task %d deleted.", id))
	return r.handleList()
}

// collectFields prompts for every field after the title. When editing, an
// empty answer keeps the value in base and "-" clears it; when adding, an
// empty answer leaves the field absent.
func (r *REPL) collectFields(base task.Task, editing bool) (task.Task, error) {
	t := base

	text := func(field string, cur *string, check func(string) error) error {
		shown := ""
		if editing {
			shown = *cur
		}
		for {
			v, err := r.prompt(field, shown)
			if err != nil {
				return err
			}
			switch {
			case v == clearValue:
				v = ""
			case v == "" && editing:
				v = *cur
			}
			if v != "" && check != nil {
				if err := check(v); err != nil {
					r.displayError(err)
					continue
				}
			}
			*cur = v
			return nil
		}
	}

	if err := text("Description", &t.Description, nil); err != nil {
		return t, err
	}
	if err := text("Date (YYYY-MM-DD)", &t.Date, checkDate); err != nil {
		return t, err
	}
	if err := text("Time (HH:MM)", &t.Time, checkTime); err != nil {
		return t, err
	}

	current := t.Priority
	if !editing {
		current = task.PriorityLow
	}
	p, err := r.selectPriority(current)
	if err != nil {
		return t, err
	}
	t.Priority = p

	alarm, err := r.promptYesNo("Alarm", editing && t.HasAlarm)
	if err != nil {
		return t, err
	}
	t.HasAlarm = alarm

	return t, nil
}

// promptPriority reads a priority name or number as a plain line. Empty input
// keeps current.
func (r *REPL) promptPriority(current task.Priority) (task.Priority, error) {
	for {
		v, err := r.prompt("Priority (low/medium/high)", current.String())
		if err != nil {
			return 0, err
		}
		if v == "" {
			return current, nil
		}
		p, err := task.ParsePriority(v)
		if err != nil {
			r.displayError(err)
			continue
		}
		return p, nil
	}
}

// pickPriority runs the arrow-key selector. The selector reads stdin in raw
// mode, so readline is closed for the duration and recreated afterwards.
func (r *REPL) pickPriority(current task.Priority) (task.Priority, error) {
	r.rl.Close()

	p, err := ui.SelectPriority(current, r.config.UI.ColoredOutput)

	rl, rlErr := setupReadline()
	if rlErr != nil {
		return 0, fmt.Errorf("failed to setup readline: %w", rlErr)
	}
	r.rl = rl

	if errors.Is(err, ui.ErrCancelled) {
		return 0, errAborted
	}
	return p, err
}

func checkDate(s string) error {
	if _, ok := task.ParseDate(s); !ok {
		return &task.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return nil
}

func checkTime(s string) error {
	if _, ok := task.ParseTime(s); !ok {
		return &task.ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not a HH:MM time", s)}
	}
	return nil
}

func (r *REPL) promptYesNo(field string, current bool) (bool, error) {
	def := "y/N"
	if current {
		def = "Y/n"
	}
	for {
		v, err := r.prompt(field, def)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(v) {
		case "":
			return current, nil
		case "y", "yes", "on":
			return true, nil
		case "n", "no", "off":
			return false, nil
		}
		r.displayError(errors.New("answer y or n"))
	}
}

var errUsage = errors.New("usage")

func parseID(args, command string) (int64, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, fmt.Errorf("%w: %s <id>", errUsage, command)
	}
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", args)
	}
	return id, nil
}

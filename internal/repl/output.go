package repl

import (
	"errors"
	"fmt"

	"github.com/notexe/todo/internal/task"
)

func (r *REPL) displayTasks(tasks []task.Task) {
	fmt.Fprintln(r.out, r.formatter.FormatTaskList(tasks))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayTask(t task.Task) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.formatter.FormatTaskDetail(t))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayError(err error) {
	if errors.Is(err, errAborted) {
		fmt.Fprintln(r.out, r.formatter.FormatSystem("Cancelled."))
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintln(r.out, r.formatter.FormatError(err))
	fmt.Fprintln(r.out)
}

func (r *REPL) displayWelcome() {
	fmt.Fprint(r.out, r.formatter.FormatWelcome(r.config.DB.Path))
}

func (r *REPL) displayHelp() {
	fmt.Fprint(r.out, r.formatter.FormatHelp())
}

func (r *REPL) displaySuccess(msg string) {
	fmt.Fprintln(r.out, r.formatter.FormatSuccess(msg))
	fmt.Fprintln(r.out)
}

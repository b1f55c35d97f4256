package repl

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/notexe/todo/internal/config"
	"github.com/notexe/todo/internal/task"
	"github.com/notexe/todo/internal/ui"
	"golang.org/x/term"
)

// TaskStore is the subset of *task.Store the REPL drives.
type TaskStore interface {
	Create(t task.Task) (int64, error)
	List() ([]task.Task, error)
	Get(id int64) (task.Task, error)
	Update(id int64, t task.Task) error
	Delete(id int64) error
}

// LineReader reads one line of user input. *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

type REPL struct {
	store     TaskStore
	config    *config.Config
	rl        LineReader
	out       io.Writer
	formatter *ui.Formatter

	// selectPriority asks the user for a priority. It reads through rl unless
	// stdin is a terminal, where the arrow-key selector is used.
	selectPriority func(current task.Priority) (task.Priority, error)
}

func NewREPL(store TaskStore, cfg *config.Config) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	r := newREPL(store, cfg, rl, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		r.selectPriority = r.pickPriority
	}
	return r, nil
}

func newREPL(store TaskStore, cfg *config.Config, rl LineReader, out io.Writer) *REPL {
	r := &REPL{
		store:     store,
		config:    cfg,
		rl:        rl,
		out:       out,
		formatter: ui.NewFormatter(cfg.UI.ColoredOutput, cfg.UI.Markdown, cfg.UI.WordWrap),
	}
	r.selectPriority = r.promptPriority
	return r
}

func (r *REPL) Start(ctx context.Context) error {
	// rl is replaced while the priority selector runs.
	defer func() { r.rl.Close() }()

	r.displayWelcome()
	if err := r.handleCommand("/list", ""); err != nil {
		r.displayError(err)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		r.rl.SetPrompt(r.formatter.FormatPrompt())
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if !isCommand {
			r.displayError(fmt.Errorf("unknown input %q (type /help for available commands)", input))
			continue
		}

		if command == "/quit" || command == "/exit" || command == "/q" {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}

		if err := r.handleCommand(command, args); err != nil {
			log.Debug("command failed", "command", command, "err", err)
			r.displayError(err)
		}
	}
}

func (r *REPL) Stop() {
	r.rl.Close()
}

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/list", "/ls", "/l":
		return r.handleList()

	case "/add", "/a", "/new":
		return r.handleAdd(args)

	case "/edit", "/e":
		return r.handleEdit(args)

	case "/show", "/s":
		return r.handleShow(args)

	case "/delete", "/del", "/rm":
		return r.handleDelete(args)

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

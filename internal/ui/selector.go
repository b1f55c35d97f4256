package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/todo/internal/task"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user aborts a selection with Ctrl+C.
var ErrCancelled = errors.New("cancelled")

// SelectorOption represents a single option in the selector
type SelectorOption struct {
	Label       string
	Description string
}

// Selector provides an arrow-key navigable single-choice menu. When stdin is
// not a terminal it falls back to a numbered prompt.
type Selector struct {
	question string
	options  []SelectorOption
	selected int
	colored  bool

	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	optionStyle   lipgloss.Style
	dimStyle      lipgloss.Style
	questionStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

// NewSelector creates a selector with the cursor on option initial.
func NewSelector(question string, options []SelectorOption, initial int, colored bool) *Selector {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &Selector{
		question: question,
		options:  options,
		selected: initial,
		colored:  colored,

		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		optionStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		questionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		hintStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

var priorityOptions = []SelectorOption{
	{Label: task.PriorityLow.String()},
	{Label: task.PriorityMedium.String()},
	{Label: task.PriorityHigh.String()},
}

// SelectPriority asks for a priority, starting on current.
func SelectPriority(current task.Priority, colored bool) (task.Priority, error) {
	initial := 0
	if current.Valid() {
		initial = int(current) - 1
	}
	idx, err := NewSelector("Priority", priorityOptions, initial, colored).Run()
	if err != nil {
		return 0, err
	}
	return task.Priority(idx + 1), nil
}

// Run displays the selector and returns the index of the chosen option.
func (s *Selector) Run() (int, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return s.runSimple(os.Stdin, os.Stdout)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.runSimple(os.Stdin, os.Stdout)
	}

	cleanup := func() {
		term.Restore(fd, oldState)
		fmt.Print("\033[?25h") // Show cursor
	}
	defer cleanup()

	// Hide cursor
	fmt.Print("\033[?25l")

	totalLines := len(s.options) + 3
	s.printMenu()

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}

		done := false
		switch b {
		case 13, 10, ' ': // Enter or Space
			done = true
		case 3: // Ctrl+C
			s.clearMenu(totalLines)
			return 0, ErrCancelled
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case 27: // Escape sequence
			b2, _ := reader.ReadByte()
			if b2 == '[' {
				b3, _ := reader.ReadByte()
				switch b3 {
				case 'A': // Up
					s.moveUp()
				case 'B': // Down
					s.moveDown()
				}
			}
		default:
			if idx, ok := s.digitIndex(b); ok {
				s.selected = idx
				done = true
			}
		}

		s.clearMenu(totalLines)
		if done {
			return s.selected, nil
		}
		s.printMenu()
	}
}

func (s *Selector) digitIndex(b byte) (int, bool) {
	if b < '1' || b > '9' {
		return 0, false
	}
	idx := int(b - '1')
	return idx, idx < len(s.options)
}

func (s *Selector) printMenu() {
	var sb strings.Builder

	sb.WriteString(s.render(s.questionStyle, s.question))
	sb.WriteString("\r\n")
	sb.WriteString(s.render(s.hintStyle, "[j/k or arrows] move  [1-9] pick  [enter] select"))
	sb.WriteString("\r\n\r\n")

	for i, opt := range s.options {
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}

		if i == s.selected {
			sb.WriteString(s.render(s.cursorStyle, "> "))
			sb.WriteString(s.render(s.selectedStyle, label))
		} else {
			sb.WriteString(s.render(s.dimStyle, "  "))
			sb.WriteString(s.render(s.optionStyle, label))
		}
		sb.WriteString("\r\n")
	}

	fmt.Print(sb.String())
	os.Stdout.Sync()
}

func (s *Selector) render(style lipgloss.Style, text string) string {
	if s.colored {
		return style.Render(text)
	}
	return text
}

func (s *Selector) clearMenu(lines int) {
	for i := 0; i < lines; i++ {
		fmt.Print("\033[A\033[2K\r")
	}
	os.Stdout.Sync()
}

// runSimple reads a 1-based option number. Empty input keeps the current
// selection.
func (s *Selector) runSimple(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprintln(out, s.question)
	for i, opt := range s.options {
		marker := " "
		if i == s.selected {
			marker = "*"
		}
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}
		fmt.Fprintf(out, " %s[%d] %s\n", marker, i+1, label)
	}
	fmt.Fprint(out, "Enter number: ")

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		if errors.Is(err, io.EOF) {
			return s.selected, nil
		}
		return 0, err
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return s.selected, nil
	}
	if len(input) == 1 {
		if idx, ok := s.digitIndex(input[0]); ok {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("invalid choice %q (enter 1-%d)", input, len(s.options))
}

func (s *Selector) moveUp() {
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = len(s.options) - 1
	}
}

func (s *Selector) moveDown() {
	if s.selected < len(s.options)-1 {
		s.selected++
	} else {
		s.selected = 0
	}
}

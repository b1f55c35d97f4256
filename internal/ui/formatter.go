package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/notexe/todo/internal/task"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")) // Soft blue border

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	priorityStyles = map[task.Priority]lipgloss.Style{
		task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("222")),
		task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	}
)

const alarmMark = "⏰"

type Formatter struct {
	colored  bool
	markdown bool
	wordWrap int
}

func NewFormatter(colored, markdown bool, wordWrap int) *Formatter {
	if wordWrap <= 0 {
		wordWrap = 80
	}
	return &Formatter{
		colored:  colored,
		markdown: markdown,
		wordWrap: wordWrap,
	}
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return SuccessStyle.Render(msg)
	}
	return msg
}

// FormatPriority renders the priority label, colored by urgency.
func (f *Formatter) FormatPriority(p task.Priority) string {
	label := p.String()
	if !f.colored {
		return label
	}
	style, ok := priorityStyles[p]
	if !ok {
		style = priorityStyles[task.PriorityLow]
	}
	return style.Render(label)
}

// FormatTaskList renders tasks as a table in the order given. Callers pass
// the output of task.Sort.
func (f *Formatter) FormatTaskList(tasks []task.Task) string {
	if len(tasks) == 0 {
		return f.FormatInfo("No tasks yet. Use /add <title> to create one.")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		alarm := ""
		if t.HasAlarm {
			alarm = alarmMark
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Priority.String(),
			task.FormatWhen(t),
			t.Title,
			alarm,
		})
	}

	tbl := table.New().
		Headers("ID", "PRIORITY", "WHEN", "TITLE", "").
		Rows(rows...)

	if f.colored {
		tbl = tbl.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(BorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				base := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return base.Inherit(HeaderStyle)
				}
				if col == 1 && row >= 0 && row < len(tasks) {
					if style, ok := priorityStyles[tasks[row].Priority]; ok {
						return base.Inherit(style)
					}
				}
				if col == 0 {
					return base.Inherit(DimStyle)
				}
				return base
			})
	} else {
		tbl = tbl.
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingRight(2)
			})
	}

	return tbl.String()
}

// FormatTaskDetail renders a single task. The description is rendered as
// markdown when enabled.
func (f *Formatter) FormatTaskDetail(t task.Task) string {
	label := func(s string) string {
		if f.colored {
			return DimStyle.Render(s)
		}
		return s
	}

	title := fmt.Sprintf("#%d %s", t.ID, t.Title)
	if f.colored {
		title = HeaderStyle.Render(title)
	}

	lines := []string{
		title,
		label("Priority: ") + f.FormatPriority(t.Priority),
	}
	if when := task.FormatWhen(t); when != "" {
		lines = append(lines, label("When:     ")+when)
	}
	if t.HasAlarm {
		lines = append(lines, label("Alarm:    ")+"on "+alarmMark)
	}

	if t.Description != "" {
		lines = append(lines, "", f.renderDescription(t.Description))
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) renderDescription(desc string) string {
	if !f.markdown {
		return desc
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(f.wordWrap)}
	if f.colored {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return desc
	}
	out, err := renderer.Render(desc)
	if err != nil {
		return desc
	}
	return strings.Trim(out, "\n")
}

func (f *Formatter) FormatWelcome(dbPath string) string {
	title := "Todo"
	dbLine := "Database: " + dbPath
	helpLine := "Type /help for commands"

	if !f.colored {
		return strings.Join([]string{"", title, dbLine, helpLine, ""}, "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	content := strings.Join([]string{
		HeaderStyle.Render(title),
		DimStyle.Render("Database: ") + lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Render(dbPath),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(helpLine),
	}, "\n")

	return "\n" + box.Render(content) + "\n\n"
}

func (f *Formatter) FormatHelp() string {
	commands := [][2]string{
		{"/list", "Show tasks ordered by date, time and priority"},
		{"/add <title>", "Create a task (prompts for the other fields)"},
		{"/edit <id>", "Edit every field of a task"},
		{"/show <id>", "Show one task with its description"},
		{"/delete <id>", "Delete a task"},
		{"/help", "Show this help"},
		{"/quit", "Exit"},
	}

	if f.colored {
		cmdStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
		descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

		lines := []string{"", HeaderStyle.Render("Commands"), ""}
		for _, c := range commands {
			lines = append(lines, "  "+cmdStyle.Render(fmt.Sprintf("%-14s", c[0]))+" "+descStyle.Render(c[1]))
		}
		lines = append(lines,
			"",
			HeaderStyle.Render("Tips"),
			DimStyle.Render("  Dates are YYYY-MM-DD, times are 24-hour HH:MM"),
			DimStyle.Render("  Leave a prompt empty to keep the shown value; enter - to clear it"),
			DimStyle.Render("  Ctrl+C or Ctrl+D to exit"),
			"",
		)
		return strings.Join(lines, "\n")
	}

	lines := []string{"", "Commands:"}
	for _, c := range commands {
		lines = append(lines, fmt.Sprintf("  %-14s - %s", c[0], c[1]))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// FormatPrompt returns a styled input prompt
func (f *Formatter) FormatPrompt() string {
	if f.colored {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
		arrowStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)
		return promptStyle.Render("todo") + arrowStyle.Render(" > ")
	}
	return "todo > "
}

// FormatFieldPrompt returns the prompt used while collecting a task field.
func (f *Formatter) FormatFieldPrompt(field, current string) string {
	p := field
	if current != "" {
		p += " [" + current + "]"
	}
	p += ": "
	if f.colored {
		return AccentStyle.Render(p)
	}
	return p
}

// Package ui provides the terminal board and the styles shared with the
// text menu.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasktrack/internal/logging"
	"github.com/nibzard/tasktrack/internal/todo"
)

const defaultBoardWidth = 80

// BoardOptions configures the board.
type BoardOptions struct {
	Sort   todo.SortKey
	Styles Styles
	Log    *logging.Session
}

// RunBoard starts the board over store and blocks until the user quits or
// ctx is cancelled.
func RunBoard(ctx context.Context, store *todo.Store, opts BoardOptions) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	if opts.Styles.Priority == nil {
		opts.Styles = NewStyles(NewRenderer(os.Stdout, ColorAuto))
	}

	model := newBoardModel(store, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type boardModel struct {
	store    *todo.Store
	styles   Styles
	log      *logging.Session
	sort     todo.SortKey
	filter   todo.Status // empty shows every status
	rows     []todo.Task
	cursor   int
	width    int
	showHelp bool
	message  string
}

func newBoardModel(store *todo.Store, opts BoardOptions) *boardModel {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	styles := opts.Styles
	if styles.Priority == nil {
		styles = PlainStyles()
	}
	sort := opts.Sort
	if sort == "" {
		sort = todo.SortByPriority
	}
	m := &boardModel{
		store:  store,
		styles: styles,
		log:    log,
		sort:   sort,
		width:  defaultBoardWidth,
	}
	m.refresh()
	return m
}

func (m *boardModel) Init() tea.Cmd {
	return nil
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "h", "?":
			m.showHelp = !m.showHelp
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "1":
			m.setSort(todo.SortByPriority)
		case "2":
			m.setSort(todo.SortByDueDate)
		case "3":
			m.setSort(todo.SortByCreatedAt)
		case "p":
			m.setFilter(todo.StatusPending)
		case "c":
			m.setFilter(todo.StatusCompleted)
		case "0":
			m.setFilter("")
		case " ", "enter", "x":
			m.toggleSelected()
		}
	}
	return m, nil
}

func (m *boardModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		writeBoardHelp(&b)
		m.writeFooter(&b)
		return b.String()
	}

	m.writeSummary(&b)
	b.WriteString(fmt.Sprintf("Sort: %s", m.sort))
	if m.filter != "" {
		b.WriteString(fmt.Sprintf("  Filter: %s (0 to clear)", m.filter))
	}
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		if m.store.Len() == 0 {
			b.WriteString("  No tasks yet.\n\n")
		} else {
			b.WriteString("  No tasks match the filter.\n\n")
		}
	} else {
		today := m.store.Today()
		for i := range m.rows {
			line := m.formatRow(&m.rows[i], today)
			if i == m.cursor {
				line = m.styles.Selected.Render(line)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString(m.message + "\n\n")
	}
	m.writeFooter(&b)
	return b.String()
}

// refresh reloads the visible rows and keeps the cursor in range.
func (m *boardModel) refresh() {
	var f todo.Filter
	if m.filter != "" {
		status := m.filter
		f.Status = &status
	}
	m.rows = todo.Sort(m.store.Search(f), m.sort)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *boardModel) setSort(key todo.SortKey) {
	m.sort = key
	m.message = ""
	m.refresh()
}

func (m *boardModel) setFilter(status todo.Status) {
	m.filter = status
	m.message = ""
	m.refresh()
}

func (m *boardModel) toggleSelected() {
	if len(m.rows) == 0 {
		return
	}
	id := m.rows[m.cursor].ID
	status, err := m.store.ToggleStatus(id)
	if err != nil {
		m.log.Warn("toggle task failed", "id", id, "err", err)
		m.message = m.styles.Error.Render("Error: " + err.Error())
		return
	}
	m.log.Debug("task toggled", "id", id, "status", string(status))
	if status == todo.StatusCompleted {
		m.message = m.styles.Success.Render(fmt.Sprintf("Task %d marked as completed!", id))
	} else {
		m.message = fmt.Sprintf("Task %d marked as pending.", id)
	}
	m.refresh()
}

func (m *boardModel) writeTitle(b *strings.Builder) {
	title := "Task Board"
	b.WriteString(m.styles.Header.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *boardModel) writeSummary(b *strings.Builder) {
	sum := m.store.Summary()
	b.WriteString(fmt.Sprintf("  Total: %d  Pending: %d  Completed: %d  Overdue: %d\n",
		sum.Total, sum.Pending, sum.Completed, sum.Overdue))
	if sum.AllCompleted() {
		b.WriteString("  " + m.styles.Success.Render("All tasks completed!") + "\n")
	}
	b.WriteString("\n")
}

func (m *boardModel) formatRow(t *todo.Task, today todo.Date) string {
	icon := " "
	switch {
	case t.Status == todo.StatusCompleted:
		icon = "x"
	case t.IsOverdue(today):
		icon = "!"
	}
	priority := m.styles.PriorityStyle(t.Priority).Render(PadRight(t.Priority.String(), 6))

	due := ""
	if t.DueDate != nil {
		due = "  due " + t.DueDate.String()
	}
	prefix := fmt.Sprintf("  [%s] #%-3d ", icon, t.ID)
	room := m.width - len(prefix) - 7 - len(due)
	if room < 10 {
		room = 10
	}
	return prefix + priority + " " + Truncate(t.Title, room) + due
}

func (m *boardModel) writeFooter(b *strings.Builder) {
	b.WriteString(m.styles.Muted.Render("Press h for help | q to quit") + "\n")
}

func writeBoardHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c     Quit\n")
	b.WriteString("  h, ?          Toggle this help screen\n")
	b.WriteString("  up/k, down/j  Move selection\n")
	b.WriteString("  space, enter  Toggle selected task\n")
	b.WriteString("  1             Sort by priority\n")
	b.WriteString("  2             Sort by due date\n")
	b.WriteString("  3             Sort by creation date\n")
	b.WriteString("  p             Show pending tasks\n")
	b.WriteString("  c             Show completed tasks\n")
	b.WriteString("  0             Clear filter\n\n")
}

// Package menu implements the interactive numbered text menu.
//
// The menu is line oriented: it reads one answer per line from any
// io.Reader and writes to any io.Writer, so it works in a terminal, behind
// a pipe and in scripted tests alike.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nibzard/tasktrack/internal/logging"
	"github.com/nibzard/tasktrack/internal/todo"
	"github.com/nibzard/tasktrack/internal/ui"
)

const (
	ruleWidth  = 60
	titleWidth = 70
	appTitle   = "Task Tracker"
)

// Options configures a Menu.
type Options struct {
	// Sort is the ordering offered as the default in View Tasks.
	Sort todo.SortKey
	// ConfirmDelete asks for y/n before deleting.
	ConfirmDelete bool
	Styles        ui.Styles
	// Log receives one record per store operation. Nil discards.
	Log *logging.Session
}

// Menu drives a todo.Store from line input.
type Menu struct {
	store  *todo.Store
	in     *lineInput
	out    io.Writer
	opts   Options
	styles ui.Styles
	log    *logging.Session
}

// New creates a menu over store reading from r and writing to w.
func New(store *todo.Store, r io.Reader, w io.Writer, opts Options) *Menu {
	if opts.Sort == "" {
		opts.Sort = todo.SortByPriority
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	styles := opts.Styles
	if styles.Priority == nil {
		styles = ui.PlainStyles()
	}
	return &Menu{
		store:  store,
		in:     newLineInput(r),
		out:    w,
		opts:   opts,
		styles: styles,
		log:    log,
	}
}

// Run shows the main menu until the user exits, input ends or ctx is
// cancelled. End of input is treated like choosing Exit.
func (m *Menu) Run(ctx context.Context) error {
	defer m.in.stop()

	for {
		m.showMainMenu()
		choice, err := m.prompt(ctx, "Your choice: ")
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case "0":
			m.exit()
			return nil
		case "1":
			err = m.addTask(ctx)
		case "2":
			err = m.deleteTask(ctx)
		case "3":
			err = m.updateTask(ctx)
		case "4":
			err = m.viewTasks(ctx)
		case "5":
			err = m.markComplete(ctx)
		case "6":
			err = m.searchTasks(ctx)
		case "7":
			m.showSummary()
		default:
			m.printError("Invalid choice. Please enter a number between 0 and 7.")
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		m.log.Debug("input closed")
		m.println()
		m.exit()
		return nil
	}
	return err
}

func (m *Menu) showMainMenu() {
	m.printHeader(appTitle)
	m.println()
	m.println("[1] Add Task")
	m.println("[2] Delete Task")
	m.println("[3] Update Task")
	m.println("[4] View Tasks")
	m.println("[5] Mark Complete")
	m.println("[6] Search Tasks")
	m.println("[7] Task Summary")
	m.println("[0] Exit")
	m.println()
	m.println(m.styles.Header.Render(strings.Repeat("=", ruleWidth)))
}

func (m *Menu) section(title string) {
	m.println()
	m.println(title)
	m.println(strings.Repeat("-", 50))
}

func (m *Menu) addTask(ctx context.Context) error {
	m.section("[1] Add Task")

	title, err := m.promptTitle(ctx, "Enter task title: ")
	if err != nil {
		return err
	}
	description, err := m.prompt(ctx, "Enter description (optional, press Enter to skip): ")
	if err != nil {
		return err
	}
	priority, err := m.promptPriority(ctx)
	if err != nil {
		return err
	}
	due, err := m.promptDueDate(ctx)
	if err != nil {
		return err
	}

	task, err := m.store.Create(todo.NewTask{
		Title:       title,
		Description: description,
		Priority:    priority,
		DueDate:     due,
	})
	if err != nil {
		m.log.Warn("create task failed", "err", err)
		m.println()
		m.printError(message(err))
		return nil
	}
	m.log.Debug("task created", "id", task.ID, "priority", task.Priority.String())
	m.println()
	m.printSuccess("Task added successfully!")
	m.println()
	m.displayTask(task, true)
	return nil
}

func (m *Menu) deleteTask(ctx context.Context) error {
	if m.store.Len() == 0 {
		m.println()
		m.println("No tasks available to delete.")
		return nil
	}
	m.section("[2] Delete Task")

	task, ok, err := m.promptTask(ctx, "Enter task ID to delete: ", "Task not found. Invalid task ID.")
	if err != nil || !ok {
		return err
	}
	m.println()
	m.displayTask(task, true)

	if m.opts.ConfirmDelete {
		answer, err := m.prompt(ctx, "Are you sure you want to delete this task? (y/n): ")
		if err != nil {
			return err
		}
		if !isYes(answer) {
			m.println()
			m.println("Task not deleted.")
			return nil
		}
	}

	if _, err := m.store.Delete(task.ID); err != nil {
		m.log.Warn("delete task failed", "id", task.ID, "err", err)
		m.printError(message(err))
		return nil
	}
	m.log.Debug("task deleted", "id", task.ID)
	m.println()
	m.printSuccess("Task deleted successfully!")
	return nil
}

func (m *Menu) updateTask(ctx context.Context) error {
	if m.store.Len() == 0 {
		m.println()
		m.println("No tasks available to update.")
		return nil
	}
	m.section("[3] Update Task")

	task, ok, err := m.promptTask(ctx, "Enter task ID to update: ", "Task not found. Invalid task ID.")
	if err != nil || !ok {
		return err
	}
	m.println()
	m.displayTask(task, true)

	m.println("Select field to update:")
	m.println("[1] Title")
	m.println("[2] Description")
	m.println("[3] Priority")
	m.println("[4] Due Date")
	m.println("[0] Cancel")
	m.println()

	for {
		choice, err := m.prompt(ctx, "Your choice: ")
		if err != nil {
			return err
		}

		var u todo.Update
		var done string
		switch choice {
		case "0":
			m.println()
			m.println("Update cancelled.")
			return nil
		case "1":
			title, err := m.promptTitle(ctx, "Enter new title: ")
			if err != nil {
				return err
			}
			u.Title = &title
			done = "Title updated!"
		case "2":
			description, err := m.prompt(ctx, "Enter new description (press Enter to clear): ")
			if err != nil {
				return err
			}
			u.Description = &description
			done = "Description updated!"
			if description == "" {
				done = "Description cleared!"
			}
		case "3":
			priority, err := m.promptPriority(ctx)
			if err != nil {
				return err
			}
			u.Priority = &priority
			done = "Priority updated!"
		case "4":
			due, err := m.promptDueDate(ctx)
			if err != nil {
				return err
			}
			if due == nil {
				u.ClearDueDate = true
				done = "Due date cleared!"
			} else {
				u.DueDate = due
				done = "Due date updated!"
			}
		default:
			m.printError("Invalid choice. Please enter a number between 0 and 4.")
			continue
		}

		if _, err := m.store.Update(task.ID, u); err != nil {
			m.log.Warn("update task failed", "id", task.ID, "err", err)
			m.println()
			m.printError(message(err))
			return nil
		}
		m.log.Debug("task updated", "id", task.ID, "field", choice)
		m.println()
		m.printSuccess(done)
		return nil
	}
}

func (m *Menu) viewTasks(ctx context.Context) error {
	m.section("[4] View Tasks")
	if m.store.Len() == 0 {
		m.println()
		m.println("No tasks yet. Use [1] to add your first task!")
		return nil
	}

	by, err := m.promptSort(ctx)
	if err != nil {
		return err
	}
	tasks := m.store.Sorted(by)
	m.log.Debug("tasks listed", "sort", string(by), "count", len(tasks))

	m.println()
	m.printf("All Tasks (%s)\n", sortLabel(by))
	m.println(strings.Repeat("=", ruleWidth))
	for _, task := range tasks {
		m.displayTask(task, false)
	}
	m.println(strings.Repeat("=", ruleWidth))
	m.printf("Total: %d tasks\n", len(tasks))
	return nil
}

func (m *Menu) markComplete(ctx context.Context) error {
	if m.store.Len() == 0 {
		m.println()
		m.println("No tasks available. Add tasks first using [1] Add Task.")
		return nil
	}
	m.section("[5] Mark Complete")

	task, ok, err := m.promptTask(ctx, "Enter task ID to toggle: ", "Invalid task number. Please enter a valid task ID.")
	if err != nil || !ok {
		return err
	}
	status, err := m.store.ToggleStatus(task.ID)
	if err != nil {
		m.log.Warn("toggle task failed", "id", task.ID, "err", err)
		m.printError(message(err))
		return nil
	}
	m.log.Debug("task toggled", "id", task.ID, "status", string(status))

	m.println()
	if status == todo.StatusCompleted {
		m.printSuccess("Task marked as completed!")
	} else {
		m.println("Task marked as pending.")
	}
	return nil
}

func (m *Menu) searchTasks(ctx context.Context) error {
	if m.store.Len() == 0 {
		m.println()
		m.println("No tasks available to search.")
		return nil
	}
	m.section("[6] Search Tasks")

	m.println()
	m.println("Search by:")
	m.println("[1] Keyword")
	m.println("[2] Priority")
	m.println("[3] Status")

	var filter todo.Filter
	var term string
	for {
		choice, err := m.prompt(ctx, "Your choice (1-3): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			term, err = m.prompt(ctx, "Enter keyword to search: ")
			if err != nil {
				return err
			}
			filter.Keyword = term
		case "2":
			term, err = m.prompt(ctx, "Enter priority (High/Medium/Low): ")
			if err != nil {
				return err
			}
			if term != "" {
				p, err := todo.ValidatePriority(term)
				if err != nil {
					m.printError(message(err))
					return nil
				}
				filter.Priority = &p
				term = p.String()
			}
		case "3":
			term, err = m.prompt(ctx, "Enter status (completed/pending): ")
			if err != nil {
				return err
			}
			if term != "" {
				s, err := todo.ParseStatus(term)
				if err != nil {
					m.printError(message(err))
					return nil
				}
				filter.Status = &s
				term = string(s)
			}
		default:
			m.printError("Invalid choice. Please enter a number between 1 and 3.")
			continue
		}
		break
	}

	results := m.store.Search(filter)
	m.log.Debug("tasks searched", "term", term, "matches", len(results))

	m.println()
	if len(results) == 0 {
		m.printf("No tasks found matching '%s'.\n", term)
		m.println("Try a different search.")
		return nil
	}
	m.printf("Search Results: '%s'\n", term)
	m.println(strings.Repeat("=", ruleWidth))
	for _, task := range results {
		m.displayTask(task, false)
	}
	m.println(strings.Repeat("=", ruleWidth))
	m.printf("Found %d task(s) matching '%s'\n", len(results), term)
	return nil
}

func (m *Menu) showSummary() {
	m.section("[7] Task Summary")
	sum := m.store.Summary()

	m.println()
	m.println("Task Summary")
	m.println(strings.Repeat("=", ruleWidth))
	m.printf("%s %5d\n", ui.PadRight("Total Tasks:", 16), sum.Total)
	m.printf("%s %5d | %3d%%\n", ui.PadRight("Completed:", 16), sum.Completed, percent(sum.Completed, sum.Total))
	m.printf("%s %5d | %3d%%\n", ui.PadRight("Pending:", 16), sum.Pending, percent(sum.Pending, sum.Total))
	if sum.Pending > 0 {
		m.printf("%s %5d | %3d%% of pending\n", ui.PadRight("Overdue:", 16), sum.Overdue, percent(sum.Overdue, sum.Pending))
	} else {
		m.printf("%s %5d\n", ui.PadRight("Overdue:", 16), sum.Overdue)
	}

	if sum.Total > 0 {
		m.println()
		m.println("Priority Breakdown:")
		for _, p := range todo.Priorities() {
			n := sum.ByPriority[p]
			label := m.styles.PriorityStyle(p).Render(ui.PadRight(p.String()+":", 16))
			m.printf("%s %5d | %3d%%\n", label, n, percent(n, sum.Total))
		}
	}
	m.println(strings.Repeat("=", ruleWidth))

	if sum.AllCompleted() {
		m.println()
		m.printSuccess("All tasks completed!")
	}
}

func (m *Menu) exit() {
	sum := m.store.Summary()
	m.section("[0] Exit")
	m.println()
	m.println("Goodbye!")
	m.println()
	m.println("Task Session Summary:")
	m.println(strings.Repeat("-", 21))
	m.printf("Total Tasks: %d\n", sum.Total)
	m.printf("Completed: %d\n", sum.Completed)
	m.printf("Pending: %d\n", sum.Pending)
	m.println()
	m.println(m.styles.Muted.Render("Tasks are kept in memory and are lost when the program exits."))
	m.println(strings.Repeat("=", ruleWidth))
	m.log.Debug("session summary", "total", sum.Total, "completed", sum.Completed, "pending", sum.Pending)
}

// displayTask prints one task block. Long titles are cut unless full is set.
func (m *Menu) displayTask(t todo.Task, full bool) {
	today := m.store.Today()

	marker := "[ ] pending"
	switch {
	case t.Status == todo.StatusCompleted:
		marker = "[x] completed"
	case t.IsOverdue(today):
		marker = "[!] OVERDUE"
	}
	head := fmt.Sprintf("[%d] %s %s", t.ID, ui.PadRight(strings.ToUpper(t.Priority.String()), 8), marker)
	m.println(m.styles.PriorityStyle(t.Priority).Render(head))

	title := t.Title
	if !full {
		title = ui.Truncate(title, titleWidth)
	}
	m.println("    " + title)
	if t.HasDescription() {
		m.println("    Description: " + *t.Description)
	}
	m.printf("    Priority: %s | Status: %s\n", t.Priority, t.Status)
	if t.DueDate != nil {
		due := t.DueDate.String()
		if t.IsOverdue(today) {
			due += " (OVERDUE)"
		}
		m.println("    Due: " + due)
	} else {
		m.println("    Created: " + t.CreatedAt.Format("2006-01-02 15:04"))
	}
	m.println()
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	return m.in.next(ctx)
}

// promptTitle asks until the answer is a valid title.
func (m *Menu) promptTitle(ctx context.Context, label string) (string, error) {
	for {
		title, err := m.prompt(ctx, label)
		if err != nil {
			return "", err
		}
		if title == "" {
			m.printError("This field cannot be empty. Please try again.")
			continue
		}
		if err := todo.ValidateTitle(title); err != nil {
			m.printError(message(err))
			continue
		}
		return title, nil
	}
}

// promptPriority asks until the answer names a priority. Blank means
// Medium.
func (m *Menu) promptPriority(ctx context.Context) (todo.Priority, error) {
	for {
		answer, err := m.prompt(ctx, "Enter priority (High/Medium/Low, default Medium): ")
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return todo.PriorityMedium, nil
		}
		p, err := todo.ValidatePriority(answer)
		if err != nil {
			m.printError(message(err))
			continue
		}
		return p, nil
	}
}

// promptDueDate asks until the answer is blank or a date that is not in
// the past.
func (m *Menu) promptDueDate(ctx context.Context) (*todo.Date, error) {
	for {
		answer, err := m.prompt(ctx, "Enter due date (YYYY-MM-DD, optional, press Enter to skip): ")
		if err != nil {
			return nil, err
		}
		due, err := todo.ValidateDueDate(answer, m.store.Today())
		if err != nil {
			m.printError(message(err))
			continue
		}
		return due, nil
	}
}

// promptTask reads a task ID and looks it up. The boolean is false when
// the answer is not a known ID; notFound has then been printed.
func (m *Menu) promptTask(ctx context.Context, label, notFound string) (todo.Task, bool, error) {
	answer, err := m.prompt(ctx, label)
	if err != nil {
		return todo.Task{}, false, err
	}
	id, convErr := strconv.Atoi(answer)
	if convErr == nil {
		if task, ok := m.store.Get(id); ok {
			return task, true, nil
		}
	}
	m.log.Warn("task lookup failed", "input", answer)
	m.println()
	m.printError(notFound)
	return todo.Task{}, false, nil
}

func (m *Menu) promptSort(ctx context.Context) (todo.SortKey, error) {
	keys := todo.SortKeys()
	m.println()
	m.println("Sort by:")
	for i, key := range keys {
		line := fmt.Sprintf("[%d] %s", i+1, sortLabel(key))
		if key == m.opts.Sort {
			line += " (default)"
		}
		m.println(line)
	}
	m.println()

	for {
		answer, err := m.prompt(ctx, "Your choice (1-3): ")
		if err != nil {
			return "", err
		}
		if answer == "" {
			return m.opts.Sort, nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(keys) {
			return keys[n-1], nil
		}
		m.printError("Invalid choice. Please enter a number between 1 and 3.")
	}
}

func (m *Menu) printHeader(text string) {
	rule := strings.Repeat("=", ruleWidth)
	m.println(m.styles.Header.Render(rule))
	m.println(m.styles.Header.Render("      " + text))
	m.println(m.styles.Header.Render(rule))
}

func (m *Menu) printError(msg string) {
	m.println(m.styles.Error.Render("Error: " + msg))
}

func (m *Menu) printSuccess(msg string) {
	m.println(m.styles.Success.Render(msg))
}

func (m *Menu) println(a ...interface{}) {
	fmt.Fprintln(m.out, a...)
}

func (m *Menu) printf(format string, a ...interface{}) {
	fmt.Fprintf(m.out, format, a...)
}

// message returns the user-facing text of err without the field prefix
// carried by validation errors.
func message(err error) string {
	var ve *todo.ValidationError
	if errors.As(err, &ve) {
		return ve.Err.Error()
	}
	if errors.Is(err, todo.ErrTaskNotFound) {
		return "Task not found. Invalid task ID."
	}
	return err.Error()
}

func sortLabel(key todo.SortKey) string {
	switch key {
	case todo.SortByDueDate:
		return "Due Date"
	case todo.SortByCreatedAt:
		return "Creation Date"
	default:
		return "Priority"
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return n * 100 / total
}

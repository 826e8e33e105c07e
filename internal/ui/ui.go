package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"maru/internal/config"
	"maru/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
)

type pane int

const (
	panePending pane = iota
	paneCompleted
)

// formState backs both the add and the edit dialog: two fields, name and
// due date, stepped through with one shared text input.
type formState struct {
	editID int64 // 0 when adding
	name   string
	date   string
	index  int
}

type noticeMsg task.Notification

type Model struct {
	store      *task.Store
	drag       *task.DragSession
	cfg        config.Config
	styles     styles
	mode       mode
	pane       pane
	cursor     [2]int
	input      textinput.Model
	form       *formState
	search     string
	filter     task.Status
	status     string
	notice     *task.Notification
	confirmDel bool
	pendingDel *task.Task
}

func Run(store *task.Store, cfg config.Config) error {
	filter, err := task.ParseStatus(cfg.DefaultFilter)
	if err != nil {
		filter = task.StatusAll
	}

	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		drag:   task.NewDragSession(store),
		cfg:    cfg,
		styles: newStyles(store.DarkMode()),
		input:  ti,
		mode:   modeList,
		filter: filter,
		status: "Press 'a' to add, space to toggle, 'g' to pick up a task.",
	}

	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return waitForNotice(m.store.Events())
}

func waitForNotice(ch <-chan task.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noticeMsg:
		n := task.Notification(msg)
		m.notice = &n
		return m, waitForNotice(m.store.Events())
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		bucket := m.activeBucket()
		m.cursor[m.pane] = clampCursor(m.cursor[m.pane]+1, len(bucket))
	case m.cfg.Keys.Up, "up":
		if m.cursor[m.pane] > 0 {
			m.cursor[m.pane] = clampCursor(m.cursor[m.pane]-1, len(m.activeBucket()))
		}
	case m.cfg.Keys.SwitchPane:
		m.pane = 1 - m.pane
	case m.cfg.Keys.Add:
		m.form = &formState{}
		m.mode = modeForm
		m.input.SetValue("")
		m.input.Placeholder = "Task name"
		m.input.Focus()
		m.status = "New task: name, then due date (YYYY-MM-DD). Enter to advance, esc to cancel."
	case m.cfg.Keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "No task selected"
			return m, nil
		}
		m.form = &formState{editID: t.ID, name: t.Name, date: t.Date.String()}
		m.input.SetValue(t.Name)
		m.input.Placeholder = "Task name"
		m.input.Focus()
		m.mode = modeForm
		m.status = "Edit task: enter to advance, esc to cancel."
	case m.cfg.Keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.ToggleCompletion(t.ID)
		m.cursor[m.pane] = clampCursor(m.cursor[m.pane], len(m.activeBucket()))
	case m.cfg.Keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Name)
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.search)
		m.input.Placeholder = "Search tasks"
		m.input.Focus()
		m.status = "Search: enter to apply, esc to clear."
	case m.cfg.Keys.Filter:
		m.filter = task.NextStatus(m.filter)
		m.cursor = [2]int{}
		m.status = fmt.Sprintf("Filter: %s", m.filter)
	case m.cfg.Keys.Theme:
		dark := !m.store.DarkMode()
		m.store.SetDarkMode(dark)
		m.styles = newStyles(dark)
	case m.cfg.Keys.Grab:
		return m.updateGrab()
	case "esc":
		if _, picked := m.drag.Picked(); picked {
			m.cancelGrab()
			m.status = "Pick-up cancelled"
		}
	}
	return m, nil
}

// updateGrab is the keyboard rendition of the drag gesture: first press
// picks the selected task up, second press drops it into the active pane.
func (m Model) updateGrab() (tea.Model, tea.Cmd) {
	if _, picked := m.drag.Picked(); picked {
		m.drag.Drop(m.pane == paneCompleted)
		m.cursor[m.pane] = clampCursor(m.cursor[m.pane], len(m.activeBucket()))
		return m, nil
	}
	t, ok := m.selected()
	if !ok {
		m.status = "No task to pick up"
		return m, nil
	}
	m.drag.PickUp(t.ID)
	m.status = fmt.Sprintf("Picked up %q — tab to the other list, 'g' to drop, esc to cancel.", t.Name)
	return m, nil
}

// cancelGrab drops the task back onto its current state, which clears the
// slot without mutating anything.
func (m Model) cancelGrab() {
	id, ok := m.drag.Picked()
	if !ok {
		return
	}
	if t, found := m.store.Get(id); found {
		m.drag.Drop(t.Completed)
		return
	}
	m.drag.Drop(false)
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.form = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form == nil {
			return m, nil
		}
		if m.form.index == 0 {
			m.form.name = m.input.Value()
			m.form.index = 1
			m.input.SetValue(m.form.date)
			m.input.Placeholder = "Due date (YYYY-MM-DD)"
			return m, nil
		}
		m.form.date = m.input.Value()
		return m.submitForm()
	case "tab", "shift+tab":
		if m.form == nil {
			return m, nil
		}
		if m.form.index == 0 {
			m.form.name = m.input.Value()
			m.form.index = 1
			m.input.SetValue(m.form.date)
			m.input.Placeholder = "Due date (YYYY-MM-DD)"
		} else {
			m.form.date = m.input.Value()
			m.form.index = 0
			m.input.SetValue(m.form.name)
			m.input.Placeholder = "Task name"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.form.name)
	if name == "" {
		m.status = "Name cannot be empty"
		m.form.index = 0
		m.input.SetValue(m.form.name)
		m.input.Placeholder = "Task name"
		return m, nil
	}
	date, err := task.ParseDate(m.form.date)
	if err != nil {
		m.status = "Due date must be YYYY-MM-DD"
		return m, nil
	}

	if m.form.editID != 0 {
		m.store.Update(m.form.editID, task.Patch{Name: &name, Date: &date})
	} else {
		m.store.Add(name, date)
	}
	m.form = nil
	m.mode = modeList
	m.input.Blur()
	m.status = ""
	return m, nil
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.search = ""
		m.mode = modeList
		m.input.Blur()
		m.cursor = [2]int{}
		m.status = "Search cleared"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.search = m.input.Value()
		m.mode = modeList
		m.input.Blur()
		m.cursor = [2]int{}
		m.status = ""
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel != nil {
			m.store.Delete(m.pendingDel.ID)
			m.cursor[m.pane] = clampCursor(m.cursor[m.pane], len(m.activeBucket()))
		}
		m.confirmDel = false
		m.pendingDel = nil
		m.status = ""
		return m, nil
	default:
		return m, nil
	}
}

// buckets partitions the filtered view by completion for the dual-pane
// display. This is a read-time projection; the store keeps one list.
func (m Model) buckets() (pending, completed []task.Task) {
	today := task.Today(time.Now())
	for _, t := range task.Filtered(m.store.Tasks(), m.search, m.filter, today) {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

func (m Model) activeBucket() []task.Task {
	pending, completed := m.buckets()
	if m.pane == paneCompleted {
		return completed
	}
	return pending
}

func (m Model) selected() (task.Task, bool) {
	bucket := m.activeBucket()
	if len(bucket) == 0 {
		return task.Task{}, false
	}
	return bucket[clampCursor(m.cursor[m.pane], len(bucket))], true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("maru — task list"))
	b.WriteString("\n")
	b.WriteString(m.styles.Stats.Render(m.renderStats()))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(fmt.Sprintf("filter: %s   search: %s", m.filter, emptyPlaceholder(m.search))))
	b.WriteString("\n\n")

	pending, completed := m.buckets()
	b.WriteString(m.renderPane("Pending", panePending, pending))
	b.WriteString("\n")
	b.WriteString(m.renderPane("Completed", paneCompleted, completed))

	b.WriteString("\n---\n")
	if m.mode == modeForm || m.mode == modeSearch {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.notice != nil {
		b.WriteString(m.styles.forSeverity(m.notice.Severity).Render(m.notice.Message))
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderStats() string {
	st := task.Summarize(m.store.Tasks())
	return fmt.Sprintf("%d of %d tasks completed (%d%%) • %d active",
		st.CompletedCount, st.Total, st.CompletionRate, st.ActiveCount)
}

func (m Model) renderPane(title string, p pane, tasks []task.Task) string {
	var b strings.Builder

	header := title
	if m.pane == p {
		if effect := m.drag.DragOver(); effect != "" {
			header += " [drop: " + effect + "]"
		}
	}
	b.WriteString(m.styles.PaneHeader.Render(header))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}

	today := task.Today(time.Now())
	pickedID, picked := m.drag.Picked()
	for i, t := range tasks {
		cursor := " "
		if m.pane == p && m.cursor[p] == i && m.mode == modeList {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		marker := " "
		if picked && t.ID == pickedID {
			marker = "*"
		}

		line := fmt.Sprintf("%s%s %s %s  (due %s)", cursor, marker, checkbox, t.Name, t.Date)
		switch {
		case t.Completed:
			line = m.styles.Done.Render(line)
		case t.Date.Before(today):
			line = m.styles.Overdue.Render(line)
		case m.pane == p && m.cursor[p] == i && m.mode == modeList:
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s panes • %s add • %s edit • %s toggle • %s delete • %s grab/drop • %s search • %s filter • %s theme • %s quit",
		k.Up, k.Down, k.SwitchPane, k.Add, k.Edit, k.Toggle, k.Delete, k.Grab, k.Search, k.Filter, k.Theme, k.Quit)
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(none)"
	}
	return v
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

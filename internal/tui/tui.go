// Package tui is the interactive Bubble Tea view over the task and
// session managers. Every action is persisted as it happens; nothing is
// held back until quit.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tasks"
	"github.com/idilsaglam/tada/internal/ui"
)

type screen int

const (
	screenLogin screen = iota
	screenList
	screenForm
	screenConfirm
)

type tab int

const (
	tabOpen tab = iota
	tabCompleted
)

const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusCount
)

// noticeTTL is how long a notification stays on screen.
const noticeTTL = 3 * time.Second

type clearNoticeMsg struct{ seq int }

// Options picks the initial view.
type Options struct {
	Filter tasks.Filter
	Sort   tasks.SortKey
}

// Model implements tea.Model.
type Model struct {
	tasks   *tasks.Manager
	session *session.Manager
	keys    keyMap

	screen screen
	tab    tab
	filter tasks.Filter
	sort   tasks.SortKey
	list   list.Model

	username, password textinput.Model
	loginErr           string

	form    taskForm
	confirm model.Task

	notice    *ui.Notification
	noticeSeq int

	width, height int
}

// taskForm backs both add (editingID empty) and edit.
type taskForm struct {
	editingID   string
	title, desc textinput.Model
	priority    model.Priority
	focus       int
	err         string
}

// New builds the model. Without a session it starts on the login screen.
func New(tm *tasks.Manager, sm *session.Manager, opt Options) Model {
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	user := textinput.New()
	user.Prompt = "Username: "
	user.Placeholder = "anything"
	user.CharLimit = 64

	pass := textinput.New()
	pass.Prompt = "Password: "
	pass.Placeholder = "anything"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	if opt.Filter == "" {
		opt.Filter = tasks.FilterAll
	}
	if opt.Sort == "" {
		opt.Sort = tasks.SortCreated
	}

	m := Model{
		tasks:    tm,
		session:  sm,
		keys:     keys,
		filter:   opt.Filter,
		sort:     opt.Sort,
		list:     l,
		username: user,
		password: pass,
		width:    80,
		height:   24,
	}
	m.resize()

	if sm.Authenticated() {
		m.screen = screenList
		m.refresh()
		if store.IsSampleSet(tm.Tasks()) {
			m.setNotice(ui.KindInfo, welcome(sm.Current().Username))
		}
	} else {
		m.screen = screenLogin
		m.username.Focus()
	}
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(tm *tasks.Manager, sm *session.Manager, opt Options, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(tm, sm, opt), tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func welcome(user string) string {
	return fmt.Sprintf("Welcome to tada, %s! We've prepared some sample tasks to get you started.", user)
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.screen == screenLogin {
		cmds = append(cmds, textinput.Blink)
	}
	if m.notice != nil {
		cmds = append(cmds, m.expireNotice())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

// ---------------------------------------------------
// login
// ---------------------------------------------------

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		m.loginErr = ""
		switch k.String() {
		case "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			return m, m.switchLoginFocus()
		case "enter":
			if m.username.Focused() && m.password.Value() == "" {
				return m, m.switchLoginFocus()
			}
			return m.submitLogin()
		}
	}

	var cmd tea.Cmd
	if m.username.Focused() {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchLoginFocus() tea.Cmd {
	if m.username.Focused() {
		m.username.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.username.Focus()
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	err := m.session.Login(m.username.Value(), m.password.Value())
	switch {
	case errors.Is(err, session.ErrMissingCredentials):
		m.loginErr = "Please fill in all fields"
		return m, nil
	case err != nil:
		m.loginErr = "Login failed. Please try again."
		return m, nil
	}

	m.password.SetValue("")
	m.username.Blur()
	m.password.Blur()
	m.screen = screenList
	refresh := m.refresh()

	user := m.session.Current().Username
	if store.IsSampleSet(m.tasks.Tasks()) {
		return m, tea.Batch(refresh, m.notify(ui.KindInfo, welcome(user)))
	}
	return m, tea.Batch(refresh, m.notify(ui.KindSuccess, "Welcome back, "+user))
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.session.Logout(); err != nil {
		return m, m.notify(ui.KindError, "Failed to log out")
	}
	m.screen = screenLogin
	m.username.SetValue("")
	m.password.SetValue("")
	m.password.Blur()
	return m, tea.Batch(m.username.Focus(), m.notify(ui.KindInfo, "Logged out successfully"))
}

// ---------------------------------------------------
// task list
// ---------------------------------------------------

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(k, m.keys.Tab):
		if m.tab == tabOpen {
			m.tab = tabCompleted
		} else {
			m.tab = tabOpen
		}
		m.list.Select(0)
		return m, m.refresh()
	case key.Matches(k, m.keys.Filter):
		m.filter = m.filter.Next()
		return m, m.refresh()
	case key.Matches(k, m.keys.Sort):
		m.sort = m.sort.Next()
		return m, m.refresh()
	case key.Matches(k, m.keys.Add):
		return m, m.openForm(model.Task{})
	case key.Matches(k, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m, m.openForm(t)
		}
		return m, nil
	case key.Matches(k, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.toggle(t)
		}
		return m, nil
	case key.Matches(k, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.confirm = t
			m.screen = screenConfirm
		}
		return m, nil
	case key.Matches(k, m.keys.Logout):
		return m.logout()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) toggle(t model.Task) tea.Cmd {
	if err := m.tasks.ToggleCompletion(t.ID); err != nil {
		return m.notify(ui.KindError, "Failed to update task")
	}
	refresh := m.refresh()
	if t.IsCompleted {
		return tea.Batch(refresh, m.notify(ui.KindSuccess, "Task reopened"))
	}
	return tea.Batch(refresh, m.notify(ui.KindSuccess, "Task completed"))
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	return it.task, ok
}

// refresh rebuilds the list from the manager. The returned command
// re-applies an active text filter.
func (m *Model) refresh() tea.Cmd {
	src := m.tasks.Active()
	if m.tab == tabCompleted {
		src = m.tasks.Completed()
	}
	refs := tasks.View(m.tasks.Tasks(), tasks.FilterAll, tasks.SortCreated)
	shown := tasks.View(src, m.filter, m.sort)

	items := make([]list.Item, 0, len(shown))
	for _, t := range shown {
		items = append(items, taskItem{task: t, ref: refNumber(refs, t.ID)})
	}

	idx := m.list.Index()
	cmd := m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	title := "Open tasks"
	if m.tab == tabCompleted {
		title = "Completed tasks"
	}
	if m.filter != tasks.FilterAll {
		title += fmt.Sprintf("  (showing %d of %d)", len(shown), len(src))
	}
	m.list.Title = title
	return cmd
}

func refNumber(refs []model.Task, id string) int {
	for i, t := range refs {
		if t.ID == id {
			return i + 1
		}
	}
	return 0
}

// ---------------------------------------------------
// add / edit form
// ---------------------------------------------------

func (m *Model) openForm(t model.Task) tea.Cmd {
	f := taskForm{editingID: t.ID, priority: model.PriorityMedium}

	f.title = textinput.New()
	f.title.Prompt = "Title:       "
	f.title.Placeholder = "What needs doing?"
	f.title.CharLimit = tasks.MaxTitleLen

	f.desc = textinput.New()
	f.desc.Prompt = "Description: "
	f.desc.Placeholder = "optional"
	f.desc.CharLimit = tasks.MaxDescriptionLen

	if t.ID != "" {
		f.title.SetValue(t.Title)
		f.title.CursorEnd()
		f.desc.SetValue(t.Description)
		f.priority = t.Priority
	}

	m.form = f
	m.screen = screenForm
	return m.form.title.Focus()
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = (i%focusCount + focusCount) % focusCount
	f.title.Blur()
	f.desc.Blur()
	switch f.focus {
	case focusTitle:
		return f.title.Focus()
	case focusDescription:
		return f.desc.Focus()
	}
	return nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.screen = screenList
			return m, nil
		case "tab", "down":
			return m, m.form.setFocus(m.form.focus + 1)
		case "shift+tab", "up":
			return m, m.form.setFocus(m.form.focus - 1)
		case "enter":
			return m.submitForm()
		}
		if m.form.focus == focusPriority {
			switch k.String() {
			case "left", "h":
				m.form.priority = cyclePriority(m.form.priority, -1)
			case "right", "l", " ":
				m.form.priority = cyclePriority(m.form.priority, 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case focusTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case focusDescription:
		m.form.desc, cmd = m.form.desc.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	adding := f.editingID == ""

	var err error
	if adding {
		_, err = m.tasks.Add(f.title.Value(), f.desc.Value(), f.priority)
	} else {
		title, desc, prio := f.title.Value(), f.desc.Value(), f.priority
		err = m.tasks.Update(f.editingID, model.TaskPatch{Title: &title, Description: &desc, Priority: &prio})
	}

	if err != nil {
		if isValidation(err) {
			m.form.err = err.Error()
			return m, nil
		}
		m.form.err = ""
		if adding {
			return m, m.notify(ui.KindError, "Failed to create task")
		}
		return m, m.notify(ui.KindError, "Failed to update task")
	}

	m.screen = screenList
	if adding {
		m.tab = tabOpen
		m.list.Select(0)
		return m, tea.Batch(m.refresh(), m.notify(ui.KindSuccess, "Task created successfully!"))
	}
	return m, tea.Batch(m.refresh(), m.notify(ui.KindSuccess, "Task updated successfully!"))
}

func isValidation(err error) bool {
	for _, v := range []error{tasks.ErrEmptyTitle, tasks.ErrTitleTooLong, tasks.ErrDescriptionTooLong, model.ErrInvalidPriority} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func cyclePriority(p model.Priority, step int) model.Priority {
	n := len(model.Priorities)
	i := p.Rank() - 1
	if i < 0 {
		i = 1
	}
	return model.Priorities[((i+step)%n+n)%n]
}

// ---------------------------------------------------
// delete confirmation
// ---------------------------------------------------

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y", "enter":
		m.screen = screenList
		if err := m.tasks.Delete(m.confirm.ID); err != nil {
			return m, m.notify(ui.KindError, "Failed to delete task")
		}
		return m, tea.Batch(m.refresh(), m.notify(ui.KindSuccess, "Task deleted"))
	case "n", "N", "esc", "q":
		m.screen = screenList
	}
	return m, nil
}

// ---------------------------------------------------
// notifications
// ---------------------------------------------------

func (m *Model) setNotice(kind ui.Kind, msg string) {
	m.noticeSeq++
	m.notice = &ui.Notification{Kind: kind, Message: msg}
}

func (m Model) expireNotice() tea.Cmd {
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// notify shows msg and schedules its removal.
func (m *Model) notify(kind ui.Kind, msg string) tea.Cmd {
	m.setNotice(kind, msg)
	return m.expireNotice()
}

// ---------------------------------------------------
// view
// ---------------------------------------------------

func (m *Model) resize() {
	w, h := m.width-4, m.height-8
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	m.list.SetSize(w, h)
}

func (m Model) View() string {
	if m.screen == screenLogin {
		return ui.PanelString(m.loginView())
	}

	t := ui.Current()
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(t.Muted.Render(fmt.Sprintf("priority: %s   sort: %s", m.filter, m.sort)))
	b.WriteString("\n\n")

	switch m.screen {
	case screenForm:
		b.WriteString(m.formView())
	case screenConfirm:
		b.WriteString(fmt.Sprintf("Delete %q? %s", m.confirm.Title, t.Muted.Render("(y/n)")))
	default:
		b.WriteString(m.list.View())
	}

	if m.notice != nil {
		b.WriteString("\n")
		b.WriteString(m.notice.Render())
	}
	return ui.PanelString(b.String())
}

func (m Model) headerView() string {
	t := ui.Current()
	open := fmt.Sprintf("Open %d", len(m.tasks.Active()))
	done := fmt.Sprintf("Completed %d", len(m.tasks.Completed()))
	if m.tab == tabOpen {
		open, done = t.Accent.Bold(true).Underline(true).Render(open), t.Muted.Render(done)
	} else {
		open, done = t.Muted.Render(open), t.Accent.Bold(true).Underline(true).Render(done)
	}
	return fmt.Sprintf("%s   %s   %s   %s",
		t.Title.Render("tada"), open, done,
		t.Muted.Render("signed in as "+m.session.Current().Username))
}

func (m Model) loginView() string {
	t := ui.Current()
	lines := []string{
		t.Title.Render("Sign in to tada"),
		t.Muted.Render("Any username and password will do."),
		"",
		m.username.View(),
		m.password.View(),
		"",
	}
	if m.loginErr != "" {
		lines = append(lines, t.Error.Render(m.loginErr))
	}
	if m.notice != nil {
		lines = append(lines, m.notice.Render())
	}
	lines = append(lines, t.Muted.Render("tab switch field · enter sign in · esc quit"))
	return strings.Join(lines, "\n")
}

func (m Model) formView() string {
	t := ui.Current()
	heading := "New task"
	if m.form.editingID != "" {
		heading = "Edit task"
	}

	prio := fmt.Sprintf("Priority:    < %s >", ui.PriorityBadge(m.form.priority))
	if m.form.focus == focusPriority {
		prio = t.Selected.Render("Priority:") + fmt.Sprintf("    < %s >", ui.PriorityBadge(m.form.priority))
	}

	lines := []string{
		t.Title.Render(heading),
		m.form.title.View(),
		m.form.desc.View(),
		prio,
		"",
	}
	if m.form.err != "" {
		lines = append(lines, t.Error.Render(m.form.err))
	}
	lines = append(lines, t.Muted.Render("tab next field · ←/→ priority · enter save · esc cancel"))
	return strings.Join(lines, "\n")
}

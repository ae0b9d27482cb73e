package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

// taskItem adapts model.Task to bubbles/list.Item.
type taskItem struct {
	task model.Task
	ref  int // number as printed by `tada ls`
}

func (i taskItem) FilterValue() string { return i.task.Title + " " + i.task.Description }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	t := ui.Current()

	title := ui.Truncate(it.task.Title, 60)
	if it.task.IsCompleted {
		title = t.Done.Render(title)
	}
	line := fmt.Sprintf("%s %s %s %s",
		t.Muted.Render(fmt.Sprintf("%2d.", it.ref)),
		ui.Checkbox(it.task.IsCompleted),
		ui.PriorityBadge(it.task.Priority),
		title,
	)

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	// the list inserts the newline between rows
	fmt.Fprint(w, prefix+line)
}

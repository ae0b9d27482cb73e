package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
)

// ProgressBar renders done/total as width cells of the theme's bar glyphs,
// completed part in the success colour, then the percentage.
func ProgressBar(done, total, width int) string {
	t := Current()
	width = max(width, 5)
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	filled := min(int(ratio*float64(width)), width)
	bar := t.Success.Render(strings.Repeat(t.BarFull, filled)) +
		t.Muted.Render(strings.Repeat(t.BarEmpty, width-filled))
	return fmt.Sprintf("%s %s", bar, t.Muted.Render(fmt.Sprintf("%3d%%", int(ratio*100))))
}

// PanelString frames content in the current theme's border.
func PanelString(content string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(content)
}

// Panel draws a framed box around lines.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(strings.Join(lines, "\n")))
}

// PriorityBadge renders a fixed-width priority label.
func PriorityBadge(p model.Priority) string {
	t := Current()
	label := fmt.Sprintf("%-6s", p)
	switch p {
	case model.PriorityHigh:
		return t.High.Render(label)
	case model.PriorityMedium:
		return t.Medium.Render(label)
	default:
		return t.Low.Render(label)
	}
}

// Checkbox renders the completion box for a task.
func Checkbox(done bool) string {
	t := Current()
	if done {
		return t.Success.Render(t.BoxChecked)
	}
	return t.Muted.Render(t.BoxUnchecked)
}

// Truncate shortens s to max runes, ending in "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 4 {
		return s
	}
	return string(r[:max-3]) + "..."
}

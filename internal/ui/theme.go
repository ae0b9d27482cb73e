package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending, Info lipgloss.Style
	Done, Selected                                      lipgloss.Style
	High, Medium, Low                                   lipgloss.Style

	BoxUnchecked, BoxChecked string
	BarFull, BarEmpty        string
	SymOK, SymFail, SymInfo  string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

var current = classic()

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Faint(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		High:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Low:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),

		BoxUnchecked: "☐", BoxChecked: "☑",
		BarFull: "█", BarEmpty: "░",
		SymOK: "✔", SymFail: "✖", SymInfo: "ℹ",
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	t.BarFull, t.BarEmpty = "▰", "▱"
	t.Border = lipgloss.ThickBorder()
	t.BorderColor = lipgloss.Color("13")
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain, Success: plain,
		Error: plain, Pending: plain, Info: plain,
		Done: plain, Selected: plain.Reverse(true),
		High: plain, Medium: plain, Low: plain,

		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		BarFull: "#", BarEmpty: "-",
		SymOK: "ok", SymFail: "error:", SymInfo: "-",
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.NoColor{},
	}
}

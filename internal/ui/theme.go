package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the palette used by every rendered block.
type Theme struct {
	Name string

	Surface string // panel background
	Border  string // panel and table borders
	Header  string // table header text

	Text    string
	Muted   string
	Accent  string
	Logo    string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Logo        lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	IndexCell   lipgloss.Style
	Cell        lipgloss.Style
	Label       lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		InfoText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Logo)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)),
		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Header)).
			Bold(true).
			Padding(0, 1),
		IndexCell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Align(lipgloss.Right).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Width(7),
	}
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name, falling back to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func draculaTheme() Theme {
	// Official Dracula palette
	return Theme{
		Name:    "Dracula",
		Surface: "#282A36",
		Border:  "#50FA7B", // Green, the terminal-phosphor look
		Header:  "#8BE9FD", // Cyan
		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Accent:  "#BD93F9",
		Logo:    "#50FA7B",
		Success: "#50FA7B",
		Warning: "#F1FA8C", // Yellow
		Danger:  "#FF5555",
		Info:    "#8BE9FD",
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette
	return Theme{
		Name:    "Slate",
		Surface: "#0f172a", // slate-900
		Border:  "#334155", // slate-700
		Header:  "#38bdf8", // sky-400
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Accent:  "#38bdf8",
		Logo:    "#22c55e", // green-500
		Success: "#22c55e",
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}

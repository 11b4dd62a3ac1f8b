package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/retroai/internal/archive"
)

const (
	appName      = "Darkelf Retro AI"
	defaultWidth = 80
	minWidth     = 40
	minTitleCols = 16
)

const logoArt = `██████╗  █████╗ ██████╗ ██╗  ██╗███████╗██╗     ███████╗
██╔══██╗██╔══██╗██╔══██╗██║ ██╔╝██╔════╝██║     ██╔════╝
██║  ██║███████║██████╔╝█████╔╝ █████╗  ██║     █████╗
██║  ██║██╔══██║██╔══██╗██╔═██╗ ██╔══╝  ██║     ██╔══╝
██████╔╝██║  ██║██║  ██║██║  ██╗███████╗███████╗██╗
╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚══════╝══╝`

const resultShortcuts = "Shortcuts: [n] details | [a] ask AI | [o] open | [c] copy link | [q] back"

// Renderer turns session data into styled terminal blocks.
type Renderer struct {
	theme  Theme
	styles Styles
	width  int
}

// NewRenderer returns a Renderer using the named theme. A width below the
// minimum uses the default width.
func NewRenderer(themeName string, width int) *Renderer {
	r := &Renderer{}
	r.SetTheme(themeName)
	r.SetWidth(width)
	return r
}

// ThemeName reports the active theme.
func (r *Renderer) ThemeName() string { return r.theme.Name }

// SetTheme switches the palette.
func (r *Renderer) SetTheme(name string) {
	r.theme = GetTheme(name)
	r.styles = r.theme.Styles()
}

// SetWidth sets the layout width in terminal cells.
func (r *Renderer) SetWidth(width int) {
	if width < minWidth {
		width = defaultWidth
	}
	r.width = width
}

// Logo renders the banner.
func (r *Renderer) Logo() string {
	return r.styles.Logo.Render(logoArt)
}

// Boot renders the startup screen shown before the first menu.
func (r *Renderer) Boot() string {
	return r.Logo() + "\n" + r.styles.MutedText.Render(appName+" initializing…") + "\n"
}

// Menu renders the main menu panel with the current connectivity.
func (r *Renderer) Menu(online bool) string {
	network := r.styles.DangerText.Render("OFFLINE")
	if online {
		network = r.styles.SuccessText.Render("ONLINE")
	}
	lines := []string{
		r.styles.PanelTitle.Render(appName),
		"",
		"[1] Search Internet Archive",
		"[2] Ask Retro AI",
		"[3] Repeat Last Search",
		"[t] Cycle Theme (" + r.theme.Name + ")",
		"[q] Quit",
		"",
		"Network: " + network,
	}
	panel := r.styles.Panel.Width(r.panelWidth()).Render(strings.Join(lines, "\n"))
	return r.Logo() + "\n" + panel
}

// ResultRows projects results into table rows: 1-based index, title, year
// and media type, one row per result in input order. Missing year and
// media type render as blanks.
func ResultRows(results []archive.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strings.TrimSpace(res.Title),
			strings.TrimSpace(res.Year),
			strings.TrimSpace(res.MediaType),
		})
	}
	return rows
}

// Results renders the result table, or the no-results notice when results
// is empty. The notice never includes a table.
func (r *Renderer) Results(results []archive.Result) string {
	if len(results) == 0 {
		return strings.Join([]string{
			r.styles.DangerText.Render("NO RESULTS FOUND"),
			r.styles.MutedText.Render("The Internet Archive returned zero matches."),
			r.styles.MutedText.Render("Try broader keywords or a different query."),
		}, "\n") + "\n"
	}

	titleCols := r.width - 34
	if titleCols < minTitleCols {
		titleCols = minTitleCols
	}
	rows := ResultRows(results)
	for _, row := range rows {
		row[1] = truncate(row[1], titleCols)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.TableBorder).
		BorderRow(true).
		Headers("#", "Title", "Year", "Type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.TableHeader
			}
			switch col {
			case 0:
				return r.styles.IndexCell.Width(5)
			case 2:
				return r.styles.Cell.Width(8).Align(lipgloss.Center)
			case 3:
				return r.styles.Cell.Width(12).Align(lipgloss.Center)
			default:
				return r.styles.Cell
			}
		})

	return r.styles.PanelTitle.Render("Results") + "\n" +
		t.Render() + "\n" +
		r.styles.MutedText.Render(resultShortcuts) + "\n"
}

// Detail renders the metadata panel for one item.
func (r *Renderer) Detail(d archive.ItemDetail) string {
	inner := r.panelWidth() - 4
	field := func(label, value string) string {
		return r.styles.Label.Render(label) + " " + value
	}
	lines := []string{
		r.styles.PanelTitle.Render(truncate(d.Title, inner)),
		"",
		field("Year", orUnknown(d.Year)),
		field("Type", orUnknown(d.MediaType)),
		field("Link", r.styles.InfoText.Render(d.URL())),
		"",
		wordwrap.String(d.Description, inner),
	}
	return r.styles.Panel.Width(r.panelWidth()).Render(strings.Join(lines, "\n")) + "\n"
}

// Error renders a one-line failure message.
func (r *Renderer) Error(msg string) string {
	return r.styles.DangerText.Render(msg)
}

// Notice renders a one-line informational message.
func (r *Renderer) Notice(msg string) string {
	return r.styles.MutedText.Render(msg)
}

// Success renders a one-line confirmation.
func (r *Renderer) Success(msg string) string {
	return r.styles.SuccessText.Render(msg)
}

func (r *Renderer) panelWidth() int {
	if r.width > 100 {
		return 100
	}
	return r.width - 2
}

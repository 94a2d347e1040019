package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/artgrid/internal/catalog"
)

const (
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorFocus   lipgloss.Color = "#b4befe"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorWarning lipgloss.Color = "#f9e2af"
	colorMuted   lipgloss.Color = "#7f849c"
	colorText    lipgloss.Color = "#cdd6f4"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	loadingStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	focusedBorder = paneStyle.BorderForeground(colorFocus)
)

const summaryWidth = 36

func (a *App) View() string {
	tableWidth := max(a.width-summaryWidth-4, 40)

	table := a.renderTable(tableWidth - 4)
	summary := a.renderSummary(summaryWidth - 4)

	tStyle, sStyle := paneStyle, paneStyle
	if a.focus == focusTable {
		tStyle = focusedBorder
	} else {
		sStyle = focusedBorder
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		tStyle.Width(tableWidth-2).Render(table),
		sStyle.Width(summaryWidth-2).Render(summary),
	)

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	if a.jumping {
		b.WriteString("\n" + a.jump.View())
	}
	if a.status != "" {
		b.WriteString("\n" + mutedStyle.Render(a.status))
	}
	b.WriteString("\n" + a.help.View(a.keys))
	return b.String()
}

func (a *App) renderHeader() string {
	out := titleStyle.Render("Artworks")
	if a.state.Loading {
		out += "  " + loadingStyle.Render(fmt.Sprintf("loading page %d…", a.state.Pending))
	}
	return out
}

func (a *App) renderTable(width int) string {
	if len(a.state.Records) == 0 {
		if a.state.Loading {
			return mutedStyle.Render("fetching…")
		}
		return mutedStyle.Render("no artworks")
	}

	// fixed columns: marker(2) box(4) id(8) years(11); the rest is shared
	flex := max(width-2-4-8-11-3, 24)
	titleW := flex * 2 / 5
	artistW := flex * 2 / 5
	originW := flex - titleW - artistW

	lines := []string{headerStyle.Render(fmt.Sprintf("      %-8s %s %s %s %s",
		"ID", pad("Title", titleW), pad("Artist", artistW), pad("Origin", originW), "Years"))}
	for i, r := range a.state.Records {
		marker := "  "
		if i == a.cursor && a.focus == focusTable {
			marker = cursorStyle.Render("▶ ")
		}
		box := "[ ] "
		if a.state.IsChecked(r.ID) {
			box = checkedStyle.Render("[x] ")
		}
		row := fmt.Sprintf("%-8d %s %s %s %s", r.ID,
			pad(a.titleText(r.Title), titleW),
			pad(firstLine(r.Artist), artistW),
			pad(r.Origin, originW),
			years(r))
		lines = append(lines, marker+box+row)
	}
	if a.cursor < len(a.state.Records) {
		if note := a.state.Records[a.cursor].Inscriptions; note != "" {
			lines = append(lines, "", mutedStyle.Render(ansi.Truncate("Inscriptions: "+oneLine(note), width, "…")))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderSummary(width int) string {
	all := a.sel.Len()
	lines := []string{headerStyle.Render(fmt.Sprintf("Selected (%d)", all))}
	if a.filtering || a.filter.Value() != "" {
		lines = append(lines, a.filter.View())
	}
	entries := a.summaryEntries()
	if len(entries) == 0 {
		if all == 0 {
			lines = append(lines, mutedStyle.Render("nothing selected"))
		} else {
			lines = append(lines, mutedStyle.Render("no matches"))
		}
		return strings.Join(lines, "\n")
	}
	for i, e := range entries {
		marker := "  "
		if i == a.sumCursor && a.focus == focusSummary {
			marker = cursorStyle.Render("▶ ")
		}
		lines = append(lines,
			marker+ansi.Truncate(a.titleText(e.Title), width-2, "…"),
			"  "+mutedStyle.Render(ansi.Truncate(a.artistText(e.Artist), width-2, "…")))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderFooter() string {
	if a.state.TotalPages == 0 {
		return mutedStyle.Render("page -")
	}
	return fmt.Sprintf("page %s  %s records  %d selected",
		a.pager.View(), strconv.Itoa(a.state.Total), a.sel.Len())
}

func (a *App) titleText(s string) string {
	if s == "" {
		return a.cfg.UI.PlaceholderTitle
	}
	return s
}

func (a *App) artistText(s string) string {
	if s = firstLine(s); s == "" {
		return a.cfg.UI.PlaceholderArtist
	}
	return s
}

func years(r catalog.Record) string {
	switch {
	case r.DateStart == nil && r.DateEnd == nil:
		return ""
	case r.DateStart == nil:
		return strconv.Itoa(*r.DateEnd)
	case r.DateEnd == nil || *r.DateEnd == *r.DateStart:
		return strconv.Itoa(*r.DateStart)
	default:
		return fmt.Sprintf("%d–%d", *r.DateStart, *r.DateEnd)
	}
}

// firstLine keeps the artist name and drops the nationality/dates lines the
// API appends.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func pad(s string, w int) string {
	s = ansi.Truncate(oneLine(s), w, "…")
	if n := ansi.StringWidth(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        string
	Header       string
	Tabs         []string
	ActiveTab    int
	Body         string
	SidePane     string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

// Palette holds the colours of one theme.
type Palette struct {
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Good     lipgloss.Color
	Bad      lipgloss.Color
	Border   lipgloss.Color
	Markdown string
}

var palettes = map[string]Palette{
	"current": {Accent: "12", Text: "15", Muted: "8", Good: "10", Bad: "9", Border: "12", Markdown: "dark"},
	"light":   {Accent: "27", Text: "0", Muted: "244", Good: "28", Bad: "160", Border: "27", Markdown: "light"},
	"black":   {Accent: "15", Text: "15", Muted: "240", Good: "250", Bad: "196", Border: "238", Markdown: "dark"},
}

// PaletteFor returns the palette of theme, or the default one.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["current"]
}

type styles struct {
	header lipgloss.Style
	tab    lipgloss.Style
	active lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
}

func stylesFor(theme string) styles {
	p := PaletteFor(theme)
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		tab:    lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		active: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Underline(true).Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(p.Good),
		err:    lipgloss.NewStyle().Foreground(p.Bad),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Foreground(p.Text).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(p.Muted),
	}
}

func RenderApp(data AppData) string {
	st := stylesFor(data.Theme)

	tabs := make([]string, 0, len(data.Tabs))
	for i, name := range data.Tabs {
		if i == data.ActiveTab {
			tabs = append(tabs, st.active.Render(name))
		} else {
			tabs = append(tabs, st.tab.Render(name))
		}
	}

	body := st.panel.Width(78).Render(data.Body)
	if strings.TrimSpace(data.SidePane) != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, st.panel.Width(40).Render(data.SidePane))
	}

	lines := []string{
		st.header.Render(data.Header),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		body,
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, st.err.Render(data.StatusLine))
		} else {
			lines = append(lines, st.status.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, st.panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, st.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, PaletteFor(theme).Markdown)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Tabs         string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tabStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("7"))
	activeTab   = tabStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
)

// noteColors maps sticky colors to terminal swatches.
var noteColors = map[string]lipgloss.Color{
	"yellow": lipgloss.Color("#FFF59D"),
	"green":  lipgloss.Color("#A5D6A7"),
	"pink":   lipgloss.Color("#F8BBD0"),
	"orange": lipgloss.Color("#FFCC80"),
	"purple": lipgloss.Color("#CE93D8"),
	"blue":   lipgloss.Color("#90CAF9"),
	"red":    lipgloss.Color("#EF9A9A"),
	"mint":   lipgloss.Color("#B2DFDB"),
	"teal":   lipgloss.Color("#80CBC4"),
}

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if data.Tabs != "" {
		lines = append(lines, data.Tabs)
	}
	lines = append(lines, row, status)
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Swatch renders a small block in the note's color. Unknown colors render
// as plain brackets.
func Swatch(color string) string {
	c, ok := noteColors[strings.ToLower(color)]
	if !ok {
		return "[ ]"
	}
	return lipgloss.NewStyle().Background(c).Render("   ")
}

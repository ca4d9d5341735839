package views

import (
	"fmt"
	"strings"
)

type TabData struct {
	Key    string
	Name   string
	Active bool
}

type NoteRowData struct {
	Position int
	ID       string
	Text     string
	Color    string
	Emoji    string
	Category string
	Reminder string
	HasImage bool
	Selected bool
}

type GalleryPanelData struct {
	Name         string
	QuickAddView string
	Capturing    bool
	Notes        []NoteRowData
}

type NoteDetailData struct {
	ID        string
	Gallery   string
	Text      string
	Category  string
	Color     string
	Emoji     string
	Reminder  string
	Scheduled bool
	Travel    string
	Budget    string
	Image     string
	CreatedAt string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type ReminderLogEntry struct {
	Title string
	Body  string
	At    string
}

func RenderTabs(tabs []TabData) string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %s", tab.Key, tab.Name)
		if tab.Active {
			parts = append(parts, activeTab.Render(label))
			continue
		}
		parts = append(parts, tabStyle.Render(label))
	}
	return strings.Join(parts, " ")
}

func RenderGalleryPanel(data GalleryPanelData) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(data.Name) + ":\n")
	if data.Capturing {
		b.WriteString(data.QuickAddView + "\n")
	} else {
		b.WriteString("actions: [a]add [j/k]move [d]delete [/]command\n")
	}
	if len(data.Notes) == 0 {
		b.WriteString("(no sticky notes yet)")
		return b.String()
	}
	for _, n := range data.Notes {
		cursor := " "
		if n.Selected {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %d. %s ", cursor, n.Position, Swatch(n.Color))
		if n.Emoji != "" {
			line += n.Emoji + " "
		}
		line += n.Text
		if n.Category != "" {
			line += fmt.Sprintf(" [%s]", n.Category)
		}
		if n.HasImage {
			line += " [img]"
		}
		if n.Reminder != "" {
			line += " @" + n.Reminder
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// NoteMarkdown lays out a note's detail as markdown for RenderMarkdown.
func NoteMarkdown(data NoteDetailData) string {
	if strings.TrimSpace(data.ID) == "" {
		return ""
	}
	var b strings.Builder
	title := data.Text
	if data.Emoji != "" {
		title = data.Emoji + " " + title
	}
	b.WriteString("# " + title + "\n\n")
	row := func(label, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("- **%s:** %s\n", label, value))
		}
	}
	row("Category", data.Category)
	row("Color", data.Color)
	row("Travel date", data.Travel)
	row("Budget", data.Budget)
	row("Image", data.Image)
	switch {
	case data.Reminder != "" && data.Scheduled:
		row("Reminder", data.Reminder+" (scheduled)")
	case data.Reminder != "":
		row("Reminder", data.Reminder)
	default:
		row("Reminder", "none")
	}
	row("Created", data.CreatedAt)
	b.WriteString(fmt.Sprintf("\n`%s`\n", data.ID))
	return b.String()
}

func RenderNoteDetail(data NoteDetailData) string {
	md := NoteMarkdown(data)
	if md == "" {
		return "note:\n(no selection)"
	}
	return "note:\n" + RenderMarkdown(md)
}

func RenderReminderLog(entries []ReminderLogEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("reminders:\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("- %s %s: %s\n", e.At, e.Title, e.Body))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

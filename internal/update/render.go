package update

import (
	"fmt"

	"github.com/sandeepkv93/stickynotes/internal/views"
)

const timeLayout = "Jan 02 15:04"

func (m Model) renderTabs() string {
	kinds := m.galleries.Kinds()
	tabs := make([]views.TabData, 0, len(kinds))
	for i, kind := range kinds {
		c, err := m.galleries.Get(kind)
		if err != nil {
			continue
		}
		k := ""
		if i < len(m.Keys.Galleries) {
			k = m.Keys.Galleries[i]
		}
		tabs = append(tabs, views.TabData{Key: k, Name: c.Gallery().Name, Active: kind == m.Current})
	}
	return views.RenderTabs(tabs)
}

func (m Model) renderGallery(name string) string {
	rows := make([]views.NoteRowData, 0, len(m.Notes))
	for i, n := range m.Notes {
		row := views.NoteRowData{
			Position: i + 1,
			ID:       n.ID,
			Text:     n.Text,
			Color:    string(n.Color),
			Emoji:    n.Emoji,
			Category: string(n.Category),
			HasImage: n.Image != nil,
			Selected: i == m.Cursor,
		}
		if n.HasReminder() {
			row.Reminder = n.Reminder.Local().Format(timeLayout)
		}
		if n.Travel != nil {
			row.Text = fmt.Sprintf("%s (%s, $%.0f)", n.Text, n.Travel.Date.Format("2006-01-02"), n.Travel.Budget)
		}
		rows = append(rows, row)
	}
	return views.RenderGalleryPanel(views.GalleryPanelData{
		Name:         name,
		QuickAddView: m.quickAddInput.View(),
		Capturing:    m.Capturing,
		Notes:        rows,
	})
}

func (m Model) renderDetail() string {
	n, ok := m.selected()
	if !ok {
		return views.RenderNoteDetail(views.NoteDetailData{})
	}
	data := views.NoteDetailData{
		ID:        n.ID,
		Gallery:   string(n.Gallery),
		Text:      n.Text,
		Category:  string(n.Category),
		Color:     string(n.Color),
		Emoji:     n.Emoji,
		CreatedAt: n.CreatedAt.Local().Format(timeLayout),
	}
	if n.HasReminder() {
		data.Reminder = n.Reminder.Local().Format(timeLayout)
		if c, err := m.controller(); err == nil {
			data.Scheduled = c.IsScheduled(n.ID)
		}
	}
	if n.Travel != nil {
		data.Travel = n.Travel.Date.Format("2006-01-02")
		data.Budget = fmt.Sprintf("%.2f", n.Travel.Budget)
	}
	if n.Image != nil {
		data.Image = fmt.Sprintf("%s (%s, %d bytes)", n.Image.Name, n.Image.ContentType, len(n.Image.Data))
	}
	return views.RenderNoteDetail(data)
}

func (m Model) renderReminderLog() string {
	if len(m.ReminderLog) == 0 {
		return ""
	}
	start := 0
	if len(m.ReminderLog) > 3 {
		start = len(m.ReminderLog) - 3
	}
	entries := make([]views.ReminderLogEntry, 0, 3)
	for _, ev := range m.ReminderLog[start:] {
		entries = append(entries, views.ReminderLogEntry{
			Title: ev.Title,
			Body:  ev.Body,
			At:    ev.TriggerAt.Local().Format("15:04:05"),
		})
	}
	return views.RenderReminderLog(entries)
}

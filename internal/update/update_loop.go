package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		return waitForReminderCmd(m.engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Capturing {
			return m.handleQuickAddKey(typed), nil
		}

		for i, k := range m.Keys.Galleries {
			if keyStr == k && i < len(m.galleries.Kinds()) {
				m.switchGallery(m.galleries.Kinds()[i])
				return m, nil
			}
		}
		switch keyStr {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "r":
			m.reload()
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleGalleryKey(typed), nil
	case SwitchGalleryMsg:
		if typed.Gallery.IsValid() {
			m.switchGallery(typed.Gallery)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	case ReminderDueMsg:
		var desktop tea.Cmd
		m, desktop = m.onReminder(typed.Event)
		if m.engine != nil {
			return m, tea.Batch(waitForReminderCmd(m.engine.C()), desktop)
		}
		return m, desktop
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	name := string(m.Current)
	if def, err := model.Lookup(m.Current); err == nil {
		name = def.Name
	}

	rightPane := strings.TrimSpace(strings.Join([]string{
		m.detailView.View(),
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value()),
		m.renderHelpIfVisible(),
	}, "\n"))

	notification := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notification = views.RenderNotification(string(last.Level), last.Body)
	}
	notification = strings.TrimSpace(strings.Join([]string{notification, m.renderReminderLog()}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("stickynotes | gallery: %s | notes: %d", name, len(m.Notes)),
		Tabs:         m.renderTabs(),
		LeftPane:     m.renderGallery(name),
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s galleries | %s add | %s delete | %s cmd | %s help | %s quit",
			strings.Join(m.Keys.Galleries, "-"), m.Keys.Add, m.Keys.Delete, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stickynotes/internal/notify"
	"github.com/sandeepkv93/stickynotes/internal/scheduler"
)

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

// onReminder records a fired reminder and alerts the user. The returned
// command delivers the desktop notification, if any.
func (m Model) onReminder(ev scheduler.ReminderEvent) (Model, tea.Cmd) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > maxReminderLog {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-maxReminderLog:]
	}
	m.galleries.Fired(ev.Gallery, ev.ID, ev.TriggerAt)
	m.log.Infow("reminder fired", "gallery", ev.Gallery, "id", ev.ID, "trigger_at", ev.TriggerAt)

	n := notify.FromReminder(ev)
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", n.Title, n.Body)}
	return m, m.notify(n.Title, n.Body, notify.LevelReminder)
}

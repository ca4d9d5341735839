package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stickynotes/internal/commands"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/notify"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	c, err := m.controller()
	if err != nil {
		m.setError(err)
		return m
	}
	def := c.Gallery()

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.NoteArgs) (commands.Result, error) {
			d, err := a.Apply(model.Draft{}, def, m.clk.Now())
			if err != nil {
				return commands.Result{}, err
			}
			n, err := c.Add(m.ctx, d)
			if err != nil {
				return commands.Result{}, err
			}
			m.reload()
			m.selectID(n.ID)
			return commands.Result{Message: fmt.Sprintf("added note: %s%s", n.Text, m.reminderSuffix(n))}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			target, err := m.resolve(e.Target)
			if err != nil {
				return commands.Result{}, err
			}
			d, err := e.Note.Apply(model.DraftFromNote(target), def, m.clk.Now())
			if err != nil {
				return commands.Result{}, err
			}
			return m.save(target, d, "updated")
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			target, err := m.resolve(t.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := c.Delete(m.ctx, target.ID); err != nil {
				return commands.Result{}, err
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("deleted note: %s", target.Text)}, nil
		},
		Remind: func(r commands.RemindArgs) (commands.Result, error) {
			target, err := m.resolve(r.Target)
			if err != nil {
				return commands.Result{}, err
			}
			when, err := commands.ParseWhen(r.When, m.clk.Now())
			if err != nil {
				return commands.Result{}, err
			}
			d := model.DraftFromNote(target)
			d.Reminder = when
			return m.save(target, d, "reminder set")
		},
		Unremind: func(t commands.TargetArgs) (commands.Result, error) {
			target, err := m.resolve(t.Target)
			if err != nil {
				return commands.Result{}, err
			}
			d := model.DraftFromNote(target)
			d.Reminder = nil
			return m.save(target, d, "reminder cleared")
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			next, err := m.galleries.Lookup(s.Gallery)
			if err != nil {
				return commands.Result{}, err
			}
			m.switchGallery(next.Gallery().Kind)
			return commands.Result{Message: fmt.Sprintf("showing %s", next.Gallery().Name)}, nil
		},
		Image: func(i commands.ImageArgs) (commands.Result, error) {
			target, err := m.resolve(i.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if !def.AllowsImage {
				return commands.Result{}, model.ErrImageNotAllowed
			}
			img, err := m.pickImage(i.Path).Pick(m.ctx)
			if err != nil {
				return commands.Result{}, err
			}
			if img == nil {
				return commands.Result{Message: "image selection cancelled"}, nil
			}
			if _, _, err := c.AttachImage(m.ctx, target.ID, img); err != nil {
				return commands.Result{}, err
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("attached %s to %s", img.Name, target.Text)}, nil
		},
		Reset: func() (commands.Result, error) {
			if err := c.Reset(m.ctx); err != nil {
				return commands.Result{}, err
			}
			m.reload()
			return commands.Result{Message: fmt.Sprintf("reset %s", def.Name)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), notify.LevelError)
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, notify.LevelInfo)
	return m
}

func (m *Model) save(target model.Note, d model.Draft, verb string) (commands.Result, error) {
	c, err := m.controller()
	if err != nil {
		return commands.Result{}, err
	}
	n, found, err := c.Update(m.ctx, target.ID, d)
	if err != nil {
		return commands.Result{}, err
	}
	m.reload()
	if !found {
		return commands.Result{Message: fmt.Sprintf("note %s no longer exists", target.Text)}, nil
	}
	m.selectID(n.ID)
	return commands.Result{Message: fmt.Sprintf("%s: %s%s", verb, n.Text, m.reminderSuffix(n))}, nil
}

func (m Model) reminderSuffix(n model.Note) string {
	if !n.HasReminder() {
		return ""
	}
	c, err := m.controller()
	if err == nil && c.IsScheduled(n.ID) {
		return fmt.Sprintf(" (reminder %s)", n.Reminder.Local().Format("Jan 02 15:04"))
	}
	return " (reminder not scheduled)"
}

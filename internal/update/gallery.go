package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/stickynotes/internal/commands"
	"github.com/sandeepkv93/stickynotes/internal/gallery"
	"github.com/sandeepkv93/stickynotes/internal/model"
)

func (m Model) controller() (*gallery.Controller, error) {
	return m.galleries.Get(m.Current)
}

// reload refreshes the cached notes of the current gallery and clamps the
// cursor.
func (m *Model) reload() {
	c, err := m.controller()
	if err != nil {
		m.setError(err)
		return
	}
	notes, err := c.List(m.ctx)
	if err != nil {
		m.setError(err)
		return
	}
	m.Notes = notes
	if m.Cursor >= len(m.Notes) {
		m.Cursor = len(m.Notes) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) switchGallery(kind model.GalleryKind) {
	if _, err := m.galleries.Get(kind); err != nil {
		m.setError(err)
		return
	}
	if kind != m.Current {
		m.Cursor = 0
	}
	m.Current = kind
	m.Capturing = false
	m.QuickAdd = ""
	m.reload()
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) selected() (model.Note, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Notes) {
		return model.Note{}, false
	}
	return m.Notes[m.Cursor], true
}

// resolve finds a note of the current gallery by 1-based position, id or
// unique id prefix.
func (m Model) resolve(target string) (model.Note, error) {
	target = strings.TrimSpace(target)
	if pos, err := strconv.Atoi(target); err == nil {
		if pos < 1 || pos > len(m.Notes) {
			return model.Note{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no note at position %d", pos)}
		}
		return m.Notes[pos-1], nil
	}
	var match []model.Note
	for _, n := range m.Notes {
		if n.ID == target {
			return n, nil
		}
		if strings.HasPrefix(n.ID, target) {
			match = append(match, n)
		}
	}
	if len(match) == 1 {
		return match[0], nil
	}
	return model.Note{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no single note matches %q", target)}
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Notes)-1 {
			m.Cursor++
		}
	case m.Keys.Add, "i", "enter":
		m.Capturing = true
		m.Status = StatusBar{Text: "quick add: type a note, enter to save, esc to cancel"}
	case m.Keys.Delete:
		m = m.deleteSelected()
	}
	return m
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Capturing = false
		m.QuickAdd = ""
		m.Status = StatusBar{Text: "quick add cancelled"}
		return m
	case "enter":
		m = m.quickAdd(m.QuickAdd)
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
		m.QuickAdd = m.quickAddInput.Value()
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	m.QuickAdd = m.quickAddInput.Value()
	return m
}

// quickAdd saves text as a new note. The save action is ignored while the
// text is blank, leaving capture mode open.
func (m Model) quickAdd(text string) Model {
	c, err := m.controller()
	if err != nil {
		m.setError(err)
		return m
	}
	d := model.Draft{Text: text}
	if !c.CanSave(d) {
		m.Status = StatusBar{Text: "note text is required", IsError: true}
		return m
	}
	n, err := c.Add(m.ctx, d)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTravel) {
			err = fmt.Errorf("%w (use /add %s travel:YYYY-MM-DD budget:N)", err, strings.TrimSpace(text))
		}
		m.setError(err)
		return m
	}
	m.Capturing = false
	m.QuickAdd = ""
	m.reload()
	m.selectID(n.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("added note: %s", n.Text)}
	return m
}

func (m Model) deleteSelected() Model {
	n, ok := m.selected()
	if !ok {
		m.Status = StatusBar{Text: "no note selected", IsError: true}
		return m
	}
	c, err := m.controller()
	if err != nil {
		m.setError(err)
		return m
	}
	if _, err := c.Delete(m.ctx, n.ID); err != nil {
		m.setError(err)
		return m
	}
	m.reload()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted note: %s", n.Text)}
	return m
}

func (m *Model) selectID(id string) {
	for i, n := range m.Notes {
		if n.ID == id {
			m.Cursor = i
			return
		}
	}
}

package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmhodges/clock"
	"github.com/sandeepkv93/stickynotes/internal/gallery"
	"github.com/sandeepkv93/stickynotes/internal/imagesource"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/notify"
	"github.com/sandeepkv93/stickynotes/internal/scheduler"
	"go.uber.org/zap"
)

const (
	maxReminderLog   = 20
	maxNotifications = 40
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Galleries []string
	Add       string
	Delete    string
	Palette   string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Options struct {
	Engine         *scheduler.Engine
	Notifier       notify.Notifier
	DesktopEnabled bool
	StartGallery   model.GalleryKind
	// PickImage returns the picker used by the image command.
	PickImage func(path string) imagesource.Picker
	Clock     clock.Clock
	Log       *zap.SugaredLogger
}

type Model struct {
	Current        model.GalleryKind
	Notes          []model.Note
	Cursor         int
	Capturing      bool
	QuickAdd       string
	Palette        CommandPaletteState
	HelpVisible    bool
	ReminderLog    []scheduler.ReminderEvent
	Notifications  []notify.Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx       context.Context
	galleries *gallery.Set
	engine    *scheduler.Engine
	notifier  notify.Notifier
	pickImage func(path string) imagesource.Picker
	clk       clock.Clock
	log       *zap.SugaredLogger

	quickAddInput textinput.Model
	commandInput  textinput.Model
	helpModel     help.Model
	detailView    viewport.Model
}

type SwitchGalleryMsg struct {
	Gallery model.GalleryKind
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

func NewModel(galleries *gallery.Set, opts Options) Model {
	m := Model{
		Current:        model.GalleryGeneral,
		DesktopEnabled: opts.DesktopEnabled,
		Keys: GlobalKeyMap{
			Galleries: []string{"1", "2", "3", "4", "5"},
			Add:       "a",
			Delete:    "d",
			Palette:   "/",
			Help:      "?",
			Quit:      "q",
		},
		ctx:       context.Background(),
		galleries: galleries,
		engine:    opts.Engine,
		notifier:  opts.Notifier,
		pickImage: opts.PickImage,
		clk:       opts.Clock,
		log:       opts.Log,
	}
	if opts.StartGallery.IsValid() {
		m.Current = opts.StartGallery
	}
	if m.notifier == nil {
		m.notifier = notify.Noop{}
	}
	if m.pickImage == nil {
		m.pickImage = func(path string) imagesource.Picker {
			return imagesource.FilePicker{Path: path}
		}
	}
	if m.clk == nil {
		m.clk = clock.New()
	}
	if m.log == nil {
		m.log = zap.NewNop().Sugar()
	}
	m.initBubbleComponents()
	m.reload()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detailView = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	m.quickAddInput.SetValue(m.QuickAdd)
	m.commandInput.SetValue(m.Palette.Input)
	if m.Capturing {
		m.quickAddInput.Focus()
	} else {
		m.quickAddInput.Blur()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}
	m.detailView.SetContent(m.renderDetail())
}

// notify records an in-app notification. Reminders also go to the desktop
// when enabled, through the returned command so the UI loop never waits on
// the notifier.
func (m *Model) notify(title, body string, level notify.Level) tea.Cmd {
	if body == "" {
		return nil
	}
	n := notify.Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.clk.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if !m.DesktopEnabled || level != notify.LevelReminder {
		return nil
	}
	notifier, log, parent := m.notifier, m.log, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, 5*time.Second)
		defer cancel()
		if err := notifier.Send(ctx, n); err != nil {
			log.Warnw("desktop notification failed", "title", n.Title, "ERROR", err)
		}
		return nil
	}
}

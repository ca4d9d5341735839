package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sandeepkv93/stickynotes/internal/scheduler"
)

type Level string

const (
	LevelInfo     Level = "info"
	LevelError    Level = "error"
	LevelReminder Level = "reminder"
)

type Notification struct {
	Title string
	Body  string
	Level Level
	At    time.Time
}

// FromReminder turns a fired reminder into the alert shown to the user.
func FromReminder(ev scheduler.ReminderEvent) Notification {
	return Notification{
		Title: ev.Title,
		Body:  ev.Body,
		Level: LevelReminder,
		At:    ev.TriggerAt,
	}
}

type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

type Noop struct{}

func (Noop) Send(context.Context, Notification) error { return nil }

// Desktop posts notifications through notify-send on Linux and osascript
// on macOS. Other platforms are silently skipped.
type Desktop struct {
	goos    string
	command func(ctx context.Context, name string, args ...string) error
}

func NewDesktop() *Desktop {
	return &Desktop{goos: runtime.GOOS, command: run}
}

func (d *Desktop) Send(ctx context.Context, n Notification) error {
	name, args, ok := desktopCommand(d.goos, n)
	if !ok {
		return nil
	}
	if err := d.command(ctx, name, args...); err != nil {
		return fmt.Errorf("notify: %s: %w", name, err)
	}
	return nil
}

func desktopCommand(goos string, n Notification) (string, []string, bool) {
	switch goos {
	case "linux":
		return "notify-send", []string{n.Title, n.Body}, true
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

func run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

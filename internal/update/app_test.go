package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmhodges/clock"
	"github.com/sandeepkv93/stickynotes/internal/gallery"
	"github.com/sandeepkv93/stickynotes/internal/imagesource"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/notify"
	"github.com/sandeepkv93/stickynotes/internal/scheduler"
	"github.com/sandeepkv93/stickynotes/internal/storage"
)

type scheduled struct {
	id, title, body string
	at              time.Time
}

type recordingScheduler struct {
	calls     []scheduled
	cancelled []string
}

func (r *recordingScheduler) Schedule(id, title, body string, at time.Time) {
	r.calls = append(r.calls, scheduled{id: id, title: title, body: body, at: at})
}

func (r *recordingScheduler) Cancel(id string) {
	r.cancelled = append(r.cancelled, id)
}

type recordingNotifier struct {
	sent []notify.Notification
}

func (r *recordingNotifier) Send(_ context.Context, n notify.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type stubPicker struct {
	img *model.Image
	err error
}

func (s stubPicker) Pick(context.Context) (*model.Image, error) { return s.img, s.err }

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) (Model, *recordingScheduler) {
	t.Helper()
	provider, err := storage.NewProvider(context.Background(), storage.Options{Backend: storage.BackendMemory})
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Close() })

	fc := clock.NewFake()
	fc.Set(testNow)
	sched := &recordingScheduler{}
	set, err := gallery.NewSet(provider, func(model.GalleryKind) gallery.Scheduler { return sched }, gallery.WithClock(fc))
	if err != nil {
		t.Fatalf("gallery set: %v", err)
	}
	opts.Clock = fc
	return NewModel(set, opts), sched
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func runCommand(t *testing.T, m Model, command string) Model {
	t.Helper()
	return press(t, m, runes("/"), runes(command), enter())
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	if m.Current != model.GalleryGeneral {
		t.Fatalf("expected general gallery, got %q", m.Current)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if len(m.Notes) != 0 {
		t.Fatalf("expected empty gallery, got %d notes", len(m.Notes))
	}

	m, _ = newTestModel(t, Options{StartGallery: model.GalleryTravel})
	if m.Current != model.GalleryTravel {
		t.Fatalf("expected start gallery travel, got %q", m.Current)
	}
}

func TestUpdateKeySwitchesGallery(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next := press(t, m, runes("2"))
	if next.Current != model.GalleryFun {
		t.Fatalf("expected fun gallery, got %q", next.Current)
	}
	next = press(t, next, runes("5"))
	if next.Current != model.GalleryTravel {
		t.Fatalf("expected travel gallery, got %q", next.Current)
	}
}

func TestUpdateSwitchGalleryMsg(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(SwitchGalleryMsg{Gallery: model.GalleryOffice})
	next := updated.(Model)
	if next.Current != model.GalleryOffice {
		t.Fatalf("expected office gallery, got %q", next.Current)
	}

	updated, _ = next.Update(SwitchGalleryMsg{Gallery: model.GalleryKind("kitchen")})
	next = updated.(Model)
	if next.Current != model.GalleryOffice {
		t.Fatalf("expected gallery unchanged for unknown kind, got %q", next.Current)
	}
}

func TestQuickAddWithKeyboard(t *testing.T) {
	m, sched := newTestModel(t, Options{})
	next := press(t, m, runes("a"), runes("write tests"), enter())

	if len(next.Notes) != 1 || next.Notes[0].Text != "write tests" {
		t.Fatalf("unexpected notes: %+v", next.Notes)
	}
	if next.Capturing || next.QuickAdd != "" {
		t.Fatalf("expected capture to close, capturing=%v input=%q", next.Capturing, next.QuickAdd)
	}
	if len(sched.calls) != 0 {
		t.Fatalf("expected no reminder, got %+v", sched.calls)
	}
}

func TestQuickAddBlankIsRejected(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next := press(t, m, runes("a"), runes("   "), enter())

	if len(next.Notes) != 0 {
		t.Fatalf("expected no notes, got %d", len(next.Notes))
	}
	if !next.Capturing || !next.Status.IsError {
		t.Fatalf("expected capture to stay open with an error, got %+v", next.Status)
	}
}

func TestQuickAddDigitsStayInInput(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next := press(t, m, runes("a"), runes("call 2 people"), enter())
	if next.Current != model.GalleryGeneral || len(next.Notes) != 1 || next.Notes[0].Text != "call 2 people" {
		t.Fatalf("digits should be typed, not switch gallery: %q %+v", next.Current, next.Notes)
	}
}

func TestDeleteSelectedNote(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next := press(t, m, runes("a"), runes("first"), enter(), runes("a"), runes("second"), enter())
	if len(next.Notes) != 2 || next.Cursor != 1 {
		t.Fatalf("expected two notes with the new one selected, got %d cursor %d", len(next.Notes), next.Cursor)
	}
	next = press(t, next, runes("k"), runes("d"))
	if len(next.Notes) != 1 || next.Notes[0].Text != "second" {
		t.Fatalf("unexpected notes after delete: %+v", next.Notes)
	}
}

func TestPaletteAddWithReminderThenDelete(t *testing.T) {
	m, sched := newTestModel(t, Options{})
	next := press(t, m, runes("2"))
	next = runCommand(t, next, "add Buy milk remind:+1h")

	if len(next.Notes) != 1 {
		t.Fatalf("expected one note, got %d (%s)", len(next.Notes), next.Status.Text)
	}
	if len(sched.calls) != 1 {
		t.Fatalf("expected one schedule call, got %+v", sched.calls)
	}
	call := sched.calls[0]
	if call.id != next.Notes[0].ID || call.title != "Reminder" || call.body != "Buy milk" || !call.at.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected schedule call: %+v", call)
	}
	if !strings.Contains(next.Status.Text, "added note: Buy milk") {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}

	next = runCommand(t, next, "delete 1")
	if len(next.Notes) != 0 {
		t.Fatalf("expected empty gallery, got %d", len(next.Notes))
	}
	if len(sched.cancelled) != 1 || sched.cancelled[0] != call.id {
		t.Fatalf("expected one cancel for %s, got %v", call.id, sched.cancelled)
	}
}

func TestPaletteRemindAndUnremind(t *testing.T) {
	m, sched := newTestModel(t, Options{StartGallery: model.GalleryImportant})
	next := runCommand(t, m, "add Vet emoji:🐶")
	next = runCommand(t, next, "remind 1 2026-03-01 18:30")

	if len(sched.calls) != 1 || sched.calls[0].body != "🐶 Vet" {
		t.Fatalf("unexpected schedule calls: %+v", sched.calls)
	}
	next = runCommand(t, next, "unremind 1")
	if len(sched.cancelled) != 1 {
		t.Fatalf("expected cancel after unremind, got %v", sched.cancelled)
	}
	if next.Notes[0].HasReminder() {
		t.Fatal("expected reminder cleared")
	}

	next = runCommand(t, next, "remind 1 2026-02-01 08:00")
	if len(sched.calls) != 1 {
		t.Fatalf("past reminder must not schedule, got %+v", sched.calls)
	}
	if !strings.Contains(next.Status.Text, "not scheduled") {
		t.Fatalf("expected not-scheduled status, got %q", next.Status.Text)
	}
}

func TestPaletteEditKeepsIdentity(t *testing.T) {
	m, _ := newTestModel(t, Options{StartGallery: model.GalleryFun})
	next := runCommand(t, m, "add Workout cat:cartoon")
	id := next.Notes[0].ID
	next = runCommand(t, next, "edit 1 Morning run color:green")

	if len(next.Notes) != 1 || next.Notes[0].ID != id {
		t.Fatalf("edit should keep the note id: %+v", next.Notes)
	}
	if next.Notes[0].Text != "Morning run" || next.Notes[0].Color != model.ColorGreen || next.Notes[0].Category != model.CategoryCartoon {
		t.Fatalf("unexpected edited note: %+v", next.Notes[0])
	}
}

func TestPaletteTravelAdd(t *testing.T) {
	m, _ := newTestModel(t, Options{StartGallery: model.GalleryTravel})
	next := press(t, m, runes("a"), runes("Rome"), enter())
	if len(next.Notes) != 0 || !next.Status.IsError || !strings.Contains(next.Status.Text, "travel:") {
		t.Fatalf("expected travel hint error, got %+v", next.Status)
	}

	next = runCommand(t, press(t, next, tea.KeyMsg{Type: tea.KeyEsc}), "add Rome travel:2026-06-01 budget:1200")
	if len(next.Notes) != 1 || next.Notes[0].Travel == nil || next.Notes[0].Travel.Budget != 1200 {
		t.Fatalf("expected travel note, got %+v (%s)", next.Notes, next.Status.Text)
	}
}

func TestPaletteShowSwitchesGallery(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next := runCommand(t, m, "show office")
	if next.Current != model.GalleryOffice {
		t.Fatalf("expected office, got %q", next.Current)
	}
	next = runCommand(t, next, "show kitchen")
	if !next.Status.IsError || next.Current != model.GalleryOffice {
		t.Fatalf("expected error for unknown gallery, got %+v", next.Status)
	}
}

func TestPaletteImage(t *testing.T) {
	img := &model.Image{Name: "cat.png", ContentType: "image/png", Data: []byte{1, 2, 3}}
	m, _ := newTestModel(t, Options{
		StartGallery: model.GalleryFun,
		PickImage: func(path string) imagesource.Picker {
			if path == "cancel" {
				return imagesource.Cancelled{}
			}
			return stubPicker{img: img}
		},
	})
	next := runCommand(t, m, "add Cat")
	next = runCommand(t, next, "image 1 cancel")
	if next.Notes[0].Image != nil || next.Status.Text != "image selection cancelled" {
		t.Fatalf("expected cancelled pick to leave note untouched: %+v", next.Status)
	}
	next = runCommand(t, next, "image 1 ~/cat.png")
	if next.Notes[0].Image == nil || next.Notes[0].Image.Name != "cat.png" {
		t.Fatalf("expected image attached, got %+v (%s)", next.Notes[0].Image, next.Status.Text)
	}

	next = runCommand(t, press(t, next, runes("1")), "add plain")
	next = runCommand(t, next, "image 1 ~/cat.png")
	if !next.Status.IsError {
		t.Fatal("expected image to be rejected outside the fun gallery")
	}
}

func TestPaletteReset(t *testing.T) {
	m, sched := newTestModel(t, Options{})
	next := runCommand(t, m, "add a remind:+2h")
	next = runCommand(t, next, "add b")
	next = runCommand(t, next, "reset")
	if len(next.Notes) != 0 || len(sched.cancelled) != 1 {
		t.Fatalf("expected empty gallery and one cancel, got %d notes, %v", len(next.Notes), sched.cancelled)
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	next := runCommand(t, m, "frobnicate")
	if !next.Status.IsError || next.Palette.Active {
		t.Fatalf("expected closed palette with error, got %+v", next.Status)
	}
	next = runCommand(t, next, "delete 9")
	if !next.Status.IsError || !strings.Contains(next.Status.Text, "no note at position 9") {
		t.Fatalf("unexpected status: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newTestModel(t, Options{StartGallery: model.GalleryFun})
	m = runCommand(t, m, "add Feed the cat cat:smile")
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"gallery: Fun Gallery", "notes: 1", "Feed the cat", "status: all good", "Travel"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestInitWithEngineReturnsReminderCmd(t *testing.T) {
	m, _ := newTestModel(t, Options{Engine: scheduler.NewEngine(1)})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected reminder wait cmd when an engine is attached")
	}
	m, _ = newTestModel(t, Options{})
	if cmd := m.Init(); cmd != nil {
		t.Fatal("expected no cmd without an engine")
	}
}

func TestReminderDueMsgLogsNotifiesAndRearms(t *testing.T) {
	notifier := &recordingNotifier{}
	m, _ := newTestModel(t, Options{Engine: scheduler.NewEngine(1), Notifier: notifier, DesktopEnabled: true})
	ev := scheduler.ReminderEvent{
		ID:        "rem-1",
		Gallery:   "travel",
		Title:     "Travel Reminder",
		Body:      "🗼 Paris",
		TriggerAt: testNow,
	}

	updated, cmd := m.Update(ReminderDueMsg{Event: ev})
	next := updated.(Model)
	if len(next.ReminderLog) != 1 || next.ReminderLog[0].ID != "rem-1" {
		t.Fatalf("unexpected reminder log: %#v", next.ReminderLog)
	}
	if cmd == nil {
		t.Fatal("expected reminder listener rearm cmd")
	}
	if next.Status.Text != "Travel Reminder: 🗼 Paris" {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("desktop notification sent inside Update: %+v", notifier.sent)
	}
	if !strings.Contains(next.View(), "Travel Reminder: 🗼 Paris") {
		t.Fatal("expected reminder log in view")
	}
}

func TestReminderDueMsgSendsDesktopFromCmd(t *testing.T) {
	notifier := &recordingNotifier{}
	m, _ := newTestModel(t, Options{Notifier: notifier, DesktopEnabled: true})
	ev := scheduler.ReminderEvent{ID: "rem-1", Title: "Travel Reminder", Body: "🗼 Paris", TriggerAt: testNow}

	updated, cmd := m.Update(ReminderDueMsg{Event: ev})
	if len(updated.(Model).Notifications) != 1 {
		t.Fatalf("expected in-app notification, got %+v", updated.(Model).Notifications)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("desktop notification sent inside Update: %+v", notifier.sent)
	}
	if cmd == nil {
		t.Fatal("expected desktop notification cmd")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("unexpected msg from desktop cmd: %#v", msg)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Title != "Travel Reminder" || notifier.sent[0].Body != "🗼 Paris" {
		t.Fatalf("expected one desktop notification, got %+v", notifier.sent)
	}
}

func TestReminderDueMsgSkipsDesktopWhenDisabled(t *testing.T) {
	notifier := &recordingNotifier{}
	m, _ := newTestModel(t, Options{Notifier: notifier})
	updated, cmd := m.Update(ReminderDueMsg{Event: scheduler.ReminderEvent{ID: "x", Title: "Reminder", Body: "b"}})
	if cmd != nil {
		t.Fatal("expected no cmd without an engine or desktop delivery")
	}
	if len(updated.(Model).Notifications) != 1 || len(notifier.sent) != 0 {
		t.Fatalf("expected in-app notification only, sent=%+v", notifier.sent)
	}
}

func TestReminderLogIsBounded(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	for i := 0; i < maxReminderLog+5; i++ {
		updated, _ := m.Update(ReminderDueMsg{Event: scheduler.ReminderEvent{ID: "r", Title: "Reminder", Body: "b"}})
		m = updated.(Model)
	}
	if len(m.ReminderLog) != maxReminderLog {
		t.Fatalf("expected %d entries, got %d", maxReminderLog, len(m.ReminderLog))
	}
}

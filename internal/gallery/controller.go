package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmhodges/clock"
	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/storage"
	"go.uber.org/zap"
)

// Settings are the user preferences every gallery shares.
type Settings struct {
	RemindersEnabled bool
	DefaultColor     model.Color
	DefaultEmoji     string
}

func DefaultSettings() Settings {
	return Settings{
		RemindersEnabled: true,
		DefaultColor:     model.ColorYellow,
		DefaultEmoji:     "😊",
	}
}

type Option func(*Controller)

func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clk = clk }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Controller) { c.log = log }
}

func WithSettings(s Settings) Option {
	return func(c *Controller) { c.settings = s }
}

func WithIDGenerator(next func() string) Option {
	return func(c *Controller) { c.newID = next }
}

// Controller owns the lifecycle of one gallery's notes: it validates
// drafts, mutates the repository and keeps at most one pending reminder
// per note id in step with it.
type Controller struct {
	mu        sync.Mutex
	def       model.Gallery
	repo      storage.Repository
	sched     Scheduler
	clk       clock.Clock
	log       *zap.SugaredLogger
	newID     func() string
	settings  Settings
	// scheduled maps a note id to the fire time of its pending alert.
	scheduled map[string]time.Time
}

func NewController(def model.Gallery, repo storage.Repository, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		def:       def,
		repo:      repo,
		sched:     sched,
		clk:       clock.New(),
		log:       zap.NewNop().Sugar(),
		newID:     func() string { return uuid.New().String() },
		settings:  DefaultSettings(),
		scheduled: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = NoopScheduler{}
	}
	if c.settings.DefaultColor == "" {
		c.settings.DefaultColor = model.ColorYellow
	}
	c.log = c.log.With("gallery", def.Kind)
	return c
}

func (c *Controller) Gallery() model.Gallery {
	return c.def
}

func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// CanSave is the predicate gating the save action.
func (c *Controller) CanSave(d model.Draft) bool {
	return d.CanSave()
}

func (c *Controller) Add(ctx context.Context, d model.Draft) (model.Note, error) {
	if !d.CanSave() {
		return model.Note{}, model.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.build(d)
	n.ID = c.newID()
	n.CreatedAt = c.clk.Now().UTC()
	if err := n.Validate(c.def); err != nil {
		return model.Note{}, err
	}
	if err := c.repo.Add(ctx, n); err != nil {
		return model.Note{}, fmt.Errorf("add note: %w", err)
	}
	c.log.Infow("note added", "id", n.ID, "reminder", n.Reminder)
	c.syncReminder(n)
	return n, nil
}

// Update replaces the note's editable fields with d. A missing id is a
// logged no-op, reported through the boolean.
func (c *Controller) Update(ctx context.Context, id string, d model.Draft) (model.Note, bool, error) {
	if !d.CanSave() {
		return model.Note{}, false, model.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.log.Warnw("update of unknown note ignored", "id", id)
			return model.Note{}, false, nil
		}
		return model.Note{}, false, err
	}

	n := c.build(d)
	n.ID = existing.ID
	n.CreatedAt = existing.CreatedAt
	if err := n.Validate(c.def); err != nil {
		return model.Note{}, false, err
	}
	if err := c.repo.Update(ctx, n); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.log.Warnw("update of unknown note ignored", "id", id)
			return model.Note{}, false, nil
		}
		return model.Note{}, false, fmt.Errorf("update note: %w", err)
	}
	c.log.Infow("note updated", "id", n.ID, "reminder", n.Reminder)
	c.syncReminder(n)
	return n, true, nil
}

// Delete cancels the note's pending reminder, then removes it. Deleting an
// unknown id is a logged no-op. When the store fails the note keeps its
// reminder.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fireAt, wasScheduled := c.scheduled[id]
	if wasScheduled {
		c.sched.Cancel(id)
		delete(c.scheduled, id)
	}
	if err := c.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.log.Warnw("delete of unknown note ignored", "id", id)
			return false, nil
		}
		if wasScheduled {
			c.rearm(ctx, id, fireAt)
		}
		return false, fmt.Errorf("delete note: %w", err)
	}
	c.log.Infow("note deleted", "id", id)
	return true, nil
}

func (c *Controller) Get(ctx context.Context, id string) (model.Note, error) {
	return c.repo.Get(ctx, id)
}

func (c *Controller) List(ctx context.Context) ([]model.Note, error) {
	return c.repo.List(ctx)
}

// AttachImage stores a picked image against a note. A nil image clears it.
func (c *Controller) AttachImage(ctx context.Context, id string, img *model.Image) (model.Note, bool, error) {
	if !c.def.AllowsImage {
		return model.Note{}, false, model.ErrImageNotAllowed
	}
	existing, err := c.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.log.Warnw("image for unknown note ignored", "id", id)
			return model.Note{}, false, nil
		}
		return model.Note{}, false, err
	}
	d := model.DraftFromNote(existing)
	d.Image = img
	return c.Update(ctx, id, d)
}

// Reset cancels every pending reminder and empties the gallery.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id := range c.scheduled {
		c.sched.Cancel(id)
	}
	c.scheduled = make(map[string]time.Time)
	if err := c.repo.Clear(ctx); err != nil {
		return fmt.Errorf("reset gallery: %w", err)
	}
	c.log.Infow("gallery reset")
	return nil
}

// Resume schedules the future reminders of notes already in the
// repository, as after reopening a persistent store.
func (c *Controller) Resume(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	notes, err := c.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	resumed := 0
	for _, n := range notes {
		c.syncReminder(n)
		if _, ok := c.scheduled[n.ID]; ok {
			resumed++
		}
	}
	if resumed > 0 {
		c.log.Infow("reminders resumed", "count", resumed)
	}
	return resumed, nil
}

// Seed preloads the gallery's sample notes when it is empty.
func (c *Controller) Seed(ctx context.Context) (int, error) {
	notes, err := c.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(notes) > 0 {
		return 0, nil
	}
	added := 0
	for _, d := range model.SampleDrafts(c.def.Kind, c.clk.Now()) {
		if _, err := c.Add(ctx, d); err != nil {
			return added, fmt.Errorf("seed %q: %w", d.Text, err)
		}
		added++
	}
	return added, nil
}

// SetRemindersEnabled toggles scheduling. Turning it off cancels every
// pending reminder; turning it back on reschedules future ones.
func (c *Controller) SetRemindersEnabled(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	c.settings.RemindersEnabled = enabled
	if !enabled {
		for id := range c.scheduled {
			c.sched.Cancel(id)
		}
		c.scheduled = make(map[string]time.Time)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	_, err := c.Resume(ctx)
	return err
}

func (c *Controller) SetDefaults(color model.Color, emoji string) error {
	if !color.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidColor, color)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.DefaultColor = color
	c.settings.DefaultEmoji = strings.TrimSpace(emoji)
	return nil
}

// Fired records that the alert for id set to go off at firedAt was
// delivered. A later alert scheduled for the same note stays pending.
func (c *Controller) Fired(id string, firedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if at, ok := c.scheduled[id]; ok && at.Equal(firedAt) {
		delete(c.scheduled, id)
	}
}

func (c *Controller) IsScheduled(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.scheduled[id]
	return ok
}

func (c *Controller) build(d model.Draft) model.Note {
	n := model.Note{
		Gallery:  c.def.Kind,
		Text:     strings.TrimSpace(d.Text),
		Category: d.Category,
		Color:    d.Color,
		Emoji:    strings.TrimSpace(d.Emoji),
		Image:    d.Image,
		Reminder: d.Reminder,
		Travel:   d.Travel,
	}
	if n.Category == "" {
		n.Category = c.def.DefaultCategory()
	}
	if n.Color == "" {
		n.Color = c.settings.DefaultColor
	}
	if n.Emoji == "" {
		switch {
		case c.def.EmojiInBody:
			n.Emoji = c.settings.DefaultEmoji
		case n.Category.Emoji() != "":
			n.Emoji = n.Category.Emoji()
		}
	}
	if n.Reminder != nil && n.Reminder.IsZero() {
		n.Reminder = nil
	}
	return n
}

// rearm restores the alert a failed delete cancelled, provided the note is
// still stored and its reminder has not passed.
func (c *Controller) rearm(ctx context.Context, id string, fireAt time.Time) {
	n, err := c.repo.Get(ctx, id)
	if err != nil {
		c.log.Warnw("reminder lost after failed delete", "id", id, "fire_at", fireAt, "ERROR", err)
		return
	}
	c.syncReminder(n)
}

// syncReminder schedules n's reminder when it lies strictly in the future,
// and otherwise cancels whatever alert the note still has pending.
// Rescheduling reuses the note id, which supersedes the previous alert.
func (c *Controller) syncReminder(n model.Note) {
	if c.settings.RemindersEnabled && c.def.SupportsReminders && n.ReminderDue(c.clk.Now()) {
		title, body := model.ReminderContent(c.def, n)
		c.sched.Schedule(n.ID, title, body, *n.Reminder)
		c.scheduled[n.ID] = *n.Reminder
		return
	}
	if _, ok := c.scheduled[n.ID]; ok {
		c.sched.Cancel(n.ID)
		delete(c.scheduled, n.ID)
	}
}

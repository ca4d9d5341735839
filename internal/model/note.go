package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput           = errors.New("model: note text is required")
	ErrInvalidTravel          = errors.New("model: invalid travel details")
	ErrImageNotAllowed        = errors.New("model: gallery does not accept images")
	ErrRemindersNotSupported  = errors.New("model: gallery does not support reminders")
	ErrUnexpectedTravelFields = errors.New("model: travel details only apply to the travel gallery")
)

type Image struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

type TravelDetails struct {
	Date   time.Time `json:"date"`
	Budget float64   `json:"budget"`
}

func (t TravelDetails) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: travel date is required", ErrInvalidTravel)
	}
	if t.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidTravel)
	}
	return nil
}

// Note is one sticky note. For travel notes Text holds the destination.
type Note struct {
	ID        string         `json:"id"`
	Gallery   GalleryKind    `json:"gallery"`
	Text      string         `json:"text"`
	Category  Category       `json:"category,omitempty"`
	Color     Color          `json:"color"`
	Emoji     string         `json:"emoji,omitempty"`
	Image     *Image         `json:"image,omitempty"`
	Reminder  *time.Time     `json:"reminder,omitempty"`
	Travel    *TravelDetails `json:"travel,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (n Note) HasReminder() bool {
	return n.Reminder != nil && !n.Reminder.IsZero()
}

// ReminderDue reports whether the note's reminder lies strictly after now.
func (n Note) ReminderDue(now time.Time) bool {
	return n.HasReminder() && n.Reminder.After(now)
}

func (n Note) Validate(g Gallery) error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("model: note id is required")
	}
	if n.Gallery != g.Kind {
		return fmt.Errorf("%w: note belongs to %q, not %q", ErrInvalidGallery, n.Gallery, g.Kind)
	}
	if strings.TrimSpace(n.Text) == "" {
		return ErrInvalidInput
	}
	if !g.AllowsCategory(n.Category) {
		return fmt.Errorf("%w: %q for gallery %s", ErrInvalidCategory, n.Category, g.Kind)
	}
	if n.Color != "" && !n.Color.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, n.Color)
	}
	if n.Image != nil && !g.AllowsImage {
		return ErrImageNotAllowed
	}
	if n.HasReminder() && !g.SupportsReminders {
		return ErrRemindersNotSupported
	}
	if g.RequiresTravel {
		if n.Travel == nil {
			return fmt.Errorf("%w: travel date and budget are required", ErrInvalidTravel)
		}
		if err := n.Travel.Validate(); err != nil {
			return err
		}
	} else if n.Travel != nil {
		return ErrUnexpectedTravelFields
	}
	if n.CreatedAt.IsZero() {
		return errors.New("model: note created_at is required")
	}
	return nil
}

// Draft is the user-editable part of a note, as entered in an add or edit form.
type Draft struct {
	Text     string
	Category Category
	Color    Color
	Emoji    string
	Image    *Image
	Reminder *time.Time
	Travel   *TravelDetails
}

// CanSave gates the save action: the primary text must be non-blank.
func (d Draft) CanSave() bool {
	return strings.TrimSpace(d.Text) != ""
}

func DraftFromNote(n Note) Draft {
	return Draft{
		Text:     n.Text,
		Category: n.Category,
		Color:    n.Color,
		Emoji:    n.Emoji,
		Image:    n.Image,
		Reminder: n.Reminder,
		Travel:   n.Travel,
	}
}

// ReminderContent builds the title and body of the alert for a note.
func ReminderContent(g Gallery, n Note) (title, body string) {
	title = g.ReminderTitle
	if title == "" {
		title = "Reminder"
	}
	body = strings.TrimSpace(n.Text)
	if g.EmojiInBody && strings.TrimSpace(n.Emoji) != "" {
		body = strings.TrimSpace(n.Emoji) + " " + body
	}
	return title, body
}

package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/stickynotes/internal/model"
)

// noteRecord is the flattened form notes are persisted in.
type noteRecord struct {
	ID         string     `json:"id"`
	Gallery    string     `json:"gallery"`
	Text       string     `json:"text"`
	Category   string     `json:"category,omitempty"`
	Color      string     `json:"color,omitempty"`
	Emoji      string     `json:"emoji,omitempty"`
	ImageName  string     `json:"image_name,omitempty"`
	ImageType  string     `json:"image_type,omitempty"`
	ImageData  []byte     `json:"image_data,omitempty"`
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
	TravelDate *time.Time `json:"travel_date,omitempty"`
	Budget     *float64   `json:"budget,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toRecord(n model.Note) noteRecord {
	rec := noteRecord{
		ID:         n.ID,
		Gallery:    string(n.Gallery),
		Text:       n.Text,
		Category:   string(n.Category),
		Color:      string(n.Color),
		Emoji:      n.Emoji,
		ReminderAt: copyTime(n.Reminder),
		CreatedAt:  n.CreatedAt.UTC(),
	}
	if n.Image != nil {
		rec.ImageName = n.Image.Name
		rec.ImageType = n.Image.ContentType
		rec.ImageData = append([]byte(nil), n.Image.Data...)
	}
	if n.Travel != nil {
		date := n.Travel.Date.UTC()
		budget := n.Travel.Budget
		rec.TravelDate = &date
		rec.Budget = &budget
	}
	return rec
}

func (r noteRecord) toNote() model.Note {
	n := model.Note{
		ID:        r.ID,
		Gallery:   model.GalleryKind(r.Gallery),
		Text:      r.Text,
		Category:  model.Category(r.Category),
		Color:     model.Color(r.Color),
		Emoji:     r.Emoji,
		Reminder:  copyTime(r.ReminderAt),
		CreatedAt: r.CreatedAt,
	}
	if r.ImageName != "" || len(r.ImageData) > 0 {
		n.Image = &model.Image{
			Name:        r.ImageName,
			ContentType: r.ImageType,
			Data:        append([]byte(nil), r.ImageData...),
		}
	}
	if r.TravelDate != nil {
		n.Travel = &model.TravelDetails{Date: *r.TravelDate}
		if r.Budget != nil {
			n.Travel.Budget = *r.Budget
		}
	}
	return n
}

// cloneNote deep-copies the pointer fields so callers never share state
// with a repository.
func cloneNote(n model.Note) model.Note {
	out := n
	out.Reminder = copyTime(n.Reminder)
	if n.Image != nil {
		img := *n.Image
		img.Data = append([]byte(nil), n.Image.Data...)
		out.Image = &img
	}
	if n.Travel != nil {
		travel := *n.Travel
		out.Travel = &travel
	}
	return out
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := *v
	return &t
}

func checkInsertable(n model.Note, gallery model.GalleryKind) error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("storage: note id is required")
	}
	if strings.TrimSpace(n.Text) == "" {
		return model.ErrInvalidInput
	}
	if n.Gallery != gallery {
		return fmt.Errorf("%w: note belongs to %q, repository holds %q", model.ErrInvalidGallery, n.Gallery, gallery)
	}
	return nil
}

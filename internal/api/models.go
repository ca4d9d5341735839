package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/storage"
)

type TravelRequest struct {
	Date   time.Time `json:"date"`
	Budget float64   `json:"budget"`
}

type ImageRequest struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type NoteRequest struct {
	Text     string         `json:"text"`
	Category string         `json:"category"`
	Color    string         `json:"color"`
	Emoji    string         `json:"emoji"`
	Reminder *time.Time     `json:"reminder"`
	Travel   *TravelRequest `json:"travel"`
	Image    *ImageRequest  `json:"image"`
}

type GallerySummary struct {
	Kind              model.GalleryKind `json:"kind"`
	Name              string            `json:"name"`
	Categories        []model.Category  `json:"categories,omitempty"`
	SupportsReminders bool              `json:"supports_reminders"`
	AllowsImage       bool              `json:"allows_image"`
	Notes             int               `json:"notes"`
}

type RemindersRequest struct {
	Enabled bool `json:"enabled"`
}

type DefaultsRequest struct {
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

func (r NoteRequest) toDraft(g model.Gallery) (model.Draft, error) {
	d := model.Draft{
		Text:     r.Text,
		Emoji:    r.Emoji,
		Reminder: r.Reminder,
	}
	if r.Category != "" {
		c, err := g.ParseCategory(r.Category)
		if err != nil {
			return model.Draft{}, err
		}
		d.Category = c
	}
	if r.Color != "" {
		c, err := model.ParseColor(r.Color)
		if err != nil {
			return model.Draft{}, err
		}
		d.Color = c
	}
	if r.Travel != nil {
		d.Travel = &model.TravelDetails{Date: r.Travel.Date.UTC(), Budget: r.Travel.Budget}
	}
	if r.Image != nil {
		d.Image = r.Image.toImage()
	}
	return d, nil
}

func (r ImageRequest) toImage() *model.Image {
	return &model.Image{Name: r.Name, ContentType: r.ContentType, Data: r.Data}
}

// statusFor maps lifecycle errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidGallery), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidColor),
		errors.Is(err, model.ErrInvalidTravel),
		errors.Is(err, model.ErrImageNotAllowed),
		errors.Is(err, model.ErrRemindersNotSupported),
		errors.Is(err, model.ErrUnexpectedTravelFields):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

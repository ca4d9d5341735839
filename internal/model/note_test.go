package model

import (
	"errors"
	"testing"
	"time"
)

func mustGallery(t *testing.T, kind GalleryKind) Gallery {
	t.Helper()
	g, err := Lookup(kind)
	if err != nil {
		t.Fatalf("lookup %s: %v", kind, err)
	}
	return g
}

func TestNoteValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	remind := now.Add(time.Hour)
	note := Note{
		ID:        "note-1",
		Gallery:   GalleryFun,
		Text:      "Buy milk",
		Category:  CategoryGrocery,
		Color:     ColorYellow,
		Reminder:  &remind,
		CreatedAt: now,
	}
	if err := note.Validate(mustGallery(t, GalleryFun)); err != nil {
		t.Fatalf("expected valid note, got error: %v", err)
	}
}

func TestNoteValidateRejectsBlankText(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	note := Note{ID: "note-1", Gallery: GalleryGeneral, Text: "   \t", Category: CategorySmile, CreatedAt: now}
	err := note.Validate(mustGallery(t, GalleryGeneral))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNoteValidateCategoryBelongsToGallery(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	note := Note{ID: "note-1", Gallery: GalleryOffice, Text: "Standup", Category: CategoryGrocery, CreatedAt: now}
	if err := note.Validate(mustGallery(t, GalleryOffice)); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	note.Gallery = GalleryImportant
	if err := note.Validate(mustGallery(t, GalleryImportant)); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected important gallery to reject categories, got %v", err)
	}
}

func TestNoteValidateTravelDetails(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	travel := mustGallery(t, GalleryTravel)
	note := Note{ID: "trip-1", Gallery: GalleryTravel, Text: "Lisbon", CreatedAt: now}
	if err := note.Validate(travel); !errors.Is(err, ErrInvalidTravel) {
		t.Fatalf("expected missing travel details error, got %v", err)
	}

	note.Travel = &TravelDetails{Date: now.AddDate(0, 1, 0), Budget: -1}
	if err := note.Validate(travel); !errors.Is(err, ErrInvalidTravel) {
		t.Fatalf("expected negative budget error, got %v", err)
	}

	note.Travel.Budget = 0
	if err := note.Validate(travel); err != nil {
		t.Fatalf("expected zero budget to be valid, got %v", err)
	}

	note.Gallery = GalleryGeneral
	note.Category = CategorySmile
	if err := note.Validate(mustGallery(t, GalleryGeneral)); !errors.Is(err, ErrUnexpectedTravelFields) {
		t.Fatalf("expected travel fields rejected outside travel gallery, got %v", err)
	}
}

func TestNoteValidateGalleryCapabilities(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	remind := now.Add(time.Hour)
	office := Note{ID: "o-1", Gallery: GalleryOffice, Text: "Review", Category: CategoryWork, Reminder: &remind, CreatedAt: now}
	if err := office.Validate(mustGallery(t, GalleryOffice)); !errors.Is(err, ErrRemindersNotSupported) {
		t.Fatalf("expected office reminders rejected, got %v", err)
	}

	general := Note{ID: "g-1", Gallery: GalleryGeneral, Text: "Photo", Category: CategorySmile, Image: &Image{Name: "cat.png"}, CreatedAt: now}
	if err := general.Validate(mustGallery(t, GalleryGeneral)); !errors.Is(err, ErrImageNotAllowed) {
		t.Fatalf("expected image rejected, got %v", err)
	}
}

func TestDraftCanSave(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Buy milk", true},
		{"  padded  ", true},
		{"", false},
		{"   ", false},
		{"\n\t", false},
	}
	for _, tc := range cases {
		if got := (Draft{Text: tc.text}).CanSave(); got != tc.want {
			t.Fatalf("CanSave(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestReminderContentPerGallery(t *testing.T) {
	cases := []struct {
		kind      GalleryKind
		note      Note
		wantTitle string
		wantBody  string
	}{
		{GalleryGeneral, Note{Text: "Buy milk"}, "Sticky Note Reminder", "Buy milk"},
		{GalleryFun, Note{Text: "Buy milk", Emoji: "🥛"}, "Reminder", "Buy milk"},
		{GalleryImportant, Note{Text: "Doctor Appointment", Emoji: "🩺"}, "Reminder", "🩺 Doctor Appointment"},
		{GalleryTravel, Note{Text: "Paris", Emoji: "🗼"}, "Travel Reminder", "🗼 Paris"},
		{GalleryTravel, Note{Text: "Rome"}, "Travel Reminder", "Rome"},
	}
	for _, tc := range cases {
		title, body := ReminderContent(mustGallery(t, tc.kind), tc.note)
		if title != tc.wantTitle || body != tc.wantBody {
			t.Fatalf("%s: got (%q, %q), want (%q, %q)", tc.kind, title, body, tc.wantTitle, tc.wantBody)
		}
	}
}

func TestReminderDue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)
	if (Note{}).ReminderDue(now) {
		t.Fatal("note without reminder must not be due")
	}
	if (Note{Reminder: &past}).ReminderDue(now) {
		t.Fatal("past reminder must not be due")
	}
	if (Note{Reminder: &now}).ReminderDue(now) {
		t.Fatal("reminder equal to now is not strictly in the future")
	}
	if !(Note{Reminder: &future}).ReminderDue(now) {
		t.Fatal("future reminder must be due")
	}
}

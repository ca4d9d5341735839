package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidGallery  = errors.New("model: invalid gallery")
	ErrInvalidCategory = errors.New("model: invalid category")
	ErrInvalidColor    = errors.New("model: invalid color")
)

type GalleryKind string

const (
	GalleryGeneral   GalleryKind = "general"
	GalleryFun       GalleryKind = "fun"
	GalleryOffice    GalleryKind = "office"
	GalleryImportant GalleryKind = "important"
	GalleryTravel    GalleryKind = "travel"
)

func (k GalleryKind) IsValid() bool {
	switch k {
	case GalleryGeneral, GalleryFun, GalleryOffice, GalleryImportant, GalleryTravel:
		return true
	default:
		return false
	}
}

func ParseGalleryKind(raw string) (GalleryKind, error) {
	k := GalleryKind(strings.ToLower(strings.TrimSpace(raw)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGallery, raw)
	}
	return k, nil
}

type Category string

const (
	CategoryCartoon Category = "Cartoon"
	CategoryGrocery Category = "Grocery"
	CategorySmile   Category = "Smile"
	CategoryMeeting Category = "Meeting"
	CategoryWork    Category = "Work"
	CategoryTasks   Category = "Tasks"
)

// Emoji is the decoration office notes carry for their category.
func (c Category) Emoji() string {
	switch c {
	case CategoryMeeting:
		return "📅"
	case CategoryWork:
		return "💼"
	case CategoryTasks:
		return "📌"
	default:
		return ""
	}
}

type Color string

const (
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorMint   Color = "mint"
	ColorTeal   Color = "teal"
)

var palette = []Color{ColorYellow, ColorGreen, ColorPink, ColorOrange, ColorPurple, ColorBlue, ColorRed, ColorMint, ColorTeal}

func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette)
	return out
}

func (c Color) IsValid() bool {
	for _, p := range palette {
		if p == c {
			return true
		}
	}
	return false
}

func ParseColor(raw string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	return c, nil
}

// Gallery describes one independently scoped note collection. Controllers
// and stores are parameterized by it instead of being copied per gallery.
type Gallery struct {
	Kind       GalleryKind
	Name       string
	Categories []Category

	ReminderTitle     string
	SupportsReminders bool
	EmojiInBody       bool
	RequiresTravel    bool
	AllowsImage       bool
}

func (g Gallery) HasCategories() bool {
	return len(g.Categories) > 0
}

func (g Gallery) DefaultCategory() Category {
	if len(g.Categories) == 0 {
		return ""
	}
	return g.Categories[0]
}

func (g Gallery) AllowsCategory(c Category) bool {
	if len(g.Categories) == 0 {
		return c == ""
	}
	for _, allowed := range g.Categories {
		if allowed == c {
			return true
		}
	}
	return false
}

// ParseCategory matches raw case-insensitively against the gallery's set.
func (g Gallery) ParseCategory(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return g.DefaultCategory(), nil
	}
	for _, c := range g.Categories {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q for gallery %s", ErrInvalidCategory, raw, g.Kind)
}

var galleries = []Gallery{
	{
		Kind:              GalleryGeneral,
		Name:              "Sticky Notes",
		Categories:        []Category{CategoryCartoon, CategoryGrocery, CategorySmile},
		ReminderTitle:     "Sticky Note Reminder",
		SupportsReminders: true,
	},
	{
		Kind:              GalleryFun,
		Name:              "Fun Gallery",
		Categories:        []Category{CategoryCartoon, CategoryGrocery, CategorySmile},
		ReminderTitle:     "Reminder",
		SupportsReminders: true,
		AllowsImage:       true,
	},
	{
		Kind:       GalleryOffice,
		Name:       "Office Space",
		Categories: []Category{CategoryMeeting, CategoryWork, CategoryTasks},
	},
	{
		Kind:              GalleryImportant,
		Name:              "Important",
		ReminderTitle:     "Reminder",
		SupportsReminders: true,
		EmojiInBody:       true,
	},
	{
		Kind:              GalleryTravel,
		Name:              "Travel",
		ReminderTitle:     "Travel Reminder",
		SupportsReminders: true,
		EmojiInBody:       true,
		RequiresTravel:    true,
	},
}

// Galleries returns every gallery definition in display order.
func Galleries() []Gallery {
	out := make([]Gallery, len(galleries))
	copy(out, galleries)
	return out
}

func Lookup(kind GalleryKind) (Gallery, error) {
	for _, g := range galleries {
		if g.Kind == kind {
			return g, nil
		}
	}
	return Gallery{}, fmt.Errorf("%w: %q", ErrInvalidGallery, kind)
}

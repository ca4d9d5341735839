package commands

import (
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/stickynotes/internal/model"
)

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseWhen resolves a reminder time relative to now. It accepts "+1h30m",
// RFC 3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02", a bare
// "15:04" (next occurrence) and "none", which clears the reminder.
func ParseWhen(raw string, now time.Time) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "":
		return nil, invalid("time is required")
	case "none", "off", "clear":
		return nil, nil
	}
	loc := now.Location()

	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil || d <= 0 {
			return nil, invalid("invalid offset %q", s)
		}
		t := now.Add(d)
		return &t, nil
	}
	for _, layout := range whenLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return &t, nil
	}
	if clock, err := time.ParseInLocation("15:04", s, loc); err == nil {
		y, m, d := now.Date()
		t := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc)
		if !t.After(now) {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}
	return nil, invalid("unrecognized time %q", s)
}

// Apply layers the given fields onto d for gallery g. Fields left empty
// keep d's value.
func (a NoteArgs) Apply(d model.Draft, g model.Gallery, now time.Time) (model.Draft, error) {
	if a.Text != "" {
		d.Text = a.Text
	}
	if a.Category != "" {
		c, err := g.ParseCategory(a.Category)
		if err != nil {
			return model.Draft{}, err
		}
		d.Category = c
	}
	if a.Color != "" {
		c, err := model.ParseColor(a.Color)
		if err != nil {
			return model.Draft{}, err
		}
		d.Color = c
	}
	if a.Emoji != "" {
		d.Emoji = a.Emoji
	}
	if a.Remind != "" {
		when, err := ParseWhen(a.Remind, now)
		if err != nil {
			return model.Draft{}, err
		}
		d.Reminder = when
	}
	if a.Travel != "" || a.Budget != "" {
		travel := model.TravelDetails{}
		if d.Travel != nil {
			travel = *d.Travel
		}
		if a.Travel != "" {
			date, err := time.ParseInLocation("2006-01-02", a.Travel, now.Location())
			if err != nil {
				return model.Draft{}, invalid("travel date %q must be YYYY-MM-DD", a.Travel)
			}
			travel.Date = date
		}
		if a.Budget != "" {
			budget, err := strconv.ParseFloat(a.Budget, 64)
			if err != nil {
				return model.Draft{}, invalid("budget %q is not a number", a.Budget)
			}
			travel.Budget = budget
		}
		d.Travel = &travel
	}
	return d, nil
}

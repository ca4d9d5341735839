package model

import "time"

// SampleDrafts returns the notes a fresh gallery is preloaded with.
func SampleDrafts(kind GalleryKind, now time.Time) []Draft {
	switch kind {
	case GalleryFun:
		return []Draft{
			{Text: "Feed the cat 🐱", Category: CategorySmile, Color: ColorYellow},
			{Text: "Buy groceries 🛒", Category: CategoryGrocery, Color: ColorPink},
			{Text: "Play with dog 🐶", Category: CategorySmile, Color: ColorGreen},
			{Text: "Workout 💪", Category: CategoryCartoon, Color: ColorOrange},
			{Text: "Doctor Appointment 🩺", Category: CategoryCartoon, Color: ColorPurple},
			{Text: "Relax Time 🌴", Category: CategoryCartoon, Color: ColorMint},
		}
	case GalleryImportant:
		return []Draft{
			{Text: "Doctor Appointment", Emoji: "🩺", Color: ColorYellow},
			{Text: "Cat Vaccination", Emoji: "🐱💉", Color: ColorPink},
		}
	case GalleryTravel:
		return []Draft{
			{
				Text:   "Hawaii",
				Emoji:  "🏖️",
				Color:  ColorYellow,
				Travel: &TravelDetails{Date: now.Add(30 * 24 * time.Hour), Budget: 2000},
			},
			{
				Text:   "Paris",
				Emoji:  "🗼",
				Color:  ColorPink,
				Travel: &TravelDetails{Date: now.Add(60 * 24 * time.Hour), Budget: 2500},
			},
		}
	default:
		return nil
	}
}

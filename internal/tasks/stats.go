package tasks

import (
	"time"

	"github.com/threesixnine/archive/internal/models"
)

// CalendarDays is the span of the profile activity calendar: four weeks
// ending today.
const CalendarDays = 28

// ProfileStats summarizes a user's archive for the profile view.
type ProfileStats struct {
	User        string
	NoteCount   int
	MemberSince time.Time          // Creation time of the user's first note; now when they have none
	Calendar    [CalendarDays]bool // Oldest day first, true when the user posted or edited that day
}

// ComputeStats derives profile statistics for user from the full collection.
func ComputeStats(user string, c models.Collection, now time.Time) ProfileStats {
	stats := ProfileStats{User: user, MemberSince: now}

	userNotes := c.ByAuthor(user)
	stats.NoteCount = len(userNotes)

	for _, note := range userNotes {
		if note.Created.Before(stats.MemberSince) {
			stats.MemberSince = note.Created
		}
	}

	today := now.Truncate(24 * time.Hour)
	for i := 0; i < CalendarDays; i++ {
		day := today.AddDate(0, 0, -(CalendarDays - i - 1))
		next := day.AddDate(0, 0, 1)
		for _, note := range userNotes {
			if !note.Timestamp.Before(day) && note.Timestamp.Before(next) {
				stats.Calendar[i] = true
				break
			}
		}
	}

	return stats
}

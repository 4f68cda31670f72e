package tasks

import (
	"testing"
	"time"

	"github.com/threesixnine/archive/internal/models"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 6, 28, 15, 30, 0, 0, time.UTC)

	note := func(author string, created time.Time) models.Note {
		return models.Note{ID: created.String(), Content: "x", Author: author, Timestamp: created, Created: created}
	}

	t.Run("counts only the user's notes", func(t *testing.T) {
		c := models.Collection{
			note(models.UserRee, now.Add(-time.Hour)),
			note(models.UserKairo, now.Add(-2*time.Hour)),
			note(models.UserRee, now.Add(-48*time.Hour)),
		}

		stats := ComputeStats(models.UserRee, c, now)
		if stats.NoteCount != 2 {
			t.Errorf("expected 2 notes, got %d", stats.NoteCount)
		}
		if stats.User != models.UserRee {
			t.Errorf("expected user %s, got %s", models.UserRee, stats.User)
		}
	})

	t.Run("member since is the earliest creation", func(t *testing.T) {
		first := now.Add(-20 * 24 * time.Hour)
		c := models.Collection{
			note(models.UserRee, now.Add(-time.Hour)),
			note(models.UserRee, first),
		}

		stats := ComputeStats(models.UserRee, c, now)
		if !stats.MemberSince.Equal(first) {
			t.Errorf("expected member since %v, got %v", first, stats.MemberSince)
		}
	})

	t.Run("no notes means member since now", func(t *testing.T) {
		stats := ComputeStats(models.UserRee, models.Collection{}, now)
		if !stats.MemberSince.Equal(now) {
			t.Errorf("expected member since %v, got %v", now, stats.MemberSince)
		}
		if stats.NoteCount != 0 {
			t.Errorf("expected 0 notes, got %d", stats.NoteCount)
		}
		for i, active := range stats.Calendar {
			if active {
				t.Errorf("expected empty calendar, day %d marked", i)
			}
		}
	})

	t.Run("calendar marks activity days oldest first", func(t *testing.T) {
		c := models.Collection{
			note(models.UserRee, now),                       // Today, last cell
			note(models.UserRee, now.Add(-3*24*time.Hour)),  // Three days ago
			note(models.UserRee, now.Add(-40*24*time.Hour)), // Outside the window
		}

		stats := ComputeStats(models.UserRee, c, now)
		if !stats.Calendar[CalendarDays-1] {
			t.Error("expected today marked")
		}
		if !stats.Calendar[CalendarDays-4] {
			t.Error("expected three days ago marked")
		}

		marked := 0
		for _, active := range stats.Calendar {
			if active {
				marked++
			}
		}
		if marked != 2 {
			t.Errorf("expected exactly 2 marked days, got %d", marked)
		}
	})

	t.Run("edits count as activity", func(t *testing.T) {
		created := now.Add(-60 * 24 * time.Hour)
		edited := models.Note{ID: "e", Content: "x", Author: models.UserRee, Timestamp: now, Created: created}

		stats := ComputeStats(models.UserRee, models.Collection{edited}, now)
		if !stats.Calendar[CalendarDays-1] {
			t.Error("expected edit day marked even for an old note")
		}
	})
}

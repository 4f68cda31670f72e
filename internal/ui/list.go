package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/threesixnine/archive/internal/models"
)

var (
	_ list.Item = userItem{}
	_ list.Item = noteItem{}
)

// userItem wraps an archive identity to implement [list.Item].
type userItem struct {
	profile models.Profile
}

func (i userItem) FilterValue() string { return i.profile.User }
func (i userItem) Title() string       { return i.profile.User }
func (i userItem) Description() string { return i.profile.DisplayName }

// noteItem wraps [models.Note] to implement [list.Item]. mine marks notes
// owned by the active user, which gates edit/delete affordances.
type noteItem struct {
	note models.Note
	mine bool
}

func (i noteItem) FilterValue() string { return i.note.Content }

func (i noteItem) Title() string {
	title := i.note.Content
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx] + "…"
	}
	return title
}

func (i noteItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.note.Author, i.note.Timestamp.Format("Jan 2 2006 15:04"))
	if !i.note.Timestamp.Equal(i.note.Created) {
		desc += " (edited)"
	}
	if i.mine {
		desc += " • yours"
	}
	return desc
}

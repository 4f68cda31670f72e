package main

import (
	"context"
	"fmt"

	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/urfave/cli/v3"
)

// NotesList prints notes newest-first, optionally filtered by author.
func (r *Runner) NotesList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	var collection models.Collection
	if author := cmd.String("author"); author != "" {
		collection, err = c.mgr.NotesFor(shared.NormalizeUser(author))
	} else {
		collection, err = c.mgr.Notes()
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(collection, true)
	}

	if len(collection) == 0 {
		r.writePlainln("No notes yet.")
		return nil
	}
	for _, note := range collection {
		edited := ""
		if !note.Timestamp.Equal(note.Created) {
			edited = " (edited)"
		}
		r.writePlainln("[%s] %s — %s%s", note.ID, note.Author, note.Timestamp.Format("Jan 2 2006 15:04"), edited)
		r.writePlainln("  %s", note.Content)
	}
	return nil
}

// NotesAdd posts a note as the signed-in user. Empty content is silently
// ignored, matching the archive's input semantics.
func (r *Runner) NotesAdd(ctx context.Context, cmd *cli.Command) error {
	content := cmd.StringArg("content")

	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	note, err := c.mgr.CreateNote(content)
	if err != nil {
		return err
	}
	if note == nil {
		r.writePlainln("Nothing to post.")
		return nil
	}
	r.writePlainln("Posted note %s", note.ID)
	return nil
}

// NotesEdit rewrites one of the signed-in user's notes.
func (r *Runner) NotesEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	content := cmd.StringArg("content")

	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	note, err := c.mgr.EditNote(id, content)
	if err != nil {
		return err
	}
	if note == nil {
		r.writePlainln("Nothing changed.")
		return nil
	}
	r.writePlainln("Updated note %s", note.ID)
	return nil
}

// NotesDelete removes one of the signed-in user's notes after confirmation.
func (r *Runner) NotesDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")

	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		if !r.confirm("Are you sure you want to delete this note?") {
			r.writePlainln("Aborted.")
			return nil
		}
	}

	if err := c.mgr.DeleteNote(id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	r.writePlainln("Deleted note %s", id)
	return nil
}

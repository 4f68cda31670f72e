package main

import (
	"context"
	"sort"

	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export snapshots every author's notes to files under one directory.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	// Export covers every author present, not just the fixed identities.
	seen := map[string]bool{}
	users := append([]string{}, models.KnownUsers...)
	for _, user := range users {
		seen[user] = true
	}
	for _, note := range c.store.All() {
		if !seen[note.Author] {
			seen[note.Author] = true
			users = append(users, note.Author)
		}
	}
	sort.Strings(users)

	prog := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			if update.Phase == tasks.WriteFiles {
				r.writePlainln("Exported %s (%d/%d)", update.Message, update.Step, update.Total)
			}
		}
	}()

	result, err := tasks.Snapshot(ctx, c.store, users, prog, tasks.SnapshotOpts{
		Format:    cmd.String("format"),
		OutputDir: cmd.String("output"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Snapshot complete: %d notes across %d users in %s", result.TotalNotes, result.TotalUsers, result.OutputDirectory)
	r.writePlainln("Manifest: %s", result.ManifestFile)
	return nil
}

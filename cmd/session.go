package main

import (
	"context"
	"fmt"
	"time"

	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/urfave/cli/v3"
)

// SessionSelect signs in as the given archive identity and remembers it.
//
// Unknown names degrade to the Others profile. With --wait the command rides
// out the full loading screen the way the TUI would; otherwise it reveals
// immediately.
func (r *Runner) SessionSelect(ctx context.Context, cmd *cli.Command) error {
	user := cmd.StringArg("user")
	if user == "" {
		return fmt.Errorf("%w: user name", shared.ErrMissingArgument)
	}

	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if cmd.Bool("wait") {
		profile, err := c.mgr.Select(user)
		if err != nil {
			return err
		}
		r.writePlainln("Welcome, %s", profile.DisplayName)
		r.writePlainln("Loading the archive (%s)...", c.mgr.LoadingRemaining().Round(time.Second))
		for c.mgr.Phase() == models.Loading {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(250 * time.Millisecond):
			}
		}
	} else {
		profile, err := c.mgr.SelectNow(user)
		if err != nil {
			return err
		}
		r.writePlainln("Welcome, %s", profile.DisplayName)
	}

	profile := c.mgr.Profile()
	r.writePlainln("Theme: %s • Track: %s (from %s)", profile.Theme, profile.Track, profile.StartOffset)
	return nil
}

// SessionStatus reports the remembered user, saved volume, and note count.
func (r *Runner) SessionStatus(ctx context.Context, cmd *cli.Command) error {
	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	user, remembered := c.mgr.RememberedUser()
	status := struct {
		User      string  `json:"user,omitempty"`
		Signed    bool    `json:"signed_in"`
		Volume    float64 `json:"volume"`
		NoteCount int     `json:"note_count"`
	}{
		User:   user,
		Signed: remembered,
		Volume: c.mgr.Volume(),
	}
	if remembered {
		status.NoteCount = len(c.store.ListFor(user))
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !remembered {
		r.writePlainln("Not signed in. Run `archive select <user>`.")
		return nil
	}
	r.writePlainln("Signed in as %s (%d notes, volume %.0f%%)", user, status.NoteCount, status.Volume*100)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/threesixnine/archive/internal/shared"
	"github.com/threesixnine/archive/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Profile prints archive statistics for a user: note count, member-since,
// and the four-week activity calendar.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	user := cmd.String("user")
	if user == "" {
		user = c.mgr.ActiveUser()
	} else {
		user = shared.NormalizeUser(user)
	}

	collection, err := c.mgr.Notes()
	if err != nil {
		return err
	}
	stats := tasks.ComputeStats(user, collection, time.Now())

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainln("%s", user)
	r.writePlainln("Notes: %d", stats.NoteCount)
	r.writePlainln("Member since: %s", stats.MemberSince.Format("Jan 2, 2006"))
	r.writePlainln("Activity (last %d days):", tasks.CalendarDays)

	var row strings.Builder
	for i, active := range stats.Calendar {
		if active {
			row.WriteString("■ ")
		} else {
			row.WriteString("□ ")
		}
		if (i+1)%7 == 0 {
			r.writePlainln("  %s", row.String())
			row.Reset()
		}
	}
	return nil
}

// Volume shows or sets the saved volume level (0-100).
func (r *Runner) Volume(ctx context.Context, cmd *cli.Command) error {
	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	level := cmd.StringArg("level")
	if level == "" {
		r.writePlainln("Volume: %.0f%%", c.mgr.Volume()*100)
		return nil
	}

	percent, err := strconv.ParseFloat(level, 64)
	if err != nil {
		return fmt.Errorf("%w: volume must be a number 0-100", shared.ErrInvalidArgument)
	}

	applied := c.mgr.SetVolume(percent / 100)
	r.writePlainln("Volume: %.0f%%", applied*100)
	return nil
}

// AvatarSet stores an image file as the signed-in user's avatar.
func (r *Runner) AvatarSet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: image path", shared.ErrMissingArgument)
	}

	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	if err := c.mgr.SetAvatar(c.mgr.ActiveUser(), image); err != nil {
		return err
	}
	r.writePlainln("Avatar updated for %s (%d bytes)", c.mgr.ActiveUser(), len(image))
	return nil
}

// AvatarShow writes the signed-in user's stored avatar to a file.
func (r *Runner) AvatarShow(ctx context.Context, cmd *cli.Command) error {
	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if err := r.resume(c); err != nil {
		return err
	}

	image, ok := c.mgr.Avatar(c.mgr.ActiveUser())
	if !ok {
		r.writePlainln("No avatar stored for %s.", c.mgr.ActiveUser())
		return nil
	}

	output := cmd.String("output")
	if err := os.WriteFile(output, image, 0644); err != nil {
		return fmt.Errorf("failed to write avatar: %w", err)
	}
	r.writePlainln("Avatar written to %s (%d bytes)", output, len(image))
	return nil
}

// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, selectCommand, statusCommand, notesCommand, volumeCommand, avatarCommand, profileCommand, exportCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// setupCommand handles database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// selectCommand activates one of the archive identities.
func selectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "select",
		Usage: "Sign in as one of the archive identities",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "user"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "wait",
				Usage: "Ride out the full loading screen before returning",
			},
		},
		Action: r.SessionSelect,
	}
}

// statusCommand reports the remembered user and playback settings.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "status",
		Aliases: []string{"whoami"},
		Usage:   "Show the remembered user, volume, and note count",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.SessionStatus,
	}
}

// notesCommand handles note CRUD operations.
func notesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "notes",
		Aliases: []string{"n"},
		Usage:   "Post, edit, and delete archive notes",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List notes, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "author",
						Aliases: []string{"a"},
						Usage:   "Only this author's notes",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.NotesList,
			},
			{
				Name:  "add",
				Usage: "Post a note as the signed-in user",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "content"},
				},
				Action: r.NotesAdd,
			},
			{
				Name:  "edit",
				Usage: "Rewrite one of your notes",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "content"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Note ID to edit",
						Required: true,
					},
				},
				Action: r.NotesEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete one of your notes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Note ID to delete",
						Required: true,
					},
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.NotesDelete,
			},
		},
	}
}

// volumeCommand reads or writes the persisted volume level.
func volumeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "volume",
		Usage: "Show or set the saved volume (0-100)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "level"},
		},
		Action: r.Volume,
	}
}

// avatarCommand manages per-user avatar images.
func avatarCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "avatar",
		Usage: "Manage the signed-in user's avatar",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Store an image file as your avatar",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.AvatarSet,
			},
			{
				Name:  "show",
				Usage: "Write your stored avatar to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "avatar.img",
					},
				},
				Action: r.AvatarShow,
			},
		},
	}
}

// profileCommand shows archive statistics for a user.
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Show note count, member-since, and activity calendar",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Profile to show (defaults to the signed-in user)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Profile,
	}
}

// exportCommand snapshots every user's notes to files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all users' notes to files with a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: txt, csv, markdown, json",
				Value:   "markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for the interactive archive.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive archive",
		Action:  r.TUI,
	}
}

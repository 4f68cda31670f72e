package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/threesixnine/archive/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive archive.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/archive-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	c, err := r.components()
	if err != nil {
		return err
	}
	defer c.close()

	if !r.config.Archive.RememberUser {
		c.mgr.Reset(true)
	}

	model := ui.NewModel(c.mgr)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/threesixnine/archive/internal/notes"
	"github.com/threesixnine/archive/internal/session"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/threesixnine/archive/internal/storage"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	input  io.Reader
	kv     storage.KV // when set, used instead of opening the database (tests)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
	KV     storage.KV
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		input:  opts.Input,
		kv:     opts.KV,
	}
}

// SetLogger swaps the runner's logger, e.g. for TUI file logging.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// components wires storage, the note store, and the session manager for one
// command invocation. The returned close func releases the database.
type components struct {
	kv    storage.KV
	store *notes.Store
	mgr   *session.Manager
	close func()
}

func (r *Runner) components() (*components, error) {
	kv := r.kv
	closeFn := func() {}

	if kv == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		kv = storage.NewSQLiteStore(db)
		closeFn = func() { db.Close() }
	}

	store := notes.NewStore(kv, r.logger, r.config.Archive.MaxNotes)
	mgr := session.NewManager(session.Opts{
		KV:              kv,
		Notes:           store,
		Logger:          r.logger,
		LoadingDuration: time.Duration(r.config.Archive.LoadingSeconds) * time.Second,
		DefaultVolume:   r.config.Audio.DefaultVolume,
		Autoplay:        r.config.Audio.Autoplay,
	})

	return &components{kv: kv, store: store, mgr: mgr, close: closeFn}, nil
}

// resume replays the remembered user without a loading screen, the one-shot
// CLI equivalent of the startup auto-select.
func (r *Runner) resume(c *components) error {
	user, ok := c.mgr.RememberedUser()
	if !ok || !r.config.Archive.RememberUser {
		return fmt.Errorf("%w: run `archive select <user>` first", shared.ErrNoActiveSession)
	}
	if _, err := c.mgr.SelectNow(user); err != nil {
		return err
	}
	return nil
}

// confirm prompts on the runner's input and accepts y/yes.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/threesixnine/archive/internal/storage"
	tu "github.com/threesixnine/archive/internal/testing"
	"github.com/urfave/cli/v3"
)

// setupRunner builds a runner over in-memory storage with buffered output.
// Session state lives in the shared KV, so separate invocations see it.
func setupRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	config := shared.DefaultConfig()
	runner := NewRunner(RunnerOpts{
		Config: config,
		Output: output,
		KV:     storage.NewMemoryStore(),
	})
	return runner, output
}

// run dispatches one invocation through a fresh command tree, the way each
// process invocation would.
func run(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "archive",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"archive"}, args...))
}

func TestNewRunner(t *testing.T) {
	t.Run("with all options sets fields", func(t *testing.T) {
		config := shared.DefaultConfig()
		logger := shared.NewLogger(nil)
		output := &bytes.Buffer{}
		input := strings.NewReader("")
		kv := storage.NewMemoryStore()

		runner := NewRunner(RunnerOpts{
			Config: config,
			Logger: logger,
			Output: output,
			Input:  input,
			KV:     kv,
		})

		if runner.config != config {
			t.Error("expected config to be set")
		}
		if runner.logger != logger {
			t.Error("expected logger to be set")
		}
		if runner.output != output {
			t.Error("expected output to be set")
		}
		if runner.input != input {
			t.Error("expected input to be set")
		}
		if runner.kv != kv {
			t.Error("expected kv to be set")
		}
	})

	t.Run("with nil config uses defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.config == nil {
			t.Fatal("expected default config")
		}
		if runner.config.Archive.MaxNotes != 100 {
			t.Errorf("expected default max notes 100, got %d", runner.config.Archive.MaxNotes)
		}
	})

	t.Run("with nil logger creates one", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.logger == nil {
			t.Error("expected a logger")
		}
	})

	t.Run("with nil output uses stdout", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.output != os.Stdout {
			t.Error("expected stdout")
		}
	})

	t.Run("with nil input uses stdin", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		if runner.input != os.Stdin {
			t.Error("expected stdin")
		}
	})
}

func TestWriteJSON(t *testing.T) {
	t.Run("writes formatted JSON successfully", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"key": "value"`) {
			t.Errorf("expected formatted JSON, got %s", result)
		}
		if !strings.HasSuffix(result, "\n") {
			t.Error("expected output to end with newline")
		}
	})

	t.Run("writes compact JSON successfully", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		expected := `{"key":"value"}` + "\n"
		if output.String() != expected {
			t.Errorf("expected %q, got %q", expected, output.String())
		}
	})

	t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		// channels cannot be marshaled to JSON
		err := runner.writeJSON(make(chan int), false)
		if err == nil {
			t.Fatal("expected error for non-serializable data")
		}
		if !strings.Contains(err.Error(), "failed to marshal JSON") {
			t.Errorf("expected marshal error, got %v", err)
		}
	})

	t.Run("handles write failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		err := runner.writeJSON(map[string]string{"key": "value"}, false)
		if err == nil {
			t.Fatal("expected error from failing writer")
		}
		if !strings.Contains(err.Error(), "failed to write output") {
			t.Errorf("expected write error, got %v", err)
		}
	})

	t.Run("handles newline write failure", func(t *testing.T) {
		limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
		runner := NewRunner(RunnerOpts{Output: &limitedWriter})

		err := runner.writeJSON(map[string]string{"key": "value"}, false)
		if err == nil {
			t.Fatal("expected error writing newline")
		}
		if !strings.Contains(err.Error(), "failed to write newline") {
			t.Errorf("expected newline write error, got %v", err)
		}
	})
}

func TestWritePlain(t *testing.T) {
	t.Run("formats and writes", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected %q, got %q", "hello world", output.String())
		}
	})

	t.Run("writePlainln appends newline", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlainln("count: %d", 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "count: 3\n" {
			t.Errorf("expected %q, got %q", "count: 3\n", output.String())
		}
	})

	t.Run("handles write failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writePlain("x"); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestConfirm(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y accepts", input: "y\n", want: true},
		{name: "yes accepts", input: "YES\n", want: true},
		{name: "n rejects", input: "n\n", want: false},
		{name: "empty rejects", input: "\n", want: false},
		{name: "eof rejects", input: "", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: &bytes.Buffer{},
				Input:  strings.NewReader(tt.input),
			})
			if got := runner.confirm("Proceed?"); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSelectCommand(t *testing.T) {
	t.Run("signs in and prints the profile", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "select", "Ree"); err != nil {
			t.Fatalf("select failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Welcome, REE, THE GORGEOUS") {
			t.Errorf("expected welcome line, got %s", out)
		}
		if !strings.Contains(out, string(models.ThemePink)) {
			t.Errorf("expected theme in output, got %s", out)
		}
	})

	t.Run("unknown user degrades to Others", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "select", "Stranger"); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if !strings.Contains(output.String(), "Welcome, OTHERS") {
			t.Errorf("expected Others fallback, got %s", output.String())
		}
	})

	t.Run("missing user errors", func(t *testing.T) {
		runner, _ := setupRunner(t)

		err := run(t, runner, "select")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestStatusCommand(t *testing.T) {
	t.Run("not signed in", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "status"); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if !strings.Contains(output.String(), "Not signed in") {
			t.Errorf("expected not-signed-in message, got %s", output.String())
		}
	})

	t.Run("after select reports the user", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "select", "Kairo"); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		output.Reset()

		if err := run(t, runner, "status"); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if !strings.Contains(output.String(), "Signed in as Kairo") {
			t.Errorf("expected signed-in status, got %s", output.String())
		}
	})
}

func TestNotesCommands(t *testing.T) {
	t.Run("require a session", func(t *testing.T) {
		runner, _ := setupRunner(t)

		err := run(t, runner, "notes", "add", "hello")
		if !errors.Is(err, shared.ErrNoActiveSession) {
			t.Errorf("expected ErrNoActiveSession, got %v", err)
		}
	})

	t.Run("add then list round trips", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "select", "Ree"); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if err := run(t, runner, "notes", "add", "first post"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		output.Reset()

		if err := run(t, runner, "notes", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "first post") || !strings.Contains(out, "Ree") {
			t.Errorf("expected the posted note, got %s", out)
		}
	})

	t.Run("empty content is reported as nothing to post", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "select", "Ree"); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		output.Reset()

		if err := run(t, runner, "notes", "add", "   "); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if !strings.Contains(output.String(), "Nothing to post.") {
			t.Errorf("expected no-op message, got %s", output.String())
		}
	})

	t.Run("edit and delete by id", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "select", "Ree"); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if err := run(t, runner, "notes", "add", "draft"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		c, err := runner.components()
		if err != nil {
			t.Fatalf("failed to wire components: %v", err)
		}
		defer c.close()
		all := c.store.All()
		if len(all) != 1 {
			t.Fatalf("expected 1 note, got %d", len(all))
		}
		id := all[0].ID

		output.Reset()
		if err := run(t, runner, "notes", "edit", "--id", id, "final"); err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if !strings.Contains(output.String(), "Updated note") {
			t.Errorf("expected update confirmation, got %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "notes", "delete", "--id", id, "--yes"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(output.String(), "Deleted note") {
			t.Errorf("expected delete confirmation, got %s", output.String())
		}
		if remaining := c.store.All(); len(remaining) != 0 {
			t.Errorf("expected no notes left, got %d", len(remaining))
		}
	})

	t.Run("delete without --yes honors a declined prompt", func(t *testing.T) {
		output := &bytes.Buffer{}
		kv := storage.NewMemoryStore()
		runner := NewRunner(RunnerOpts{
			Output: output,
			Input:  strings.NewReader("n\n"),
			KV:     kv,
		})

		if err := run(t, runner, "select", "Ree"); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		if err := run(t, runner, "notes", "add", "survivor"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		c, err := runner.components()
		if err != nil {
			t.Fatalf("failed to wire components: %v", err)
		}
		defer c.close()
		id := c.store.All()[0].ID

		if err := run(t, runner, "notes", "delete", "--id", id); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if !strings.Contains(output.String(), "Aborted.") {
			t.Errorf("expected abort message, got %s", output.String())
		}
		if len(c.store.All()) != 1 {
			t.Error("expected the note to survive a declined prompt")
		}
	})
}

func TestVolumeCommand(t *testing.T) {
	t.Run("shows the default", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "volume"); err != nil {
			t.Fatalf("volume failed: %v", err)
		}
		if !strings.Contains(output.String(), "Volume: 50%") {
			t.Errorf("expected default volume, got %s", output.String())
		}
	})

	t.Run("sets and persists a level", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "volume", "30"); err != nil {
			t.Fatalf("volume failed: %v", err)
		}
		if !strings.Contains(output.String(), "Volume: 30%") {
			t.Errorf("expected applied volume, got %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "volume"); err != nil {
			t.Fatalf("volume failed: %v", err)
		}
		if !strings.Contains(output.String(), "Volume: 30%") {
			t.Errorf("expected persisted volume, got %s", output.String())
		}
	})

	t.Run("clamps out-of-range levels", func(t *testing.T) {
		runner, output := setupRunner(t)

		if err := run(t, runner, "volume", "250"); err != nil {
			t.Fatalf("volume failed: %v", err)
		}
		if !strings.Contains(output.String(), "Volume: 100%") {
			t.Errorf("expected clamped volume, got %s", output.String())
		}
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		runner, _ := setupRunner(t)

		err := run(t, runner, "volume", "loud")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestProfileCommand(t *testing.T) {
	runner, output := setupRunner(t)

	if err := run(t, runner, "select", "Ree"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := run(t, runner, "notes", "add", "profile fodder"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	output.Reset()

	if err := run(t, runner, "profile"); err != nil {
		t.Fatalf("profile failed: %v", err)
	}

	out := output.String()
	if !strings.Contains(out, "Ree") || !strings.Contains(out, "Notes: 1") {
		t.Errorf("expected profile summary, got %s", out)
	}
	if !strings.Contains(out, "■") {
		t.Errorf("expected a marked calendar day, got %s", out)
	}
}

func TestAvatarCommands(t *testing.T) {
	runner, output := setupRunner(t)

	if err := run(t, runner, "select", "Ree"); err != nil {
		t.Fatalf("select failed: %v", err)
	}

	dir := t.TempDir()
	source := filepath.Join(dir, "face.png")
	if err := os.WriteFile(source, []byte{0x89, 0x50, 0x4e, 0x47}, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := run(t, runner, "avatar", "set", source); err != nil {
		t.Fatalf("avatar set failed: %v", err)
	}
	if !strings.Contains(output.String(), "Avatar updated for Ree") {
		t.Errorf("expected confirmation, got %s", output.String())
	}

	target := filepath.Join(dir, "out.png")
	if err := run(t, runner, "avatar", "show", "--output", target); err != nil {
		t.Fatalf("avatar show failed: %v", err)
	}
	tu.AssertFileExists(t, target)
	if got := tu.MustReadFile(t, target); got != "\x89PNG" {
		t.Errorf("expected round-tripped image, got %q", got)
	}
}

func TestExportCommand(t *testing.T) {
	runner, output := setupRunner(t)

	if err := run(t, runner, "select", "Ree"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := run(t, runner, "notes", "add", "exported note"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	output.Reset()

	dir := t.TempDir()
	if err := run(t, runner, "export", "--output", dir); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if !strings.Contains(output.String(), "Snapshot complete") {
		t.Errorf("expected completion summary, got %s", output.String())
	}
	tu.AssertFileExists(t, filepath.Join(dir, "manifest.json"))
	tu.AssertFileExists(t, filepath.Join(dir, "Ree_notes.md"))
}

package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/threesixnine/archive/internal/formatter"
	"github.com/threesixnine/archive/internal/notes"
	"golang.org/x/time/rate"
)

// Phase identifies the stage a progress update belongs to.
type Phase int

const (
	GatherNotes Phase = iota
	WriteFiles
	WriteManifest
)

// ProgressUpdate reports snapshot progress over a channel.
type ProgressUpdate struct {
	Phase   Phase
	Step    int
	Total   int
	Message string
}

// SnapshotOpts contains configuration for archive snapshots.
type SnapshotOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: archive_snapshot_{epoch})
	NumWorkers int     // Concurrent workers (default: 2)
	RateLimit  float64 // File writes per second (default: 10)
}

// UserExportResult records the outcome of exporting a single user's notes.
type UserExportResult struct {
	User  string `json:"user"`
	File  string `json:"file,omitempty"`
	Notes int    `json:"notes"`
	Error string `json:"error,omitempty"`
}

// SnapshotResult summarizes a completed snapshot.
type SnapshotResult struct {
	OutputDirectory string             `json:"output_directory"`
	TotalUsers      int                `json:"total_users"`
	TotalNotes      int                `json:"total_notes"`
	Results         []UserExportResult `json:"results"`
	ManifestFile    string             `json:"manifest_file"`
}

// Snapshot exports every listed user's notes to files under one directory,
// then writes a manifest summarizing the run.
//
// Exports run on a small worker pool with rate-limited file writes. Per-user
// failures are recorded in the manifest rather than aborting the snapshot.
func Snapshot(ctx context.Context, store *notes.Store, users []string, prog chan<- ProgressUpdate, opts SnapshotOpts) (*SnapshotResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("archive_snapshot_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 2
	}
	if opts.NumWorkers > 4 {
		opts.NumWorkers = 4
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &SnapshotResult{
		OutputDirectory: opts.OutputDir,
		TotalUsers:      len(users),
		Results:         make([]UserExportResult, 0, len(users)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan string, len(users))
	results := make(chan UserExportResult, len(users))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range jobs {
				results <- exportUser(ctx, store, limiter, user, opts)
			}
		}()
	}

	sendProgress(prog, ProgressUpdate{Phase: GatherNotes, Total: len(users), Message: "gathering notes"})
	for _, user := range users {
		jobs <- user
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	step := 0
	for res := range results {
		step++
		sendProgress(prog, ProgressUpdate{Phase: WriteFiles, Step: step, Total: len(users), Message: res.User})
		result.TotalNotes += res.Notes
		result.Results = append(result.Results, res)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("snapshot interrupted: %w", err)
	}

	sendProgress(prog, ProgressUpdate{Phase: WriteManifest, Step: len(users), Total: len(users), Message: "writing manifest"})
	manifest, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	manifestFile := filepath.Join(opts.OutputDir, "manifest.json")
	if err := os.WriteFile(manifestFile, manifest, 0644); err != nil {
		return result, fmt.Errorf("failed to write manifest: %w", err)
	}
	result.ManifestFile = manifestFile

	return result, nil
}

// exportUser renders one user's notes to a file, respecting the shared rate limit.
func exportUser(ctx context.Context, store *notes.Store, limiter *rate.Limiter, user string, opts SnapshotOpts) UserExportResult {
	res := UserExportResult{User: user}

	if err := limiter.Wait(ctx); err != nil {
		res.Error = err.Error()
		return res
	}

	userNotes := store.ListFor(user)
	res.Notes = len(userNotes)
	if len(userNotes) == 0 {
		return res
	}

	file, err := formatter.WriteExport(opts.OutputDir, user, opts.Format, userNotes)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.File = file
	return res
}

// sendProgress delivers an update without blocking when nobody is listening.
func sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

// package formatter provides functions to export note collections to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/threesixnine/archive/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// ExportToCSV converts a note collection to CSV with columns: ID, Author, Content, Created, Edited
func ExportToCSV(c models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Author", "Content", "Created", "Edited"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, note := range c {
		record := []string{
			note.ID,
			note.Author,
			note.Content,
			note.Created.Format(time.RFC3339),
			note.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a note collection to a Markdown document titled for user
func ExportToMarkdown(user string, c models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s — 369 Archive\n\n", user))
	buf.WriteString(fmt.Sprintf("**Notes**: %d\n\n", len(c)))

	for _, note := range c {
		buf.WriteString(fmt.Sprintf("## %s\n\n", note.Timestamp.Format(timeLayout)))
		buf.WriteString(note.Content)
		buf.WriteString("\n\n")
		if !note.Timestamp.Equal(note.Created) {
			buf.WriteString(fmt.Sprintf("_posted %s, last edited %s_\n\n", note.Created.Format(timeLayout), note.Timestamp.Format(timeLayout)))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a note collection to plain text
func ExportToText(user string, c models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Archive: %s\n", user))
	buf.WriteString(fmt.Sprintf("Notes: %d\n\n", len(c)))

	for i, note := range c {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, note.Timestamp.Format(timeLayout), note.Content))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON summary of a user's archive (without note bodies)
func ToMetadataJSON(user string, c models.Collection) ([]byte, error) {
	meta := struct {
		User      string `json:"user"`
		NoteCount int    `json:"note_count"`
		Exported  string `json:"exported"`
	}{user, len(c), time.Now().Format(time.RFC3339)}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

// WriteExport renders a user's notes in the requested format (csv, markdown,
// txt or json) and writes the file under dir, returning its path.
func WriteExport(dir, user, format string, c models.Collection) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(c)
		ext = "csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(user, c)
		ext = "md"
	case "txt", "text", "":
		data, err = ExportToText(user, c)
		ext = "txt"
	case "json":
		data, err = c.Serialize()
		ext = "json"
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render export: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_notes.%s", user, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

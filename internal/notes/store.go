package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/threesixnine/archive/internal/storage"
)

// DefaultMaxNotes caps the collection; creation past the cap evicts the
// oldest note by creation time.
const DefaultMaxNotes = 100

// Store provides durable CRUD over the note collection.
type Store struct {
	kv       storage.KV
	logger   *log.Logger
	maxNotes int
	now      func() time.Time
}

// NewStore creates a [Store] over the given [storage.KV]. A maxNotes of zero
// or less falls back to [DefaultMaxNotes].
func NewStore(kv storage.KV, logger *log.Logger, maxNotes int) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if maxNotes <= 0 {
		maxNotes = DefaultMaxNotes
	}
	return &Store{
		kv:       kv,
		logger:   logger,
		maxNotes: maxNotes,
		now:      time.Now,
	}
}

// load reads the stored collection. Absent or corrupt data is recovered as an
// empty collection and logged, never surfaced.
func (s *Store) load() models.Collection {
	data, ok, err := s.kv.Get(storage.KeyNotes)
	if err != nil {
		s.logger.Warn("failed to read note collection, treating as empty", "error", err)
		return models.Collection{}
	}
	if !ok {
		return models.Collection{}
	}

	collection, err := models.DeserializeCollection(data)
	if err != nil {
		s.logger.Warn("corrupt note collection, treating as empty", "error", err)
		return models.Collection{}
	}
	return collection
}

// persist writes the whole collection back to storage. Write failures are
// best-effort: logged, not returned.
func (s *Store) persist(c models.Collection) {
	data, err := c.Serialize()
	if err != nil {
		s.logger.Error("failed to serialize note collection", "error", err)
		return
	}
	if err := s.kv.Set(storage.KeyNotes, data); err != nil {
		s.logger.Error("failed to persist note collection", "error", err)
	}
}

// All returns the full collection in display order, newest-created-first.
func (s *Store) All() models.Collection {
	return s.load()
}

// ListFor returns all notes authored by user, in display order. Never fails;
// unknown authors yield an empty collection.
func (s *Store) ListFor(user string) models.Collection {
	return s.load().ByAuthor(user)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (*models.Note, error) {
	c := s.load()
	idx := c.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoteNotFound, id)
	}
	note := c[idx]
	return &note, nil
}

// Create adds a note at the front of the collection and persists it.
//
// Empty trimmed content or an empty user is a silent no-op returning
// (nil, nil). When the collection is at capacity the oldest note by creation
// time is evicted before insertion.
func (s *Store) Create(user, content string) (*models.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" || user == "" {
		return nil, nil
	}

	now := s.now()
	note := models.Note{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), shared.GenerateID()[:8]),
		Content:   content,
		Author:    user,
		Timestamp: now,
		Created:   now,
	}
	if err := note.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	c := s.load()
	for len(c) >= s.maxNotes {
		oldest := c.OldestIndex()
		s.logger.Info("evicting oldest note", "id", c[oldest].ID, "author", c[oldest].Author)
		c = append(c[:oldest], c[oldest+1:]...)
	}

	c = append(models.Collection{note}, c...)
	s.persist(c)

	return &note, nil
}

// Edit updates a note's content and timestamp and persists the collection.
//
// Returns [shared.ErrNotYourNote] when requestingUser does not own the note.
// Empty trimmed content or content equal to the current text is a silent
// no-op: no timestamp bump, no write.
func (s *Store) Edit(id, requestingUser, newContent string) (*models.Note, error) {
	c := s.load()
	idx := c.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoteNotFound, id)
	}
	if c[idx].Author != requestingUser {
		return nil, fmt.Errorf("%w: note %s belongs to %s", shared.ErrNotYourNote, id, c[idx].Author)
	}

	newContent = strings.TrimSpace(newContent)
	if newContent == "" || newContent == c[idx].Content {
		return nil, nil
	}

	c[idx].Content = newContent
	c[idx].Timestamp = s.now()
	s.persist(c)

	note := c[idx]
	return &note, nil
}

// Delete removes a note and persists the collection.
//
// Returns [shared.ErrNotYourNote] when requestingUser does not own the note.
// Confirmation is the caller's responsibility; the store deletes immediately.
func (s *Store) Delete(id, requestingUser string) error {
	c := s.load()
	idx := c.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", shared.ErrNoteNotFound, id)
	}
	if c[idx].Author != requestingUser {
		return fmt.Errorf("%w: note %s belongs to %s", shared.ErrNotYourNote, id, c[idx].Author)
	}

	c = append(c[:idx], c[idx+1:]...)
	s.persist(c)
	return nil
}

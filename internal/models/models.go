package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// The three archive identities. Anything else degrades to [UserOthers].
const (
	UserKairo  = "Kairo"
	UserRee    = "Ree"
	UserOthers = "Others"
)

// KnownUsers lists the fixed identities offered by the user picker.
var KnownUsers = []string{UserKairo, UserRee, UserOthers}

// Theme identifies a presentation color scheme. The core never deals in
// color codes; the UI maps themes to palettes.
type Theme string

const (
	ThemePurple Theme = "purple"
	ThemePink   Theme = "pink"
	ThemeMint   Theme = "mint"
)

// Note is a user-authored text record. Author is immutable after creation;
// Timestamp is bumped on every successful edit while Created never changes
// and orders eviction.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Created   time.Time `json:"created"`
}

// Validate checks note invariants: non-empty trimmed content and a non-empty author.
func (n Note) Validate() error {
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("note content is empty")
	}
	if n.Author == "" {
		return fmt.Errorf("note author is empty")
	}
	if n.ID == "" {
		return fmt.Errorf("note id is empty")
	}
	return nil
}

// Collection is the ordered note list, newest-created-first.
// Edits do not reorder; only creation inserts at the front.
type Collection []Note

// Serialize encodes the collection as JSON for storage.
func (c Collection) Serialize() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize collection: %w", err)
	}
	return data, nil
}

// DeserializeCollection decodes a stored collection. Callers treat an error
// as an empty collection; a corrupt blob is never fatal.
func DeserializeCollection(data []byte) (Collection, error) {
	if len(data) == 0 {
		return Collection{}, nil
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to deserialize collection: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// ByAuthor returns the notes authored by user, preserving display order.
func (c Collection) ByAuthor(user string) Collection {
	out := Collection{}
	for _, n := range c {
		if n.Author == user {
			out = append(out, n)
		}
	}
	return out
}

// IndexOf returns the position of the note with the given id, or -1.
func (c Collection) IndexOf(id string) int {
	for i, n := range c {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// OldestIndex returns the position of the oldest note by creation time, or -1
// for an empty collection.
func (c Collection) OldestIndex() int {
	if len(c) == 0 {
		return -1
	}
	oldest := 0
	for i, n := range c {
		if n.Created.Before(c[oldest].Created) {
			oldest = i
		}
	}
	return oldest
}

// Profile holds the fixed presentation parameters derived for a user.
type Profile struct {
	User        string        // Canonical user key (Kairo, Ree, Others)
	DisplayName string        // Banner name shown by the UI
	Theme       Theme         // Symbolic theme identifier
	Track       string        // Audio track reference
	StartOffset time.Duration // Playback start position within the track
}

// Phase is the session lifecycle state.
type Phase int

const (
	Unselected Phase = iota
	Loading
	Active
)

func (p Phase) String() string {
	switch p {
	case Unselected:
		return "unselected"
	case Loading:
		return "loading"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

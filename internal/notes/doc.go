// Package notes implements the archive's note store: CRUD over the ordered
// note collection, gated by author identity.
//
// Every mutation reads the whole collection from storage, applies the change,
// and writes the whole collection back. Ownership violations surface as
// [shared.ErrNotYourNote] so callers can show a "not your note" notice;
// empty or unchanged content is a silent no-op. A missing or corrupt stored
// collection is recovered as empty, never an error.
//
// The collection is capped; creating past the cap evicts the single oldest
// note by creation time.
package notes

// Package tasks implements operations computed over the note collection
// outside the basic CRUD surface.
//
// ProfileStats derives the numbers behind the profile view: note count,
// member-since date, and a four-week activity calendar. Snapshot exports
// every user's notes to files through a small worker pool with rate limiting,
// emitting progress updates via channels for non-blocking status reporting to
// CLI/UI layers.
package tasks

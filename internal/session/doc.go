// Package session implements the archive's session manager: one active user
// at a time, moving through the Unselected -> Loading -> Active lifecycle.
//
// Selecting a user derives their fixed presentation profile (display name,
// theme, track, start offset), starts playback immediately, remembers the
// user, and arms the loading timer. Content is only revealed once the timer
// elapses; note mutations route through the manager so the active-session and
// ownership gates hold in one place.
//
// Selecting again while still Loading resets the timer and swaps the profile
// rather than stacking reveals. Unknown user names are not errors; they fall
// back to the Others profile.
package session

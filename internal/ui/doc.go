// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks the archive's session lifecycle as a multi-view workflow:
//  1. [UserSelectView] : Pick one of the three archive identities
//  2. [LoadingView] : Countdown while the session loads, music already playing
//  3. [NotesView] : Browse the archive; compose, edit, and delete your own notes
//  4. [ComposeView] / [EditView] : Textarea input, enter saves, esc cancels
//  5. [ConfirmDeleteView] : y/n confirmation before a note is removed
//  6. [ProfileView] : Note count, member-since, and a four-week activity calendar
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. The
// loading countdown polls the session manager on a ticker rather than owning
// its own timer, so the reveal stays governed by the session lifecycle.
// Theme palettes switch with the active profile; edit/delete affordances are
// gated by note ownership with a notice shown on violations.
package ui

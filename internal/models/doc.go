// Package models defines domain entities for the 369 Archive.
//
// The package contains three categories of types:
//
// 1. Note records and their ordered [Collection], the unit of persistence.
// The whole collection is serialized and rewritten on every mutation,
// mirroring the single-blob storage model the archive has always used.
//
// 2. [Profile], the fixed per-user presentation parameters (display name,
// theme, track reference, playback start offset). Profiles are derived,
// never stored.
//
// 3. [Phase], the session lifecycle: Unselected -> Loading -> Active.
// Mutating operations are only permitted once a session is Active.
package models

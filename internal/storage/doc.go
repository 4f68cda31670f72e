// Package storage provides the key/value persistence layer backing the archive.
//
// The contract is deliberately small: Get returns a value or reports absence,
// Set is best-effort and never fails the caller (write errors are returned for
// logging but mutations proceed). Two implementations exist:
//
//   - [SQLiteStore] : durable storage in a single archive_kv table
//   - [MemoryStore] : ephemeral map for tests and dry runs
//
// Everything the archive persists (the note collection, the saved volume,
// the remembered user, per-user avatars) round-trips through this interface
// as serialized blobs under well-known keys.
package storage

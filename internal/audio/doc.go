// Package audio models the archive's playback collaborator.
//
// The core only deals in symbolic track references, start offsets, and a
// volume level; it never touches a sound device. [Player] is the contract,
// [LogPlayer] the default implementation tracking playback state and logging
// transitions. Playback failures are explicit outcomes the caller logs; state
// falls back to stopped and nothing retries.
package audio

package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNoActiveSession = fmt.Errorf("no active session")
	ErrSessionLoading  = fmt.Errorf("session still loading")
	ErrSessionActive   = fmt.Errorf("session already active")

	// Note errors
	ErrNoteNotFound = fmt.Errorf("note not found")
	ErrNotYourNote  = fmt.Errorf("you can only modify your own notes")

	// Playback errors
	ErrPlaybackFailed = fmt.Errorf("playback failed to start")
	ErrNoTrack        = fmt.Errorf("no track loaded")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

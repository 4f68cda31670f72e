package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/threesixnine/archive/internal/shared"
)

// State is the symbolic playback state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Player drives background music for the active profile. Play starts the
// given track at the given offset and loops it; failures leave the player
// stopped and are never retried.
type Player interface {
	Play(track string, offset time.Duration) error
	Toggle() State
	Stop()
	SetVolume(v float64)
	Volume() float64
	State() State
	Track() string
}

// LogPlayer implements [Player] by tracking symbolic state and logging
// transitions. It is the default player for a terminal process without a
// sound device; alternate implementations can wrap real output.
type LogPlayer struct {
	mu     sync.Mutex
	logger *log.Logger
	state  State
	track  string
	offset time.Duration
	volume float64
}

var _ Player = (*LogPlayer)(nil)

// NewLogPlayer creates a stopped [LogPlayer] at the given volume.
func NewLogPlayer(logger *log.Logger, volume float64) *LogPlayer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LogPlayer{logger: logger, volume: clampVolume(volume)}
}

// Play loads track and begins looping playback from offset.
func (p *LogPlayer) Play(track string, offset time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if track == "" {
		p.state = Stopped
		return fmt.Errorf("%w: empty track reference", shared.ErrNoTrack)
	}

	p.track = track
	p.offset = offset
	p.state = Playing
	p.logger.Info("playback started", "track", track, "offset", offset.String(), "volume", p.volume)
	return nil
}

// Toggle flips between playing and paused and returns the resulting state.
// Toggling a stopped player is a no-op.
func (p *LogPlayer) Toggle() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Playing:
		p.state = Paused
		p.logger.Info("playback paused", "track", p.track)
	case Paused:
		p.state = Playing
		p.logger.Info("playback resumed", "track", p.track)
	}
	return p.state
}

// Stop halts playback and unloads the track.
func (p *LogPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Stopped {
		p.logger.Info("playback stopped", "track", p.track)
	}
	p.state = Stopped
	p.track = ""
	p.offset = 0
}

// SetVolume applies a clamped volume level without interrupting playback.
func (p *LogPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(v)
}

func (p *LogPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *LogPlayer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *LogPlayer) Track() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

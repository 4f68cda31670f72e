package session

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/threesixnine/archive/internal/audio"
	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/notes"
	"github.com/threesixnine/archive/internal/shared"
	"github.com/threesixnine/archive/internal/storage"
	"golang.org/x/time/rate"
)

// DefaultLoadingDuration is how long the loading screen stays up between
// selection and reveal.
const DefaultLoadingDuration = 10 * time.Second

// profiles is the fixed per-user configuration table. Lookups for names
// outside it degrade to the Others entry.
var profiles = map[string]models.Profile{
	models.UserKairo: {
		User:        models.UserKairo,
		DisplayName: "KAIRO AKA WIS",
		Theme:       models.ThemePurple,
		Track:       "assets/music/Kairo.mp3",
		StartOffset: 9 * time.Second,
	},
	models.UserRee: {
		User:        models.UserRee,
		DisplayName: "REE, THE GORGEOUS",
		Theme:       models.ThemePink,
		Track:       "assets/music/Ree.mp3",
		StartOffset: 30 * time.Second,
	},
	models.UserOthers: {
		User:        models.UserOthers,
		DisplayName: "OTHERS",
		Theme:       models.ThemeMint,
		Track:       "assets/music/Others.mp3",
	},
}

// DeriveProfile resolves a user name to its presentation profile, falling
// back to the Others profile for unknown names. Never fails.
func DeriveProfile(user string) models.Profile {
	if p, ok := profiles[shared.NormalizeUser(user)]; ok {
		return p
	}
	return profiles[models.UserOthers]
}

// Opts contains the dependencies and tunables for a [Manager].
type Opts struct {
	KV              storage.KV
	Notes           *notes.Store
	Player          audio.Player
	Logger          *log.Logger
	LoadingDuration time.Duration // Defaults to DefaultLoadingDuration
	DefaultVolume   float64       // Used when no volume has been persisted
	Autoplay        bool          // Start the profile track on Select
	OnReveal        func(models.Profile)
}

// Manager owns the session: the active user, the lifecycle phase, and the
// gates on note mutations.
type Manager struct {
	mu           sync.Mutex
	kv           storage.KV
	notes        *notes.Store
	player       audio.Player
	logger       *log.Logger
	loadingFor   time.Duration
	defaultVol   float64
	autoplay     bool
	onReveal     func(models.Profile)
	playThrottle rate.Sometimes

	phase    models.Phase
	profile  models.Profile
	deadline time.Time
	timer    *time.Timer
	gen      int
}

// NewManager creates a [Manager] in the Unselected phase.
func NewManager(opts Opts) *Manager {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.LoadingDuration <= 0 {
		opts.LoadingDuration = DefaultLoadingDuration
	}
	if opts.Player == nil {
		opts.Player = audio.NewLogPlayer(opts.Logger, opts.DefaultVolume)
	}
	return &Manager{
		kv:           opts.KV,
		notes:        opts.Notes,
		player:       opts.Player,
		logger:       opts.Logger,
		loadingFor:   opts.LoadingDuration,
		defaultVol:   opts.DefaultVolume,
		autoplay:     opts.Autoplay,
		onReveal:     opts.OnReveal,
		playThrottle: rate.Sometimes{Interval: time.Second},
		phase:        models.Unselected,
	}
}

// Select activates a user and enters the Loading phase. Valid from Unselected;
// selecting again while Loading resets the timer and swaps the profile rather
// than stacking reveals. Selecting over an Active session is an error.
//
// Playback for the derived track starts immediately on entering Loading, not
// at reveal. Playback failures are logged and leave the player stopped.
func (m *Manager) Select(user string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == models.Active {
		return models.Profile{}, fmt.Errorf("%w: signed in as %s", shared.ErrSessionActive, m.profile.User)
	}

	profile := DeriveProfile(user)
	m.profile = profile
	m.phase = models.Loading
	m.logger.Info("user selected", "user", profile.User, "theme", profile.Theme)

	if err := m.kv.Set(storage.KeyCurrentUser, []byte(profile.User)); err != nil {
		m.logger.Warn("failed to remember user", "error", err)
	}

	if m.autoplay {
		m.player.SetVolume(m.volumeLocked())
		if err := m.player.Play(profile.Track, profile.StartOffset); err != nil {
			m.playThrottle.Do(func() {
				m.logger.Warn("playback failed to start", "track", profile.Track, "error", err)
			})
		}
	}

	// A pending reveal from an earlier Select is superseded, not stacked.
	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.deadline = time.Now().Add(m.loadingFor)
	m.timer = time.AfterFunc(m.loadingFor, func() { m.reveal(gen) })

	return profile, nil
}

// SelectNow activates a user and reveals immediately, skipping the loading
// screen. This is the non-interactive surface used by one-shot CLI commands;
// the TUI always rides out the full loading phase.
func (m *Manager) SelectNow(user string) (models.Profile, error) {
	profile, err := m.Select(user)
	if err != nil {
		return profile, err
	}

	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	gen := m.gen
	m.mu.Unlock()

	m.reveal(gen)
	return profile, nil
}

// reveal moves Loading -> Active once the timer for the current selection
// elapses. Stale timers from superseded selections are ignored.
func (m *Manager) reveal(gen int) {
	m.mu.Lock()
	if gen != m.gen || m.phase != models.Loading {
		m.mu.Unlock()
		return
	}
	m.phase = models.Active
	profile := m.profile
	cb := m.onReveal
	m.mu.Unlock()

	m.logger.Info("session active", "user", profile.User)
	if cb != nil {
		cb(profile)
	}
}

// Reset signs the session out: playback stops and the phase returns to
// Unselected. The remembered user is kept unless forget is true.
func (m *Manager) Reset(forget bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.phase = models.Unselected
	m.profile = models.Profile{}
	m.player.Stop()

	if forget {
		if err := m.kv.Delete(storage.KeyCurrentUser); err != nil {
			m.logger.Warn("failed to clear remembered user", "error", err)
		}
	}
}

// Phase returns the current lifecycle phase.
func (m *Manager) Phase() models.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Profile returns the active profile; the zero Profile before selection.
func (m *Manager) Profile() models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// ActiveUser returns the active user name, empty before selection.
func (m *Manager) ActiveUser() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile.User
}

// LoadingRemaining reports how long until reveal while Loading, zero otherwise.
func (m *Manager) LoadingRemaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase != models.Loading {
		return 0
	}
	if remaining := time.Until(m.deadline); remaining > 0 {
		return remaining
	}
	return 0
}

// requireActive gates operations on a revealed session.
func (m *Manager) requireActive() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.phase {
	case models.Active:
		return m.profile.User, nil
	case models.Loading:
		return "", shared.ErrSessionLoading
	default:
		return "", shared.ErrNoActiveSession
	}
}

// Notes returns all notes in display order. Requires an Active session.
func (m *Manager) Notes() (models.Collection, error) {
	if _, err := m.requireActive(); err != nil {
		return nil, err
	}
	return m.notes.All(), nil
}

// NotesFor returns the queried author's notes. Requires an Active session;
// the author queried need not be the active user.
func (m *Manager) NotesFor(user string) (models.Collection, error) {
	if _, err := m.requireActive(); err != nil {
		return nil, err
	}
	return m.notes.ListFor(user), nil
}

// CreateNote posts a note as the active user.
func (m *Manager) CreateNote(content string) (*models.Note, error) {
	user, err := m.requireActive()
	if err != nil {
		return nil, err
	}
	return m.notes.Create(user, content)
}

// EditNote updates one of the active user's notes. Editing another user's
// note returns [shared.ErrNotYourNote].
func (m *Manager) EditNote(id, content string) (*models.Note, error) {
	user, err := m.requireActive()
	if err != nil {
		return nil, err
	}
	return m.notes.Edit(id, user, content)
}

// DeleteNote removes one of the active user's notes. The caller confirms
// first; the manager does not prompt.
func (m *Manager) DeleteNote(id string) error {
	user, err := m.requireActive()
	if err != nil {
		return err
	}
	return m.notes.Delete(id, user)
}

// RememberedUser returns the last selected user, if one was persisted.
func (m *Manager) RememberedUser() (string, bool) {
	data, ok, err := m.kv.Get(storage.KeyCurrentUser)
	if err != nil {
		m.logger.Warn("failed to read remembered user", "error", err)
		return "", false
	}
	if !ok || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// Volume returns the persisted volume level, or the default when none is
// stored. Corrupt values degrade to the default.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volumeLocked()
}

func (m *Manager) volumeLocked() float64 {
	data, ok, err := m.kv.Get(storage.KeyVolume)
	if err != nil {
		m.logger.Warn("failed to read volume", "error", err)
		return m.defaultVol
	}
	if !ok {
		return m.defaultVol
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		m.logger.Warn("corrupt stored volume, using default", "value", string(data))
		return m.defaultVol
	}
	return clamp(v)
}

// SetVolume applies a clamped level to the live player and writes it through
// to storage immediately. Playback is not interrupted.
func (m *Manager) SetVolume(v float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	v = clamp(v)
	m.player.SetVolume(v)
	if err := m.kv.Set(storage.KeyVolume, []byte(strconv.FormatFloat(v, 'f', -1, 64))); err != nil {
		m.logger.Warn("failed to persist volume", "error", err)
	}
	return v
}

// TogglePlayback flips play/pause on the live player.
func (m *Manager) TogglePlayback() audio.State {
	return m.player.Toggle()
}

// PlaybackState reports the player's symbolic state.
func (m *Manager) PlaybackState() audio.State {
	return m.player.State()
}

// SetAvatar stores an avatar image for the given user.
func (m *Manager) SetAvatar(user string, image []byte) error {
	if user == "" {
		return fmt.Errorf("%w: empty user", shared.ErrInvalidArgument)
	}
	if err := m.kv.Set(storage.AvatarKey(user), image); err != nil {
		return fmt.Errorf("failed to store avatar: %w", err)
	}
	return nil
}

// Avatar returns the stored avatar image for user, if any.
func (m *Manager) Avatar(user string) ([]byte, bool) {
	data, ok, err := m.kv.Get(storage.AvatarKey(user))
	if err != nil {
		m.logger.Warn("failed to read avatar", "user", user, "error", err)
		return nil, false
	}
	return data, ok
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

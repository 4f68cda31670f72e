package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/threesixnine/archive/internal/models"
	"github.com/threesixnine/archive/internal/session"
	"github.com/threesixnine/archive/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	UserSelectView ViewState = iota
	LoadingView
	NotesView
	ComposeView
	EditView
	ConfirmDeleteView
	ProfileView
)

const notYourNoteNotice = "You can only modify your own notes!"

// tickMsg drives the loading countdown poll.
type tickMsg time.Time

// Model represents the TUI application state.
type Model struct {
	session *session.Manager
	view    ViewState
	width   int
	height  int

	userList list.Model
	noteList list.Model
	input    textarea.Model

	editingID  string
	deletingID string
	notice     string
	stats      tasks.ProfileStats

	palette *Palette
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over the given session manager.
func NewModel(mgr *session.Manager) *Model {
	items := make([]list.Item, 0, len(models.KnownUsers))
	for _, user := range models.KnownUsers {
		items = append(items, userItem{profile: session.DeriveProfile(user)})
	}

	userList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	userList.Title = "Who are you?"
	userList.SetShowStatusBar(false)
	userList.SetFilteringEnabled(false)

	noteList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	noteList.Title = "369 ARCHIVE"
	noteList.SetShowStatusBar(false)

	input := textarea.New()
	input.Placeholder = "Write a note..."
	input.CharLimit = 0

	return &Model{
		session:  mgr,
		view:     UserSelectView,
		userList: userList,
		noteList: noteList,
		input:    input,
		palette:  PaletteFor(models.ThemeMint),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init replays the remembered user when one exists, otherwise waits on the picker.
func (m *Model) Init() tea.Cmd {
	if user, ok := m.session.RememberedUser(); ok {
		if _, err := m.session.Select(user); err == nil {
			m.palette = PaletteFor(m.session.Profile().Theme)
			m.view = LoadingView
			return tickCmd()
		}
	}
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.userList.SetSize(msg.Width-4, msg.Height-8)
		m.noteList.SetSize(msg.Width-4, msg.Height-8)
		m.input.SetWidth(msg.Width - 4)
		m.input.SetHeight(4)
		return m, nil

	case tickMsg:
		if m.view != LoadingView {
			return m, nil
		}
		if m.session.Phase() == models.Active {
			m.refreshNotes()
			m.view = NotesView
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		m.notice = ""
		switch m.view {
		case UserSelectView:
			return m.handleUserSelectKeys(msg)
		case LoadingView:
			return m.handleLoadingKeys(msg)
		case NotesView:
			return m.handleNotesKeys(msg)
		case ComposeView, EditView:
			return m.handleInputKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		case ProfileView:
			return m.handleProfileKeys(msg)
		}
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case UserSelectView:
		return m.renderUserSelect()
	case LoadingView:
		return m.renderLoading()
	case NotesView:
		return m.renderNotes()
	case ComposeView:
		return m.renderInput("New note")
	case EditView:
		return m.renderInput("Edit note")
	case ConfirmDeleteView:
		return m.renderConfirm()
	case ProfileView:
		return m.renderProfile()
	default:
		return ""
	}
}

func (m *Model) handleUserSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if selected, ok := m.userList.SelectedItem().(userItem); ok {
			if _, err := m.session.Select(selected.profile.User); err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.palette = PaletteFor(m.session.Profile().Theme)
			m.view = LoadingView
			return m, tickCmd()
		}
	}

	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

func (m *Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	// Everything else waits out the loading screen.
	return m, nil
}

func (m *Model) handleNotesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.compose):
		m.input.Reset()
		m.input.Focus()
		m.view = ComposeView
		return m, textarea.Blink

	case key.Matches(msg, m.keys.edit):
		if item, ok := m.noteList.SelectedItem().(noteItem); ok {
			if !item.mine {
				m.notice = notYourNoteNotice
				return m, nil
			}
			m.editingID = item.note.ID
			m.input.Reset()
			m.input.SetValue(item.note.Content)
			m.input.Focus()
			m.view = EditView
			return m, textarea.Blink
		}

	case key.Matches(msg, m.keys.delete):
		if item, ok := m.noteList.SelectedItem().(noteItem); ok {
			if !item.mine {
				m.notice = notYourNoteNotice
				return m, nil
			}
			m.deletingID = item.note.ID
			m.view = ConfirmDeleteView
			return m, nil
		}

	case key.Matches(msg, m.keys.profile):
		collection, err := m.session.Notes()
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.stats = tasks.ComputeStats(m.session.ActiveUser(), collection, time.Now())
		m.view = ProfileView
		return m, nil

	case key.Matches(msg, m.keys.volUp):
		m.notice = fmt.Sprintf("Volume: %.0f%%", m.session.SetVolume(m.session.Volume()+0.05)*100)
		return m, nil

	case key.Matches(msg, m.keys.volDown):
		m.notice = fmt.Sprintf("Volume: %.0f%%", m.session.SetVolume(m.session.Volume()-0.05)*100)
		return m, nil

	case key.Matches(msg, m.keys.music):
		m.notice = fmt.Sprintf("Music: %s", m.session.TogglePlayback())
		return m, nil
	}

	var cmd tea.Cmd
	m.noteList, cmd = m.noteList.Update(msg)
	return m, cmd
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.editingID = ""
		m.view = NotesView
		return m, nil
	case "enter":
		content := m.input.Value()
		var err error
		if m.view == EditView {
			_, err = m.session.EditNote(m.editingID, content)
		} else {
			_, err = m.session.CreateNote(content)
		}
		if err != nil {
			m.notice = err.Error()
		}
		m.input.Blur()
		m.editingID = ""
		m.refreshNotes()
		m.view = NotesView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if err := m.session.DeleteNote(m.deletingID); err != nil {
			m.notice = err.Error()
		}
		m.deletingID = ""
		m.refreshNotes()
		m.view = NotesView
		return m, nil
	case "n", "esc":
		m.deletingID = ""
		m.view = NotesView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleProfileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = NotesView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case UserSelectView:
		m.userList, cmd = m.userList.Update(msg)
	case NotesView:
		m.noteList, cmd = m.noteList.Update(msg)
	case ComposeView, EditView:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// refreshNotes rebuilds the note list from the store.
func (m *Model) refreshNotes() {
	collection, err := m.session.Notes()
	if err != nil {
		m.notice = err.Error()
		return
	}

	active := m.session.ActiveUser()
	items := make([]list.Item, len(collection))
	for i, note := range collection {
		items[i] = noteItem{note: note, mine: note.Author == active}
	}

	m.noteList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	m.noteList.Title = "369 ARCHIVE"
	m.noteList.SetShowStatusBar(false)
}

func (m *Model) renderUserSelect() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	view := fmt.Sprintf("%s\n\n%s", m.userList.View(), helpView)
	if m.notice != "" {
		view += "\n" + m.palette.warn.Render(m.notice)
	}
	return view
}

func (m *Model) renderLoading() string {
	profile := m.session.Profile()
	title := m.palette.title.Render(fmt.Sprintf("Welcome, %s", profile.DisplayName))
	remaining := m.session.LoadingRemaining().Round(time.Second)
	bar := fmt.Sprintf("Entering the archive in %s...", remaining)
	track := m.palette.help.Render(fmt.Sprintf("♪ %s", profile.Track))
	return fmt.Sprintf("%s\n%s\n\n%s", title, bar, track)
}

func (m *Model) renderNotes() string {
	helpKeys := []key.Binding{m.keys.compose, m.keys.edit, m.keys.delete, m.keys.profile, m.keys.music, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	view := fmt.Sprintf("%s\n\n%s", m.noteList.View(), helpView)
	if m.notice != "" {
		view += "\n" + m.palette.warn.Render(m.notice)
	}
	return view
}

func (m *Model) renderInput(title string) string {
	header := m.palette.title.Render(title)
	hint := m.palette.help.Render("enter saves • esc cancels")
	return fmt.Sprintf("%s\n%s\n\n%s", header, m.input.View(), hint)
}

func (m *Model) renderConfirm() string {
	title := m.palette.title.Render("Delete this note?")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s", title, helpView)
}

func (m *Model) renderProfile() string {
	title := m.palette.title.Render(m.session.Profile().DisplayName)
	info := fmt.Sprintf("Notes: %d\nMember since: %s\n\nActivity (last 4 weeks):",
		m.stats.NoteCount, m.stats.MemberSince.Format("Jan 2, 2006"))

	var calendar strings.Builder
	for i, active := range m.stats.Calendar {
		if i%7 == 0 {
			calendar.WriteByte('\n')
		}
		if active {
			calendar.WriteString(m.palette.ok.Render("■ "))
		} else {
			calendar.WriteString(m.palette.help.Render("□ "))
		}
	}

	hint := m.palette.help.Render("esc closes")
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, calendar.String(), hint)
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

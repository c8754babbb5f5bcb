// Package tui implements the interactive collection browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/skinvault/internal/collection"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
	"github.com/Veraticus/skinvault/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what keyboard input currently drives.
type Mode int

// Input modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeKey
)

// Model holds the browser state.
type Model struct {
	err       error
	catalog   collection.CatalogLoader
	tracker   *collection.Tracker
	theme     themes.Theme
	config    Config
	status    string
	filter    model.FilterState
	skins     []model.CanonicalSkin
	view      collection.View
	keymap    KeyMap
	help      help.Model
	search    textinput.Model
	keyInput  textinput.Model
	progress  progress.Model
	spinner   spinner.Model
	mode      Mode
	cursor    int
	offset    int
	width     int
	height    int
	statusErr bool
	loading   bool
	fetching  bool
	quitting  bool
}

// New creates a browser over the given catalog and owned-set tracker.
func New(catalog collection.CatalogLoader, tracker *collection.Tracker, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "skin name"
	search.CharLimit = 64

	keyInput := textinput.New()
	keyInput.Prompt = "API key: "
	keyInput.Placeholder = "leave empty to clear"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		catalog:  catalog,
		tracker:  tracker,
		config:   cfg,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		search:   search,
		keyInput: keyInput,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spinner:  s,
		loading:  true,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.resize()
	return m
}

// Init starts the catalog load and the owned-set fetch together.
func (m Model) Init() tea.Cmd {
	req := m.tracker.Begin(m.config.Credential)
	return tea.Batch(
		m.spinner.Tick,
		loadCatalog(m.config.Context, m.catalog),
		fetchOwned(m.config.Context, m.tracker, req),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.handleCatalog(msg)
		return m, nil

	case ownedLoadedMsg:
		m.handleOwned(msg)
		return m, nil

	case credentialSavedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Could not save API key: %v", msg.err), true)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeKey:
			return m.updateKey(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m *Model) handleCatalog(msg catalogLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		common.LogError(msg.err, "Catalog load failed", nil)
		if m.skins == nil {
			m.err = msg.err
			return
		}
		m.setStatus(fmt.Sprintf("Refresh failed: %v", msg.err), true)
		return
	}

	m.err = nil
	m.skins = msg.skins
	m.refreshView()
	m.setStatus(fmt.Sprintf("Loaded %d weapon skins", len(m.skins)), false)
}

func (m *Model) handleOwned(msg ownedLoadedMsg) {
	if !m.tracker.Apply(msg.result) {
		return
	}
	m.fetching = false
	m.refreshView()

	switch {
	case msg.result.Err != nil:
		m.setStatus("Could not fetch unlocked skins; check your API key", true)
	case msg.result.Owned.Len() > 0:
		m.setStatus(fmt.Sprintf("%d skins unlocked on this account", msg.result.Owned.Len()), false)
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.CycleType):
		m.filter.WeaponType = next(m.typeOptions(), m.filter.WeaponType)
		m.refreshView()

	case key.Matches(msg, m.keymap.CycleRarity):
		m.filter.Rarity = next(rarityOptions(), m.filter.Rarity)
		m.refreshView()

	case key.Matches(msg, m.keymap.Clear):
		m.filter = model.FilterState{}
		m.search.SetValue("")
		m.refreshView()

	case key.Matches(msg, m.keymap.EnterKey):
		m.mode = ModeKey
		m.keyInput.SetValue("")
		return m, m.keyInput.Focus()

	case key.Matches(msg, m.keymap.Refresh):
		if m.config.Refresher == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.setStatus("Refreshing catalog...", false)
		return m, tea.Batch(m.spinner.Tick, refreshCatalog(m.config.Context, m.config.Refresher))

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.view.Skins))
	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.view.Skins))
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		m.mode = ModeBrowse
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.Cancel):
		m.mode = ModeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Search = ""
		m.refreshView()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Search = m.search.Value()
	m.refreshView()
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.mode = ModeBrowse
		m.keyInput.Blur()
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		m.mode = ModeBrowse
		m.keyInput.Blur()
		credential := strings.TrimSpace(m.keyInput.Value())
		m.keyInput.SetValue("")

		req := m.tracker.Begin(credential)
		m.refreshView()
		if credential == "" {
			m.fetching = false
			m.setStatus("API key cleared", false)
		} else {
			m.fetching = true
			m.setStatus("Fetching unlocked skins...", false)
		}
		return m, tea.Batch(
			fetchOwned(m.config.Context, m.tracker, req),
			saveCredential(m.config.Context, m.config.Credentials, credential),
		)
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// refreshView rebuilds the merged view from current state.
func (m *Model) refreshView() {
	m.view = collection.BuildView(m.skins, m.tracker.Owned(), m.filter)
	m.moveCursor(0)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.view.Skins) {
		m.cursor = len(m.view.Skins) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) resize() {
	m.help.Width = m.width
	m.progress.Width = max(10, min(40, m.width-30))
	m.moveCursor(0)
}

// listHeight is the number of rows left for skins after the chrome.
func (m Model) listHeight() int {
	chrome := 8
	if m.help.ShowAll {
		chrome += 6
	}
	return max(1, m.height-chrome)
}

func (m Model) typeOptions() []string {
	opts := []string{model.All}
	for _, w := range m.view.WeaponTypes {
		opts = append(opts, string(w))
	}
	return opts
}

func rarityOptions() []string {
	opts := []string{model.All}
	for _, r := range model.Rarities() {
		opts = append(opts, string(r))
	}
	return opts
}

// next returns the option after current, wrapping around. An empty or
// unknown current value is treated as the first option.
func next(options []string, current string) string {
	if current == "" {
		current = model.All
	}
	for i, opt := range options {
		if strings.EqualFold(opt, current) {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Filter returns the active filters.
func (m Model) Filter() model.FilterState {
	return m.filter
}

// CollectionView returns the merged collection view behind the screen.
func (m Model) CollectionView() collection.View {
	return m.view
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

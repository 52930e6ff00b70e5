package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/smrx/internal/catalog"
	"github.com/desertthunder/smrx/internal/formatter"
	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/site"
	"github.com/desertthunder/smrx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AlbumListView ViewState = iota
	AlbumDetailView
	BuildView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.Engine
	gen          *site.Generator
	width        int
	height       int
	albumList    list.Model
	albums       []models.Album // sorted newest first
	artists      []models.Artist
	filters      []string // catalog.FilterAll then one slug per artist
	filterIdx    int
	selected     *models.Album
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.BuildResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. gen may be nil, which disables the build key.
func NewModel(ctx context.Context, engine *tasks.Engine, gen *site.Generator) *Model {
	m := &Model{
		ctx:    ctx,
		view:   AlbumListView,
		engine: engine,
		gen:    gen,
		help:   help.New(),
		keys:   newKeyMap(),
	}
	m.albumList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
	m.albumList.Title = "Albums"
	return m
}

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadCatalog()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.albumList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AlbumListView:
			return m.handleAlbumListKeys(msg)
		case AlbumDetailView:
			return m.handleDetailKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case BuildView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	if m.view == AlbumListView {
		m.albumList, cmd = m.albumList.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCatalogLoaded:
		data := msg.data.(catalogLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.setCatalog(data.catalog)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgBuildComplete:
		data := msg.data.(buildComplete)
		m.result = data.result
		m.err = data.err
		m.progressChan = nil
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// setCatalog sorts the albums, resets the artist filter and refreshes the list.
func (m *Model) setCatalog(cat *models.Catalog) {
	m.albums = catalog.SortByReleaseDate(cat.Albums)
	m.artists = cat.Artists
	if len(m.artists) == 0 {
		m.artists = catalog.ArtistsFromAlbums(cat.Albums)
	}

	m.filters = []string{catalog.FilterAll}
	for _, a := range m.artists {
		m.filters = append(m.filters, a.Slug)
	}
	m.filterIdx = 0
	m.refreshList()
}

// Filter returns the active artist filter.
func (m *Model) Filter() string {
	if len(m.filters) == 0 {
		return catalog.FilterAll
	}
	return m.filters[m.filterIdx]
}

// cycleFilter moves the artist filter by delta, wrapping at either end.
func (m *Model) cycleFilter(delta int) {
	if len(m.filters) == 0 {
		return
	}
	n := len(m.filters)
	m.filterIdx = ((m.filterIdx+delta)%n + n) % n
	m.refreshList()
}

func (m *Model) refreshList() {
	visible := catalog.FilterAlbums(m.albums, m.Filter())
	m.albumList.SetItems(albumItems(visible))
	m.albumList.Select(0)
	m.albumList.Title = m.title(len(visible))
}

func (m *Model) title(count int) string {
	filter := m.Filter()
	if filter == catalog.FilterAll {
		return fmt.Sprintf("Albums (%d)", count)
	}
	name := filter
	for _, a := range m.artists {
		if a.Slug == filter {
			name = a.Name
			break
		}
	}
	return fmt.Sprintf("Albums: %s (%d)", name, count)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case AlbumListView:
		return m.renderAlbumList()
	case AlbumDetailView:
		return m.renderDetail()
	case BuildView:
		return m.renderBuild()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleAlbumListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	// typed filter text goes to the list untouched
	if m.albumList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.albumList, cmd = m.albumList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.cycleFilter(1)
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.cycleFilter(-1)
		return m, nil
	case key.Matches(msg, m.keys.build):
		if m.gen != nil {
			m.view = BuildView
			return m, m.startBuild()
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.albumList.SelectedItem().(albumItem); ok {
			album := item.album
			m.selected = &album
			m.view = AlbumDetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.albumList, cmd = m.albumList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = AlbumListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = AlbumListView
		m.result = nil
		m.err = nil
	}
	return m, nil
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		cat, err := m.engine.Load(m.ctx, nil)
		return catalogLoadedMsg(cat, err)
	}
}

func (m *Model) startBuild() tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 50)
	m.progressChan = progress

	go func() {
		result, err := m.engine.Build(m.ctx, m.gen, progress)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return buildCompleteMsg(m.result, m.err)
		}

		update, ok := <-progress
		if !ok {
			return buildCompleteMsg(m.result, m.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderAlbumList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.next, m.keys.prev}
	if m.gen != nil {
		helpKeys = append(helpKeys, m.keys.build)
	}
	helpKeys = append(helpKeys, m.keys.quit)

	filter := styles.filter.Render(fmt.Sprintf("filter: %s", m.Filter()))
	return fmt.Sprintf("%s\n%s\n\n%s", m.albumList.View(), filter, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", styles.detail.Render(formatter.AlbumDetail(*m.selected)), helpView)
}

func (m *Model) renderBuild() string {
	title := styles.title.Render("Building Site")

	var phase string
	switch m.progress.Phase {
	case tasks.LoadCatalog:
		phase = "Loading catalog..."
	case tasks.WriteAssets:
		phase = "Writing assets..."
	case tasks.RenderPages:
		phase = fmt.Sprintf("Rendering pages (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Build failed: %v", m.err)) + "\n\n" + helpView
	}
	if m.result == nil {
		return styles.err.Render("No result available") + "\n\n" + helpView
	}

	title := styles.ok.Render("✓ Build Complete!")
	info := fmt.Sprintf(
		"\nOutput: %s\nPages: %d\nAlbums: %d\nArtists: %d\nTook: %s",
		m.result.OutputDir,
		m.result.Pages,
		m.result.Albums,
		m.result.Artists,
		m.result.Duration.Round(time.Millisecond),
	)
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

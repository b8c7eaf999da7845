package ui

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"spilcafe/internal/catalog"
	"spilcafe/internal/db"
	"spilcafe/internal/favorites"
	"spilcafe/internal/filter"
	"spilcafe/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model. It owns the catalog, the favorite set,
// the filter criteria and the booking wizard; screens only render them.
type Model struct {
	db               *sql.DB
	client           *catalog.Client
	termCapabilities TerminalCapabilities
	homeCafe         string
	screen           model.Screen
	listScreen       model.Screen
	mode             model.Mode
	gState           GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool

	catalog    []model.Game
	loading    bool
	loadFailed bool
	spinner    spinner.Model
	favs       favorites.Set
	criteria   filter.Criteria
	facets     filter.Facets

	// Screen models
	games       *GamesModel
	gameDetail  *GameDetailModel
	filtersForm *FiltersFormModel
	booking     *BookingModel

	keys      KeyMap
	prefs     UIPreferences
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model. database may be nil, in which case favorites
// and preferences live only for the session.
func New(database *sql.DB, client *catalog.Client, termCaps TerminalCapabilities, homeCafe string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	favs := favorites.New()
	if database != nil {
		favs = db.LoadFavorites(database)
	}

	prefs := loadUIPreferences(database)
	criteria := filter.Default()
	if sk := filter.SortKey(prefs.Games.SortKey); slices.Contains(filter.SortKeys, sk) {
		criteria.Sort = sk
	}

	games := NewGamesModel()
	games.ApplyPrefs(prefs.Games)
	games.SetSort(criteria.Sort)

	return Model{
		db:               database,
		client:           client,
		termCapabilities: termCaps,
		homeCafe:         homeCafe,
		screen:           model.ScreenGames,
		listScreen:       model.ScreenGames,
		mode:             model.ModeNav,
		gState:           GStateIdle,
		loading:          true,
		spinner:          sp,
		favs:             favs,
		criteria:         criteria,
		games:            games,
		keys:             DefaultKeyMap(),
		prefs:            prefs,
	}
}

// Init starts loading the catalog.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCatalogCmd(m.client))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.mode == model.ModeNav && m.columnJump {
			if msg.Type == tea.KeyEsc {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				table := m.currentTable()
				if table != nil && table.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					m.persistCurrentTablePrefs()
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
		}

		// ctrl+c quits from any mode, q only while navigating.
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if key.Matches(msg, m.keys.Back) {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.gameDetail != nil {
			cmds = append(cmds, m.gameDetail.UpdateSpinner(msg))
		}
		return m, tea.Batch(cmds...)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case model.CatalogLoadedMsg:
		m.loading = false
		m.loadFailed = false
		m.catalog = msg.Games
		m.facets = filter.CollectFacets(msg.Games)
		m.error = ""
		m.refreshGames()
		return m, nil

	case model.CatalogFailedMsg:
		log.Printf("catalog: %v", msg.Err)
		m.loading = false
		m.loadFailed = true
		m.error = "Could not load games."
		return m, nil

	case model.CoverLoadedMsg:
		if msg.Err != nil {
			log.Printf("cover %s: %v", msg.GameID, msg.Err)
		}
		if m.gameDetail != nil {
			m.gameDetail.SetCover(msg)
		}
		return m, nil

	case filtersAppliedMsg:
		m.criteria = msg.criteria
		m.mode = model.ModeNav
		m.screen = m.listScreen
		m.filtersForm = nil
		m.refreshGames()
		m.games.JumpToTop()
		m.persistCurrentTablePrefs()
		m.info = "Filters applied"
		if m.criteria.IsZero() {
			m.info = "Filters cleared"
		}
		return m, nil

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.filtersForm = nil
		if m.screen == model.ScreenFilters {
			m.screen = m.listScreen
		}
		return m, nil

	case bookingClosedMsg:
		m.mode = model.ModeNav
		if msg.finished {
			m.listScreen = model.ScreenGames
			m.info = "Thanks, see you at the table"
			m.refreshGames()
		}
		m.screen = m.listScreen
		return m, nil

	case undoAppliedMsg:
		m.applyUndoResult(msg)
		return m, nil

	default:
		// Cursor blinks and other input messages belong to the open form.
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	showTabs := m.screen == model.ScreenGames ||
		m.screen == model.ScreenFavorites ||
		m.screen == model.ScreenBooking

	// Header: 1 line, Footer: 1 line, Tabs: 2 lines (if shown)
	contentHeight := m.height - 4
	if showTabs {
		contentHeight -= 2
	}
	if m.error != "" {
		contentHeight--
	}
	if m.info != "" {
		contentHeight--
	}

	var content string
	var breadcrumbParts []string
	listLabel := "All games"
	if m.listScreen == model.ScreenFavorites {
		listLabel = "Favorites"
	}

	switch m.screen {
	case model.ScreenGames, model.ScreenFavorites:
		breadcrumbParts = []string{listLabel}
		content = m.games.View(m.width, contentHeight, m.emptyText())
	case model.ScreenGameDetail:
		breadcrumbParts = []string{listLabel, "Detail"}
		if m.gameDetail != nil {
			breadcrumbParts = []string{listLabel, m.gameDetail.game.Title}
			content = m.gameDetail.View(m.width, contentHeight)
		}
	case model.ScreenFilters:
		breadcrumbParts = []string{listLabel, "Filters"}
		if m.filtersForm != nil {
			content = m.filtersForm.View(m.width, contentHeight)
		}
	case model.ScreenBooking:
		breadcrumbParts = []string{"Reserve"}
		if m.booking != nil {
			breadcrumbParts = append(breadcrumbParts, m.booking.State().Step.String())
			content = m.booking.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	// Fill the available height so the footer stays at the bottom.
	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := []string{header}
	if showTabs {
		parts = append(parts, renderTabs(m.screen, m.favs.Len(), !m.criteria.IsZero(), m.width))
	}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) emptyText() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading games…"
	case m.loadFailed:
		return "Could not load games."
	case m.listScreen == model.ScreenFavorites && m.favs.Len() == 0:
		return "No favorites yet. Press f on a game to add it."
	default:
		return "No games match your filters. Press x to clear them."
	}
}

func renderTabs(screen model.Screen, favCount int, filtered bool, width int) string {
	tabs := []struct {
		name   string
		screen model.Screen
	}{
		{"All games", model.ScreenGames},
		{fmt.Sprintf("Favorites (%d)", favCount), model.ScreenFavorites},
		{"Reserve", model.ScreenBooking},
	}

	var tabStrings []string
	for _, tab := range tabs {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if screen == tab.screen {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(tab.name))
	}
	if filtered && screen != model.ScreenBooking {
		tabStrings = append(tabStrings, ChipStyle.Render("filtered"))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("spilcafe")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenBooking {
		return m.updateBooking(msg)
	}

	k := m.keys
	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, k.NextColumn):
			t.NextColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, k.PrevColumn):
			t.PrevColumn()
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, k.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case key.Matches(msg, k.CycleSort):
			m.criteria.Sort = filter.NextSort(m.criteria.Sort)
			m.refreshGames()
			m.persistCurrentTablePrefs()
			m.info = "Sorted by " + string(m.criteria.Sort)
			return m, nil
		case key.Matches(msg, k.HideColumn):
			if t.HideActiveColumn() {
				m.info = "Column hidden"
				m.persistCurrentTablePrefs()
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, k.ShowColumns):
			t.ShowAllColumns()
			m.info = "All columns shown"
			m.persistCurrentTablePrefs()
			return m, nil
		case key.Matches(msg, k.FilterValue):
			col, value, ok := m.games.SelectedValue()
			if !ok {
				m.info = "No filterable value in selected cell"
				return m, nil
			}
			switch col {
			case "genre":
				m.criteria.Genre = value
			case "language":
				m.criteria.Language = value
			case "difficulty":
				m.criteria.Difficulty = value
			}
			m.refreshGames()
			m.games.JumpToTop()
			m.info = fmt.Sprintf("Filtered %s: %s", col, value)
			return m, nil
		case key.Matches(msg, k.ClearFilter):
			m.criteria.Genre = filter.All
			m.criteria.Language = filter.All
			m.criteria.Difficulty = filter.All
			m.refreshGames()
			m.info = "Filter cleared"
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, k.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		return m, m.undoCmd()
	case key.Matches(msg, k.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		return m, m.redoCmd()
	}

	// "gg" jumps to the top
	if key.Matches(msg, k.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if m.currentTable() != nil {
			m.games.JumpToTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenGames, model.ScreenFavorites:
		return m.handleGamesNav(msg)
	case model.ScreenGameDetail:
		return m.handleGameDetailNav(msg)
	}

	return m, nil
}

func (m *Model) currentTable() tableController {
	switch m.screen {
	case model.ScreenGames, model.ScreenFavorites:
		return m.games
	}
	return nil
}

func (m *Model) persistCurrentTablePrefs() {
	m.prefs.Games = m.games.Prefs()
	if err := saveUIPreferences(m.db, m.prefs); err != nil {
		log.Printf("save ui prefs: %v", err)
	}
}

// refreshGames recomputes the visible list from the catalog, the criteria and
// the favorite set.
func (m *Model) refreshGames() {
	rows := filter.Select(m.catalog, m.criteria, m.favs, m.listScreen == model.ScreenFavorites)
	m.games.SetRows(rows, m.favs, len(m.catalog))
	m.games.SetSort(m.criteria.Sort)
	if m.gameDetail != nil {
		m.gameDetail.SetFavorite(m.favs.Has(m.gameDetail.game.ID))
	}
}

// handleInsertMode handles insert/edit mode input.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case model.ScreenFilters:
		if m.filtersForm != nil {
			newForm, cmd := m.filtersForm.Update(msg)
			m.filtersForm = &newForm
			return m, cmd
		}
	case model.ScreenBooking:
		return m.updateBooking(msg)
	}
	return m, nil
}

func (m Model) updateBooking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.booking == nil {
		return m, nil
	}
	newBooking, cmd := m.booking.Update(msg)
	m.booking = &newBooking
	m.mode = model.ModeNav
	if m.booking.Insert() {
		m.mode = model.ModeInsert
	}
	return m, cmd
}

func (m Model) showList(screen model.Screen) (tea.Model, tea.Cmd) {
	m.screen = screen
	m.listScreen = screen
	m.gameDetail = nil
	m.refreshGames()
	return m, nil
}

func (m Model) openFilters(field int) (tea.Model, tea.Cmd) {
	m.filtersForm = NewFiltersFormModel(m.criteria, m.facets)
	m.filtersForm.focus(field)
	m.screen = model.ScreenFilters
	m.mode = model.ModeInsert
	return m, nil
}

func (m Model) openBooking() (tea.Model, tea.Cmd) {
	if m.booking == nil {
		m.booking = NewBookingModel(m.homeCafe, time.Now)
	}
	m.booking.Open()
	m.screen = model.ScreenBooking
	m.mode = model.ModeNav
	m.gameDetail = nil
	return m, nil
}

func (m Model) openDetail(g model.Game) (tea.Model, tea.Cmd) {
	m.gameDetail = NewGameDetailModel(g, m.favs.Has(g.ID), m.termCapabilities)
	m.screen = model.ScreenGameDetail
	if g.Image == "" {
		return m, nil
	}
	return m, tea.Batch(m.gameDetail.Init(), fetchCoverCmd(m.client, g))
}

func (m Model) toggleFavorite(g model.Game) (tea.Model, tea.Cmd) {
	added := !m.favs.Has(g.ID)
	m.favs = m.favs.Toggle(g.ID)
	action := buildToggleAction(g, added)
	m.pushUndoAction(action)
	m.info = strings.ToUpper(action.label[:1]) + action.label[1:]
	m.error = ""
	m.refreshGames()
	m.saveFavorites()
	return m, nil
}

func (m Model) handleGamesNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.AllGames):
		return m.showList(model.ScreenGames)
	case key.Matches(msg, k.Favorites):
		return m.showList(model.ScreenFavorites)
	case key.Matches(msg, k.Reserve):
		return m.openBooking()
	case msg.String() == "right":
		if m.screen == model.ScreenGames {
			return m.showList(model.ScreenFavorites)
		}
		return m.openBooking()
	case msg.String() == "left":
		if m.screen == model.ScreenFavorites {
			return m.showList(model.ScreenGames)
		}
		return m, nil
	case key.Matches(msg, k.Search):
		return m.openFilters(ffQuery)
	case key.Matches(msg, k.Filters):
		return m.openFilters(ffGenre)
	case key.Matches(msg, k.ClearAll):
		m.criteria = filter.Default()
		m.screen = model.ScreenGames
		m.listScreen = model.ScreenGames
		m.refreshGames()
		m.persistCurrentTablePrefs()
		m.info = "Filters cleared"
		return m, nil
	case key.Matches(msg, k.Favorite):
		if g, ok := m.games.Selected(); ok {
			return m.toggleFavorite(g)
		}
		return m, nil
	case key.Matches(msg, k.Select) || msg.String() == "l":
		if g, ok := m.games.Selected(); ok {
			return m.openDetail(g)
		}
		return m, nil
	case key.Matches(msg, k.Down):
		m.games.MoveDown()
	case key.Matches(msg, k.Up):
		m.games.MoveUp()
	case key.Matches(msg, k.Bottom):
		m.games.JumpToBottom()
	case key.Matches(msg, k.HalfPageDown):
		m.games.HalfPageDown(m.height / 2)
	case key.Matches(msg, k.HalfPageUp):
		m.games.HalfPageUp(m.height / 2)
	}
	return m, nil
}

func (m Model) handleGameDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gameDetail == nil {
		return m, nil
	}
	k := m.keys
	switch {
	case key.Matches(msg, k.Back, k.Left):
		m.screen = m.listScreen
		m.gameDetail = nil
		m.refreshGames()
		return m, nil
	case key.Matches(msg, k.Favorite):
		return m.toggleFavorite(m.gameDetail.game)
	case key.Matches(msg, k.Reserve):
		return m.openBooking()
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// Commands

func loadCatalogCmd(client *catalog.Client) tea.Cmd {
	return func() tea.Msg {
		games, err := client.Fetch(context.Background())
		if err != nil {
			return model.CatalogFailedMsg{Err: err}
		}
		return model.CatalogLoadedMsg{Games: games}
	}
}

func fetchCoverCmd(client *catalog.Client, g model.Game) tea.Cmd {
	return func() tea.Msg {
		img, err := client.FetchImage(context.Background(), g.Image)
		return model.CoverLoadedMsg{GameID: g.ID, Image: img, Err: err}
	}
}

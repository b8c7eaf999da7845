package ui

import (
	"fmt"
	"strings"

	"spilcafe/internal/favorites"
	"spilcafe/internal/filter"
	"spilcafe/internal/model"
	"spilcafe/internal/util"
	"spilcafe/internal/view"

	"github.com/charmbracelet/lipgloss"
)

type gameColumn struct {
	key    string
	label  string
	width  int
	hidden bool
}

// GamesModel is the catalog table shared by the All games and Favorites tabs.
// It only displays rows; selection and ordering happen in filter.Select.
type GamesModel struct {
	rows   []model.Game
	favs   favorites.Set
	total  int
	cursor int
	offset int

	viewportHeight int

	columns      []gameColumn
	activeColumn int
	sortKey      filter.SortKey
}

// NewGamesModel creates an empty games table.
func NewGamesModel() *GamesModel {
	return &GamesModel{
		sortKey: filter.SortNone,
		columns: []gameColumn{
			{key: "fav", label: "♥", width: 2},
			{key: "title", label: "title", width: 28},
			{key: "genre", label: "genre", width: 14},
			{key: "language", label: "language", width: 10},
			{key: "difficulty", label: "difficulty", width: 10},
			{key: "players", label: "players", width: 8},
			{key: "rating", label: "rating", width: 7},
			{key: "playtime", label: "time", width: 8},
			{key: "available", label: "status", width: 10},
			{key: "shelf", label: "shelf", width: 8},
		},
	}
}

// SetRows replaces the displayed games. total is the catalog size before
// filtering.
func (m *GamesModel) SetRows(rows []model.Game, favs favorites.Set, total int) {
	m.rows = rows
	m.favs = favs
	m.total = total
	m.clampCursor()
}

// SetSort records the active sort for the header arrow.
func (m *GamesModel) SetSort(key filter.SortKey) {
	m.sortKey = key
}

// Selected returns the game under the cursor.
func (m *GamesModel) Selected() (model.Game, bool) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return model.Game{}, false
	}
	return m.rows[m.cursor], true
}

// SelectByID moves the cursor to the game with id, if it is displayed.
func (m *GamesModel) SelectByID(id string) {
	for i, g := range m.rows {
		if g.ID == id {
			m.cursor = i
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
			return
		}
	}
}

// Len returns the number of displayed rows.
func (m *GamesModel) Len() int {
	return len(m.rows)
}

func (m *GamesModel) ApplyPrefs(prefs TablePrefs) {
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].key]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.key == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}
	m.ensureVisibleActiveColumn()
}

func (m *GamesModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.key)
		}
	}
	return TablePrefs{
		SortKey:       string(m.sortKey),
		HiddenColumns: hidden,
		ActiveColumn:  m.columns[m.activeColumn].key,
	}
}

func (m *GamesModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// SelectedValue returns the categorical value under the cursor in the active
// column. Only genre, language and difficulty can be filtered this way.
func (m *GamesModel) SelectedValue() (key, value string, ok bool) {
	g, ok := m.Selected()
	if !ok {
		return "", "", false
	}
	key = m.columns[m.activeColumn].key
	switch key {
	case "genre":
		value = g.Genre
	case "language":
		value = g.Language
	case "difficulty":
		value = g.Difficulty
	default:
		return key, "", false
	}
	value = strings.TrimSpace(value)
	return key, value, value != ""
}

func (m *GamesModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *GamesModel) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

func (m *GamesModel) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *GamesModel) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *GamesModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *GamesModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *GamesModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *GamesModel) TableMeta() string {
	col := strings.ToUpper(m.columns[m.activeColumn].label)
	parts := []string{fmt.Sprintf("col %s", col)}
	if m.sortKey != "" && m.sortKey != filter.SortNone {
		parts = append(parts, fmt.Sprintf("sort %s", strings.ToUpper(string(m.sortKey))))
	}
	return strings.Join(parts, "  ·  ")
}

func (m *GamesModel) sortArrow(key string) string {
	switch {
	case m.sortKey == filter.SortTitle && key == "title":
		return " ↑"
	case m.sortKey == filter.SortPlaytime && key == "playtime":
		return " ↑"
	case m.sortKey == filter.SortRating && key == "rating":
		return " ↓"
	}
	return ""
}

// View renders the table. empty is shown instead when there are no rows.
func (m *GamesModel) View(width, height int, empty string) string {
	if len(m.rows) == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(empty)
	}

	visible := m.visibleColumnIndexes()
	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	totalFixed := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		label += m.sortArrow(col.key)
		cellWidth := max(col.width+2, lipgloss.Width(label)+2)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	sepTotal := (len(widths) - 1) * tableSeparatorWidth()
	if extra := width - totalFixed - sepTotal - 2; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := height - 4
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	m.viewportHeight = visibleHeight

	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		g := m.rows[i]
		card := view.Card(g, m.favs.Has(g.ID))
		selected := i == m.cursor
		style := NormalRowStyle
		if selected {
			style = SelectedRowStyle
		}

		cells := make([]string, 0, len(visible))
		for _, idx := range visible {
			col := m.columns[idx]
			cells = append(cells, m.cell(card, g, col, selected))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	filterInfo := ""
	if len(m.rows) != m.total {
		filterInfo = fmt.Sprintf("  ·  showing %d/%d", len(m.rows), m.total)
	}
	status := StatusBarStyle.Render(fmt.Sprintf("%d games  ·  row %d/%d%s  ·  %s",
		len(m.rows), m.cursor+1, len(m.rows), filterInfo, m.TableMeta()))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(status))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, status)
}

func (m *GamesModel) cell(card view.CardView, g model.Game, col gameColumn, selected bool) string {
	// Colored cells lose the row highlight, so keep them plain when selected.
	colored := func(style lipgloss.Style, s string) string {
		if selected {
			return s
		}
		return style.Render(s)
	}

	switch col.key {
	case "fav":
		if card.Favorite {
			return colored(FavoriteStyle, "♥")
		}
		return ""
	case "title":
		return util.TruncateString(card.Title, col.width)
	case "genre":
		return util.TruncateString(card.Genre, col.width)
	case "language":
		return util.TruncateString(g.Language, col.width)
	case "difficulty":
		return util.TruncateString(g.Difficulty, col.width)
	case "players":
		return card.Players
	case "rating":
		if g.Rating == nil {
			return card.Rating
		}
		return colored(RatingStyle, card.Rating+"★")
	case "playtime":
		return card.Playtime
	case "available":
		return colored(BadgeStyle, card.Badge)
	case "shelf":
		return util.TruncateString(card.Shelf, col.width)
	}
	return ""
}

// MoveDown moves the cursor down.
func (m *GamesModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageHeight() {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *GamesModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *GamesModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *GamesModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		if vh := m.pageHeight(); m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *GamesModel) HalfPageDown(pageSize int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += pageSize / 2
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if vh := m.pageHeight(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *GamesModel) HalfPageUp(pageSize int) {
	m.cursor -= pageSize / 2
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m *GamesModel) pageHeight() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}

package ui

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"spilcafe/internal/booking"
	"spilcafe/internal/catalog"
	"spilcafe/internal/db"
	"spilcafe/internal/filter"
	"spilcafe/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func testGames() []model.Game {
	return []model.Game{
		{ID: "1", Title: "Catan", Genre: "Strategy", Language: "English", Players: &model.Players{Min: 3, Max: 4}, Playtime: intPtr(90), Rating: floatPtr(4.1), Available: true},
		{ID: "2", Title: "Azul", Genre: "Family", Language: "Dansk", Players: &model.Players{Min: 2, Max: 4}, Playtime: intPtr(45), Rating: floatPtr(4.5)},
		{ID: "3", Title: "Bohnanza", Genre: "Family", Language: "English", Players: &model.Players{Min: 3, Max: 7}, Playtime: intPtr(45), Available: true},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelWithDB(t, nil)
}

func newTestModelWithDB(t *testing.T, database *sql.DB) Model {
	t.Helper()
	m := New(database, catalog.NewClient("http://127.0.0.1:0/games.json", time.Second), TerminalCapabilities{}, "")
	m = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return send(t, m, model.CatalogLoadedMsg{Games: testGames()})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and feeds back the message of the returned command when it
// is one the root model handles itself.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	m = next.(Model)
	if cmd == nil {
		return m
	}
	switch k {
	case "u", "ctrl+r", "esc", "enter", "ctrl+s":
		switch msg := cmd().(type) {
		case undoAppliedMsg, filtersAppliedMsg, bookingClosedMsg, model.FormCancelledMsg:
			return send(t, m, msg)
		}
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func rowIDs(m Model) []string {
	ids := make([]string, 0, len(m.games.rows))
	for _, g := range m.games.rows {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestCatalogLoadedFillsTable(t *testing.T) {
	m := newTestModel(t)
	if m.loading {
		t.Fatal("still loading after catalog arrived")
	}
	if got := strings.Join(rowIDs(m), ","); got != "1,2,3" {
		t.Fatalf("rows = %s, want catalog order 1,2,3", got)
	}
	if !strings.Contains(m.View(), "Favorites (0)") {
		t.Fatal("favorites tab should show count 0")
	}
}

func TestCatalogFailureShowsMessage(t *testing.T) {
	m := New(nil, catalog.NewClient("", time.Second), TerminalCapabilities{}, "")
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	m = send(t, m, model.CatalogFailedMsg{Err: errors.New("catalog error: status 500")})

	if m.games.Len() != 0 {
		t.Fatalf("expected no rows, got %d", m.games.Len())
	}
	if !strings.Contains(m.View(), "Could not load games.") {
		t.Fatal("failure message missing from view")
	}
}

func TestFavoriteToggleUndoRedo(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "f")
	if !m.favs.Has("1") {
		t.Fatal("f should favorite the selected game")
	}
	if !strings.Contains(m.View(), "Favorites (1)") {
		t.Fatal("favorites tab count not updated")
	}

	m = press(t, m, "u")
	if m.favs.Has("1") {
		t.Fatal("undo should remove the favorite again")
	}

	m = press(t, m, "ctrl+r")
	if !m.favs.Has("1") {
		t.Fatal("redo should restore the favorite")
	}
}

func TestFavoritesStoredInToggleOrder(t *testing.T) {
	conn, err := db.Open(filepath.Join(t.TempDir(), "spilcafe.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	m := newTestModelWithDB(t, conn)
	m = press(t, m, "f")
	m = press(t, m, "j")
	m = press(t, m, "f")

	stored := strings.Join(db.LoadFavorites(conn).IDs(), ",")
	if inMemory := strings.Join(m.favs.IDs(), ","); stored != "1,2" || inMemory != stored {
		t.Fatalf("stored = %q, in memory = %q, want both 1,2", stored, inMemory)
	}

	m = press(t, m, "u")
	if got := strings.Join(db.LoadFavorites(conn).IDs(), ","); got != "1" {
		t.Fatalf("after undo stored = %q, want 1", got)
	}

	reopened := newTestModelWithDB(t, conn)
	if !strings.Contains(reopened.View(), "Favorites (1)") {
		t.Fatal("a new session should load the stored favorites")
	}
}

func TestFavoritesTabShowsOnlyFavorites(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "j")
	m = press(t, m, "f")

	m = press(t, m, "2")
	if m.screen != model.ScreenFavorites {
		t.Fatalf("screen = %v, want favorites", m.screen)
	}
	if got := strings.Join(rowIDs(m), ","); got != "2" {
		t.Fatalf("favorites rows = %s, want 2", got)
	}

	m = press(t, m, "f")
	if m.games.Len() != 0 {
		t.Fatal("unfavorited game should leave the favorites tab")
	}
	if !strings.Contains(m.View(), "No favorites yet") {
		t.Fatal("empty favorites text missing")
	}

	m = press(t, m, "1")
	if m.games.Len() != 3 {
		t.Fatalf("all games tab shows %d rows, want 3", m.games.Len())
	}
}

func TestCycleSort(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "s")
	if m.criteria.Sort != filter.SortTitle {
		t.Fatalf("sort = %s, want title", m.criteria.Sort)
	}
	if got := strings.Join(rowIDs(m), ","); got != "2,3,1" {
		t.Fatalf("title order = %s, want 2,3,1", got)
	}

	m = press(t, m, "s")
	m = press(t, m, "s")
	if m.criteria.Sort != filter.SortRating {
		t.Fatalf("sort = %s, want rating", m.criteria.Sort)
	}
	if got := strings.Join(rowIDs(m), ","); got != "2,1,3" {
		t.Fatalf("rating order = %s, want 2,1,3", got)
	}

	m = press(t, m, "s")
	if m.criteria.Sort != filter.SortNone {
		t.Fatalf("sort = %s, want none", m.criteria.Sort)
	}
}

func TestFilterBySelectedValue(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "#")
	m = press(t, m, "3")
	if m.games.columns[m.games.activeColumn].key != "genre" {
		t.Fatalf("active column = %s, want genre", m.games.columns[m.games.activeColumn].key)
	}

	m = press(t, m, "j")
	m = press(t, m, "n")
	if m.criteria.Genre != "Family" {
		t.Fatalf("genre = %q, want Family", m.criteria.Genre)
	}
	if got := strings.Join(rowIDs(m), ","); got != "2,3" {
		t.Fatalf("rows = %s, want 2,3", got)
	}

	m = press(t, m, "N")
	if m.games.Len() != 3 {
		t.Fatalf("clearing value filter left %d rows", m.games.Len())
	}
}

func TestSearchThroughFiltersForm(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "/")
	if m.screen != model.ScreenFilters || m.mode != model.ModeInsert {
		t.Fatalf("screen = %v mode = %v, want filters in insert mode", m.screen, m.mode)
	}
	m = typeText(t, m, "aZu")
	m = press(t, m, "enter")

	if m.screen != model.ScreenGames {
		t.Fatalf("screen = %v after apply, want games", m.screen)
	}
	if m.criteria.Query != "aZu" {
		t.Fatalf("query = %q", m.criteria.Query)
	}
	if got := strings.Join(rowIDs(m), ","); got != "2" {
		t.Fatalf("rows = %s, want 2", got)
	}

	m = press(t, m, "x")
	if !m.criteria.IsZero() || m.games.Len() != 3 {
		t.Fatal("x should clear every filter")
	}
}

func TestFiltersFormCancelKeepsCriteria(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "F")
	m = press(t, m, "right")
	m = press(t, m, "esc")

	if m.screen != model.ScreenGames || m.mode != model.ModeNav {
		t.Fatal("esc should close the filters form")
	}
	if !m.criteria.IsZero() {
		t.Fatal("cancelled form must not change criteria")
	}
}

func TestFiltersFormBuildsCriteria(t *testing.T) {
	facets := filter.CollectFacets(testGames())
	c := filter.Default()
	c.Genre = "Family"
	c.MinAge = intPtr(10)
	players, _ := filter.ParseSpan("6+")
	c.Players = players
	c.Rating.From = floatPtr(4)

	form := NewFiltersFormModel(c, facets)
	got := form.Criteria()
	if got.Genre != "Family" || got.MinAge == nil || *got.MinAge != 10 {
		t.Fatalf("criteria not round-tripped: %+v", got)
	}
	if got.Players == nil || got.Players.String() != "6+" {
		t.Fatalf("players = %v, want 6+", got.Players)
	}
	if got.Rating.From == nil || *got.Rating.From != 4 {
		t.Fatalf("rating from = %v, want 4", got.Rating.From)
	}

	form.fields[ffPlayFrom].input.SetValue("abc")
	if form.Criteria().Playtime.From != nil {
		t.Fatal("unparseable number should be treated as unset")
	}
}

func TestOpenDetailAndBack(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "enter")
	if m.screen != model.ScreenGameDetail || m.gameDetail == nil {
		t.Fatal("enter should open the detail screen")
	}
	if !strings.Contains(m.View(), "Catan") {
		t.Fatal("detail view missing title")
	}

	m = press(t, m, "f")
	if !m.gameDetail.favorite {
		t.Fatal("favorite toggle on detail screen not reflected")
	}

	m = press(t, m, "h")
	if m.screen != model.ScreenGames || m.gameDetail != nil {
		t.Fatal("h should return to the list")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "?")
	if !m.showingHelp || !strings.Contains(m.View(), "Cycle sort") {
		t.Fatal("? should show full help")
	}
	m = press(t, m, "esc")
	if m.showingHelp {
		t.Fatal("esc should close help")
	}
}

func TestBookingFlowThroughUI(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 4, 0, 0, time.UTC)
	m := newTestModel(t)
	m.booking = NewBookingModel("aarhus-c", func() time.Time { return now })

	m = press(t, m, "r")
	if m.screen != model.ScreenBooking {
		t.Fatalf("screen = %v, want booking", m.screen)
	}

	// aarhus-c is the home café and starts selected
	m = press(t, m, "enter")
	if s := m.booking.State(); s.Step != booking.StepGuests || s.Cafe.ID != "aarhus-c" {
		t.Fatalf("after café: %+v", s)
	}

	m = press(t, m, "4")
	if m.booking.State().Guests != 4 {
		t.Fatalf("guests = %d, want 4", m.booking.State().Guests)
	}

	m = press(t, m, "h")
	m = press(t, m, "enter")
	if m.booking.err == "" || m.booking.State().Step != booking.StepDate {
		t.Fatal("picking yesterday should be rejected")
	}

	m = press(t, m, "l")
	m = press(t, m, "l")
	m = press(t, m, "enter")
	if m.booking.State().Date != "2025-03-11" {
		t.Fatalf("date = %q, want 2025-03-11", m.booking.State().Date)
	}

	m = press(t, m, "l")
	m = press(t, m, "enter")
	if m.booking.State().Step != booking.StepTime || m.booking.err == "" {
		t.Fatal("busy slot 11:30 should be rejected")
	}
	m = press(t, m, "l")
	m = press(t, m, "enter")
	if m.booking.State().Time != "12:00" {
		t.Fatalf("time = %q, want 12:00", m.booking.State().Time)
	}

	m = press(t, m, "j")
	m = press(t, m, "enter")
	if m.booking.State().Type != "We play for 2 hours" {
		t.Fatalf("type = %q", m.booking.State().Type)
	}
	if m.mode != model.ModeInsert {
		t.Fatal("contact step should switch to insert mode")
	}

	m = typeText(t, m, "Ada")
	m = press(t, m, "tab")
	m = typeText(t, m, "12345678")
	m = press(t, m, "tab")
	m = typeText(t, m, "ada")
	m = press(t, m, "ctrl+s")
	if m.booking.State().Step != booking.StepConfirm || m.booking.err == "" {
		t.Fatal("invalid email should keep the confirm step")
	}

	m = typeText(t, m, "@example.com")
	m = press(t, m, "ctrl+s")
	s := m.booking.State()
	if s.Step != booking.StepDone || len(s.Reference) != 8 {
		t.Fatalf("after submit: step %v reference %q", s.Step, s.Reference)
	}
	if !strings.Contains(m.View(), "ada@example.com") {
		t.Fatal("receipt should list the email")
	}

	m = press(t, m, "enter")
	if m.screen != model.ScreenGames {
		t.Fatalf("screen = %v after finish, want games", m.screen)
	}
	if m.booking.State() != booking.New(now) {
		t.Fatal("finish should reset the reservation")
	}
}

func TestBookingEscKeepsChoices(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 4, 0, 0, time.UTC)
	m := newTestModel(t)
	m.booking = NewBookingModel("", func() time.Time { return now })

	m = press(t, m, "r")
	m = press(t, m, "j")
	m = press(t, m, "enter")
	m = press(t, m, "esc")
	if m.screen != model.ScreenGames {
		t.Fatalf("esc should close booking, screen = %v", m.screen)
	}

	m = press(t, m, "r")
	s := m.booking.State()
	if s.Step != booking.StepCafe {
		t.Fatalf("reopen step = %v, want first step", s.Step)
	}
	if s.Cafe == nil || s.Cafe.ID != "aarhus-c" {
		t.Fatal("reopening should keep the earlier café choice")
	}
	if m.booking.cafeCursor != 1 {
		t.Fatalf("cursor = %d, want the kept café", m.booking.cafeCursor)
	}
}

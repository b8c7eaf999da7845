package filter

import (
	"reflect"
	"testing"

	"spilcafe/internal/favorites"
	"spilcafe/internal/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func ids(games []model.Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func sampleCatalog() []model.Game {
	return []model.Game{
		{ID: "1", Title: "Zombicide", Description: "Co-op survival", Genre: "Co-op", Language: "Engelsk", Difficulty: "Svær", Rating: floatPtr(4.1), Playtime: intPtr(90), Age: intPtr(14), Players: &model.Players{Min: 1, Max: 6}, Available: true},
		{ID: "2", Title: "Ægget", Description: "Familiespil", Rules: "Rul terningen", Genre: "Familie", Language: "Dansk", Difficulty: "Let", Rating: floatPtr(3.2), Playtime: intPtr(20), Age: intPtr(6), Players: &model.Players{Min: 2, Max: 4}},
		{ID: "3", Title: "Catan", Description: "Trade and build", Genre: "Strategi", Language: "Dansk", Difficulty: "Mellem", Rating: floatPtr(4.6), Playtime: intPtr(60), Age: intPtr(10), Players: &model.Players{Min: 3, Max: 4}, Available: true},
		{ID: "4", Title: "Ukendt", Genre: "Strategi", Language: "Dansk", Difficulty: "Mellem"},
	}
}

func TestSelectDefaultsReturnCatalogInOrder(t *testing.T) {
	games := sampleCatalog()
	for _, c := range []Criteria{{}, Default()} {
		got := Select(games, c, nil, false)
		if want := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(ids(got), want) {
			t.Errorf("Select(%+v) = %v, want %v", c, ids(got), want)
		}
	}
	if !Default().IsZero() {
		t.Errorf("Default().IsZero() = false, want true")
	}
}

func TestSelectDoesNotModifyInput(t *testing.T) {
	games := sampleCatalog()
	c := Default()
	c.Sort = SortTitle
	_ = Select(games, c, nil, false)
	if want := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(ids(games), want) {
		t.Errorf("input reordered to %v", ids(games))
	}
}

func TestSelectPlaytimeRange(t *testing.T) {
	games := []model.Game{
		{ID: "a", Playtime: intPtr(30)},
		{ID: "b", Playtime: intPtr(60)},
		{ID: "c", Playtime: intPtr(90)},
	}
	c := Default()
	c.Playtime = Bound[int]{From: intPtr(45), To: intPtr(90)}

	got := Select(games, c, nil, false)
	if want := []string{"b", "c"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectRatingBoundKeepsUnknownRating(t *testing.T) {
	games := sampleCatalog()
	c := Default()
	c.Rating = Bound[float64]{From: floatPtr(4.0)}

	got := Select(games, c, nil, false)
	if want := []string{"1", "3", "4"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}

	c.Rating = Bound[float64]{To: floatPtr(4.0)}
	got = Select(games, c, nil, false)
	if want := []string{"2", "4"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectSortRatingDescendingUnknownLast(t *testing.T) {
	games := []model.Game{
		{ID: "low", Rating: floatPtr(3.5)},
		{ID: "high", Rating: floatPtr(4.8)},
		{ID: "unknown"},
	}
	c := Default()
	c.Sort = SortRating

	got := Select(games, c, nil, false)
	if want := []string{"high", "low", "unknown"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectSortPlaytimeTreatsUnknownAsZero(t *testing.T) {
	c := Default()
	c.Sort = SortPlaytime

	got := Select(sampleCatalog(), c, nil, false)
	if want := []string{"4", "2", "3", "1"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectSortTitleUsesDanishCollation(t *testing.T) {
	c := Default()
	c.Sort = SortTitle

	got := Select(sampleCatalog(), c, nil, false)
	// Æ sorts after Z in Danish.
	if want := []string{"3", "4", "1", "2"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectSortKeepsTiesInInputOrder(t *testing.T) {
	games := []model.Game{
		{ID: "a", Rating: floatPtr(4)},
		{ID: "b", Rating: floatPtr(5)},
		{ID: "c", Rating: floatPtr(4)},
		{ID: "d", Rating: floatPtr(4)},
	}
	c := Default()
	c.Sort = SortRating

	got := Select(games, c, nil, false)
	if want := []string{"b", "a", "c", "d"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectPlayersPill(t *testing.T) {
	games := []model.Game{
		{ID: "wide", Players: &model.Players{Min: 2, Max: 6}},
		{ID: "five", Players: &model.Players{Min: 5, Max: 5}},
		{ID: "duo", Players: &model.Players{Min: 1, Max: 2}},
		{ID: "unknown"},
	}

	tests := []struct {
		token string
		want  []string
	}{
		// A game for exactly five does not overlap 3-4, so it is left out.
		{"3-4", []string{"wide", "unknown"}},
		{"3-6", []string{"wide", "five", "unknown"}},
		{"6+", []string{"wide", "unknown"}},
		{"1-2", []string{"wide", "duo", "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			span, ok := ParseSpan(tt.token)
			if !ok {
				t.Fatalf("ParseSpan(%q) failed", tt.token)
			}
			c := Default()
			c.Players = span
			got := Select(games, c, nil, false)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Select() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestSelectDurationPill(t *testing.T) {
	c := Default()
	c.Duration, _ = ParseSpan("60-90")
	got := Select(sampleCatalog(), c, nil, false)
	if want := []string{"1", "3", "4"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}

	c.Duration, _ = ParseSpan("90+")
	got = Select(sampleCatalog(), c, nil, false)
	if want := []string{"1", "4"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectAgePillIsMinimumGate(t *testing.T) {
	c := Default()
	c.MinAge = ParseAge("10")
	got := Select(sampleCatalog(), c, nil, false)
	if want := []string{"1", "3", "4"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}
}

func TestSelectQueryCategoricalAndAvailability(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Criteria)
		want   []string
	}{
		{"query matches rules", func(c *Criteria) { c.Query = "  TERNING " }, []string{"2"}},
		{"query matches description", func(c *Criteria) { c.Query = "trade" }, []string{"3"}},
		{"genre", func(c *Criteria) { c.Genre = "Strategi" }, []string{"3", "4"}},
		{"language", func(c *Criteria) { c.Language = "Engelsk" }, []string{"1"}},
		{"difficulty", func(c *Criteria) { c.Difficulty = "Let" }, []string{"2"}},
		{"available only", func(c *Criteria) { c.AvailableOnly = true }, []string{"1", "3"}},
		{"combined", func(c *Criteria) { c.Genre = "Strategi"; c.AvailableOnly = true }, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			got := Select(sampleCatalog(), c, nil, false)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Select() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestSelectFavoritesOnly(t *testing.T) {
	favs := favorites.New("3", "1")
	got := Select(sampleCatalog(), Default(), favs, true)
	if want := []string{"1", "3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Select() = %v, want %v", ids(got), want)
	}

	got = Select(sampleCatalog(), Default(), favs, false)
	if len(got) != 4 {
		t.Errorf("Select() without favorites mode returned %d games, want 4", len(got))
	}
}

func TestParseSpan(t *testing.T) {
	tests := []struct {
		token string
		want  *Span
	}{
		{"3-4", &Span{Min: 3, Max: 4}},
		{"6+", &Span{Min: 6, Max: 6, Open: true}},
		{"120+", &Span{Min: 120, Max: 120, Open: true}},
		{"90-120+", &Span{Min: 90, Max: 120, Open: true}},
		{"all", nil},
		{"", nil},
		{"x-4", nil},
		{"3-y", nil},
	}

	for _, tt := range tests {
		got, ok := ParseSpan(tt.token)
		if ok != (tt.want != nil) {
			t.Errorf("ParseSpan(%q) ok = %v", tt.token, ok)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSpan(%q) = %+v, want %+v", tt.token, got, tt.want)
		}
	}
}

func TestNextSortCycles(t *testing.T) {
	key := SortNone
	var seen []SortKey
	for i := 0; i < len(SortKeys); i++ {
		key = NextSort(key)
		seen = append(seen, key)
	}
	if want := []SortKey{SortTitle, SortPlaytime, SortRating, SortNone}; !reflect.DeepEqual(seen, want) {
		t.Errorf("NextSort cycle = %v, want %v", seen, want)
	}
}

func TestCollectFacets(t *testing.T) {
	f := CollectFacets(sampleCatalog())

	if want := []string{"Co-op", "Familie", "Strategi"}; !reflect.DeepEqual(f.Genres, want) {
		t.Errorf("Genres = %v, want %v", f.Genres, want)
	}
	if want := []string{"Dansk", "Engelsk"}; !reflect.DeepEqual(f.Languages, want) {
		t.Errorf("Languages = %v, want %v", f.Languages, want)
	}
	if want := []string{"Let", "Mellem", "Svær"}; !reflect.DeepEqual(f.Difficulties, want) {
		t.Errorf("Difficulties = %v, want %v", f.Difficulties, want)
	}
	if f.RatingMin == nil || *f.RatingMin != 3.2 {
		t.Errorf("RatingMin = %v, want 3.2", f.RatingMin)
	}
	if f.RatingMax == nil || *f.RatingMax != 4.6 {
		t.Errorf("RatingMax = %v, want 4.6", f.RatingMax)
	}
}

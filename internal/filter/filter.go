// Package filter selects and orders catalog games from a snapshot of the
// active filter values.
package filter

import (
	"sort"
	"strings"

	"spilcafe/internal/favorites"
	"spilcafe/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All is the categorical sentinel meaning "no filter".
const All = "all"

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNone     SortKey = "none"
	SortTitle    SortKey = "title"
	SortPlaytime SortKey = "playtime"
	SortRating   SortKey = "rating"
)

// SortKeys lists the sort keys in the order the UI cycles through them.
var SortKeys = []SortKey{SortNone, SortTitle, SortPlaytime, SortRating}

// Bound is an inclusive range where either side may be unset.
type Bound[T int | float64] struct {
	From *T
	To   *T
}

// admits follows the catalog's comparison semantics: an unknown value is
// never rejected by a bound, because there is nothing to compare.
func (b Bound[T]) admits(v *T) bool {
	if v == nil {
		return true
	}
	if b.From != nil && *v < *b.From {
		return false
	}
	if b.To != nil && *v > *b.To {
		return false
	}
	return true
}

// IsZero reports whether neither side is set.
func (b Bound[T]) IsZero() bool {
	return b.From == nil && b.To == nil
}

// Criteria is a snapshot of every active filter value.
type Criteria struct {
	Query         string
	Genre         string
	Language      string
	Difficulty    string
	Rating        Bound[float64]
	Playtime      Bound[int]
	AvailableOnly bool
	Sort          SortKey
	MinAge        *int
	Players       *Span
	Duration      *Span
}

// Default returns criteria with every filter at its permissive default.
func Default() Criteria {
	return Criteria{
		Genre:      All,
		Language:   All,
		Difficulty: All,
		Sort:       SortNone,
	}
}

// IsZero reports whether c filters nothing and keeps input order.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Query) == "" &&
		isAll(c.Genre) && isAll(c.Language) && isAll(c.Difficulty) &&
		c.Rating.IsZero() && c.Playtime.IsZero() &&
		!c.AvailableOnly &&
		(c.Sort == "" || c.Sort == SortNone) &&
		c.MinAge == nil && c.Players == nil && c.Duration == nil
}

func isAll(v string) bool {
	return v == "" || v == All
}

// Select returns the games that pass every predicate in c, ordered by c.Sort.
// When favoritesOnly is set, only games whose id is in favs survive. The
// input slice is never modified.
func Select(games []model.Game, c Criteria, favs favorites.Set, favoritesOnly bool) []model.Game {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		if !matches(g, c, query) {
			continue
		}
		if favoritesOnly && !favs.Has(g.ID) {
			continue
		}
		out = append(out, g)
	}

	Order(out, c.Sort)
	return out
}

func matches(g model.Game, c Criteria, query string) bool {
	if query != "" {
		text := strings.ToLower(g.Title + " " + g.Description + " " + g.Rules)
		if !strings.Contains(text, query) {
			return false
		}
	}

	if !isAll(c.Genre) && g.Genre != c.Genre {
		return false
	}
	if !isAll(c.Language) && g.Language != c.Language {
		return false
	}
	if !isAll(c.Difficulty) && g.Difficulty != c.Difficulty {
		return false
	}

	if !c.Rating.admits(g.Rating) {
		return false
	}
	if !c.Playtime.admits(g.Playtime) {
		return false
	}

	if c.AvailableOnly && !g.Available {
		return false
	}

	if c.MinAge != nil && g.Age != nil && *g.Age < *c.MinAge {
		return false
	}

	if c.Players != nil {
		lo, hi := 1, 99
		if g.Players != nil {
			lo, hi = g.Players.Min, g.Players.Max
		}
		if !c.Players.Overlaps(lo, hi) {
			return false
		}
	}

	if c.Duration != nil && g.Playtime != nil && !c.Duration.Contains(*g.Playtime) {
		return false
	}

	return true
}

// Order sorts games in place by key. Ties keep their relative order.
func Order(games []model.Game, key SortKey) {
	switch key {
	case SortTitle:
		coll := collate.New(language.Danish)
		sort.SliceStable(games, func(i, j int) bool {
			return coll.CompareString(games[i].Title, games[j].Title) < 0
		})
	case SortPlaytime:
		sort.SliceStable(games, func(i, j int) bool {
			return intOrZero(games[i].Playtime) < intOrZero(games[j].Playtime)
		})
	case SortRating:
		sort.SliceStable(games, func(i, j int) bool {
			return floatOrZero(games[i].Rating) > floatOrZero(games[j].Rating)
		})
	}
}

// NextSort returns the sort key after key in SortKeys, wrapping around.
func NextSort(key SortKey) SortKey {
	for i, k := range SortKeys {
		if k == key {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortTitle
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

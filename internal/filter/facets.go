package filter

import (
	"sort"

	"spilcafe/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Facets holds the choices a catalog offers for the categorical filters and
// the span of known ratings.
type Facets struct {
	Genres       []string
	Languages    []string
	Difficulties []string
	RatingMin    *float64
	RatingMax    *float64
}

// CollectFacets gathers distinct non-empty categorical values in Danish
// collation order, plus the lowest and highest known rating.
func CollectFacets(games []model.Game) Facets {
	var f Facets
	genres := map[string]bool{}
	languages := map[string]bool{}
	difficulties := map[string]bool{}

	for _, g := range games {
		genres[g.Genre] = true
		languages[g.Language] = true
		difficulties[g.Difficulty] = true

		if g.Rating == nil {
			continue
		}
		r := *g.Rating
		if f.RatingMin == nil || r < *f.RatingMin {
			f.RatingMin = &r
		}
		if f.RatingMax == nil || r > *f.RatingMax {
			f.RatingMax = &r
		}
	}

	f.Genres = sortedKeys(genres)
	f.Languages = sortedKeys(languages)
	f.Difficulties = sortedKeys(difficulties)
	return f
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	coll := collate.New(language.Danish)
	sort.Slice(out, func(i, j int) bool {
		return coll.CompareString(out[i], out[j]) < 0
	})
	return out
}

// Package view projects catalog records and reservations into display
// strings. Nothing here knows about the terminal.
package view

import (
	"fmt"
	"strconv"

	"spilcafe/internal/booking"
	"spilcafe/internal/model"
	"spilcafe/internal/util"
)

// CardView is one row of the game list.
type CardView struct {
	ID        string
	Title     string
	Genre     string
	Players   string
	Rating    string
	Playtime  string
	Available bool
	Badge     string // "Available" or empty
	Shelf     string
	Favorite  bool
	Image     string
}

// Card builds the list row for g.
func Card(g model.Game, favorite bool) CardView {
	c := CardView{
		ID:        g.ID,
		Title:     g.Title,
		Genre:     g.Genre,
		Players:   players(g.Players),
		Rating:    util.FormatRating(g.Rating),
		Playtime:  util.FormatMinutes(g.Playtime),
		Available: g.Available,
		Shelf:     g.Shelf,
		Favorite:  favorite,
		Image:     g.Image,
	}
	if g.Available {
		c.Badge = "Available"
	}
	return c
}

// DetailView is the expanded view of one game.
type DetailView struct {
	CardView
	Description  string
	Rules        string
	HasRules     bool
	Language     string
	Difficulty   string
	Availability string
	Meta         []string
}

// Detail builds the detail view for g. Meta holds only the facts the catalog
// knows, in the order rating, players, playtime, age.
func Detail(g model.Game, favorite bool) DetailView {
	d := DetailView{
		CardView:     Card(g, favorite),
		Description:  g.Description,
		Rules:        g.Rules,
		HasRules:     g.Rules != "",
		Language:     g.Language,
		Difficulty:   g.Difficulty,
		Availability: "On loan",
	}
	if g.Available {
		d.Availability = "Available"
	}

	if g.Rating != nil {
		d.Meta = append(d.Meta, "★ "+util.FormatRating(g.Rating))
	}
	if g.Players != nil {
		d.Meta = append(d.Meta, players(g.Players)+" players")
	}
	if g.Playtime != nil {
		d.Meta = append(d.Meta, util.FormatMinutes(g.Playtime))
	}
	if g.Age != nil && *g.Age > 0 {
		d.Meta = append(d.Meta, strconv.Itoa(*g.Age)+"+")
	}
	return d
}

func players(p *model.Players) string {
	if p == nil {
		return util.Placeholder
	}
	return util.FormatRange(p.Min, p.Max)
}

// Line is a labelled receipt row.
type Line struct {
	Label string
	Value string
}

// Receipt lists the chosen reservation details. Unset values are skipped.
func Receipt(s booking.State) []Line {
	var lines []Line
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, Line{Label: label, Value: value})
		}
	}

	if s.Cafe != nil {
		add("Café", fmt.Sprintf("%s, %s", s.Cafe.Name, s.Cafe.Address))
	}
	if s.Guests > 0 {
		add("Guests", strconv.Itoa(s.Guests))
	}
	if s.Date != "" {
		add("Date", util.FormatDateLong(s.Date))
	}
	add("Time", s.Time)
	add("Type", s.Type)
	add("Name", s.Name)
	add("Phone", s.Phone)
	add("Email", s.Email)
	add("Note", s.Note)
	add("Reference", s.Reference)
	return lines
}

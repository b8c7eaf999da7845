package view

import (
	"reflect"
	"testing"
	"time"

	"spilcafe/internal/booking"
	"spilcafe/internal/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCardKnownAndUnknownFields(t *testing.T) {
	full := model.Game{
		ID: "1", Title: "Catan", Rating: floatPtr(4.56), Playtime: intPtr(60),
		Players: &model.Players{Min: 2, Max: 4}, Available: true, Shelf: "B3",
	}
	c := Card(full, true)
	if c.Players != "2–4" || c.Rating != "4.6" || c.Playtime != "60 min" {
		t.Errorf("Card() = %+v", c)
	}
	if c.Badge != "Available" || !c.Favorite || c.Shelf != "B3" {
		t.Errorf("Card() badge/favorite/shelf = %q/%v/%q", c.Badge, c.Favorite, c.Shelf)
	}

	empty := Card(model.Game{ID: "2", Title: "Mystery"}, false)
	if empty.Players != "—" || empty.Rating != "—" || empty.Playtime != "—" || empty.Badge != "" {
		t.Errorf("Card() for unknown fields = %+v", empty)
	}
}

func TestDetailMeta(t *testing.T) {
	g := model.Game{
		ID: "1", Title: "Catan", Rules: "Trade", Rating: floatPtr(4),
		Players: &model.Players{Min: 3, Max: 4}, Playtime: intPtr(90), Age: intPtr(12),
	}
	d := Detail(g, false)
	if want := []string{"★ 4.0", "3–4 players", "90 min", "12+"}; !reflect.DeepEqual(d.Meta, want) {
		t.Errorf("Meta = %v, want %v", d.Meta, want)
	}
	if !d.HasRules || d.Availability != "On loan" {
		t.Errorf("HasRules = %v, Availability = %q", d.HasRules, d.Availability)
	}

	bare := Detail(model.Game{Available: true}, false)
	if len(bare.Meta) != 0 || bare.HasRules || bare.Availability != "Available" {
		t.Errorf("Detail() for bare game = %+v", bare)
	}
}

func TestReceipt(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	s := booking.New(now)
	if len(Receipt(s)) != 0 {
		t.Fatalf("Receipt() of empty state = %v", Receipt(s))
	}

	cafe, _ := booking.CafeByID("odense")
	s.Cafe = &cafe
	s.Guests = 3
	s.Date = "2025-04-05"
	s.Time = "19:00"

	want := []Line{
		{"Café", "Odense, Kongensgade 11, 5000"},
		{"Guests", "3"},
		{"Date", "Saturday 5 April 2025"},
		{"Time", "19:00"},
	}
	if got := Receipt(s); !reflect.DeepEqual(got, want) {
		t.Errorf("Receipt() = %v, want %v", got, want)
	}
}

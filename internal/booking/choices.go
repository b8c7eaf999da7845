package booking

import (
	"fmt"

	"spilcafe/internal/model"
)

// Party size limits.
const (
	MinGuests = 2
	MaxGuests = 8
)

var cafes = []model.Cafe{
	{
		ID:      "aarhus-v",
		Name:    "Aarhus V",
		Address: "Vesterbrogade 36, 8000",
		Image:   "https://images.unsplash.com/photo-1517701604599-bb29b565090c?q=80&w=800&auto=format&fit=crop",
	},
	{
		ID:      "aarhus-c",
		Name:    "Aarhus C",
		Address: "Søndergade 98, 8000",
		Image:   "https://images.unsplash.com/photo-1481833761820-0509d3217039?q=80&w=800&auto=format&fit=crop",
	},
	{
		ID:      "aalborg",
		Name:    "Aalborg",
		Address: "Nytorv 21, 9000",
		Image:   "https://images.unsplash.com/photo-1504674900247-0877df9cc836?q=80&w=800&auto=format&fit=crop",
	},
	{
		ID:      "odense",
		Name:    "Odense",
		Address: "Kongensgade 11, 5000",
		Image:   "https://images.unsplash.com/photo-1498654200943-1088dd4438ae?q=80&w=800&auto=format&fit=crop",
	},
}

// Cafes returns the cafés that take reservations, in display order.
func Cafes() []model.Cafe {
	out := make([]model.Cafe, len(cafes))
	copy(out, cafes)
	return out
}

// CafeByID looks up a café.
func CafeByID(id string) (model.Cafe, bool) {
	for _, c := range cafes {
		if c.ID == id {
			return c, true
		}
	}
	return model.Cafe{}, false
}

// GuestCounts returns every allowed party size.
func GuestCounts() []int {
	out := make([]int, 0, MaxGuests-MinGuests+1)
	for n := MinGuests; n <= MaxGuests; n++ {
		out = append(out, n)
	}
	return out
}

// Slot is a half-hour starting time.
type Slot struct {
	Time string
	Busy bool
}

// busy marks the slots that are already taken. Availability is the same
// for every café and day.
var busy = map[string]bool{
	"11:30": true,
	"14:00": true,
	"16:30": true,
	"18:00": true,
	"19:30": true,
	"20:30": true,
}

// Slots returns the half-hour slots from 11:00 to 22:30.
func Slots() []Slot {
	out := make([]Slot, 0, 24)
	for h := 11; h <= 22; h++ {
		for _, m := range []int{0, 30} {
			t := fmt.Sprintf("%02d:%02d", h, m)
			out = append(out, Slot{Time: t, Busy: busy[t]})
		}
	}
	return out
}

// SlotAt finds the slot starting at t.
func SlotAt(t string) (Slot, bool) {
	for _, s := range Slots() {
		if s.Time == t {
			return s, true
		}
	}
	return Slot{}, false
}

var types = []string{
	"We play for 1 hour",
	"We play for 2 hours",
	"We play for 3 hours",
}

// Types returns the booking type labels.
func Types() []string {
	out := make([]string, len(types))
	copy(out, types)
	return out
}

func isType(label string) bool {
	for _, t := range types {
		if t == label {
			return true
		}
	}
	return false
}

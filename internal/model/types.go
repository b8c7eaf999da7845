package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Game represents one board game in the café catalog.
type Game struct {
	ID          string
	Title       string
	Description string
	Rules       string
	Genre       string
	Language    string
	Difficulty  string
	Rating      *float64 // nil when unknown
	Playtime    *int     // minutes
	Age         *int     // minimum age
	Players     *Players
	Available   bool
	Image       string
	Shelf       string
}

// Players is the supported player count range of a game.
type Players struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Cafe is one of the café locations a table can be reserved at.
type Cafe struct {
	ID      string
	Name    string
	Address string
	Image   string
}

// gameJSON mirrors the catalog wire format. Every field is kept raw so a
// record with an odd value still decodes.
type gameJSON struct {
	ID          json.RawMessage `json:"id"`
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Rules       json.RawMessage `json:"rules"`
	Genre       json.RawMessage `json:"genre"`
	Language    json.RawMessage `json:"language"`
	Difficulty  json.RawMessage `json:"difficulty"`
	Rating      json.RawMessage `json:"rating"`
	Playtime    json.RawMessage `json:"playtime"`
	Age         json.RawMessage `json:"age"`
	Players     json.RawMessage `json:"players"`
	Available   json.RawMessage `json:"available"`
	Image       json.RawMessage `json:"image"`
	Shelf       json.RawMessage `json:"shelf"`
}

type playersJSON struct {
	Min json.RawMessage `json:"min"`
	Max json.RawMessage `json:"max"`
}

// UnmarshalJSON decodes a catalog record. Malformed optional fields decode
// to unknown instead of failing the whole catalog.
func (g *Game) UnmarshalJSON(data []byte) error {
	var raw gameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*g = Game{
		ID:          rawID(raw.ID),
		Title:       rawString(raw.Title),
		Description: rawString(raw.Description),
		Rules:       rawString(raw.Rules),
		Genre:       rawString(raw.Genre),
		Language:    rawString(raw.Language),
		Difficulty:  rawString(raw.Difficulty),
		Rating:      rawFloat(raw.Rating),
		Playtime:    rawInt(raw.Playtime),
		Age:         rawInt(raw.Age),
		Available:   rawBool(raw.Available),
		Image:       rawString(raw.Image),
		Shelf:       rawString(raw.Shelf),
	}

	var players playersJSON
	if err := json.Unmarshal(raw.Players, &players); err == nil {
		lo, hi := rawInt(players.Min), rawInt(players.Max)
		if lo != nil && hi != nil {
			g.Players = &Players{Min: *lo, Max: *hi}
		}
	}

	return nil
}

func rawID(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String()
	}
	return strings.TrimSpace(string(data))
}

// rawString returns strings as is and numbers or booleans in their JSON form.
// Anything else is unknown.
func rawString(data json.RawMessage) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func rawFloat(data json.RawMessage) *float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f = parsed
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func rawInt(data json.RawMessage) *int {
	f := rawFloat(data)
	if f == nil {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

func rawBool(data json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, _ := strconv.ParseBool(strings.TrimSpace(s))
		return v
	}
	return false
}

package model

import "image"

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// CatalogLoadedMsg is sent when the game catalog has been fetched.
type CatalogLoadedMsg struct {
	Games []Game
}

// CatalogFailedMsg is sent when the catalog could not be fetched or decoded.
// The session stays without a catalog; there is no retry.
type CatalogFailedMsg struct {
	Err error
}

// CoverLoadedMsg is sent when a game's cover image has been downloaded.
type CoverLoadedMsg struct {
	GameID string
	Image  image.Image
	Err    error
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenGames Screen = iota
	ScreenFavorites
	ScreenGameDetail
	ScreenFilters
	ScreenBooking
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)

package ui

import (
	"image"
	"os"
	"strings"

	"github.com/qeesung/image2ascii/convert"
)

// TerminalCapabilities describes how cover art can be drawn.
type TerminalCapabilities struct {
	Color bool
}

// DetectTerminalCapabilities inspects the environment.
func DetectTerminalCapabilities() TerminalCapabilities {
	term := os.Getenv("TERM")
	noColor := os.Getenv("NO_COLOR") != "" || term == "dumb"
	return TerminalCapabilities{Color: !noColor}
}

// RenderCover draws a game cover as ASCII art in a box of width x height
// cells. Callers pass a height of about half the width since terminal cells
// are twice as tall as they are wide.
func RenderCover(img image.Image, caps TerminalCapabilities, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}

	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = width
	opts.FixedHeight = height
	opts.Colored = caps.Color
	opts.FitScreen = false

	return strings.TrimRight(converter.Image2ASCIIString(img, &opts), "\n")
}

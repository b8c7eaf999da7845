package ui

import (
	"strings"

	"spilcafe/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch screen {
	case model.ScreenGames, model.ScreenFavorites:
		return renderGamesHelp(width)
	case model.ScreenGameDetail:
		return renderGameDetailHelp(width)
	case model.ScreenFilters:
		return renderFiltersHelp(width)
	case model.ScreenBooking:
		if mode == model.ModeInsert {
			return renderContactHelp(width)
		}
		return renderBookingHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderGamesHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "details"),
		helpKey("f", "favorite"),
		helpKey("/", "search"),
		helpKey("F", "filters"),
		helpKey("s", "sort"),
		helpKey("n/N", "filter value"),
		helpKey("1/2/r", "tabs"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderGameDetailHelp(width int) string {
	keys := []string{
		helpKey("h/esc", "back"),
		helpKey("f", "favorite"),
		helpKey("r", "reserve a table"),
		helpKey("u", "undo"),
	}
	return renderHelpLine(keys, width)
}

func renderFiltersHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("←/→", "change"),
		helpKey("enter", "apply"),
		helpKey("ctrl+x", "reset"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderBookingHelp(width int) string {
	keys := []string{
		helpKey("hjkl", "move"),
		helpKey("enter", "choose"),
		helpKey("[/]", "month"),
		helpKey("2-8", "guests"),
		helpKey("esc", "close"),
	}
	return renderHelpLine(keys, width)
}

func renderContactHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("ctrl+s", "confirm"),
		helpKey("esc", "close"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "back/select"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"h / b / esc", "Go back"},
			{"l / enter", "Open game"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"1 / 2 / r", "All games / favorites / reserve"},
			{"← / →", "Previous / next tab"},
			{"u / ctrl+r", "Undo / redo favorite"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Games"),
		helpSection([]helpItem{
			{"f", "Toggle favorite"},
			{"/", "Search"},
			{"F", "All filters"},
			{"x", "Clear all filters"},
			{"s", "Cycle sort: none, title, playtime, rating"},
			{"tab / shift+tab", "Cycle active column"},
			{"# then 1-9", "Jump to column"},
			{"c / C", "Hide active column / show all"},
			{"n / N", "Filter by selected value / clear"},
		}),
		titleSection("Reserve"),
		helpSection([]helpItem{
			{"j / k / h / l", "Move between choices"},
			{"enter", "Choose and continue"},
			{"2-8", "Pick number of guests"},
			{"[ / ]", "Previous / next month"},
			{"ctrl+s", "Confirm reservation"},
			{"esc", "Close, keeping your choices"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab", "Next field"},
			{"shift+tab", "Previous field"},
			{"← / → / space", "Change choice"},
			{"enter / ctrl+s", "Apply"},
			{"ctrl+x", "Reset"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}

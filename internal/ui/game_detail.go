package ui

import (
	"strings"

	"spilcafe/internal/model"
	"spilcafe/internal/view"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GameDetailModel represents the game detail screen.
type GameDetailModel struct {
	game     model.Game
	favorite bool
	caps     TerminalCapabilities

	cover        string
	coverErr     string
	coverLoading bool
	spinner      spinner.Model
}

// NewGameDetailModel creates a detail model. The cover is fetched separately.
func NewGameDetailModel(g model.Game, favorite bool, caps TerminalCapabilities) *GameDetailModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &GameDetailModel{
		game:         g,
		favorite:     favorite,
		caps:         caps,
		coverLoading: g.Image != "",
		spinner:      sp,
	}
}

// Init starts the cover spinner.
func (m *GameDetailModel) Init() tea.Cmd {
	if !m.coverLoading {
		return nil
	}
	return m.spinner.Tick
}

// UpdateSpinner advances the cover spinner while the cover is loading.
func (m *GameDetailModel) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !m.coverLoading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// SetFavorite updates the favorite marker.
func (m *GameDetailModel) SetFavorite(fav bool) {
	m.favorite = fav
}

// SetCover stores the rendered cover, or the reason there is none.
func (m *GameDetailModel) SetCover(msg model.CoverLoadedMsg) {
	if msg.GameID != m.game.ID {
		return
	}
	m.coverLoading = false
	if msg.Err != nil {
		m.coverErr = "No cover available"
		return
	}
	m.cover = RenderCover(msg.Image, m.caps, 36, 18)
}

// View renders the game detail.
func (m *GameDetailModel) View(width, height int) string {
	d := view.Detail(m.game, m.favorite)

	shortcuts := HelpDescStyle.Render("f favorite  r reserve  h back")

	title := LabelStyle.Render(d.Title)
	if d.Favorite {
		title += " " + FavoriteStyle.Render("♥")
	}

	var fields []string
	fields = append(fields, title)
	if len(d.Meta) > 0 {
		fields = append(fields, RatingStyle.Render(strings.Join(d.Meta, "  ·  ")))
	}
	fields = append(fields, "")
	fields = append(fields, renderField("Genre", d.Genre))
	fields = append(fields, renderField("Language", d.Language))
	fields = append(fields, renderField("Difficulty", d.Difficulty))
	fields = append(fields, renderField("Shelf", d.Shelf))

	availability := lipgloss.NewStyle().Foreground(ColorRed).Render(d.Availability)
	if d.Available {
		availability = BadgeStyle.Render(d.Availability)
	}
	fields = append(fields, LabelStyle.Render("Status:")+" "+availability)

	info := strings.Join(fields, "\n")
	if art := m.coverView(); art != "" {
		info = lipgloss.JoinHorizontal(lipgloss.Top, art, "   ", info)
	}

	textWidth := max(20, width-12)
	sections := []string{info}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(0, width-8)))
	sections = append(sections, divider)

	if d.Description != "" {
		sections = append(sections, NormalRowStyle.Width(textWidth).Render(d.Description))
	} else {
		sections = append(sections, HelpDescStyle.Render("No description"))
	}

	if d.HasRules {
		sections = append(sections, LabelStyle.Render("Rules:"))
		sections = append(sections, NormalRowStyle.Width(textWidth).Render(d.Rules))
	}

	content := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func (m *GameDetailModel) coverView() string {
	switch {
	case m.cover != "":
		return m.cover
	case m.coverLoading:
		return HelpDescStyle.Render(m.spinner.View() + " loading cover")
	case m.coverErr != "":
		return HelpDescStyle.Render(m.coverErr)
	}
	return ""
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}

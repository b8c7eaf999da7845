package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spilcafe/internal/booking"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type OnboardingSettings struct {
	Completed bool   `json:"completed"`
	HomeCafe  string `json:"home_cafe,omitempty"`
}

func onboardingPath(configDir string) string {
	return filepath.Join(configDir, "onboarding.json")
}

func loadOnboardingSettings(configDir string) (OnboardingSettings, error) {
	path := onboardingPath(configDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return OnboardingSettings{}, nil
		}
		return OnboardingSettings{}, err
	}

	var settings OnboardingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return OnboardingSettings{}, err
	}
	if _, ok := booking.CafeByID(settings.HomeCafe); !ok {
		settings.HomeCafe = ""
	}
	return settings, nil
}

func saveOnboardingSettings(configDir string, settings OnboardingSettings) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(onboardingPath(configDir), data, 0644)
}

func shouldRunOnboarding(settings OnboardingSettings) bool {
	if settings.Completed {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepCafe onboardingStep = iota
	stepDone
)

type cafeOption struct {
	id    string
	label string
}

type onboardingModel struct {
	step     onboardingStep
	options  []cafeOption
	cursor   int
	settings OnboardingSettings
	status   string
	width    int
	height   int
}

var (
	obColorMuted  = lipgloss.Color("#8C7F70")
	obColorText   = lipgloss.Color("#E8DFD3")
	obColorAccent = lipgloss.Color("#D4A373")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabsStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obTabInactive = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 2)

	obTabActive = lipgloss.NewStyle().
			Foreground(obColorText).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obOptionStyle = lipgloss.NewStyle().
			Foreground(obColorText)

	obOptionSelected = lipgloss.NewStyle().
				Foreground(obColorAccent).
				Bold(true)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingModel() onboardingModel {
	var options []cafeOption
	for _, c := range booking.Cafes() {
		options = append(options, cafeOption{id: c.ID, label: c.Name + "  " + c.Address})
	}
	options = append(options, cafeOption{label: "No preference"})

	return onboardingModel{
		step:     stepCafe,
		options:  options,
		settings: OnboardingSettings{Completed: true},
	}
}

func (m onboardingModel) Init() tea.Cmd { return nil }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.step != stepCafe {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
			return m, nil
		case "down", "j":
			m.cursor = min(m.cursor+1, len(m.options)-1)
			return m, nil
		case "enter":
			opt := m.options[m.cursor]
			m.settings.HomeCafe = opt.id
			m.status = "No home café. You pick one each time you reserve."
			if opt.id != "" {
				m.status = "Home café set to " + opt.label + "."
			}
			m.step = stepDone
			return m, tea.Quit
		case "esc", "ctrl+c", "q":
			m.settings.HomeCafe = ""
			m.status = "Setup skipped."
			m.step = stepDone
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 28
	}

	header := m.renderHeader(width)
	tabs := m.renderTabs(width)
	footer := m.renderFooter(width)

	contentHeight := max(height-6, 8)
	content := m.renderContent(width, contentHeight)
	ui := lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(ui)
}

func (m onboardingModel) renderHeader(width int) string {
	left := "  " + obTitleStyle.Render("spilcafe") + " " + obMutedStyle.Render("› Setup")
	right := obMutedStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return obHeaderStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m onboardingModel) renderTabs(width int) string {
	cafeTab := obTabInactive.Render("Home café")
	doneTab := obTabInactive.Render("Done")
	if m.step == stepCafe {
		cafeTab = obTabActive.Render("Home café")
	} else {
		doneTab = obTabActive.Render("Done")
	}
	return obTabsStyle.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, "  ", cafeTab, doneTab))
}

func (m onboardingModel) renderFooter(width int) string {
	if m.step == stepCafe {
		return obFooterStyle.Width(width).Render("↑↓/jk to navigate  enter to confirm  esc skip")
	}
	return obFooterStyle.Width(width).Render("Setup complete")
}

func (m onboardingModel) renderContent(width, height int) string {
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	var body string
	switch m.step {
	case stepCafe:
		lines := []string{
			obLabelStyle.Render("Which café do you usually visit?"),
			"",
		}
		for i, opt := range m.options {
			if i == m.cursor {
				lines = append(lines, "  "+obOptionSelected.Render("→ "+opt.label))
				continue
			}
			lines = append(lines, "    "+obOptionStyle.Render(opt.label))
		}
		lines = append(lines,
			"",
			obMutedStyle.Render("It is preselected when you reserve a table."),
			obMutedStyle.Render("You can change this later in ~/.spilcafe/onboarding.json"),
		)
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	default:
		body = lipgloss.JoinVertical(
			lipgloss.Left,
			obLabelStyle.Render("Onboarding Complete"),
			"",
			obMutedStyle.Render(m.status),
		)
	}

	card := obPanelStyle.Width(cardWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, card)
}

func runOnboarding(configDir string) (OnboardingSettings, error) {
	model := newOnboardingModel()
	prog := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return OnboardingSettings{}, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return OnboardingSettings{}, fmt.Errorf("unexpected onboarding model type")
	}
	if err := saveOnboardingSettings(configDir, m.settings); err != nil {
		return OnboardingSettings{}, err
	}
	return m.settings, nil
}

package ui

import (
	"strconv"
	"strings"

	"spilcafe/internal/filter"
	"spilcafe/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldToggle
)

type formField struct {
	label   string
	kind    fieldKind
	input   textinput.Model
	choices []string
	choice  int
	on      bool
}

// Field positions in the filters form.
const (
	ffQuery = iota
	ffGenre
	ffLanguage
	ffDifficulty
	ffRatingFrom
	ffRatingTo
	ffPlayFrom
	ffPlayTo
	ffAge
	ffPlayers
	ffDuration
	ffAvailable
	ffSort
	ffCount
)

// filtersAppliedMsg carries the criteria built from the form.
type filtersAppliedMsg struct {
	criteria filter.Criteria
}

// FiltersFormModel edits every filter value at once.
type FiltersFormModel struct {
	fields  []formField
	focused int
	keys    FormKeyMap
}

// NewFiltersFormModel creates a form showing c. Categorical choices come from
// the catalog facets.
func NewFiltersFormModel(c filter.Criteria, facets filter.Facets) *FiltersFormModel {
	fields := make([]formField, ffCount)

	fields[ffQuery] = textField("Search", "title, description or rules", 80)
	fields[ffGenre] = choiceField("Genre", withAll(facets.Genres))
	fields[ffLanguage] = choiceField("Language", withAll(facets.Languages))
	fields[ffDifficulty] = choiceField("Difficulty", withAll(facets.Difficulties))

	ratingLo, ratingHi := "from", "to"
	if facets.RatingMin != nil {
		ratingLo = strconv.FormatFloat(*facets.RatingMin, 'f', 1, 64)
	}
	if facets.RatingMax != nil {
		ratingHi = strconv.FormatFloat(*facets.RatingMax, 'f', 1, 64)
	}
	fields[ffRatingFrom] = textField("Rating from", ratingLo, 5)
	fields[ffRatingTo] = textField("Rating to", ratingHi, 5)
	fields[ffPlayFrom] = textField("Playtime from", "minutes", 5)
	fields[ffPlayTo] = textField("Playtime to", "minutes", 5)

	fields[ffAge] = choiceField("Age", filter.AgePills)
	fields[ffPlayers] = choiceField("Players", filter.PlayersPills)
	fields[ffDuration] = choiceField("Duration", filter.DurationPills)
	fields[ffAvailable] = formField{label: "Available only", kind: fieldToggle}

	sorts := make([]string, len(filter.SortKeys))
	for i, k := range filter.SortKeys {
		sorts[i] = string(k)
	}
	fields[ffSort] = choiceField("Sort", sorts)

	m := &FiltersFormModel{fields: fields, keys: DefaultFormKeyMap()}
	m.load(c)
	m.fields[ffQuery].input.Focus()
	return m
}

func textField(label, placeholder string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	return formField{label: label, kind: fieldText, input: in}
}

func choiceField(label string, choices []string) formField {
	return formField{label: label, kind: fieldChoice, choices: choices}
}

func withAll(values []string) []string {
	return append([]string{filter.All}, values...)
}

func (m *FiltersFormModel) load(c filter.Criteria) {
	m.fields[ffQuery].input.SetValue(c.Query)
	m.selectChoice(ffGenre, c.Genre)
	m.selectChoice(ffLanguage, c.Language)
	m.selectChoice(ffDifficulty, c.Difficulty)

	m.fields[ffRatingFrom].input.SetValue(formatFloatPtr(c.Rating.From))
	m.fields[ffRatingTo].input.SetValue(formatFloatPtr(c.Rating.To))
	m.fields[ffPlayFrom].input.SetValue(formatIntPtr(c.Playtime.From))
	m.fields[ffPlayTo].input.SetValue(formatIntPtr(c.Playtime.To))

	m.selectChoice(ffAge, formatIntPtr(c.MinAge))
	if c.Players != nil {
		m.selectChoice(ffPlayers, c.Players.String())
	} else {
		m.fields[ffPlayers].choice = 0
	}
	if c.Duration != nil {
		m.selectChoice(ffDuration, c.Duration.String())
	} else {
		m.fields[ffDuration].choice = 0
	}

	m.fields[ffAvailable].on = c.AvailableOnly
	m.selectChoice(ffSort, string(c.Sort))
}

// selectChoice picks value, falling back to the first choice ("all" or
// "none") when value is not offered.
func (m *FiltersFormModel) selectChoice(idx int, value string) {
	f := &m.fields[idx]
	f.choice = 0
	for i, c := range f.choices {
		if c == value {
			f.choice = i
			return
		}
	}
}

// Criteria builds criteria from the current field values. Numbers that do not
// parse are treated as unset.
func (m *FiltersFormModel) Criteria() filter.Criteria {
	c := filter.Default()
	c.Query = strings.TrimSpace(m.fields[ffQuery].input.Value())
	c.Genre = m.choiceValue(ffGenre)
	c.Language = m.choiceValue(ffLanguage)
	c.Difficulty = m.choiceValue(ffDifficulty)
	c.Rating = filter.Bound[float64]{
		From: parseFloatField(m.fields[ffRatingFrom].input.Value()),
		To:   parseFloatField(m.fields[ffRatingTo].input.Value()),
	}
	c.Playtime = filter.Bound[int]{
		From: parseIntField(m.fields[ffPlayFrom].input.Value()),
		To:   parseIntField(m.fields[ffPlayTo].input.Value()),
	}
	c.MinAge = filter.ParseAge(m.choiceValue(ffAge))
	c.Players, _ = filter.ParseSpan(m.choiceValue(ffPlayers))
	c.Duration, _ = filter.ParseSpan(m.choiceValue(ffDuration))
	c.AvailableOnly = m.fields[ffAvailable].on
	c.Sort = filter.SortKey(m.choiceValue(ffSort))
	return c
}

func (m *FiltersFormModel) choiceValue(idx int) string {
	f := m.fields[idx]
	if len(f.choices) == 0 {
		return filter.All
	}
	return f.choices[f.choice]
}

// Update handles all messages.
func (m FiltersFormModel) Update(msg tea.Msg) (FiltersFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, func() tea.Msg { return model.FormCancelledMsg{} }
	case key.Matches(keyMsg, m.keys.Save), keyMsg.String() == "enter":
		criteria := m.Criteria()
		return m, func() tea.Msg { return filtersAppliedMsg{criteria: criteria} }
	case key.Matches(keyMsg, m.keys.Reset):
		m.load(filter.Default())
		return m, nil
	case key.Matches(keyMsg, m.keys.NextField), keyMsg.String() == "down":
		m.focus((m.focused + 1) % len(m.fields))
		return m, nil
	case key.Matches(keyMsg, m.keys.PrevField), keyMsg.String() == "up":
		m.focus((m.focused - 1 + len(m.fields)) % len(m.fields))
		return m, nil
	}

	f := &m.fields[m.focused]
	switch f.kind {
	case fieldChoice:
		switch {
		case key.Matches(keyMsg, m.keys.Next):
			f.choice = (f.choice + 1) % len(f.choices)
		case key.Matches(keyMsg, m.keys.Prev):
			f.choice = (f.choice - 1 + len(f.choices)) % len(f.choices)
		}
		return m, nil
	case fieldToggle:
		if key.Matches(keyMsg, m.keys.Next, m.keys.Prev) {
			f.on = !f.on
		}
		return m, nil
	}
	return m.updateInput(msg)
}

func (m FiltersFormModel) updateInput(msg tea.Msg) (FiltersFormModel, tea.Cmd) {
	f := &m.fields[m.focused]
	if f.kind != fieldText {
		return m, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}

func (m *FiltersFormModel) focus(idx int) {
	if m.fields[m.focused].kind == fieldText {
		m.fields[m.focused].input.Blur()
	}
	m.focused = idx
	if m.fields[idx].kind == fieldText {
		m.fields[idx].input.Focus()
	}
}

// View renders the form.
func (m *FiltersFormModel) View(width, height int) string {
	labelWidth := 16
	var rows []string
	for i, f := range m.fields {
		focused := i == m.focused
		marker := "  "
		label := HelpDescStyle.Width(labelWidth).Render(f.label)
		if focused {
			marker = LabelStyle.Render("› ")
			label = LabelStyle.Width(labelWidth).Render(f.label)
		}

		var value string
		switch f.kind {
		case fieldText:
			value = f.input.View()
		case fieldChoice:
			value = renderChoices(f.choices, f.choice, focused)
		case fieldToggle:
			value = "[ ]"
			if f.on {
				value = "[x]"
			}
			if focused {
				value = LabelStyle.Render(value)
			}
		}
		rows = append(rows, marker+label+value)
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render("Filters"),
		"",
		strings.Join(rows, "\n"),
		"",
		HelpDescStyle.Render("enter/ctrl+s apply  ·  ctrl+x reset  ·  esc cancel"),
	)
	return PanelStyle.Width(min(width-4, 100)).Render(body)
}

func renderChoices(choices []string, selected int, focused bool) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		switch {
		case i == selected && focused:
			parts[i] = ChipSelectedStyle.Render(c)
		case i == selected:
			parts[i] = LabelStyle.Render(c)
		default:
			parts[i] = HelpDescStyle.Render(c)
		}
	}
	return strings.Join(parts, " ")
}

func parseFloatField(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntField(s string) *int {
	v := parseFloatField(s)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

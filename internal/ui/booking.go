package ui

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"spilcafe/internal/booking"
	"spilcafe/internal/view"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const slotColumns = 4

const (
	contactName = iota
	contactPhone
	contactEmail
	contactNote
	contactCount
)

// bookingClosedMsg is sent when the guest leaves the wizard. finished is set
// after the receipt has been acknowledged.
type bookingClosedMsg struct {
	finished bool
}

// BookingModel drives booking.State from key presses. The state machine does
// all validation; this model only tracks cursors and text inputs.
type BookingModel struct {
	state    booking.State
	now      func() time.Time
	homeCafe string

	cafeCursor  int
	guestCursor int
	day         int
	slotCursor  int
	typeCursor  int

	inputs  []textinput.Model
	note    textarea.Model
	focused int

	err  string
	keys KeyMap
	form FormKeyMap
}

// NewBookingModel creates a wizard. homeCafe preselects a café on the first
// step when set.
func NewBookingModel(homeCafe string, now func() time.Time) *BookingModel {
	if now == nil {
		now = time.Now
	}

	inputs := make([]textinput.Model, contactNote)
	placeholders := []string{"Your name", "Phone number", "you@example.com"}
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 80
		in.Prompt = ""
		inputs[i] = in
	}

	note := textarea.New()
	note.Placeholder = "Anything we should know?"
	note.ShowLineNumbers = false
	note.CharLimit = 500
	note.SetHeight(3)
	note.SetWidth(40)

	return &BookingModel{
		state:    booking.New(now()),
		now:      now,
		homeCafe: homeCafe,
		inputs:   inputs,
		note:     note,
		keys:     DefaultKeyMap(),
		form:     DefaultFormKeyMap(),
	}
}

// State returns the current reservation state.
func (m *BookingModel) State() booking.State {
	return m.state
}

// Open starts the wizard from the first step, keeping earlier choices.
func (m *BookingModel) Open() {
	m.state = booking.Open(m.state)
	m.err = ""
	m.cafeCursor = 0
	selected := m.homeCafe
	if m.state.Cafe != nil {
		selected = m.state.Cafe.ID
	}
	for i, c := range booking.Cafes() {
		if c.ID == selected {
			m.cafeCursor = i
		}
	}
}

// Insert reports whether the current step takes free text.
func (m *BookingModel) Insert() bool {
	return m.state.Step == booking.StepConfirm
}

func (m *BookingModel) apply(ev booking.Event) bool {
	next, err := booking.Apply(m.state, ev, m.now())
	if err != nil {
		m.err = errorText(err)
		return false
	}
	prev := m.state.Step
	m.state = next
	m.err = ""
	if next.Step != prev {
		m.enter(next.Step)
	}
	return true
}

// enter places cursors on the previous choice, or a sensible default.
func (m *BookingModel) enter(step booking.Step) {
	switch step {
	case booking.StepGuests:
		m.guestCursor = 0
		if m.state.Guests > 0 {
			m.guestCursor = m.state.Guests - booking.MinGuests
		}
	case booking.StepDate:
		m.day = m.firstPickableDay()
	case booking.StepTime:
		m.slotCursor = 0
		for i, s := range booking.Slots() {
			if s.Time == m.state.Time {
				m.slotCursor = i
			}
		}
	case booking.StepType:
		m.typeCursor = 0
		for i, t := range booking.Types() {
			if t == m.state.Type {
				m.typeCursor = i
			}
		}
	case booking.StepConfirm:
		m.inputs[contactName].SetValue(m.state.Name)
		m.inputs[contactPhone].SetValue(m.state.Phone)
		m.inputs[contactEmail].SetValue(m.state.Email)
		m.note.SetValue(m.state.Note)
		m.focusContact(contactName)
	}
}

func (m *BookingModel) firstPickableDay() int {
	for _, w := range booking.Calendar(m.state.Month, m.now()) {
		for _, d := range w {
			if d.Day > 0 && !d.Past {
				return d.Day
			}
		}
	}
	return 1
}

func errorText(err error) string {
	s := err.Error()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Update handles all messages.
func (m BookingModel) Update(msg tea.Msg) (BookingModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.Insert() {
			return m.updateContact(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "esc" {
		return m, func() tea.Msg { return bookingClosedMsg{} }
	}

	switch m.state.Step {
	case booking.StepCafe:
		m.updateCafe(keyMsg)
	case booking.StepGuests:
		m.updateGuests(keyMsg)
	case booking.StepDate:
		m.updateDate(keyMsg)
	case booking.StepTime:
		m.updateTime(keyMsg)
	case booking.StepType:
		m.updateType(keyMsg)
	case booking.StepConfirm:
		return m.updateContact(msg)
	case booking.StepDone:
		if key.Matches(keyMsg, m.keys.Select) && m.apply(booking.Finish{}) {
			return m, func() tea.Msg { return bookingClosedMsg{finished: true} }
		}
	}
	return m, nil
}

func (m *BookingModel) updateCafe(msg tea.KeyMsg) {
	cafes := booking.Cafes()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.cafeCursor = min(m.cafeCursor+1, len(cafes)-1)
	case key.Matches(msg, m.keys.Up):
		m.cafeCursor = max(m.cafeCursor-1, 0)
	case key.Matches(msg, m.keys.Select):
		m.apply(booking.PickCafe{ID: cafes[m.cafeCursor].ID})
	}
}

func (m *BookingModel) updateGuests(msg tea.KeyMsg) {
	counts := booking.GuestCounts()
	if n, err := strconv.Atoi(msg.String()); err == nil {
		m.apply(booking.PickGuests{N: n})
		return
	}
	switch {
	case key.Matches(msg, m.keys.Right, m.keys.Down):
		m.guestCursor = min(m.guestCursor+1, len(counts)-1)
	case key.Matches(msg, m.keys.Left, m.keys.Up):
		m.guestCursor = max(m.guestCursor-1, 0)
	case key.Matches(msg, m.keys.Select):
		m.apply(booking.PickGuests{N: counts[m.guestCursor]})
	}
}

func (m *BookingModel) updateDate(msg tea.KeyMsg) {
	days := m.state.Month.Days()
	switch {
	case msg.String() == "]":
		m.apply(booking.ShiftMonth{Delta: 1})
		m.day = min(m.day, m.state.Month.Days())
	case msg.String() == "[":
		m.apply(booking.ShiftMonth{Delta: -1})
		m.day = min(m.day, m.state.Month.Days())
	case key.Matches(msg, m.keys.Right):
		m.day = min(m.day+1, days)
	case key.Matches(msg, m.keys.Left):
		m.day = max(m.day-1, 1)
	case key.Matches(msg, m.keys.Down):
		m.day = min(m.day+7, days)
	case key.Matches(msg, m.keys.Up):
		m.day = max(m.day-7, 1)
	case key.Matches(msg, m.keys.Select):
		m.apply(booking.PickDay{Day: m.day})
	}
}

func (m *BookingModel) updateTime(msg tea.KeyMsg) {
	slots := booking.Slots()
	switch {
	case key.Matches(msg, m.keys.Right):
		m.slotCursor = min(m.slotCursor+1, len(slots)-1)
	case key.Matches(msg, m.keys.Left):
		m.slotCursor = max(m.slotCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		if m.slotCursor+slotColumns < len(slots) {
			m.slotCursor += slotColumns
		}
	case key.Matches(msg, m.keys.Up):
		if m.slotCursor-slotColumns >= 0 {
			m.slotCursor -= slotColumns
		}
	case key.Matches(msg, m.keys.Select):
		m.apply(booking.PickTime{Slot: slots[m.slotCursor].Time})
	}
}

func (m *BookingModel) updateType(msg tea.KeyMsg) {
	types := booking.Types()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.typeCursor = min(m.typeCursor+1, len(types)-1)
	case key.Matches(msg, m.keys.Up):
		m.typeCursor = max(m.typeCursor-1, 0)
	case key.Matches(msg, m.keys.Select):
		m.apply(booking.PickType{Label: types[m.typeCursor]})
	}
}

func (m BookingModel) updateContact(msg tea.Msg) (BookingModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.form.Save):
			m.submit()
			return m, nil
		case key.Matches(keyMsg, m.form.NextField):
			m.focusContact((m.focused + 1) % contactCount)
			return m, nil
		case key.Matches(keyMsg, m.form.PrevField):
			m.focusContact((m.focused - 1 + contactCount) % contactCount)
			return m, nil
		case keyMsg.String() == "enter" && m.focused < contactNote:
			if m.focused == contactEmail {
				m.submit()
			} else {
				m.focusContact(m.focused + 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focused == contactNote {
		m.note, cmd = m.note.Update(msg)
	} else {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}
	return m, cmd
}

func (m *BookingModel) submit() {
	if m.apply(booking.Submit{
		Contact: booking.Contact{
			Name:  m.inputs[contactName].Value(),
			Phone: m.inputs[contactPhone].Value(),
			Email: m.inputs[contactEmail].Value(),
			Note:  m.note.Value(),
		},
		Reference: booking.NewReference(),
	}) && m.state.Complete() {
		log.Printf("booking %s: %s, %d guests, %s %s", m.state.Reference, m.state.Cafe.ID, m.state.Guests, m.state.Date, m.state.Time)
	}
}

func (m *BookingModel) focusContact(idx int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.note.Blur()
	m.focused = idx
	if idx == contactNote {
		m.note.Focus()
		return
	}
	m.inputs[idx].Focus()
}

// View renders the wizard.
func (m *BookingModel) View(width, height int) string {
	var body string
	switch m.state.Step {
	case booking.StepCafe:
		body = m.viewCafes()
	case booking.StepGuests:
		body = m.viewGuests()
	case booking.StepDate:
		body = m.viewCalendar()
	case booking.StepTime:
		body = m.viewSlots()
	case booking.StepType:
		body = m.viewTypes()
	case booking.StepConfirm:
		body = m.viewContact()
	case booking.StepDone:
		return PanelStyle.Width(min(width-4, 72)).Render(m.viewReceipt())
	}

	title := LabelStyle.Render(m.state.Step.String())
	sections := []string{m.viewSteps(), "", title, "", body}
	if m.err != "" {
		sections = append(sections, "", ErrorStyle.Render("✗ "+m.err))
	}

	main := strings.Join(sections, "\n")
	if summary := m.viewSummary(); summary != "" && width >= 100 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "    ", summary)
	}
	return PanelStyle.Width(width - 4).Render(main)
}

func (m *BookingModel) viewSteps() string {
	var parts []string
	for s := booking.StepCafe; s <= booking.StepConfirm; s++ {
		label := fmt.Sprintf("%d %s", int(s), s)
		switch {
		case s == m.state.Step:
			parts = append(parts, StepActiveStyle.Render(label))
		case s < m.state.Step:
			parts = append(parts, StepDoneStyle.Render(label))
		default:
			parts = append(parts, HelpDescStyle.Render(label))
		}
	}
	return strings.Join(parts, BreadcrumbStyle.Render(" › "))
}

func (m *BookingModel) viewSummary() string {
	lines := view.Receipt(m.state)
	if len(lines) == 0 {
		return ""
	}
	rows := []string{LabelStyle.Render("Your booking")}
	for _, l := range lines {
		rows = append(rows, HelpDescStyle.Render(l.Label+": ")+NormalRowStyle.Render(l.Value))
	}
	return strings.Join(rows, "\n")
}

func (m *BookingModel) viewCafes() string {
	var rows []string
	for i, c := range booking.Cafes() {
		line := fmt.Sprintf("%-10s %s", c.Name, c.Address)
		if c.ID == m.homeCafe {
			line += "  ♥"
		}
		if i == m.cafeCursor {
			rows = append(rows, SelectedRowStyle.Render("› "+line))
			continue
		}
		rows = append(rows, NormalRowStyle.Render("  "+line))
	}
	return strings.Join(rows, "\n")
}

func (m *BookingModel) viewGuests() string {
	var chips []string
	for i, n := range booking.GuestCounts() {
		style := ChipStyle
		if i == m.guestCursor {
			style = ChipSelectedStyle
		}
		chips = append(chips, style.Render(strconv.Itoa(n)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...) + "\n\n" +
		HelpDescStyle.Render("How many are you?")
}

func (m *BookingModel) viewCalendar() string {
	header := HelpDescStyle.Render("[ ") + LabelStyle.Render(m.state.Month.String()) + HelpDescStyle.Render(" ]")
	rows := []string{header, HelpDescStyle.Render(" Mo  Tu  We  Th  Fr  Sa  Su")}
	for _, w := range booking.Calendar(m.state.Month, m.now()) {
		var cells []string
		for _, d := range w {
			if d.Day == 0 {
				cells = append(cells, "    ")
				continue
			}
			cell := fmt.Sprintf(" %2d ", d.Day)
			switch {
			case d.Day == m.day:
				cell = ChipSelectedStyle.Padding(0).Render(cell)
			case d.Past:
				cell = ChipDisabledStyle.Padding(0).Render(cell)
			case d.Today:
				cell = lipgloss.NewStyle().Underline(true).Render(cell)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

func (m *BookingModel) viewSlots() string {
	var rows []string
	var row []string
	for i, s := range booking.Slots() {
		style := ChipStyle
		switch {
		case i == m.slotCursor:
			style = ChipSelectedStyle
		case s.Busy:
			style = ChipDisabledStyle
		}
		row = append(row, style.Render(s.Time))
		if len(row) == slotColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func (m *BookingModel) viewTypes() string {
	var rows []string
	for i, t := range booking.Types() {
		if i == m.typeCursor {
			rows = append(rows, SelectedRowStyle.Render("› "+t))
			continue
		}
		rows = append(rows, NormalRowStyle.Render("  "+t))
	}
	return strings.Join(rows, "\n")
}

func (m *BookingModel) viewContact() string {
	labels := []string{"Name", "Phone", "Email"}
	var fields []string
	for i, in := range m.inputs {
		fields = append(fields, renderFormField(labels[i], in.View(), m.focused == i))
	}
	fields = append(fields, renderFormField("Note", m.note.View(), m.focused == contactNote))
	fields = append(fields, HelpDescStyle.Render("tab next field  ·  ctrl+s confirm  ·  esc close"))
	return strings.Join(fields, "\n")
}

func (m *BookingModel) viewReceipt() string {
	rows := []string{
		SuccessStyle.Render("✓ Your table is booked"),
		"",
	}
	for _, l := range view.Receipt(m.state) {
		rows = append(rows, LabelStyle.Width(12).Render(l.Label)+NormalRowStyle.Render(l.Value))
	}
	rows = append(rows, "", HelpDescStyle.Render("enter done"))
	return strings.Join(rows, "\n")
}

func renderFormField(label, input string, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	return LabelStyle.Render(label) + "\n" + style.Width(44).Render(input)
}

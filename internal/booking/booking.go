// Package booking implements the table reservation wizard as a pure state
// machine: the UI feeds it events and renders whatever state comes back.
package booking

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"spilcafe/internal/model"

	"github.com/google/uuid"
)

// Step is a position in the wizard.
type Step int

const (
	StepCafe Step = iota + 1
	StepGuests
	StepDate
	StepTime
	StepType
	StepConfirm
	StepDone
)

var stepNames = map[Step]string{
	StepCafe:    "Choose café",
	StepGuests:  "Guests",
	StepDate:    "Date",
	StepTime:    "Time",
	StepType:    "Type",
	StepConfirm: "Confirm",
	StepDone:    "Done",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Validation errors. They never change the state; the step is shown again.
var (
	ErrWrongStep       = errors.New("not available at this step")
	ErrUnknownCafe     = errors.New("unknown café")
	ErrGuests          = errors.New("guests must be between 2 and 8")
	ErrNoSuchDay       = errors.New("no such day in this month")
	ErrPastDate        = errors.New("date is in the past")
	ErrUnknownSlot     = errors.New("unknown time slot")
	ErrSlotBusy        = errors.New("time slot is taken")
	ErrUnknownType     = errors.New("unknown booking type")
	ErrContactRequired = errors.New("name, phone and email are required")
	ErrInvalidEmail    = errors.New("email address is not valid")
)

// Contact is what the guest types in at the confirm step.
type Contact struct {
	Name  string
	Phone string
	Email string
	Note  string
}

// State is the partially built reservation.
type State struct {
	Step      Step
	Cafe      *model.Cafe
	Guests    int // 0 until chosen
	Month     Month
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Type      string
	Name      string
	Phone     string
	Email     string
	Note      string
	Reference string
}

// New returns the initial state with the calendar showing now's month.
func New(now time.Time) State {
	return State{
		Step:  StepCafe,
		Month: MonthOf(now),
	}
}

// Open enters the flow. It always starts at the first step; values from an
// abandoned earlier attempt are kept until the flow is finished.
func Open(s State) State {
	s.Step = StepCafe
	return s
}

// Event is one user action fed to Apply.
type Event interface {
	step() Step
}

type (
	// PickCafe chooses a café by id.
	PickCafe struct{ ID string }
	// PickGuests chooses the party size.
	PickGuests struct{ N int }
	// ShiftMonth moves the displayed calendar month; it does not advance.
	ShiftMonth struct{ Delta int }
	// PickDay chooses a day of the displayed month.
	PickDay struct{ Day int }
	// PickTime chooses a slot such as "18:30".
	PickTime struct{ Slot string }
	// PickType chooses one of the duration labels.
	PickType struct{ Label string }
	// Submit confirms the reservation with contact details.
	Submit struct {
		Contact   Contact
		Reference string
	}
	// Finish acknowledges the receipt and resets the wizard.
	Finish struct{}
)

func (PickCafe) step() Step   { return StepCafe }
func (PickGuests) step() Step { return StepGuests }
func (ShiftMonth) step() Step { return StepDate }
func (PickDay) step() Step    { return StepDate }
func (PickTime) step() Step   { return StepTime }
func (PickType) step() Step   { return StepType }
func (Submit) step() Step     { return StepConfirm }
func (Finish) step() Step     { return StepDone }

// Apply returns the state after ev. When ev is rejected the original state
// is returned together with the reason.
func Apply(s State, ev Event, now time.Time) (State, error) {
	if ev.step() != s.Step {
		return s, fmt.Errorf("%s: %w", s.Step, ErrWrongStep)
	}

	next := s
	switch ev := ev.(type) {
	case PickCafe:
		cafe, ok := CafeByID(ev.ID)
		if !ok {
			return s, ErrUnknownCafe
		}
		next.Cafe = &cafe
		next.Step = StepGuests

	case PickGuests:
		if ev.N < MinGuests || ev.N > MaxGuests {
			return s, ErrGuests
		}
		next.Guests = ev.N
		next.Step = StepDate

	case ShiftMonth:
		next.Month = s.Month.Add(ev.Delta)

	case PickDay:
		date, ok := s.Month.Day(ev.Day)
		if !ok {
			return s, ErrNoSuchDay
		}
		if date.Before(today(now)) {
			return s, ErrPastDate
		}
		next.Date = date.Format(DateLayout)
		next.Step = StepTime

	case PickTime:
		slot, ok := SlotAt(ev.Slot)
		if !ok {
			return s, ErrUnknownSlot
		}
		if slot.Busy {
			return s, ErrSlotBusy
		}
		next.Time = slot.Time
		next.Step = StepType

	case PickType:
		if !isType(ev.Label) {
			return s, ErrUnknownType
		}
		next.Type = ev.Label
		next.Step = StepConfirm

	case Submit:
		c := Contact{
			Name:  strings.TrimSpace(ev.Contact.Name),
			Phone: strings.TrimSpace(ev.Contact.Phone),
			Email: strings.TrimSpace(ev.Contact.Email),
			Note:  strings.TrimSpace(ev.Contact.Note),
		}
		if c.Name == "" || c.Phone == "" || c.Email == "" {
			return s, ErrContactRequired
		}
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return s, ErrInvalidEmail
		}
		next.Name, next.Phone, next.Email, next.Note = c.Name, c.Phone, c.Email, c.Note
		next.Reference = ev.Reference
		next.Step = StepDone

	case Finish:
		next = New(now)

	default:
		return s, fmt.Errorf("unhandled event %T", ev)
	}

	return next, nil
}

// Complete reports whether every field a reservation needs is set.
func (s State) Complete() bool {
	return s.Cafe != nil && s.Guests > 0 && s.Date != "" && s.Time != "" &&
		s.Type != "" && s.Name != "" && s.Phone != "" && s.Email != ""
}

// NewReference returns a short booking reference for the receipt.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:8])
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

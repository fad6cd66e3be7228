package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SessionState string

const (
	StateSelectCountry SessionState = "select_country"
	StateSelectSlot    SessionState = "select_slot"
	StateEnterDetails  SessionState = "enter_details"
	StateConfirm       SessionState = "confirm"
	StateSubmitted     SessionState = "submitted"
)

type PaymentMethod string

const (
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
	PayCash     PaymentMethod = "cash"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PayCard, PayTransfer, PayCash:
		return PaymentMethod(strings.ToLower(strings.TrimSpace(s))), true
	default:
		return "", false
	}
}

type ClientDetails struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
}

// TransitionError reports a booking-flow action attempted in the wrong
// state or with invalid input. Handlers map it to HTTP 400.
type TransitionError struct {
	msg string
}

func (e *TransitionError) Error() string { return e.msg }

func transitionErrf(format string, args ...any) error {
	return &TransitionError{msg: fmt.Sprintf(format, args...)}
}

// BookingSession drives the multi-step booking flow:
// select_country -> select_slot -> enter_details -> confirm -> submitted.
// Transitions are strictly forward via explicit action; Back returns to
// the previous state without discarding already-entered data.
type BookingSession struct {
	ID    string       `json:"id"`
	State SessionState `json:"state"`

	Country     Country `json:"country,omitempty"`
	ServiceSlug string  `json:"service,omitempty"`
	Date        string  `json:"date,omitempty"`
	Time        string  `json:"time,omitempty"`

	Details ClientDetails `json:"details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingSession() *BookingSession {
	now := time.Now().UTC()
	return &BookingSession{
		ID:        uuid.NewString(),
		State:     StateSelectCountry,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *BookingSession) SelectCountry(c Country) error {
	if s.State != StateSelectCountry {
		return transitionErrf("cannot select country in state %q", s.State)
	}
	s.Country = c
	s.advance(StateSelectSlot)
	return nil
}

func (s *BookingSession) SelectSlot(serviceSlug, date, timeOfDay string) error {
	if s.State != StateSelectSlot {
		return transitionErrf("cannot select slot in state %q", s.State)
	}
	if _, ok := FindService(serviceSlug); !ok {
		return transitionErrf("unknown service %q", serviceSlug)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return transitionErrf("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return transitionErrf("time must be HH:MM")
	}
	s.ServiceSlug = serviceSlug
	s.Date = date
	s.Time = timeOfDay
	s.advance(StateEnterDetails)
	return nil
}

func (s *BookingSession) EnterDetails(d ClientDetails) error {
	if s.State != StateEnterDetails {
		return transitionErrf("cannot enter details in state %q", s.State)
	}
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Email) == "" {
		return transitionErrf("name and email are required")
	}
	if len(d.Reason) > MaxReasonLen {
		return transitionErrf("reason must not exceed %d characters", MaxReasonLen)
	}
	if d.PaymentMethod != "" {
		if _, ok := ParsePaymentMethod(string(d.PaymentMethod)); !ok {
			return transitionErrf("payment_method must be card, transfer or cash")
		}
	}
	s.Details = d
	s.advance(StateConfirm)
	return nil
}

// Back steps to the previous state. Entered data is retained so the
// client can move forward again without re-typing.
func (s *BookingSession) Back() error {
	switch s.State {
	case StateSelectSlot:
		s.advance(StateSelectCountry)
	case StateEnterDetails:
		s.advance(StateSelectSlot)
	case StateConfirm:
		s.advance(StateEnterDetails)
	default:
		return transitionErrf("cannot go back from state %q", s.State)
	}
	return nil
}

func (s *BookingSession) HasSlot() bool {
	return s.ServiceSlug != "" && s.Date != "" && s.Time != ""
}

// Submit moves the session to its terminal state. Callers invoke it only
// after the appointment has been durably recorded; on failure the session
// stays in confirm.
func (s *BookingSession) Submit() error {
	if s.State != StateConfirm {
		return transitionErrf("cannot submit in state %q", s.State)
	}
	if !s.HasSlot() {
		return transitionErrf("cannot submit without a selected slot")
	}
	s.advance(StateSubmitted)
	return nil
}

// Appointment builds the one-shot appointment record for a session that
// has reached confirm.
func (s *BookingSession) Appointment() Appointment {
	return Appointment{
		ID:          uuid.NewString(),
		ClientName:  s.Details.Name,
		ClientEmail: s.Details.Email,
		Date:        s.Date,
		Time:        s.Time,
		Country:     s.Country,
		Service:     s.ServiceSlug,
		Reason:      s.Details.Reason,
		CreatedAt:   time.Now().UTC(),
	}
}

func (s *BookingSession) advance(next SessionState) {
	s.State = next
	s.UpdatedAt = time.Now().UTC()
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

type Country string

const (
	CountryRD  Country = "RD"
	CountryUSA Country = "USA"
)

func ParseCountry(s string) (Country, bool) {
	switch Country(strings.ToUpper(strings.TrimSpace(s))) {
	case CountryRD:
		return CountryRD, true
	case CountryUSA:
		return CountryUSA, true
	default:
		return "", false
	}
}

// MaxReasonLen caps the free-text reason field, enforced at entry only.
const MaxReasonLen = 500

// Appointment is a confirmed booking record to be mirrored into an
// external calendar/CRM. It is a one-shot event record: read-only after
// creation, no update or delete lifecycle.
type Appointment struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email,omitempty"`
	Date        string    `json:"date"` // calendar date, YYYY-MM-DD
	Time        string    `json:"time"` // local time-of-day, HH:MM
	Country     Country   `json:"country,omitempty"`
	Service     string    `json:"service,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("appointment id is required")
	}
	if strings.TrimSpace(a.ClientName) == "" {
		return fmt.Errorf("client_name is required")
	}
	if strings.TrimSpace(a.Date) == "" {
		return fmt.Errorf("date is required")
	}
	if strings.TrimSpace(a.Time) == "" {
		return fmt.Errorf("time is required")
	}
	if len(a.Reason) > MaxReasonLen {
		return fmt.Errorf("reason must not exceed %d characters", MaxReasonLen)
	}
	return nil
}

package domain

import (
	"errors"
	"strings"
)

// ErrMissingFields is returned when a required inquiry field is absent.
var ErrMissingFields = errors.New("missing required fields")

// ContactInquiry is a contact-form submission awaiting email delivery.
// It is consumed once by the notification gateway and never persisted.
type ContactInquiry struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate rejects the inquiry unless all three fields are present and
// non-empty. The gateway re-checks this before sending (defense in depth).
func (i ContactInquiry) Validate() error {
	if strings.TrimSpace(i.Name) == "" ||
		strings.TrimSpace(i.Email) == "" ||
		strings.TrimSpace(i.Message) == "" {
		return ErrMissingFields
	}
	return nil
}

package mailer

import "github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"

// Service delivers transactional email for the intake flows. Exactly one
// outbound attempt per call; callers decide what a failure means.
type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendContactInquiry(inq domain.ContactInquiry) (string, error)
	SendBookingConfirmation(appt domain.Appointment) error
}

package mailer

import (
	"fmt"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
	"github.com/EnriqueRodriguezDev/tu-abogado-api/pkg/logger"
)

// DevMailer prints emails to the log instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("📧 [DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
	)

	fmt.Printf("\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"📧 EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s (%s)\n"+
		"Subject: %s\n"+
		"\n"+
		"%s\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		toEmail, toName, subject, text)

	return "dev-mail", nil
}

func (d *DevMailer) SendContactInquiry(inq domain.ContactInquiry) (string, error) {
	if err := inq.Validate(); err != nil {
		return "", err
	}
	subject, text, _, err := buildInquiryEmail(inq)
	if err != nil {
		return "", err
	}
	return d.Send("", "", subject, text, "")
}

func (d *DevMailer) SendBookingConfirmation(appt domain.Appointment) error {
	subject, text, _, err := buildConfirmationEmail(appt)
	if err != nil {
		return err
	}
	_, err = d.Send(appt.ClientEmail, appt.ClientName, subject, text, "")
	return err
}

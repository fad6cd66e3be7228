package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
)

type Mailer struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	contact mailersend.Recipient
	Enabled bool
}

func NewMailer(apiKey, fromName, fromEmail, contactName, contactEmail string) *Mailer {
	m := &Mailer{
		Enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
		contact: mailersend.Recipient{
			Name:  contactName,
			Email: contactEmail,
		},
	}
	if m.Enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}
	return m
}

func (m *Mailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	if !m.Enabled {
		return "", errors.New("mailer disabled (missing MAILERSEND_API_KEY or MAIL_FROM_EMAIL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	// MailerSend uses X-Message-Id
	return res.Header.Get("X-Message-Id"), nil
}

func (m *Mailer) SendContactInquiry(inq domain.ContactInquiry) (string, error) {
	if err := inq.Validate(); err != nil {
		return "", err
	}
	subject, text, html, err := buildInquiryEmail(inq)
	if err != nil {
		return "", err
	}
	return m.Send(m.contact.Email, m.contact.Name, subject, text, html)
}

func (m *Mailer) SendBookingConfirmation(appt domain.Appointment) error {
	if strings.TrimSpace(appt.ClientEmail) == "" {
		return errors.New("appointment has no client email")
	}
	subject, text, html, err := buildConfirmationEmail(appt)
	if err != nil {
		return err
	}
	_, err = m.Send(appt.ClientEmail, appt.ClientName, subject, text, html)
	return err
}

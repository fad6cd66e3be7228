package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
)

// User-supplied fields go through html/template so a name or message
// containing markup cannot inject into the rendered document.
var inquiryTmpl = template.Must(template.New("inquiry").Parse(`<h2>New contact inquiry</h2>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Message:</b></p>
<p>{{.Message}}</p>`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<h2>Your appointment is confirmed</h2>
<p>Hi {{.ClientName}},</p>
<p>Your <b>{{.Service}}</b> appointment is scheduled for <b>{{.Date}}</b> at <b>{{.Time}}</b>.</p>
<p>We will contact you if anything changes.</p>`))

func buildInquiryEmail(inq domain.ContactInquiry) (subject, text, html string, err error) {
	subject = fmt.Sprintf("New inquiry from %s", inq.Name)
	text = fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", inq.Name, inq.Email, inq.Message)

	var sb strings.Builder
	if err := inquiryTmpl.Execute(&sb, inq); err != nil {
		return "", "", "", err
	}
	return subject, text, sb.String(), nil
}

func buildConfirmationEmail(appt domain.Appointment) (subject, text, html string, err error) {
	subject = "Your appointment is confirmed"
	text = fmt.Sprintf("Hi %s, your %s appointment is scheduled for %s at %s.",
		appt.ClientName, appt.Service, appt.Date, appt.Time)

	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, appt); err != nil {
		return "", "", "", err
	}
	return subject, text, sb.String(), nil
}

package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/xavierca1/capacita-crm/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

type messageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

var leadTemplate = template.Must(template.New("lead").Parse(`<h2>Nuevo lead: {{.Name}}</h2>
<ul>
  <li><strong>Email:</strong> {{.Email}}</li>
  {{if .Company}}<li><strong>Empresa:</strong> {{.Company}}</li>{{end}}
  {{if .Phone}}<li><strong>Teléfono:</strong> {{.Phone}}</li>{{end}}
  {{if .Interest}}<li><strong>Interés:</strong> {{.Interest}}</li>{{end}}
  <li><strong>Origen:</strong> {{.Source}}</li>
</ul>
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{if .AdminURL}}<p><a href="{{.AdminURL}}">Ver en el panel</a></p>{{end}}
`))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// NotifyLeadCaptured emails the sales inbox; it implements queue.LeadNotifier.
func (s *EmailSender) NotifyLeadCaptured(_ context.Context, event queue.LeadEvent) error {
	data := LeadNotificationData{
		Name:     event.Name,
		Email:    event.Email,
		Company:  event.Company,
		Phone:    event.Phone,
		Interest: event.Interest,
		Message:  event.Message,
		Source:   event.Source,
	}
	if s.AdminURL != "" {
		data.AdminURL = s.AdminURL + "/leads/" + event.LeadID
	}

	body, err := renderLead(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	if event.Email != "" {
		m.SetHeader("Reply-To", event.Email)
	}
	m.SetHeader("Subject", fmt.Sprintf("Nuevo lead: %s (%s)", event.Name, event.Source))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func renderLead(data LeadNotificationData) (string, error) {
	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

// Template embutido: evita depender de arquivo em disco para um corpo simples.
var reminderTmpl = template.Must(template.New("reminder").Parse(
	`<p>Olá!</p>
<p>Você tem um contato agendado: <strong>{{.Title}}</strong></p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<p>Vencimento: {{.Due.Format "02/01/2006 15:04"}}</p>
<p>Equipe CRM Funil</p>`))

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "nao-responda@crmfunil.app",
	}
}

func (s *EmailSender) SendActivityReminder(to, title, description string, due time.Time) error {
	data := ReminderEmailData{
		Title:       title,
		Description: description,
		Due:         due,
	}

	var body bytes.Buffer
	if err := reminderTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Lembrete: %s", title))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

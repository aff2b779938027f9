package mailer

import mailtpl "github.com/oksasatya/jobboard-api/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or Subject plus Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // reset_code, application_status, welcome
	Data     map[string]any `json:"data,omitempty"`
}

// Render fills Subject, Text and HTML from Template when one is set.
func (j *EmailJob) Render() error {
	if j.Template == "" {
		return nil
	}
	s, t, h, err := mailtpl.Render(j.Template, j.Data)
	if err != nil {
		return err
	}
	j.Subject, j.Text, j.HTML = s, t, h
	return nil
}

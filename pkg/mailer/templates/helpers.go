package templates

import (
	"strings"
	"time"
)

// Brand carries the sender identity shown in every email.
type Brand struct {
	AppName     string
	CompanyName string
	SupportURL  string
}

type Option func(*EmailData)

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

func WithCode(code string) Option { return func(d *EmailData) { d.Code = code } }

func WithJob(title, status string) Option {
	return func(d *EmailData) {
		d.JobTitle = title
		d.Status = strings.ToLower(status)
	}
}

// NewEmailData fills the common fields from b, then applies opts.
func NewEmailData(b Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		Type:        typ,
		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewResetCodeData(b Brand, name, email, code string, expiresAt time.Time) map[string]any {
	return ToMap(NewEmailData(b, ResetCode, name, email, WithCode(code), WithExpiresAt(expiresAt)))
}

func NewApplicationStatusData(b Brand, name, email, jobTitle, status string) map[string]any {
	return ToMap(NewEmailData(b, ApplicationStatus, name, email, WithJob(jobTitle, status)))
}

func NewWelcomeData(b Brand, name, email string) map[string]any {
	return ToMap(NewEmailData(b, Welcome, name, email))
}

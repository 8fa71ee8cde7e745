package email

import (
	"fmt"
	"sync"
)

// Provider sends mail
type Provider interface {
	// Send delivers a prepared message
	Send(email *Email) error

	// SendTemplate renders templateName with data and sends it
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration
	Validate() error
}

// TemplateRenderer renders named templates
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}

// NoopProvider drops every message; used when email is disabled
type NoopProvider struct{}

func (NoopProvider) Send(*Email) error { return nil }

func (NoopProvider) SendTemplate([]string, string, string, TemplateData) error { return nil }

func (NoopProvider) Validate() error { return nil }

// RecordingProvider keeps sent messages in memory; tests use it
type RecordingProvider struct {
	mu       sync.Mutex
	renderer TemplateRenderer
	Sent     []Email
	Err      error
}

func NewRecordingProvider() *RecordingProvider {
	return &RecordingProvider{renderer: NewDefaultTemplates()}
}

func (p *RecordingProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Sent = append(p.Sent, *email)
	return nil
}

func (p *RecordingProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	html, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: html})
}

func (p *RecordingProvider) Validate() error { return nil }

// Messages returns a copy of what was sent so far
func (p *RecordingProvider) Messages() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Email(nil), p.Sent...)
}

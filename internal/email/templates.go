package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager implements TemplateRenderer over html/template
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplates returns a manager preloaded with the portal's mails.
func NewDefaultTemplates() *TemplateManager {
	tm := NewTemplateManager()
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			// built-in templates are compiled in; a parse error is a programming bug
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=zero").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

var defaultTemplates = map[string]string{
	TemplateWelcome: `<p>Dear {{.Name}},</p>
<p>Your registration on the Mining Law Portal is complete. Your username is <b>{{.Username}}</b>.</p>
<p>Payment reference: {{.PaymentID}}</p>`,

	TemplateLibraryReceipt: `<p>Dear {{.Name}},</p>
<p>Your payment of Rs. {{.Amount}} for library access has been received.</p>
<p>Payment reference: {{.PaymentID}}</p>`,

	TemplateSubmission: `<p>Dear {{.Name}},</p>
<p>We received your {{.Kind}} "{{.Title}}". Reference: {{.ID}}.</p>`,
}

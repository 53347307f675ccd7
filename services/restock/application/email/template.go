package email

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/ghuser/restock/services/restock/domain/models"
)

const defaultSubject = `Restock order{{with .StoreName}} from {{.}}{{end}}`

const defaultBody = `Hello {{.SupplierName}},

{{if .StoreName}}{{.StoreName}} would{{else}}We would{{end}} like to place the following order:

{{range .Items}}- {{.ProductName}}: {{.Quantity}}{{with .Notes}} ({{.}}){{end}}
{{end}}
Total units: {{.TotalQuantity}}

Please confirm availability and expected delivery date.

Thank you,
{{with .SenderName}}{{.}}{{else}}{{with .StoreName}}{{.}}{{else}}Store manager{{end}}{{end}}
{{with .SenderEmail}}{{.}}
{{end}}`

// TemplateRenderer renders drafts with text/template.
type TemplateRenderer struct {
	subject *template.Template
	body    *template.Template
}

// NewTemplateRenderer parses the built-in subject and body templates.
func NewTemplateRenderer() *TemplateRenderer {
	r, err := NewTemplateRendererFrom(defaultSubject, defaultBody)
	if err != nil {
		panic(fmt.Sprintf("email: built-in templates: %v", err))
	}
	return r
}

// NewTemplateRendererFrom parses custom templates. Both templates execute
// against a models.EmailDraft.
func NewTemplateRendererFrom(subject, body string) (*TemplateRenderer, error) {
	st, err := template.New("subject").Option("missingkey=error").Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("parse subject template: %w", err)
	}
	bt, err := template.New("body").Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse body template: %w", err)
	}
	return &TemplateRenderer{subject: st, body: bt}, nil
}

func (r *TemplateRenderer) Render(_ context.Context, draft models.EmailDraft) (Rendered, error) {
	var subject, body bytes.Buffer
	if err := r.subject.Execute(&subject, draft); err != nil {
		return Rendered{}, fmt.Errorf("render subject for %s: %w", draft.SupplierID, err)
	}
	if err := r.body.Execute(&body, draft); err != nil {
		return Rendered{}, fmt.Errorf("render body for %s: %w", draft.SupplierID, err)
	}
	return Rendered{
		SupplierID:   draft.SupplierID,
		SupplierName: draft.SupplierName,
		To:           draft.SupplierEmail,
		ReplyTo:      draft.SenderEmail,
		Subject:      strings.TrimSpace(subject.String()),
		Body:         body.String(),
	}, nil
}

package services

import (
	"html/template"
	"strings"

	"github.com/adampresley/adamgokit/email"
)

/*
SendContactEmail delivers a contact form submission to the site owner.
The visitor's address goes in the reply-to-style body rather than the
envelope, since the sending domain is fixed by the email provider.
*/
func SendContactEmail(apiKey, ownerEmail, ownerName, fromEmail string, data map[string]any) error {
	parsedTemplate := strings.Builder{}

	service := email.NewResendService(&email.Config{
		ApiKey: apiKey,
	})

	tmpl := `
<h1>New inquiry from {{.name}}</h1>
<p><strong>Email:</strong> {{.email}}</p>
<p><strong>Shoot type:</strong> {{.shootType}}</p>
<p>{{.message}}</p>
	`

	t := template.Must(template.New("email").Parse(tmpl))
	_ = t.Execute(&parsedTemplate, data)

	return service.Send(email.Mail{
		Body:       parsedTemplate.String(),
		BodyIsHtml: true,
		From: email.EmailAddress{
			Email: fromEmail,
			Name:  "Rachel Harding Photography",
		},
		Subject: "New photography inquiry",
		To: []email.EmailAddress{
			{Name: ownerName, Email: ownerEmail},
		},
	})
}

package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title    string
	Heading  string
	CTALabel string
	CTAURL   string
}

type applicationReceivedData struct {
	baseEmailData
	CandidateName string
	JobTitle      string
}

type stageChangedData struct {
	baseEmailData
	CandidateName string
	StatusLabel   string
}

type applicationRejectedData struct {
	baseEmailData
	CandidateName string
	Reason        string
}

type offerSentData struct {
	baseEmailData
	CandidateName string
	PositionTitle string
}

type offerConfirmationData struct {
	baseEmailData
	CandidateName string
	Accepted      bool
}

type staleReminderData struct {
	baseEmailData
	CandidateName   string
	Stage           string
	DaysSinceUpdate int
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.New("base.html").ParseFS(templateFS,
		"templates/base.html", "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

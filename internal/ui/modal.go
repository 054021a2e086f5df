package ui

import (
	"bytes"
	"fmt"
	"html/template"
)

// Modal is an overlay with a title, body and footer. Closing it follows
// CloseURL, which posts back to the owning view. A closed Modal renders
// nothing.
type Modal struct {
	Open     bool
	Title    string
	CloseURL string
	Body     template.HTML
	Footer   template.HTML
}

var confirmFooter = template.Must(template.New("confirm-footer").Parse(
	`<form method="post" action="{{.CancelAction}}" class="inline"><button type="submit" class="btn btn-secondary">{{.CancelText}}</button></form>` +
		`<form method="post" action="{{.ConfirmAction}}" class="inline"><button type="submit" class="btn btn-danger">{{.ConfirmText}}</button></form>`))

// Confirm builds a Modal with a Cancel/Confirm footer. Empty button texts
// default to "Confirm" and "Cancel". If the footer cannot be rendered the
// modal comes back without one, together with the error.
func Confirm(open bool, title, message, confirmText, cancelText, confirmAction, cancelAction string) (Modal, error) {
	if confirmText == "" {
		confirmText = "Confirm"
	}
	if cancelText == "" {
		cancelText = "Cancel"
	}

	m := Modal{
		Open:     open,
		Title:    title,
		CloseURL: cancelAction,
		Body:     template.HTML("<p>" + template.HTMLEscapeString(message) + "</p>"),
	}

	var footer bytes.Buffer
	err := confirmFooter.Execute(&footer, struct {
		ConfirmText, CancelText, ConfirmAction, CancelAction string
	}{confirmText, cancelText, confirmAction, cancelAction})
	if err != nil {
		return m, fmt.Errorf("render confirm footer: %w", err)
	}
	m.Footer = template.HTML(footer.String())
	return m, nil
}

package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("pages").ParseFS(templateFS, "templates/*.tmpl")
}

// PageTemplate is the name of the full page template.
const PageTemplate = "index"

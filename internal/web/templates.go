package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates, templatesErr = template.ParseFS(templateFS, "templates/*.html")

// TemplatesAvailable reports whether the form pages can be rendered. It is the
// web backend's prerequisite for backend selection.
func TemplatesAvailable() bool {
	return templatesErr == nil && templates.Lookup("form.html") != nil && templates.Lookup("submitted.html") != nil
}

type formOption struct {
	Index int
	Label string
}

type formPage struct {
	Prompt  string
	Options []formOption
}

// render executes into a buffer first so a template failure never sends a partial page.
func render(w http.ResponseWriter, name string, data any) error {
	if templatesErr != nil {
		return templatesErr
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(buf.Bytes())
	return err
}

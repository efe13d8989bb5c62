package http

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/cngcare/report"
	"github.com/Afox1/cngcare/pkg/log"
)

//go:embed templates/form.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/form.html"))

type formData struct {
	Title           string
	Today           string
	MinInterval     int
	DefaultInterval int
	MaxSmell        int
	ReportFilename  string
}

// FormPage serves the interactive form. Every button talks to the JSON API.
func (h *Handler) FormPage(w http.ResponseWriter, r *http.Request) {
	data := formData{
		Title:           report.Title,
		Today:           time.Now().Format(model.ReportDateLayout),
		MinInterval:     model.MinServiceInterval,
		DefaultInterval: model.DefaultServiceInterval,
		MaxSmell:        model.MaxCabinSmell,
		ReportFilename:  model.ReportFilename,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to render form")
	}
}

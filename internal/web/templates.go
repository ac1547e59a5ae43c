package web

import (
	"embed"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/services"
	"html/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const (
	formTemplate      = "form.tmpl"
	dashboardTemplate = "dashboard.tmpl"
	errorTemplate     = "error.tmpl"
)

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/view-data", Label: "View Data"},
	{Href: "/add-data", Label: "Add Data"},
	{Href: "/", Label: "Home"},
}

// page is embedded by every view model and drives the layout.
type page struct {
	Title string
	Path  string
}

func (p page) Nav() []navLink {
	return navLinks
}

type dashboardPage struct {
	page
	*services.Dashboard
}

type errorPage struct {
	page
	Message string
}

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"fieldError": func(errors map[form.Field]string, field form.Field) string {
			return errors[field]
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
}

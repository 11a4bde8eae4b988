package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/vytor/flashdeck/internal/notify"
	"github.com/vytor/flashdeck/internal/view"
)

//go:embed all:templates
var templateFiles embed.FS

//go:embed all:static
var staticFiles embed.FS

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		// toastClass maps a toast to its CSS classes.
		"toastClass": func(t notify.Toast) string {
			class := "toast toast-" + string(t.Kind.Normalize())
			if t.Leaving {
				class += " leaving"
			}
			return class
		},
		"isDanger": func(a view.Action) bool { return a.Style == view.StyleDanger },
	}
	return template.New("base").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}

func staticHandler() (http.Handler, error) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub))), nil
}

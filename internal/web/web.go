// Package web holds the server-rendered storefront pages.
package web

import (
	"embed"
	"html/template"
	"strings"

	"storefront/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates with the storefront helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"price": func(p models.Price) string {
			return "₹" + p.String()
		},
		"amount": func(p models.Price) string {
			return "₹" + p.StringFixed(2)
		},
		"deref": func(p *models.Price) models.Price {
			if p == nil {
				return models.Price{}
			}
			return *p
		},
		"join": func(list models.StringList) string {
			return list.Joined()
		},
		"selected": func(values []string, value string) bool {
			for _, v := range values {
				if strings.EqualFold(v, value) {
					return true
				}
			}
			return false
		},
	}
}

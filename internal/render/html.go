package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// HTML writes page as a complete HTML document.
func HTML(w io.Writer, page Page) error {
	if err := pageTemplate.ExecuteTemplate(w, "dashboard.html", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

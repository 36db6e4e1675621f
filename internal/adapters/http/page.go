package http

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed web/*.html
var webFS embed.FS

const pageTemplate = "index.html"

type pageData struct {
	Categories  []string
	Placeholder string
}

// pageRenderer implements echo.Renderer over the embedded templates.
type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{tmpl: template.Must(template.ParseFS(webFS, "web/*.html"))}
}

func (r *pageRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// Package web embeds the HTML templates and static assets served by the site.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page. Pages are addressed by file name, e.g. "login.html".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/*.html")
}

// Static serves the files under static/ (css, js).
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return http.FS(sub)
}

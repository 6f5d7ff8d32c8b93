// Package web embeds the HTML templates and static assets served by the site.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/akeren/teamup-site/pkg/constants"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"adminTime": adminTime,
	}).ParseFS(templateFiles, "templates/*.html")
}

func Static() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}

// adminTime renders an RFC 3339 timestamp for the admin tables and passes
// anything unparsable through unchanged.
func adminTime(raw string) string {
	t, err := time.Parse(constants.RFC3339DateTimeFormat, raw)
	if err != nil {
		return raw
	}
	return t.Format(constants.AdminDateTimeFormat)
}

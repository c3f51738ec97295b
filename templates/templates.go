package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parse toàn bộ template nhúng trong binary
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"checked": func(b bool) template.HTMLAttr {
			if b {
				return "checked"
			}
			return ""
		},
	}).ParseFS(files, "*.html")
}

package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed web/templates/*.tmpl web/static/*
var assets embed.FS

// Templates parses the web UI templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time, layout string) string { return t.UTC().Format(layout) },
	}).ParseFS(assets, "web/templates/*.tmpl")
}

// Static is the embedded static asset tree (logo).
func Static() fs.FS {
	sub, err := fs.Sub(assets, "web/static")
	if err != nil {
		panic(err)
	}
	return sub
}

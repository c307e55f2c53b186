// Package web serves the single-page UI bundled into the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var content embed.FS

// Index serves the HTML page at exactly "/"; anything else under "/" is a 404.
func Index() http.HandlerFunc {
	page, err := content.ReadFile("static/index.html")
	if err != nil {
		panic("web: index.html missing from embed: " + err.Error())
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

// Static serves the embedded assets; mount it under "/static/".
func Static() http.Handler {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic("web: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

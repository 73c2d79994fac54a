// Package web serves the single-page task UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// Handler serves index.html at / and any other static asset by name.
func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// static is compiled in; Sub only fails on a bad path literal
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

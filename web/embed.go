// Package web embeds the client application so the server ships as a
// single binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var content embed.FS

func Static() http.FileSystem {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

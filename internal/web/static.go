package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// staticFS serves dir when set, otherwise the copy built into the binary
func staticFS(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // The embed pattern guarantees the directory
	}
	return http.FS(sub)
}

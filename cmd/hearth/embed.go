package main

import (
	"embed"
	"io/fs"

	"github.com/oddhouse/hearth/internal/server"
)

// The ui directory is populated by `make ui` which copies the
// installation's dist output here. The checked-in index.html is a bare
// shell so the binary always has something to serve.
//
//go:embed all:ui
var uiDist embed.FS

func init() {
	sub, err := fs.Sub(uiDist, "ui")
	if err != nil {
		return
	}
	server.SetUI(sub)
}

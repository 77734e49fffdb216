package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// uiFS is the filesystem the house itself is served from: either the build
// output directory on disk or the copy embedded in the binary. Set via
// SetUI before creating the server.
var uiFS fs.FS

// SetUI sets the filesystem used for static serving.
func SetUI(fsys fs.FS) {
	uiFS = fsys
}

// spaHandler serves static files with SPA fallback: any path that doesn't
// resolve to a real file gets index.html so the client-side router can take
// over. HTML is never cached; everything else carries a content hash from
// the build and is cached hard.
func spaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if uiFS == nil {
			http.Error(w, "no build output to serve", http.StatusNotFound)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		f, err := uiFS.Open(path)
		if err == nil {
			st, statErr := f.Stat()
			f.Close()
			if statErr != nil || st.IsDir() {
				path = "index.html"
			}
		} else {
			path = "index.html"
		}

		if strings.HasSuffix(path, ".html") {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}

		http.ServeFileFS(w, r, uiFS, path)
	}
}

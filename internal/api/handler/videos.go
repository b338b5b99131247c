package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/echoquiz/internal/api/response"
)

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
}

// NewVideoHandler returns an http.HandlerFunc for GET /videos/*. Files are
// served from the first directory in dirs that exists.
func NewVideoHandler(dirs []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "*")
		if name == "" {
			response.Error(w, http.StatusNotFound, "File not found")
			return
		}

		dir, ok := firstExistingDir(dirs)
		if !ok {
			slog.Warn("no video directory available", "candidates", dirs)
			response.Error(w, http.StatusNotFound, "File not found")
			return
		}

		// http.Dir confines the lookup to dir.
		f, err := http.Dir(dir).Open("/" + name)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("open video failed", "file", name, "error", err)
			}
			response.Error(w, http.StatusNotFound, "File not found")
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			response.Error(w, http.StatusNotFound, "File not found")
			return
		}

		if ct, ok := videoTypes[strings.ToLower(path.Ext(info.Name()))]; ok {
			w.Header().Set("Content-Type", ct)
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}

func firstExistingDir(dirs []string) (string, bool) {
	for _, d := range dirs {
		info, err := os.Stat(d)
		if err == nil && info.IsDir() {
			return d, true
		}
	}
	return "", false
}

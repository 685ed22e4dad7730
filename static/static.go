package ctstatic

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

const localDir = "static/files/"

//go:embed files
var embedded embed.FS

// localFiles reports whether the working tree carries static/files, in
// which case it is served instead of the embedded copy.
func localFiles() bool {
	info, err := os.Stat(localDir)
	return err == nil && info.IsDir()
}

// ReadAll returns the content of one static file.
func ReadAll(name string) ([]byte, error) {
	if localFiles() {
		return os.ReadFile(filepath.Join(localDir, name))
	}
	return embedded.ReadFile("files/" + name)
}

// all static/ files embedded as a Go library
func FileSystemHandler() http.Handler {
	if localFiles() {
		return http.FileServer(http.Dir(localDir))
	}
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

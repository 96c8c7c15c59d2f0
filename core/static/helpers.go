package static

import (
	"io/fs"
	"net/http"
	"strings"
)

// neuteredFileSystem wraps http.FileSystem to disable directory listing.
// A directory is only accessible when it contains an index.html file.
type neuteredFileSystem struct {
	fs http.FileSystem
}

// Open implements http.FileSystem.Open with directory listing disabled.
func (nfs neuteredFileSystem) Open(path string) (http.File, error) {
	f, err := nfs.fs.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if s.IsDir() {
		index := strings.TrimSuffix(path, "/") + "/index.html"
		if path == "/" || path == "" {
			index = "/index.html"
		}

		if _, err := nfs.fs.Open(index); err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
	}

	return f, nil
}

package response

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/portfolio/core/handler"
)

// File serves a static file from the filesystem. Content type is
// detected automatically and range requests are supported. Missing
// files and directories produce a plain-text 404.
func File(path string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		http.ServeFile(w, r, cleanPath)
		return nil
	}
}

// Download serves a file with a Content-Disposition header forcing the
// browser to download instead of displaying inline. An empty filename
// falls back to the file's base name. A missing file produces a
// plain-text 404.
func Download(path string, filename string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		downloadName := filename
		if downloadName == "" {
			downloadName = filepath.Base(cleanPath)
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadName))

		contentType := mime.TypeByExtension(filepath.Ext(cleanPath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)

		http.ServeFile(w, r, cleanPath)
		return nil
	}
}

// Attachment serves in-memory data as a downloadable file. When
// contentType is empty it is derived from the filename extension,
// falling back to application/octet-stream.
func Attachment(data []byte, filename string, contentType string) handler.Response {
	// Newlines and quotes in the filename would allow header injection.
	sanitizedFilename := strings.ReplaceAll(filename, "\n", "")
	sanitizedFilename = strings.ReplaceAll(sanitizedFilename, "\r", "")
	sanitizedFilename = strings.ReplaceAll(sanitizedFilename, "\"", "'")

	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizedFilename))

		resolvedContentType := contentType
		if resolvedContentType == "" {
			resolvedContentType = mime.TypeByExtension(filepath.Ext(sanitizedFilename))
			if resolvedContentType == "" {
				resolvedContentType = "application/octet-stream"
			}
		}
		w.Header().Set("Content-Type", resolvedContentType)
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))

		w.WriteHeader(http.StatusOK)
		_, err := w.Write(data)
		return err
	}
}

// CSV serves 2D string records as a downloadable CSV file. The .csv
// extension is appended to the filename when missing.
func CSV(records [][]string, filename string) handler.Response {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(records); err != nil {
		return Error(err)
	}

	if !strings.HasSuffix(filename, ".csv") {
		filename += ".csv"
	}

	return Attachment(buf.Bytes(), filename, "text/csv; charset=utf-8")
}

// CSVWithHeaders serves a header row followed by data rows as a CSV
// download.
func CSVWithHeaders(headers []string, rows [][]string, filename string) handler.Response {
	records := append([][]string{headers}, rows...)
	return CSV(records, filename)
}

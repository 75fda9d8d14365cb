package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// maxUploadSize bounds how much of a multipart body is held in memory
// before spilling to disk; larger video parts stream through.
const maxUploadSize = 32 << 20

// saveFormFile copies a multipart form file to a temp file and returns
// its path. A missing field returns "" with no error; the caller
// decides whether the field was required. The media store removes the
// temp file after upload.
func saveFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", field, err)
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to buffer %s: %w", field, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to flush %s: %w", field, err)
	}
	return tmp.Name(), nil
}

func removeTempFiles(paths ...string) {
	for _, p := range paths {
		if p != "" {
			os.Remove(p)
		}
	}
}

package cloudinary

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// PublicID derives a stable asset id from the uploaded file's name, so
// re-uploading the same file overwrites instead of piling up copies.
func PublicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if id := slug.Make(base); id != "" {
		return id
	}
	return uuid.NewString()
}

// ReadFormFile pulls the full contents of a multipart upload into memory.
func ReadFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

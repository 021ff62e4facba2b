package handler

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/healthhub/healthhub-api/internal/model"
)

// ReadUpload buffers a multipart file into memory. Size and type checks
// happen in the document service, not here.
func ReadUpload(fh *multipart.FileHeader) (*model.DocumentUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", fh.Filename, err)
	}

	return &model.DocumentUpload{
		Name: fh.Filename,
		Type: fh.Header.Get("Content-Type"),
		Size: fh.Size,
		Data: data,
	}, nil
}

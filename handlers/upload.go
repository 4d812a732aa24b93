package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
)

// logoFile extracts the "logo" part of a multipart upload.
func logoFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		return nil, nil, errors.New("request must be a multipart form with a logo file")
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		return nil, nil, errors.New("logo file is required")
	}
	return file, header, nil
}

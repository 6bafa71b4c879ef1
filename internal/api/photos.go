package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/starford/maqam/internal/checksum"
	"github.com/starford/maqam/internal/storage"
)

const maxPhotoBytes = 10 << 20 // 10 MB

var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// PhotoUploadResponse is returned after a successful photo upload.
// URL is the value to store in an event's photo_url.
type PhotoUploadResponse struct {
	Filename     string `json:"filename" example:"0b6f1c2e-8d1a-4a57-9d55-2f6a1b7e4c10.jpg" validate:"required"`
	OriginalName string `json:"original_name" example:"concert.jpg"`
	Size         int64  `json:"size" example:"12345" validate:"required"`
	URL          string `json:"url" example:"/photos/0b6f1c2e-8d1a-4a57-9d55-2f6a1b7e4c10.jpg" validate:"required"`
	SHA256       string `json:"sha256" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
}

// PhotoHandler serves and accepts event photos kept in a media store.
type PhotoHandler struct {
	media storage.Provider
}

// NewPhotoHandler creates a handler backed by media.
func NewPhotoHandler(media storage.Provider) *PhotoHandler {
	return &PhotoHandler{media: media}
}

// safeName validates that the filename is a plain image name with no path
// separators or traversal, and returns it cleaned.
func (h *PhotoHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	if !photoExts[strings.ToLower(filepath.Ext(cleaned))] {
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(cleaned))
	}
	return cleaned, nil
}

// ServeFile handles GET /photos/{filename}.
func (h *PhotoHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name, err := h.safeName(chi.URLParam(r, "filename"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	abs, err := h.media.Path(name)
	if err != nil {
		writeError(w, r, "open photo", err)
		return
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/photos (multipart/form-data, field "file").
//
//	@Summary		Upload an event photo
//	@Tags			photos
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	PhotoUploadResponse
//	@Failure		400		{object}	errResponse
//	@Router			/photos [post]
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	if _, err := h.safeName(header.Filename); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	// Stored under a fresh name so uploads never collide.
	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	sum := checksum.NewWriter()
	written, err := h.media.Create(name, io.TeeReader(file, sum))
	if err != nil {
		writeError(w, r, "store photo", err)
		return
	}

	writeJSON(w, http.StatusCreated, PhotoUploadResponse{
		Filename:     name,
		OriginalName: header.Filename,
		Size:         written,
		URL:          "/photos/" + name,
		SHA256:       sum.Sum(),
	})
}

// Delete handles DELETE /api/photos/{filename}.
//
//	@Summary		Delete an uploaded photo
//	@Tags			photos
//	@Param			filename	path	string	true	"Stored file name"
//	@Success		204
//	@Failure		404	{object}	errResponse
//	@Router			/photos/{filename} [delete]
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name, err := h.safeName(chi.URLParam(r, "filename"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err := h.media.Delete(name); err != nil {
		writeError(w, r, "delete photo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

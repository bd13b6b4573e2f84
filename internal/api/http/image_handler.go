package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"toolshare-backend/internal/storage"
)

const maxImageSize = 10 << 20 // 10 MiB

// ImageHandler accepts tool photo uploads and serves them back.
type ImageHandler struct {
	store storage.ImageStore
}

func NewImageHandler(store storage.ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUser(w, r); !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if !storage.ValidExt(header.Filename) {
		respondError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	url, err := h.store.Save(header.Filename, file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		respondError(w, http.StatusBadRequest, "missing image key")
		return
	}

	file, err := h.store.Open(key)
	if err != nil {
		respondError(w, http.StatusNotFound, "image not found")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", storage.ContentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}

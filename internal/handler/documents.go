package handler

import (
	"errors"
	"net/http"

	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/response"
)

// HandleDocumentUpload streams one file to the backend. The slot is checked
// against the snapshot before the body is read, so a locked slot is rejected
// without uploading anything.
func (h *RouteHandler) HandleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	slot, ok := profile.ParseSlot(r.PathValue("slot"))
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	creds := credentialsFor(r)

	p, err := h.Profiles.Load(r.Context(), creds)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if err := profile.CheckUpload(p, slot); err != nil {
		h.handleError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("body must be multipart form data no larger than 10MB"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ErrHandler.FailedValidation(w, r, map[string]string{"file": "A file is required"})
		return
	}
	defer file.Close()

	doc, err := h.Profiles.UploadDocument(r.Context(), creds, slot, *newUpload(file, header))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONCreatedResponse(w, doc, "Document uploaded successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

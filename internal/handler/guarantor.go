package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/form"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/repository"
)

const identificationField = "identification"

// guarantorSaver sends the guarantor section with its identification file.
// The identification value in the working copy is only the file name; the
// backend stores the file and records its URL itself.
type guarantorSaver struct {
	profiles repository.ProfileRepository
	creds    *credentials.Credentials
	file     *backend.Upload
}

func (s guarantorSaver) SaveSection(ctx context.Context, section profile.Section, payload map[string]any) error {
	delete(payload, identificationField)
	return s.profiles.SaveGuarantor(ctx, s.creds, payload, s.file)
}

func (s guarantorSaver) Refresh(ctx context.Context) (*models.Profile, error) {
	return s.profiles.Refresh(ctx, s.creds)
}

func (h *RouteHandler) HandleGuarantorUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("body must be multipart form data no larger than 10MB"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	r.SetPathValue("section", string(profile.SectionGuarantor))
	session, ok := h.openSession(w, r)
	if !ok {
		return
	}

	for _, field := range profile.Fields(profile.SectionGuarantor) {
		if field.Name == identificationField {
			continue
		}
		values, present := r.MultipartForm.Value[field.Name]
		if !present || len(values) == 0 {
			continue
		}
		if err := session.ApplyUserEdit(field.Name, values[0]); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	var upload *backend.Upload
	file, header, err := r.FormFile(identificationField)
	switch {
	case err == nil:
		defer file.Close()

		if err := session.ApplyUserEdit(identificationField, header.Filename); err != nil {
			h.handleError(w, r, err)
			return
		}
		upload = newUpload(file, header)
	case !errors.Is(err, http.ErrMissingFile):
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	confirm := r.FormValue("confirm") == "true"
	h.submit(w, r, session, confirm, guarantorSaver{profiles: h.Profiles, creds: credentialsFor(r), file: upload})
}

func newUpload(file multipart.File, header *multipart.FileHeader) *backend.Upload {
	return &backend.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
}

var _ form.Saver = guarantorSaver{}

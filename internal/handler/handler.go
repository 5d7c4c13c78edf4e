package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/config"
	"github.com/cradoe/profilegate/internal/context"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/errHandler"
	"github.com/cradoe/profilegate/internal/form"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/repository"
)

const maxUploadBytes = 10 << 20

type RouteHandler struct {
	ErrHandler *errHandler.ErrorRepository
	Profiles   repository.ProfileRepository
	Activity   repository.ActivityRepository
	API        backend.API
	Store      credentials.Store
	Config     *config.Config
	Logger     *slog.Logger
}

func NewRouteHandler(handler *RouteHandler) *RouteHandler {
	return &RouteHandler{
		ErrHandler: handler.ErrHandler,
		Profiles:   handler.Profiles,
		Activity:   handler.Activity,
		API:        handler.API,
		Store:      handler.Store,
		Config:     handler.Config,
		Logger:     handler.Logger,
	}
}

// credentialsFor returns the caller's credentials. Routes that call it sit
// behind RequireAuthenticatedUser, so a nil result is a wiring mistake.
func credentialsFor(r *http.Request) *credentials.Credentials {
	creds := context.ContextGetCredentials(r)
	if creds == nil {
		panic("handler: route requires authenticated user")
	}
	return creds
}

// handleError answers with the status that matches a domain or backend error.
func (h *RouteHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *form.FieldError
	var validationErr *form.ValidationError

	switch {
	case errors.As(err, &fieldErr) && errors.Is(fieldErr.Err, form.ErrFieldLocked):
		h.ErrHandler.Locked(w, r, "This field has already been verified and can no longer be changed", map[string]string{
			fieldErr.Field.Name: "Field is locked",
		})
	case errors.As(err, &fieldErr):
		h.ErrHandler.FailedValidation(w, r, map[string]string{fieldErr.Field.Name: "Unknown field"})
	case errors.As(err, &validationErr):
		h.ErrHandler.FailedValidation(w, r, validationErr.Fields)
	case errors.Is(err, form.ErrNoChanges):
		h.ErrHandler.Conflict(w, r, "No changes to save")
	case errors.Is(err, form.ErrSaveInProgress):
		h.ErrHandler.Conflict(w, r, "A save is already in progress")
	case errors.Is(err, form.ErrSectionNotEditable), errors.Is(err, profile.ErrUnknownSlot):
		h.ErrHandler.NotFound(w, r)
	case errors.Is(err, profile.ErrDocumentLocked):
		h.ErrHandler.Locked(w, r, "This document has already been uploaded and can not be replaced", nil)
	case errors.Is(err, profile.ErrBankStatementExists):
		h.ErrHandler.Conflict(w, r, "A bank statement has already been uploaded")
	case errors.Is(err, profile.ErrProfileNotLoaded):
		h.ErrHandler.ServiceUnavailable(w, r, "Your profile could not be loaded. Please try again")
	default:
		h.ErrHandler.Backend(w, r, err)
	}
}

// recordChange reports a write the backend has already accepted. A failure
// here must not turn the response into an error, so it is only logged.
func (h *RouteHandler) recordChange(r *http.Request, creds *credentials.Credentials, change repository.Change) {
	if err := h.Profiles.Changed(r.Context(), creds, change); err != nil {
		h.Logger.Error("recording change", "entity", change.Entity, "entity_id", change.EntityID, "error", err)
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

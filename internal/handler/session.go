package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/cradoe/profilegate/internal/context"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/request"
	"github.com/cradoe/profilegate/internal/response"
	"github.com/cradoe/profilegate/internal/validator"
)

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	UserID        string     `json:"userId,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func newSessionResponse(creds *credentials.Credentials) sessionResponse {
	data := sessionResponse{Authenticated: true, UserID: creds.UserID}
	if !creds.ExpiresAt.IsZero() {
		expiresAt := creds.ExpiresAt
		data.ExpiresAt = &expiresAt
	}
	return data
}

// HandleSessionCreate stores the backend-issued token after the browser has
// logged in against the backend. The token never leaves the gateway again;
// the browser only holds the session cookie.
func (h *RouteHandler) HandleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AccessToken string              `json:"accessToken"`
		UserID      string              `json:"userId"`
		Validator   validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.CheckField(validator.NotBlank(input.AccessToken), "accessToken", "Access token is required")
	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.FieldErrors)
		return
	}

	creds, err := credentials.FromToken(input.AccessToken, input.UserID, time.Now())
	if err != nil {
		if errors.Is(err, credentials.ErrTokenExpired) {
			h.ErrHandler.InvalidAuthenticationToken(w, r)
			return
		}
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if previous := credentials.SessionIDFromRequest(r); previous != "" {
		if err := h.Store.Clear(r.Context(), previous); err != nil {
			h.Logger.Warn("clearing previous session", "error", err)
		}
	}

	sessionID, err := h.Store.Set(r.Context(), creds)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	credentials.SetCookie(w, sessionID, creds, h.Config.Session.SecureCookie)

	err = response.JSONCreatedResponse(w, newSessionResponse(creds), "Session created")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleSessionShow(w http.ResponseWriter, r *http.Request) {
	creds := context.ContextGetCredentials(r)
	if creds == nil {
		err := response.JSONOkResponse(w, sessionResponse{Authenticated: false}, "No active session", nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	err := response.JSONOkResponse(w, newSessionResponse(creds), "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if sessionID := credentials.SessionIDFromRequest(r); sessionID != "" {
		if err := h.Store.Clear(r.Context(), sessionID); err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}
	}

	credentials.ClearCookie(w, h.Config.Session.SecureCookie)

	err := response.JSONOkResponse(w, sessionResponse{Authenticated: false}, "Signed out", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

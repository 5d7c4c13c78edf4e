package handler

import (
	"net/http"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/response"
)

func (h *RouteHandler) HandleProfileShow(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFor(r)

	load := h.Profiles.Load
	if r.URL.Query().Get("refresh") == "true" {
		load = h.Profiles.Refresh
	}

	p, err := load(r.Context(), creds)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, p, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

type completionResponse struct {
	profile.Completion
	Fields    map[profile.Section]map[string]profile.LockState `json:"fields"`
	Documents map[profile.Slot]bool                            `json:"documents"`
}

func newCompletionResponse(p *models.Profile) completionResponse {
	locks := profile.Resolve(p)

	fields := make(map[profile.Section]map[string]profile.LockState)
	for _, section := range profile.Sections {
		if section.Editable() {
			fields[section] = locks.Section(section)
		}
	}

	return completionResponse{
		Completion: profile.Evaluate(p),
		Fields:     fields,
		Documents:  profile.DocumentLocks(p),
	}
}

// HandleProfileCompletion reports the lock state of every field and document
// slot, per-section completion and the global eligibility flag.
func (h *RouteHandler) HandleProfileCompletion(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFor(r)

	p, err := h.Profiles.Load(r.Context(), creds)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, newCompletionResponse(p), "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleProfileActivity(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFor(r)

	if creds.UserID == "" {
		h.ErrHandler.NotFound(w, r)
		return
	}

	logs, err := h.Activity.ListByUser(r.Context(), creds.UserID, queryInt(r, "limit", 20))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, logs, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

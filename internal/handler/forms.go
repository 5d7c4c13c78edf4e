package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/form"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/request"
	"github.com/cradoe/profilegate/internal/response"
)

type formView struct {
	Section            profile.Section              `json:"section"`
	Label              string                       `json:"label"`
	State              form.State                   `json:"state"`
	Values             map[string]string            `json:"values"`
	Locks              map[string]profile.LockState `json:"locks"`
	Complete           bool                         `json:"complete"`
	HasUserMadeChanges bool                         `json:"hasUserMadeChanges"`
	CanSave            bool                         `json:"canSave"`
}

func newFormView(s *form.Session) formView {
	return formView{
		Section:            s.Section(),
		Label:              s.Section().Label(),
		State:              s.State(),
		Values:             s.Values(),
		Locks:              s.Locks().Section(s.Section()),
		Complete:           profile.SectionComplete(s.Snapshot(), s.Section()),
		HasUserMadeChanges: s.HasUserMadeChanges(),
		CanSave:            s.CanSave(),
	}
}

type savePreview struct {
	Message    string        `json:"message"`
	StatusCode int           `json:"statusCode"`
	Section    string        `json:"section"`
	Changes    []form.Change `json:"changes"`
}

// sectionSaver writes through the profile repository with the caller's credentials.
type sectionSaver struct {
	profiles repository.ProfileRepository
	creds    *credentials.Credentials
}

func (s sectionSaver) SaveSection(ctx context.Context, section profile.Section, payload map[string]any) error {
	return s.profiles.Save(ctx, s.creds, section, payload)
}

func (s sectionSaver) Refresh(ctx context.Context) (*models.Profile, error) {
	return s.profiles.Refresh(ctx, s.creds)
}

func (h *RouteHandler) openSession(w http.ResponseWriter, r *http.Request) (*form.Session, bool) {
	section, ok := profile.ParseSection(r.PathValue("section"))
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return nil, false
	}

	session, err := form.NewSession(section)
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}

	p, err := h.Profiles.Load(r.Context(), credentialsFor(r))
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}

	session.Hydrate(p)
	return session, true
}

// HandleFormShow hydrates a section form from the snapshot. A freshly hydrated
// form never reports user changes.
func (h *RouteHandler) HandleFormShow(w http.ResponseWriter, r *http.Request) {
	session, ok := h.openSession(w, r)
	if !ok {
		return
	}

	err := response.JSONOkResponse(w, newFormView(session), "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleFormUpdate applies the submitted values as user edits. Without
// confirm it answers 428 with the list of changes; with confirm it saves the
// section and returns the form hydrated from the re-fetched snapshot.
func (h *RouteHandler) HandleFormUpdate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Values          map[string]string `json:"values"`
		BankAccountType string            `json:"bankAccountType"`
		Confirm         bool              `json:"confirm"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	session, ok := h.openSession(w, r)
	if !ok {
		return
	}

	if input.BankAccountType != "" && input.BankAccountType != session.Value("accountType") {
		if err := session.SwitchBankAccountType(input.BankAccountType); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	names := make([]string, 0, len(input.Values))
	for name := range input.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := session.ApplyUserEdit(name, input.Values[name]); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	h.submit(w, r, session, input.Confirm, sectionSaver{profiles: h.Profiles, creds: credentialsFor(r)})
}

func (h *RouteHandler) submit(w http.ResponseWriter, r *http.Request, session *form.Session, confirm bool, saver form.Saver) {
	if err := session.RequestSubmit(); err != nil {
		h.handleError(w, r, err)
		return
	}

	if !confirm {
		preview := &savePreview{
			Message:    "Please confirm the changes to your " + session.Section().Label(),
			StatusCode: http.StatusPreconditionRequired,
			Section:    string(session.Section()),
			Changes:    session.Changes(),
		}

		err := response.JSONWithHeaders(w, http.StatusPreconditionRequired, preview, nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	release, err := h.Profiles.Lock(r.Context(), credentialsFor(r), string(session.Section()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer release()

	err = session.Confirm(r.Context(), saver)

	var refreshErr *form.RefreshError
	switch {
	case errors.As(err, &refreshErr):
		h.Logger.Warn("profile refresh after save failed", "section", session.Section(), "error", refreshErr.Err)

		message := session.Section().Label() + " saved. Reload to see the latest profile"
		err = response.JSONOkResponse(w, nil, message, nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	case err != nil:
		h.handleError(w, r, err)
		return
	}

	message := session.Section().Label() + " updated successfully"
	err = response.JSONOkResponse(w, newFormView(session), message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

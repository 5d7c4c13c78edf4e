package handler

import (
	"net/http"

	"github.com/cradoe/profilegate/internal/form"
	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/profile"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/request"
	"github.com/cradoe/profilegate/internal/response"
)

func (h *RouteHandler) HandleBankAccounts(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFor(r)

	accounts, err := h.API.ListBankAccounts(r.Context(), creds.AccessToken)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	message := "Data retrieved successfully"
	if len(accounts) == 0 {
		message = "No bank account found"
	}

	err = response.JSONOkResponse(w, accounts, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleBankAccountCreate(w http.ResponseWriter, r *http.Request) {
	var input models.BankAccountRequest

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input = form.NormalizeBankAccount(input)
	if errs := form.ValidateBankAccount(input); len(errs) > 0 {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	creds := credentialsFor(r)

	account, err := h.API.CreateBankAccount(r.Context(), creds.AccessToken, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.recordChange(r, creds, repository.Change{
		Section:     profile.SectionBankAccount,
		Entity:      repository.ActivityLogBankAccountEntity,
		EntityID:    account.ID,
		Description: "added bank account",
	})

	err = response.JSONCreatedResponse(w, account, "Bank account added successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleBankAccountDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	creds := credentialsFor(r)

	if err := h.API.DeleteBankAccount(r.Context(), creds.AccessToken, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.recordChange(r, creds, repository.Change{
		Section:     profile.SectionBankAccount,
		Entity:      repository.ActivityLogBankAccountEntity,
		EntityID:    id,
		Description: "removed bank account",
	})

	err := response.JSONOkResponse(w, nil, "Bank account removed", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleBankAccountSetDefault(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	creds := credentialsFor(r)

	if err := h.API.SetDefaultBankAccount(r.Context(), creds.AccessToken, id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.recordChange(r, creds, repository.Change{
		Section:     profile.SectionBankAccount,
		Entity:      repository.ActivityLogBankAccountEntity,
		EntityID:    id,
		Description: "set default bank account",
	})

	err := response.JSONOkResponse(w, nil, "Default bank account updated", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

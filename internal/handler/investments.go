package handler

import (
	"fmt"
	"net/http"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/request"
	"github.com/cradoe/profilegate/internal/response"
	"github.com/cradoe/profilegate/internal/validator"
)

const maxInvestmentTenureMonths = 60

func validateInvestment(in models.InvestmentRequest) map[string]string {
	var v validator.Validator

	plan, found := models.FindInvestmentPlan(in.PlanCode)
	v.CheckField(found, "planCode", "Select a valid investment plan")

	v.CheckField(in.Amount > 0, "amount", "Amount must be greater than zero")
	v.CheckField(in.TenureMonths >= 1 && in.TenureMonths <= maxInvestmentTenureMonths, "tenureMonths", fmt.Sprintf("Tenure must be between 1 and %d months", maxInvestmentTenureMonths))

	if found {
		v.CheckField(in.Amount >= plan.MinAmount, "amount", fmt.Sprintf("The minimum amount for %s is %.2f", plan.Name, plan.MinAmount))
		v.CheckField(in.TenureMonths <= plan.MaxTenureMonths, "tenureMonths", fmt.Sprintf("The maximum tenure for %s is %d months", plan.Name, plan.MaxTenureMonths))
	}

	return v.FieldErrors
}

func (h *RouteHandler) HandleInvestmentReturns(w http.ResponseWriter, r *http.Request) {
	var input models.InvestmentRequest

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if errs := validateInvestment(input); len(errs) > 0 {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	returns, err := h.API.CalculateReturns(r.Context(), credentialsFor(r).AccessToken, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, returns, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := h.API.ListInvestments(r.Context(), credentialsFor(r).AccessToken)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, investments, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleInvestmentCreate(w http.ResponseWriter, r *http.Request) {
	var input models.InvestmentRequest

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if errs := validateInvestment(input); len(errs) > 0 {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	creds := credentialsFor(r)

	investment, err := h.API.CreateInvestment(r.Context(), creds.AccessToken, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.recordChange(r, creds, repository.Change{
		Entity:      repository.ActivityLogInvestmentEntity,
		EntityID:    investment.ID,
		Description: fmt.Sprintf("created %s investment of %.2f", input.PlanCode, input.Amount),
	})

	err = response.JSONCreatedResponse(w, investment, "Investment created successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleInvestmentPlans(w http.ResponseWriter, r *http.Request) {
	err := response.JSONOkResponse(w, models.InvestmentPlans, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cradoe/profilegate/internal/models"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/request"
	"github.com/cradoe/profilegate/internal/response"
	"github.com/cradoe/profilegate/internal/validator"
)

// validateLoan requires collateral once the amount goes above threshold.
func validateLoan(in models.LoanRequest, threshold float64) map[string]string {
	var v validator.Validator

	v.CheckField(in.Amount > 0, "amount", "Amount must be greater than zero")
	v.CheckField(in.TenureMonths >= 1, "tenureMonths", "Tenure must be at least 1 month")
	v.CheckField(validator.NotBlank(in.Purpose), "purpose", "Purpose is required")

	if in.Amount > threshold {
		v.CheckField(in.Collateral != nil, "collateral", fmt.Sprintf("Collateral is required for loans above %.2f", threshold))

		if in.Collateral != nil {
			v.CheckField(validator.NotBlank(in.Collateral.Type), "collateral.type", "Collateral type is required")
			v.CheckField(in.Collateral.EstimatedValue >= in.Amount, "collateral.estimatedValue", "Collateral value must cover the requested amount")
		}
	}

	return v.FieldErrors
}

func (h *RouteHandler) HandleLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.API.ListLoans(r.Context(), credentialsFor(r).AccessToken)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, loans, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleLoanCreate(w http.ResponseWriter, r *http.Request) {
	var input models.LoanRequest

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Purpose = strings.TrimSpace(input.Purpose)

	if errs := validateLoan(input, h.Config.Loans.CollateralThreshold); len(errs) > 0 {
		h.ErrHandler.FailedValidation(w, r, errs)
		return
	}

	creds := credentialsFor(r)

	loan, err := h.API.CreateLoan(r.Context(), creds.AccessToken, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.recordChange(r, creds, repository.Change{
		Entity:      repository.ActivityLogLoanEntity,
		EntityID:    loan.ID,
		Description: fmt.Sprintf("requested loan of %.2f", input.Amount),
	})

	err = response.JSONCreatedResponse(w, loan, "Loan request submitted")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
